package types

// CompanyProfile holds researched facts about the hiring company
type CompanyProfile struct {
	Name            string   `json:"name"`
	Industry        string   `json:"industry"`
	Description     string   `json:"description"`
	RecentProjects  []string `json:"recent_projects"`
	CommonTechStack []string `json:"common_tech_stack"`
}

// RoleContext holds researched context about the target role
type RoleContext struct {
	Role                    string   `json:"role"`
	ResponsibilitiesSummary []string `json:"responsibilities_summary"`
	RealWorldExamples       []string `json:"real_world_examples"`
}

// SkillInsight describes how a single required skill is used in practice
type SkillInsight struct {
	SkillName        string   `json:"skill_name"`
	UsageContext     string   `json:"usage_context"`
	RelatedTools     []string `json:"related_tools"`
	CompanyRelevance string   `json:"company_relevance"`
}

// ResearchContext is the combined output of the research stage
type ResearchContext struct {
	CompanyInfo   CompanyProfile `json:"company_info"`
	RoleContext   RoleContext    `json:"role_context"`
	SkillInsights []SkillInsight `json:"skill_insights"`
	Summary       string         `json:"research_summary"`
}
