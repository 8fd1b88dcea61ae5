package types

import "fmt"

// Status marks how far a pipeline run has progressed
type Status string

// Pipeline statuses, set at the end of each stage
const (
	StatusParsed           Status = "parsed"
	StatusResearched       Status = "researched"
	StatusRoadmapGenerated Status = "roadmap_generated"
)

// PipelineState is the accumulated, append-only state of a single run. Each
// stage fills in its own fields and advances Status; earlier fields are never
// rewritten by later stages.
type PipelineState struct {
	RunID  string `json:"run_id"`
	UserID string `json:"user_id,omitempty"`

	CandidateProfile *CandidateProfile `json:"candidate_profile,omitempty"`
	JobRequirements  *JobRequirements  `json:"job_requirements,omitempty"`

	CompanyInfo     *CompanyProfile `json:"company_info,omitempty"`
	RoleContext     *RoleContext    `json:"role_context,omitempty"`
	SkillInsights   []SkillInsight  `json:"skill_insights,omitempty"`
	ResearchSummary string          `json:"research_summary,omitempty"`

	GapAnalysis  *SkillGapAnalysis       `json:"gap_analysis,omitempty"`
	RankedSkills []RankedSkill           `json:"ranked_skills,omitempty"`
	Roadmaps     []SkillRoadmap          `json:"learning_roadmap,omitempty"`
	Projects     []ProjectRecommendation `json:"project_recommendations,omitempty"`
	Progress     *ProgressTemplate       `json:"progress_template,omitempty"`

	Status Status `json:"status"`
}

// EnsureParsed verifies the extraction stage completed before research runs
func (s *PipelineState) EnsureParsed() error {
	if s.JobRequirements == nil {
		return fmt.Errorf("pipeline state missing job requirements after extraction")
	}
	if s.CandidateProfile == nil {
		return fmt.Errorf("pipeline state missing candidate profile after extraction")
	}
	return nil
}

// EnsureResearched verifies the research stage completed before planning runs
func (s *PipelineState) EnsureResearched() error {
	if err := s.EnsureParsed(); err != nil {
		return err
	}
	if s.CompanyInfo == nil {
		return fmt.Errorf("pipeline state missing company info after research")
	}
	if s.RoleContext == nil {
		return fmt.Errorf("pipeline state missing role context after research")
	}
	return nil
}
