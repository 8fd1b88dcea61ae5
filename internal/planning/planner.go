package planning

import (
	"context"

	"github.com/jonathan/upskill-agent/internal/llm"
	"github.com/jonathan/upskill-agent/internal/types"
)

// Planner runs the planning stage end to end: gap analysis, ranking, roadmap
// generation, project recommendations, progress template.
type Planner struct {
	client  llm.Client
	scoring Scoring
}

// NewPlanner creates a Planner with the default scoring constants
func NewPlanner(client llm.Client) *Planner {
	return &Planner{client: client, scoring: DefaultScoring()}
}

// PlanInput carries everything planning needs from the earlier stages
type PlanInput struct {
	CandidateSkills  []string
	RequiredSkills   []string
	SkillInsights    []types.SkillInsight
	CompanyTechStack []string
	RoleContext      *types.RoleContext
	CompanyInfo      *types.CompanyProfile
}

// Plan runs the full planning stage. Gap analysis and ranking are
// deterministic; roadmap and project generation each make one generation
// call, skipped entirely when nothing needs to be learned.
func (p *Planner) Plan(ctx context.Context, input PlanInput) (*types.PlanResult, error) {
	analysis := AnalyzeSkillGaps(input.CandidateSkills, input.RequiredSkills)
	ranked := RankSkills(analysis, input.SkillInsights, input.CompanyTechStack, p.scoring)

	company, role := "", ""
	if input.CompanyInfo != nil {
		company = input.CompanyInfo.Name
	}
	var roleExamples []string
	if input.RoleContext != nil {
		role = input.RoleContext.Role
		roleExamples = input.RoleContext.RealWorldExamples
	}

	roadmaps, err := GenerateRoadmap(ctx, p.client, company, role, ranked)
	if err != nil {
		return nil, err
	}

	projects, err := GenerateProjects(ctx, p.client, company, role, ranked, roleExamples)
	if err != nil {
		return nil, err
	}

	return &types.PlanResult{
		GapAnalysis:  analysis,
		RankedSkills: ranked,
		Roadmaps:     roadmaps,
		Projects:     projects,
		Progress:     NewProgressTemplate(ranked),
	}, nil
}
