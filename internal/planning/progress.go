package planning

import "github.com/jonathan/upskill-agent/internal/types"

// NewProgressTemplate builds the initial tracking scaffold for a ranking.
// Every ranked skill starts incomplete with no stages done and a nil
// last-updated timestamp; the job fit score starts at zero.
func NewProgressTemplate(ranked []types.RankedSkill) *types.ProgressTemplate {
	progress := make(map[string]types.SkillProgress, len(ranked))
	for _, rs := range ranked {
		progress[rs.Skill] = types.SkillProgress{
			Completed:       false,
			StagesCompleted: []string{},
			LastUpdated:     nil,
		}
	}
	return &types.ProgressTemplate{
		TotalSkills:     len(ranked),
		CompletedSkills: 0,
		JobFitScore:     0,
		SkillProgress:   progress,
	}
}
