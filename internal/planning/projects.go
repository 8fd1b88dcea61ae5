package planning

import (
	"context"
	"strings"

	"github.com/jonathan/upskill-agent/internal/llm"
	"github.com/jonathan/upskill-agent/internal/prompts"
	"github.com/jonathan/upskill-agent/internal/schemas"
	"github.com/jonathan/upskill-agent/internal/types"
)

const (
	// maxProjectSkills caps the skills folded into the project prompt
	maxProjectSkills = 5
	// maxRoleExamples caps the real-world examples folded into the prompt
	maxRoleExamples = 3
)

// GenerateProjects suggests hands-on projects practicing the top ranked
// skills in the role's real-world context. An empty ranking yields no
// recommendations and no call.
func GenerateProjects(ctx context.Context, client llm.Client, company, role string, ranked []types.RankedSkill, roleExamples []string) ([]types.ProjectRecommendation, error) {
	if len(ranked) == 0 {
		return nil, nil
	}
	if client == nil {
		return nil, &llm.UnavailableError{Reason: "no generation client configured"}
	}
	if len(ranked) > maxProjectSkills {
		ranked = ranked[:maxProjectSkills]
	}

	names := make([]string, 0, len(ranked))
	for _, rs := range ranked {
		names = append(names, rs.Skill)
	}

	examples := "Not specified"
	if len(roleExamples) > 0 {
		if len(roleExamples) > maxRoleExamples {
			roleExamples = roleExamples[:maxRoleExamples]
		}
		examples = "- " + strings.Join(roleExamples, "\n- ")
	}

	system := prompts.MustGet("planning.json", "projects-system")
	user := prompts.Format(prompts.MustGet("planning.json", "projects-user"), map[string]string{
		"Role":     role,
		"Company":  company,
		"Skills":   strings.Join(names, ", "),
		"Examples": examples,
	})

	response, err := client.GenerateContent(ctx, system, user, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		ProjectRecommendations []types.ProjectRecommendation `json:"project_recommendations"`
	}
	if err := decodeResponse(response, schemas.Projects, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.ProjectRecommendations, nil
}
