package planning

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/upskill-agent/internal/llm"
	"github.com/jonathan/upskill-agent/internal/prompts"
	"github.com/jonathan/upskill-agent/internal/schemas"
	"github.com/jonathan/upskill-agent/internal/types"
)

// maxRoadmapSkills caps how many ranked skills get a roadmap per run
const maxRoadmapSkills = 10

// GenerateRoadmap produces a three-stage learning roadmap for the top ranked
// skills in a single generation call. An empty ranking yields no roadmap and
// no call.
func GenerateRoadmap(ctx context.Context, client llm.Client, company, role string, ranked []types.RankedSkill) ([]types.SkillRoadmap, error) {
	if len(ranked) == 0 {
		return nil, nil
	}
	if client == nil {
		return nil, &llm.UnavailableError{Reason: "no generation client configured"}
	}
	if len(ranked) > maxRoadmapSkills {
		ranked = ranked[:maxRoadmapSkills]
	}

	var sb strings.Builder
	for _, rs := range ranked {
		sb.WriteString("- ")
		sb.WriteString(rs.Skill)
		sb.WriteString("\n")
	}

	system := prompts.MustGet("planning.json", "roadmap-system")
	user := prompts.Format(prompts.MustGet("planning.json", "roadmap-user"), map[string]string{
		"Role":    role,
		"Company": company,
		"Skills":  sb.String(),
	})

	response, err := client.GenerateContent(ctx, system, user, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		LearningRoadmap []types.SkillRoadmap `json:"learning_roadmap"`
	}
	if err := decodeResponse(response, schemas.Roadmap, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.LearningRoadmap, nil
}

func decodeResponse(response string, shape schemas.Shape, out any) error {
	recovered, err := llm.RecoverJSON(response)
	if err != nil {
		return err
	}
	if err := schemas.Validate(shape, recovered); err != nil {
		return &llm.MalformedOutputError{Output: recovered, Cause: err}
	}
	if err := json.Unmarshal([]byte(recovered), out); err != nil {
		return &llm.MalformedOutputError{Output: recovered, Cause: err}
	}
	return nil
}
