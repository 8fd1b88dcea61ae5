package planning

import (
	"strings"

	"github.com/jonathan/upskill-agent/internal/types"
)

// AnalyzeSkillGaps partitions required skills against the candidate's skills.
// Matching is case-insensitive: an exact match is matched, a substring match
// in either direction is weak, anything else is missing. Output preserves the
// job description's original spelling. This step is deterministic; no
// generation call is involved.
func AnalyzeSkillGaps(candidateSkills, requiredSkills []string) *types.SkillGapAnalysis {
	candidate := make([]string, 0, len(candidateSkills))
	for _, s := range candidateSkills {
		trimmed := strings.TrimSpace(s)
		if trimmed != "" {
			candidate = append(candidate, strings.ToLower(trimmed))
		}
	}

	analysis := &types.SkillGapAnalysis{
		MissingSkills: []string{},
		WeakSkills:    []string{},
		MatchedSkills: []string{},
	}

	for _, required := range requiredSkills {
		trimmed := strings.TrimSpace(required)
		if trimmed == "" {
			continue
		}
		switch classify(strings.ToLower(trimmed), candidate) {
		case gapMatched:
			analysis.MatchedSkills = append(analysis.MatchedSkills, trimmed)
		case types.GapWeak:
			analysis.WeakSkills = append(analysis.WeakSkills, trimmed)
		default:
			analysis.MissingSkills = append(analysis.MissingSkills, trimmed)
		}
	}

	return analysis
}

// gapMatched is internal to classification; matched skills are reported in
// the analysis but never ranked.
const gapMatched types.GapType = "matched"

func classify(required string, candidate []string) types.GapType {
	for _, have := range candidate {
		if have == required {
			return gapMatched
		}
	}
	for _, have := range candidate {
		if strings.Contains(have, required) || strings.Contains(required, have) {
			return types.GapWeak
		}
	}
	return types.GapMissing
}
