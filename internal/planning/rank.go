package planning

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/upskill-agent/internal/types"
)

// RankSkills scores and orders the learnable skill gaps. Matched skills are
// excluded. Scores are rounded to two decimals and the sort is stable, so
// equal scores keep their input order (missing skills come first).
func RankSkills(analysis *types.SkillGapAnalysis, insights []types.SkillInsight, companyTechStack []string, scoring Scoring) []types.RankedSkill {
	insightsByName := make(map[string]*types.SkillInsight, len(insights))
	for i := range insights {
		insightsByName[strings.ToLower(insights[i].SkillName)] = &insights[i]
	}

	techStack := make([]string, 0, len(companyTechStack))
	for _, tech := range companyTechStack {
		techStack = append(techStack, strings.ToLower(strings.TrimSpace(tech)))
	}

	ranked := make([]types.RankedSkill, 0, len(analysis.MissingSkills)+len(analysis.WeakSkills))
	for _, skill := range analysis.MissingSkills {
		ranked = append(ranked, scoreSkill(skill, types.GapMissing, insightsByName, techStack, scoring))
	}
	for _, skill := range analysis.WeakSkills {
		ranked = append(ranked, scoreSkill(skill, types.GapWeak, insightsByName, techStack, scoring))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})
	return ranked
}

func scoreSkill(skill string, gap types.GapType, insightsByName map[string]*types.SkillInsight, techStack []string, scoring Scoring) types.RankedSkill {
	key := strings.ToLower(skill)
	insight := insightsByName[key]
	inStack := inTechStack(key, techStack)

	var score float64
	switch gap {
	case types.GapMissing:
		score = scoring.MissingBase
		if inStack {
			score += scoring.TechStackBoostMissing
		}
		if insight != nil && len(insight.CompanyRelevance) > scoring.RelevanceMinChars {
			score += scoring.RelevanceBoost
		}
		score = math.Min(score, scoring.MissingCeiling)
	case types.GapWeak:
		score = scoring.WeakBase
		if inStack {
			score += scoring.TechStackBoostWeak
		}
		score = math.Min(score, scoring.WeakCeiling)
	}

	return types.RankedSkill{
		Skill:         skill,
		PriorityScore: math.Round(score*100) / 100,
		GapType:       gap,
		Insight:       insight,
	}
}

// inTechStack reports whether the lowercased skill appears as a substring of
// any company tech stack entry.
func inTechStack(skill string, techStack []string) bool {
	for _, tech := range techStack {
		if strings.Contains(tech, skill) {
			return true
		}
	}
	return false
}
