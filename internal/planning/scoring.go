// Package planning turns parsed profiles and research context into a skill
// gap analysis, a priority ranking, per-skill learning roadmaps, project
// recommendations, and an initial progress template.
package planning

// Scoring holds the constants of the priority formula. Scores start from a
// per-gap base, gain boosts from research signals, and are clamped to a
// per-gap ceiling so a weak skill never outranks an equally-supported
// missing one.
type Scoring struct {
	MissingBase           float64
	WeakBase              float64
	TechStackBoostMissing float64
	RelevanceBoost        float64
	TechStackBoostWeak    float64
	MissingCeiling        float64
	WeakCeiling           float64
	// RelevanceMinChars is the company_relevance length a missing skill's
	// insight must exceed to count as a real research signal.
	RelevanceMinChars int
}

// DefaultScoring returns the standard priority constants
func DefaultScoring() Scoring {
	return Scoring{
		MissingBase:           0.8,
		WeakBase:              0.5,
		TechStackBoostMissing: 0.1,
		RelevanceBoost:        0.05,
		TechStackBoostWeak:    0.2,
		MissingCeiling:        1.0,
		WeakCeiling:           0.9,
		RelevanceMinChars:     20,
	}
}
