package types

import "time"

// GapType classifies how a required skill relates to the candidate's skills
type GapType string

// Gap classifications. Matched skills never appear in ranked output.
const (
	GapMissing GapType = "missing"
	GapWeak    GapType = "weak"
)

// SkillGapAnalysis partitions required skills by candidate coverage. Every
// required skill lands in exactly one of the three lists, in the job
// description's original spelling.
type SkillGapAnalysis struct {
	MissingSkills []string `json:"missing_skills"`
	WeakSkills    []string `json:"weak_skills"`
	MatchedSkills []string `json:"matched_skills"`
}

// RankedSkill is a skill gap with its learning priority score
type RankedSkill struct {
	Skill         string        `json:"skill"`
	PriorityScore float64       `json:"priority_score"`
	GapType       GapType       `json:"gap_type"`
	Insight       *SkillInsight `json:"insight,omitempty"`
}

// Resource is a single learning resource within a roadmap stage
type Resource struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// LearningStage groups resources at one proficiency level
type LearningStage struct {
	Level     string     `json:"level"`
	Resources []Resource `json:"resources"`
}

// Roadmap stage levels, in learning order
const (
	StageBeginner     = "Beginner"
	StageIntermediate = "Intermediate"
	StageJobReady     = "Job-Ready"
)

// SkillRoadmap is a progressive learning plan for one skill
type SkillRoadmap struct {
	Skill  string          `json:"skill"`
	Stages []LearningStage `json:"stages"`
}

// ProjectRecommendation suggests a hands-on project combining ranked skills
type ProjectRecommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SkillProgress tracks completion state for one skill's roadmap
type SkillProgress struct {
	Completed       bool       `json:"completed"`
	StagesCompleted []string   `json:"stages_completed"`
	LastUpdated     *time.Time `json:"last_updated"`
}

// ProgressTemplate is the initial tracking scaffold attached to a finished
// roadmap. All skills start incomplete with a zero job fit score.
type ProgressTemplate struct {
	TotalSkills     int                      `json:"total_skills"`
	CompletedSkills int                      `json:"completed_skills"`
	JobFitScore     float64                  `json:"job_fit_score"`
	SkillProgress   map[string]SkillProgress `json:"skill_progress"`
}

// PlanResult is the combined output of the planning stage
type PlanResult struct {
	GapAnalysis  *SkillGapAnalysis       `json:"gap_analysis"`
	RankedSkills []RankedSkill           `json:"ranked_skills"`
	Roadmaps     []SkillRoadmap          `json:"learning_roadmap"`
	Projects     []ProjectRecommendation `json:"project_recommendations"`
	Progress     *ProgressTemplate       `json:"progress_template"`
}
