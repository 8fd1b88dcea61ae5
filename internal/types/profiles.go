// Package types defines the shared data structures flowing through the
// extraction, research, and planning stages. All fields follow the snake_case
// wire contract used in generation prompts.
package types

// CandidateProfile is the structured form of a parsed resume
type CandidateProfile struct {
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  string   `json:"education"`
	Projects   []string `json:"projects"`
	Tools      []string `json:"tools"`
}

// JobRequirements is the structured form of a parsed job description
type JobRequirements struct {
	Company          string   `json:"company"`
	Role             string   `json:"role"`
	RequiredSkills   []string `json:"required_skills"`
	Tools            []string `json:"tools"`
	Responsibilities []string `json:"responsibilities"`
}
