// Package extraction turns raw resume and job-description text into
// structured records via LLM extraction with defensive JSON recovery.
package extraction

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/upskill-agent/internal/llm"
	"github.com/jonathan/upskill-agent/internal/prompts"
	"github.com/jonathan/upskill-agent/internal/schemas"
	"github.com/jonathan/upskill-agent/internal/types"
)

// Extractor parses documents into structured profiles. The generation client
// is injected at construction time; a nil client fails every call with
// *llm.UnavailableError.
type Extractor struct {
	client llm.Client
}

// NewExtractor creates an Extractor backed by the given generation client
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract parses an optional resume and a mandatory job description into
// structured records. One generation call is issued per provided document.
// When candidateText is nil the candidate profile is the zero value: a resume
// is optional, job text is not.
func (e *Extractor) Extract(ctx context.Context, candidateText *string, jobText string) (*types.CandidateProfile, *types.JobRequirements, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, nil, &EmptyInputError{Input: "job description"}
	}
	if candidateText != nil && strings.TrimSpace(*candidateText) == "" {
		return nil, nil, &EmptyInputError{Input: "resume"}
	}
	if e.client == nil {
		return nil, nil, &llm.UnavailableError{Reason: "no generation client configured"}
	}

	profile := &types.CandidateProfile{}
	if candidateText != nil {
		var err error
		profile, err = e.parseResume(ctx, *candidateText)
		if err != nil {
			return nil, nil, err
		}
	}

	requirements, err := e.parseJobDescription(ctx, jobText)
	if err != nil {
		return nil, nil, err
	}

	return profile, requirements, nil
}

// parseResume extracts a structured candidate profile from resume text
func (e *Extractor) parseResume(ctx context.Context, resumeText string) (*types.CandidateProfile, error) {
	system := prompts.MustGet("extraction.json", "resume-system")
	user := prompts.Format(prompts.MustGet("extraction.json", "resume-user"), map[string]string{
		"ResumeContent": resumeText,
	})

	response, err := e.client.GenerateContent(ctx, system, user, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var profile types.CandidateProfile
	if err := decodeResponse(response, schemas.Resume, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// parseJobDescription extracts structured job requirements from JD text
func (e *Extractor) parseJobDescription(ctx context.Context, jobText string) (*types.JobRequirements, error) {
	system := prompts.MustGet("extraction.json", "job-system")
	user := prompts.Format(prompts.MustGet("extraction.json", "job-user"), map[string]string{
		"JobText": jobText,
	})

	response, err := e.client.GenerateContent(ctx, system, user, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var requirements types.JobRequirements
	if err := decodeResponse(response, schemas.Job, &requirements); err != nil {
		return nil, err
	}
	return &requirements, nil
}

// decodeResponse recovers JSON from a raw model response, validates it
// against the wire schema, and unmarshals it. Missing keys are not errors;
// they leave their fields at zero values.
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
