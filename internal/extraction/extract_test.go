package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/upskill-agent/internal/llm"
)

// fakeClient returns canned responses in order of calls
type fakeClient struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (f *fakeClient) GenerateContent(_ context.Context, _ string, userContent string, _ llm.ModelTier) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, userContent)
	if f.err != nil {
		return "", f.err
	}
	if f.calls > len(f.responses) {
		return "{}", nil
	}
	return f.responses[f.calls-1], nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func strPtr(s string) *string { return &s }

func TestExtractEmptyJobDescription(t *testing.T) {
	e := NewExtractor(&fakeClient{})

	_, _, err := e.Extract(context.Background(), nil, "   ")

	var emptyErr *EmptyInputError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "job description", emptyErr.Input)
}

func TestExtractEmptyResume(t *testing.T) {
	e := NewExtractor(&fakeClient{})

	_, _, err := e.Extract(context.Background(), strPtr("\n\t "), "Backend engineer role")

	var emptyErr *EmptyInputError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "resume", emptyErr.Input)
}

func TestExtractNilClient(t *testing.T) {
	e := NewExtractor(nil)

	_, _, err := e.Extract(context.Background(), nil, "Backend engineer role")

	var unavailable *llm.UnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestExtractWithoutResume(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"company": "Acme", "role": "Data Engineer", "required_skills": ["Python", "SQL"]}`,
	}}
	e := NewExtractor(client)

	profile, requirements, err := e.Extract(context.Background(), nil, "Data Engineer at Acme")
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	require.NotNil(t, profile)
	assert.Empty(t, profile.Skills)
	require.NotNil(t, requirements)
	assert.Equal(t, "Acme", requirements.Company)
	assert.Equal(t, "Data Engineer", requirements.Role)
	assert.Equal(t, []string{"Python", "SQL"}, requirements.RequiredSkills)
}

func TestExtractWithResume(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"skills": ["Go", "Postgres"], "education": "BSc", "experience": ["Built APIs"]}`,
		`{"company": "Acme", "role": "Engineer", "required_skills": ["Go"]}`,
	}}
	e := NewExtractor(client)

	profile, requirements, err := e.Extract(context.Background(), strPtr("Jon. Go developer."), "Engineer at Acme")
	require.NoError(t, err)

	assert.Equal(t, 2, client.calls)
	assert.Equal(t, []string{"Go", "Postgres"}, profile.Skills)
	assert.Equal(t, "BSc", profile.Education)
	assert.Equal(t, "Acme", requirements.Company)

	// resume text must reach the first prompt, job text the second
	assert.Contains(t, client.prompts[0], "Jon. Go developer.")
	assert.Contains(t, client.prompts[1], "Engineer at Acme")
}

func TestExtractRecoversFencedResponse(t *testing.T) {
	client := &fakeClient{responses: []string{
		"Here is the result:\n```json\n{\"company\": \"Acme\", \"role\": \"Engineer\"}\n```",
	}}
	e := NewExtractor(client)

	_, requirements, err := e.Extract(context.Background(), nil, "Engineer at Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", requirements.Company)
}

func TestExtractMalformedResponse(t *testing.T) {
	client := &fakeClient{responses: []string{"I could not parse that document."}}
	e := NewExtractor(client)

	_, _, err := e.Extract(context.Background(), nil, "Engineer at Acme")

	var malformed *llm.MalformedOutputError
	assert.ErrorAs(t, err, &malformed)
}

func TestExtractWrongShapeResponse(t *testing.T) {
	// valid JSON but required_skills has the wrong type
	client := &fakeClient{responses: []string{
		`{"company": "Acme", "required_skills": "Go"}`,
	}}
	e := NewExtractor(client)

	_, _, err := e.Extract(context.Background(), nil, "Engineer at Acme")

	var malformed *llm.MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Error(t, errors.Unwrap(malformed))
}

func TestExtractPropagatesClientError(t *testing.T) {
	wantErr := &llm.TimeoutError{Model: "fake-model"}
	client := &fakeClient{err: wantErr}
	e := NewExtractor(client)

	_, _, err := e.Extract(context.Background(), nil, "Engineer at Acme")

	var timeout *llm.TimeoutError
	assert.ErrorAs(t, err, &timeout)
}
