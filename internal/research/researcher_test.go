package research

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/upskill-agent/internal/llm"
	"github.com/jonathan/upskill-agent/internal/search"
)

type fakeLLM struct {
	responses []string
	calls     int
	prompts   []string
}

func (f *fakeLLM) GenerateContent(_ context.Context, _ string, userContent string, _ llm.ModelTier) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, userContent)
	if f.calls > len(f.responses) {
		return "{}", nil
	}
	return f.responses[f.calls-1], nil
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeLLM) Close() error { return nil }

type fakeSearch struct {
	results map[string]any
	err     error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string) (any, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if result, ok := f.results[query]; ok {
		return result, nil
	}
	return []search.Snippet{}, nil
}

func goodResponses() []string {
	return []string{
		`{"name": "Acme", "industry": "Logistics", "description": "Ships things", "recent_projects": ["Routing v2"], "common_tech_stack": ["Go", "Postgres"]}`,
		`{"role": "Data Engineer", "responsibilities_summary": ["Build pipelines"], "real_world_examples": ["Nightly ETL into the warehouse"]}`,
		`{"skill_insights": [{"skill_name": "Airflow", "usage_context": "Orchestrates ETL", "related_tools": ["Composer"], "company_relevance": "Runs their pipelines"}]}`,
		"Acme is a logistics company running Go and Postgres; the role centers on pipelines, with Airflow as the key gap.",
	}
}

func TestResearchMissingCompany(t *testing.T) {
	client := &fakeLLM{}
	r := NewResearcher(client, nil, nil)

	_, err := r.Research(context.Background(), "  ", "Engineer", nil, nil)

	var missing *MissingCompanyError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, 0, client.calls)
}

func TestResearchMissingRole(t *testing.T) {
	client := &fakeLLM{}
	r := NewResearcher(client, nil, nil)

	_, err := r.Research(context.Background(), "Acme", "", nil, nil)

	var missing *MissingRoleError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, 0, client.calls)
}

func TestResearchNilClient(t *testing.T) {
	r := NewResearcher(nil, nil, nil)

	_, err := r.Research(context.Background(), "Acme", "Engineer", nil, nil)

	var unavailable *llm.UnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestResearchWithoutSearch(t *testing.T) {
	client := &fakeLLM{responses: goodResponses()}
	r := NewResearcher(client, nil, nil)

	result, err := r.Research(context.Background(), "Acme", "Data Engineer",
		[]string{"Airflow"}, []string{"Build pipelines"})
	require.NoError(t, err)

	assert.Equal(t, 4, client.calls)
	assert.Equal(t, "Acme", result.CompanyInfo.Name)
	assert.Equal(t, "Data Engineer", result.RoleContext.Role)
	require.Len(t, result.SkillInsights, 1)
	assert.Equal(t, "Airflow", result.SkillInsights[0].SkillName)
	assert.NotEmpty(t, result.Summary)

	// prompts carry the fallback marker instead of snippets
	assert.Contains(t, client.prompts[0], "No external research data available.")
}

func TestResearchUsesSearchSnippets(t *testing.T) {
	client := &fakeLLM{responses: goodResponses()}
	searchClient := &fakeSearch{results: map[string]any{
		"Acme company overview technology stack": []search.Snippet{
			{Title: "About Acme", Content: "Acme builds logistics software."},
			{Title: "Acme Tech", Content: "Mostly Go services."},
			{Title: "Third", Content: "Should be dropped, two per query."},
		},
	}}
	r := NewResearcher(client, searchClient, nil)

	_, err := r.Research(context.Background(), "Acme", "Data Engineer", nil, nil)
	require.NoError(t, err)

	assert.Contains(t, client.prompts[0], "Title: About Acme")
	assert.Contains(t, client.prompts[0], "Acme builds logistics software.")
	assert.Contains(t, client.prompts[0], "Mostly Go services.")
	assert.NotContains(t, client.prompts[0], "Should be dropped")
}

func TestResearchTruncatesSnippetsOnRuneBoundary(t *testing.T) {
	client := &fakeLLM{responses: goodResponses()}
	searchClient := &fakeSearch{results: map[string]any{
		"Acme company overview technology stack": []search.Snippet{
			{Title: "About Acme", Content: strings.Repeat("日", 200)},
		},
	}}
	r := NewResearcher(client, searchClient, nil)

	_, err := r.Research(context.Background(), "Acme", "Data Engineer", nil, nil)
	require.NoError(t, err)

	// 200 three-byte runes exceed the 500-byte cap, and 500 is not a rune
	// boundary; the cut must back off instead of splitting a rune
	assert.True(t, utf8.ValidString(client.prompts[0]))
	assert.Contains(t, client.prompts[0], "Content: 日")
}

func TestResearchSurvivesSearchFailure(t *testing.T) {
	client := &fakeLLM{responses: goodResponses()}
	searchClient := &fakeSearch{err: &search.TimeoutError{Query: "x"}}
	r := NewResearcher(client, searchClient, nil)

	result, err := r.Research(context.Background(), "Acme", "Data Engineer", nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Contains(t, client.prompts[0], "No external research data available.")
}

func TestResearchCompanyDefaultName(t *testing.T) {
	responses := goodResponses()
	responses[0] = `{"industry": "Logistics"}`
	client := &fakeLLM{responses: responses}
	r := NewResearcher(client, nil, nil)

	result, err := r.Research(context.Background(), "Acme", "Data Engineer", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Acme", result.CompanyInfo.Name)
}

func TestResearchRoleDefaults(t *testing.T) {
	responses := goodResponses()
	responses[1] = `{"real_world_examples": ["Example"]}`
	client := &fakeLLM{responses: responses}
	r := NewResearcher(client, nil, nil)

	result, err := r.Research(context.Background(), "Acme", "Data Engineer",
		nil, []string{"Build pipelines", "Own the warehouse"})
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", result.RoleContext.Role)
	assert.Equal(t, []string{"Build pipelines", "Own the warehouse"}, result.RoleContext.ResponsibilitiesSummary)
}

func TestResearchSkipsInsightsWithoutSkills(t *testing.T) {
	client := &fakeLLM{responses: []string{
		goodResponses()[0],
		goodResponses()[1],
		"Summary text.",
	}}
	r := NewResearcher(client, nil, nil)

	result, err := r.Research(context.Background(), "Acme", "Data Engineer", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, client.calls)
	assert.Empty(t, result.SkillInsights)
}

func TestResearchCapsInsightSkills(t *testing.T) {
	client := &fakeLLM{responses: goodResponses()}
	r := NewResearcher(client, nil, nil)

	skills := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		skills = append(skills, "Skill"+strings.Repeat("x", i))
	}

	_, err := r.Research(context.Background(), "Acme", "Data Engineer", skills, nil)
	require.NoError(t, err)

	// insights prompt is the third call
	insightsPrompt := client.prompts[2]
	assert.Contains(t, insightsPrompt, "- "+skills[9])
	assert.NotContains(t, insightsPrompt, "- "+skills[10])
}

func TestResearchPropagatesGenerationError(t *testing.T) {
	client := &fakeLLM{responses: []string{"not json at all, sorry"}}
	r := NewResearcher(client, nil, nil)

	_, err := r.Research(context.Background(), "Acme", "Data Engineer", nil, nil)

	var malformed *llm.MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Output, "not json")
}
