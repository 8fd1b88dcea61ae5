// Package research enriches parsed job requirements with external context:
// a company profile, real-world role context, and per-skill usage insights,
// synthesized into a short summary for the planning stage.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/upskill-agent/internal/llm"
	"github.com/jonathan/upskill-agent/internal/prompts"
	"github.com/jonathan/upskill-agent/internal/schemas"
	"github.com/jonathan/upskill-agent/internal/search"
	"github.com/jonathan/upskill-agent/internal/types"
)

const (
	// snippetsPerQuery caps how many results a single query contributes
	snippetsPerQuery = 2
	// maxContextSnippets caps the snippets folded into one prompt
	maxContextSnippets = 5
	// maxInsightSkills caps the skills researched per run
	maxInsightSkills = 10
	// maxSummaryInsights caps the insights folded into the final summary
	maxSummaryInsights = 5
	// maxSnippetContentLen caps the content of one snippet in prompt context
	maxSnippetContentLen = 500

	noSearchData = "No external research data available."
)

// Researcher runs the research stage. The search client is optional; when it
// is nil or failing, generation proceeds on the model's own knowledge.
type Researcher struct {
	client llm.Client
	search search.Client
	log    *zap.Logger
}

// NewResearcher creates a Researcher. A nil logger is replaced with a no-op.
func NewResearcher(client llm.Client, searchClient search.Client, log *zap.Logger) *Researcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Researcher{client: client, search: searchClient, log: log}
}

// Research gathers company, role, and skill context for the given job. The
// company and role are mandatory; requiredSkills and responsibilities may be
// empty. Search failures are logged and skipped, generation failures abort.
func (r *Researcher) Research(ctx context.Context, company, role string, requiredSkills, responsibilities []string) (*types.ResearchContext, error) {
	if strings.TrimSpace(company) == "" {
		return nil, &MissingCompanyError{}
	}
	if strings.TrimSpace(role) == "" {
		return nil, &MissingRoleError{}
	}
	if r.client == nil {
		return nil, &llm.UnavailableError{Reason: "no generation client configured"}
	}

	companyInfo, err := r.researchCompany(ctx, company, role)
	if err != nil {
		return nil, err
	}

	roleContext, err := r.researchRole(ctx, company, role, responsibilities)
	if err != nil {
		return nil, err
	}

	insights, err := r.researchSkillInsights(ctx, company, role, requiredSkills)
	if err != nil {
		return nil, err
	}

	summary, err := r.synthesize(ctx, companyInfo, roleContext, insights)
	if err != nil {
		return nil, err
	}

	return &types.ResearchContext{
		CompanyInfo:   *companyInfo,
		RoleContext:   *roleContext,
		SkillInsights: insights,
		Summary:       summary,
	}, nil
}

func (r *Researcher) researchCompany(ctx context.Context, company, role string) (*types.CompanyProfile, error) {
	queries := []string{
		fmt.Sprintf("%s company overview technology stack", company),
		fmt.Sprintf("%s recent projects case studies", company),
	}
	searchContext := r.buildSearchContext(ctx, queries)

	system := prompts.MustGet("research.json", "company-system")
	user := prompts.Format(prompts.MustGet("research.json", "company-user"), map[string]string{
		"Company":       company,
		"Role":          role,
		"SearchContext": searchContext,
	})

	response, err := r.client.GenerateContent(ctx, system, user, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	var profile types.CompanyProfile
	if err := decodeResponse(response, schemas.Company, &profile); err != nil {
		return nil, err
	}
	if profile.Name == "" {
		profile.Name = company
	}
	return &profile, nil
}

func (r *Researcher) researchRole(ctx context.Context, company, role string, responsibilities []string) (*types.RoleContext, error) {
	queries := []string{
		fmt.Sprintf("%s day to day responsibilities real world examples", role),
		fmt.Sprintf("%s %s typical tasks", role, company),
	}
	searchContext := r.buildSearchContext(ctx, queries)

	respLines := "Not specified"
	if len(responsibilities) > 0 {
		respLines = "- " + strings.Join(responsibilities, "\n- ")
	}

	system := prompts.MustGet("research.json", "role-system")
	user := prompts.Format(prompts.MustGet("research.json", "role-user"), map[string]string{
		"Role":             role,
		"Responsibilities": respLines,
		"SearchContext":    searchContext,
	})

	response, err := r.client.GenerateContent(ctx, system, user, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	var roleCtx types.RoleContext
	if err := decodeResponse(response, schemas.Role, &roleCtx); err != nil {
		return nil, err
	}
	if roleCtx.Role == "" {
		roleCtx.Role = role
	}
	if len(roleCtx.ResponsibilitiesSummary) == 0 {
		roleCtx.ResponsibilitiesSummary = responsibilities
	}
	return &roleCtx, nil
}

func (r *Researcher) researchSkillInsights(ctx context.Context, company, role string, skills []string) ([]types.SkillInsight, error) {
	if len(skills) == 0 {
		return nil, nil
	}
	if len(skills) > maxInsightSkills {
		skills = skills[:maxInsightSkills]
	}

	var sb strings.Builder
	for _, skill := range skills {
		sb.WriteString("- ")
		sb.WriteString(skill)
		sb.WriteString("\n")
	}

	system := prompts.MustGet("research.json", "insights-system")
	user := prompts.Format(prompts.MustGet("research.json", "insights-user"), map[string]string{
		"Company": company,
		"Role":    role,
		"Skills":  sb.String(),
	})

	response, err := r.client.GenerateContent(ctx, system, user, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		SkillInsights []types.SkillInsight `json:"skill_insights"`
	}
	if err := decodeResponse(response, schemas.SkillInsights, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.SkillInsights, nil
}

// synthesize produces the plain-text research summary. The model's text is
// returned verbatim apart from whitespace trimming.
func (r *Researcher) synthesize(ctx context.Context, companyInfo *types.CompanyProfile, roleCtx *types.RoleContext, insights []types.SkillInsight) (string, error) {
	if len(insights) > maxSummaryInsights {
		insights = insights[:maxSummaryInsights]
	}

	companyJSON, err := json.MarshalIndent(companyInfo, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode company info: %w", err)
	}
	roleJSON, err := json.MarshalIndent(roleCtx, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode role context: %w", err)
	}
	insightsJSON, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode skill insights: %w", err)
	}

	system := prompts.MustGet("research.json", "summary-system")
	user := prompts.Format(prompts.MustGet("research.json", "summary-user"), map[string]string{
		"CompanySummary": string(companyJSON),
		"RoleSummary":    string(roleJSON),
		"SkillsSummary":  string(insightsJSON),
	})

	response, err := r.client.GenerateContent(ctx, system, user, llm.TierAdvanced)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// collectSnippets runs each query and folds the normalized results into one
// list. Failures and absent search are skipped, never fatal.
func (r *Researcher) collectSnippets(ctx context.Context, queries []string) []search.Snippet {
	if r.search == nil {
		return nil
	}

	var snippets []search.Snippet
	for _, query := range queries {
		result, err := r.search.Search(ctx, query)
		if err != nil {
			r.log.Warn("search query failed, continuing without it",
				zap.String("query", query),
				zap.Error(err))
			continue
		}
		normalized := search.Normalize(query, result)
		if len(normalized) > snippetsPerQuery {
			normalized = normalized[:snippetsPerQuery]
		}
		snippets = append(snippets, normalized...)
	}
	return snippets
}

// buildSearchContext renders collected snippets as prompt context
func (r *Researcher) buildSearchContext(ctx context.Context, queries []string) string {
	snippets := r.collectSnippets(ctx, queries)
	if len(snippets) == 0 {
		return noSearchData
	}
	if len(snippets) > maxContextSnippets {
		snippets = snippets[:maxContextSnippets]
	}

	parts := make([]string, 0, len(snippets))
	for _, s := range snippets {
		parts = append(parts, fmt.Sprintf("Title: %s\nContent: %s", s.Title, truncateContent(s.Content, maxSnippetContentLen)))
	}
	return strings.Join(parts, "\n\n")
}

// truncateContent caps content at limit bytes on a rune boundary so a
// multibyte character never lands half-cut in a prompt.
func truncateContent(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
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
