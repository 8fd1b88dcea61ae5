package search

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxContentLen caps how much of a result's content is kept per snippet
const maxContentLen = 500

// Normalize coerces a provider response of unknown shape into snippets.
// The closed set of accepted shapes is: a snippet list, a generic list, a
// single record, a plain string, or an opaque value. Individual results that
// cannot be recovered are dropped; Normalize never fails. The query is used
// as the title for results that carry none.
func Normalize(query string, result any) []Snippet {
	switch v := result.(type) {
	case nil:
		return nil
	case []Snippet:
		return normalizeSnippets(v)
	case []any:
		return normalizeList(query, v)
	case map[string]any:
		return normalizeRecordList(query, []map[string]any{v})
	case string:
		return normalizeString(query, v)
	default:
		return normalizeOpaque(query, v)
	}
}

func normalizeSnippets(items []Snippet) []Snippet {
	out := make([]Snippet, 0, len(items))
	for _, s := range items {
		s.Content = truncate(s.Content, maxContentLen)
		if s.Title == "" && s.Content == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func normalizeList(query string, items []any) []Snippet {
	var out []Snippet
	for _, item := range items {
		switch v := item.(type) {
		case map[string]any:
			out = append(out, normalizeRecordList(query, []map[string]any{v})...)
		case string:
			out = append(out, normalizeString(query, v)...)
		case Snippet:
			v.Content = truncate(v.Content, maxContentLen)
			out = append(out, v)
		default:
			// Unrecoverable item; drop it rather than failing the query.
			continue
		}
	}
	return out
}

func normalizeRecordList(query string, records []map[string]any) []Snippet {
	var out []Snippet
	for _, rec := range records {
		title := stringField(rec, "title")
		content := stringField(rec, "content")
		if content == "" {
			content = stringField(rec, "snippet")
		}
		if title == "" && content == "" {
			continue
		}
		if title == "" {
			title = query
		}
		out = append(out, Snippet{Title: title, Content: truncate(content, maxContentLen)})
	}
	return out
}

func normalizeString(query, s string) []Snippet {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return []Snippet{{Title: query, Content: truncate(s, maxContentLen)}}
}

func normalizeOpaque(query string, v any) []Snippet {
	return normalizeString(query, fmt.Sprintf("%v", v))
}

func stringField(rec map[string]any, key string) string {
	val, ok := rec[key]
	if !ok {
		return ""
	}
	if s, ok := val.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", val))
}

// truncate caps s at limit bytes, backing off to a rune boundary so a
// multibyte character is never cut in half.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
