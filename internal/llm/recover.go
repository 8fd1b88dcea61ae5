// Package llm - recover.go coerces raw model responses into parseable JSON.
// LLMs wrap JSON in markdown fences, add prose around it, and emit almost-JSON
// (single quotes, trailing commas, bare values) even when instructed not to.
package llm

import (
	"encoding/json"
	"strings"
)

// RecoverJSON extracts a strict-parseable JSON document from a raw model
// response. Recovery is applied in a fixed order: fence strip, brace slice,
// strict parse, then a sanitization pass and one retry. Each step is
// best-effort; only the final outcome fails, with *MalformedOutputError
// carrying the original response text.
func RecoverJSON(text string) (string, error) {
	candidate := stripFence(text)
	candidate = strings.TrimSpace(sliceBraces(candidate))

	if json.Valid([]byte(candidate)) {
		return candidate, nil
	}

	sanitized := sanitize(candidate)
	if json.Valid([]byte(sanitized)) {
		return sanitized, nil
	}

	return "", &MalformedOutputError{Output: text}
}

// stripFence returns the contents of the first fenced code block, preferring
// a ```json fence over a bare one. Text without a fence is returned trimmed.
func stripFence(text string) string {
	if i := strings.Index(text, "```json"); i >= 0 {
		rest := text[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}

	if i := strings.Index(text, "```"); i >= 0 {
		rest := text[i+3:]
		// Skip a language identifier on the fence line
		if nl := strings.Index(rest, "\n"); nl >= 0 {
			first := strings.TrimSpace(rest[:nl])
			if first != "" && len(first) < 20 && !strings.ContainsAny(first, " {[\"") {
				rest = rest[nl+1:]
			}
		}
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}

	return strings.TrimSpace(text)
}

// sliceBraces slices from the first '{' to the last '}' when both are present,
// discarding any surrounding prose.
func sliceBraces(text string) string {
	open := strings.Index(text, "{")
	closing := strings.LastIndex(text, "}")
	if open >= 0 && closing > open {
		return text[open : closing+1]
	}
	return text
}

// sanitize applies the best-effort repair passes for common almost-JSON
// output: single-quoted keys/values, bare unquoted string values, missing
// commas between adjacent quoted tokens, and trailing commas.
func sanitize(s string) string {
	s = normalizeQuotes(s)
	s = quoteBareValues(s)
	s = insertMissingCommas(s)
	s = stripTrailingCommas(s)
	return s
}

// normalizeQuotes converts single-quoted strings to double-quoted ones,
// escaping any embedded double quotes.
func normalizeQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inDouble, inSingle := false, false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inDouble:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
				continue
			}
			if c == '"' {
				inDouble = false
			}
		case inSingle:
			if c == '\\' && i+1 < len(s) {
				b.WriteByte(c)
				i++
				b.WriteByte(s[i])
				continue
			}
			if c == '\'' {
				b.WriteByte('"')
				inSingle = false
				continue
			}
			if c == '"' {
				b.WriteString(`\"`)
				continue
			}
			b.WriteByte(c)
		default:
			if c == '"' {
				inDouble = true
			} else if c == '\'' {
				inSingle = true
				b.WriteByte('"')
				continue
			}
			b.WriteByte(c)
		}
	}

	return b.String()
}

// quoteBareValues wraps unquoted scalar values in double quotes, e.g.
// {"role": Engineer} becomes {"role": "Engineer"}. Numbers, booleans, null,
// and nested structures are left alone.
func quoteBareValues(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inStr := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		if c == '"' {
			inStr = true
			b.WriteByte(c)
			continue
		}

		b.WriteByte(c)
		if c != ':' {
			continue
		}

		j := i + 1
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		if j >= len(s) {
			continue
		}
		next := s[j]
		if next == '"' || next == '{' || next == '[' || next == '-' || (next >= '0' && next <= '9') {
			continue
		}

		k := j
		for k < len(s) && s[k] != ',' && s[k] != '}' && s[k] != ']' && s[k] != '\n' {
			k++
		}
		token := strings.TrimSpace(s[j:k])
		if token == "" || token == "true" || token == "false" || token == "null" {
			continue
		}

		b.WriteString(s[i+1 : j])
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(token, `"`, `\"`))
		b.WriteByte('"')
		i = k - 1
	}

	return b.String()
}

// insertMissingCommas adds a comma between adjacent quoted tokens, e.g.
// ["a" "b"] becomes ["a", "b"].
func insertMissingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inStr := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		b.WriteByte(c)
		if inStr {
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
				continue
			}
			if c == '"' {
				inStr = false
				j := i + 1
				for j < len(s) && isSpace(s[j]) {
					j++
				}
				if j < len(s) && s[j] == '"' {
					b.WriteByte(',')
				}
			}
			continue
		}
		if c == '"' {
			inStr = true
		}
	}

	return b.String()
}

// stripTrailingCommas removes commas that directly precede a closing bracket.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inStr := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		if c == '"' {
			inStr = true
			b.WriteByte(c)
			continue
		}
		if c == ',' {
			j := i + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}

	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
