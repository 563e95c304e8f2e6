package corpus

import (
	"regexp"
	"strings"

	"recipe-rag/internal/domain"
)

// ListResult is the outcome of parsing one list-valued corpus field.
// Items is never nil.
type ListResult struct {
	Items  []string
	Kind   domain.Kind
	Reason string
}

// constructorPattern matches tag(...) forms such as c("a", "b").
var constructorPattern = regexp.MustCompile(`(?s)^([A-Za-z_][A-Za-z0-9_.]*)\((.*)\)$`)

// ParseList turns a raw list-like field into its items. It accepts the
// constructor form tag("a", "b"), a bracketed literal list ['a', "b"], and
// anything else through a comma split. It never fails: a value that is not a
// string yields an empty list tagged KindFailed.
func ParseList(v any) ListResult {
	s, ok := v.(string)
	if !ok {
		return ListResult{Items: []string{}, Kind: domain.KindFailed, Reason: "value is not a string"}
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ListResult{Items: []string{}, Kind: domain.KindOK}
	}

	if body, ok := constructorBody(trimmed); ok {
		items, closed := scanConstructor(body)
		if !closed {
			return ListResult{Items: items, Kind: domain.KindFallback, Reason: "unterminated quote"}
		}
		return ListResult{Items: items, Kind: domain.KindOK}
	}

	items, err := parseLiteralList(trimmed)
	if err == nil {
		return ListResult{Items: items, Kind: domain.KindOK}
	}
	return ListResult{Items: splitComma(trimmed), Kind: domain.KindFallback, Reason: err.Error()}
}

// constructorBody returns the text between the parentheses of a constructor
// form. The R export tag "c" is always accepted; other tags only when the
// body is empty or starts with a quoted item.
func constructorBody(s string) (string, bool) {
	m := constructorPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	tag, body := m[1], m[2]
	if tag == "c" {
		return body, true
	}
	rest := strings.TrimSpace(body)
	if rest == "" || strings.HasPrefix(rest, `"`) {
		return body, true
	}
	return "", false
}

// scanConstructor splits a constructor body on commas outside double quotes.
// The scanner has two states, outside and inside quotes; a backslash inside
// quotes escapes the next character. closed is false when a quote is left open.
func scanConstructor(body string) (items []string, closed bool) {
	items = []string{}
	var (
		current  strings.Builder
		inQuotes bool
		quoted   bool
		escaped  bool
	)
	flush := func() {
		item := strings.TrimSpace(current.String())
		if item != "" || quoted {
			items = append(items, item)
		}
		current.Reset()
		quoted = false
	}
	for _, r := range body {
		switch {
		case escaped:
			if r != '"' && r != '\\' {
				current.WriteRune('\\')
			}
			current.WriteRune(r)
			escaped = false
		case inQuotes && r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case r == ',' && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		current.WriteRune('\\')
	}
	if current.Len() > 0 || quoted {
		flush()
	}
	return items, !inQuotes
}

func splitComma(s string) []string {
	if !strings.Contains(s, ",") {
		return []string{s}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
