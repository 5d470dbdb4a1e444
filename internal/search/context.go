package search

import "strings"

// Context is a window of lines around one line that contains a matched term.
type Context struct {
	Term               string `json:"term"`
	LineNumber         int    `json:"line_number"`
	Context            string `json:"context"`
	ContextStartLine   int    `json:"context_start_line"`
	ContextEndLine     int    `json:"context_end_line"`
	MatchLineInContext int    `json:"match_line_in_context"`
}

// Contexts returns one record per (term, matching line) pair. Line numbers are 1-based;
// MatchLineInContext is the 0-based offset of the matching line inside the window.
// Overlapping windows are neither merged nor deduplicated.
func Contexts(text string, terms []string, linesBefore, linesAfter int) []Context {
	if text == "" || len(terms) == 0 {
		return []Context{}
	}
	if linesBefore < 0 {
		linesBefore = 0
	}
	if linesAfter < 0 {
		linesAfter = 0
	}

	lines := strings.Split(text, "\n")
	lower := make([]string, len(lines))
	for i, l := range lines {
		lower[i] = strings.ToLower(l)
	}

	out := make([]Context, 0)
	for _, term := range terms {
		needle := strings.ToLower(term)
		if needle == "" {
			continue
		}
		for i := range lines {
			if !strings.Contains(lower[i], needle) {
				continue
			}
			start := max(0, i-linesBefore)
			end := min(len(lines), i+linesAfter+1)

			window := strings.Join(lines[start:end], "\n")
			out = append(out, Context{
				Term:               term,
				LineNumber:         i + 1,
				Context:            Highlight(window, []string{term}),
				ContextStartLine:   start + 1,
				ContextEndLine:     end,
				MatchLineInContext: i - start,
			})
		}
	}
	return out
}
