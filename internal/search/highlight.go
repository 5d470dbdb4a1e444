package search

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Highlight wraps every case-insensitive occurrence of any term in text with <mark> tags,
// keeping the original casing. Terms are literal substrings, not words. Longer terms take
// precedence at a position, so a shorter term never splits a longer one.
func Highlight(text string, terms []string) string {
	if text == "" {
		return text
	}
	re := termPattern(terms)
	if re == nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return markOpen + m + markClose
	})
}

// termPattern compiles a case-insensitive alternation of the non-blank terms ordered
// longest first. It returns nil when no term is usable.
func termPattern(terms []string) *regexp.Regexp {
	seen := make(map[string]bool, len(terms))
	cleaned := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, t)
	}
	if len(cleaned) == 0 {
		return nil
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return utf8.RuneCountInString(cleaned[i]) > utf8.RuneCountInString(cleaned[j])
	})

	quoted := make([]string, len(cleaned))
	for i, t := range cleaned {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile("(?i)(?:" + strings.Join(quoted, "|") + ")")
}
