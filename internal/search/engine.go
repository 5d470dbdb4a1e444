// Package search implements keyword and phrase matching over document snapshots,
// with highlighted output and line contexts around each match.
package search

import (
	"strings"

	"docanalytics/internal/model"
)

// MatchType tells which pass matched a document.
type MatchType string

const (
	MatchExactPhrase     MatchType = "exact_phrase"
	MatchIndividualWords MatchType = "individual_words"
)

const (
	previewLength  = 500
	previewSuffix  = "..."
	contextsBefore = 1
	contextsAfter  = 1
)

// Match is a copy of a matching document enriched with highlighting and match details.
type Match struct {
	model.Document
	HighlightedContent string    `json:"highlighted_content"`
	HighlightedTitle   string    `json:"highlighted_title"`
	MatchedTerms       []string  `json:"matched_terms"`
	MatchType          MatchType `json:"match_type"`
	SearchQuery        string    `json:"search_query"`
	MatchContexts      []Context `json:"match_contexts"`
	TotalMatches       int       `json:"total_matches"`
	ContentPreview     string    `json:"content_preview"`
}

// Search returns the documents matching query, in input order.
//
// The whole trimmed query is tried first as a case-insensitive substring of the
// document text followed by its title. Only if that fails are the whitespace-separated
// words tried individually. A blank query returns every document without enrichment.
// The input slice is never modified.
func Search(docs []model.Document, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, len(docs))
		for i, d := range docs {
			out[i] = Match{Document: d}
		}
		return out
	}

	queryLower := strings.ToLower(query)
	words := strings.Fields(query)

	out := make([]Match, 0)
	for _, d := range docs {
		// No separator: any substring of text+title matches, including one spanning the join.
		haystack := strings.ToLower(d.ContentText + d.Title)

		var (
			matched   []string
			matchType MatchType
		)
		if strings.Contains(haystack, queryLower) {
			matched = []string{query}
			matchType = MatchExactPhrase
		} else {
			for _, w := range words {
				if strings.Contains(haystack, strings.ToLower(w)) {
					matched = append(matched, w)
				}
			}
			if len(matched) == 0 {
				continue
			}
			matchType = MatchIndividualWords
		}

		contexts := Contexts(d.ContentText, matched, contextsBefore, contextsAfter)
		out = append(out, Match{
			Document:           d,
			HighlightedContent: Highlight(d.ContentText, matched),
			HighlightedTitle:   Highlight(d.Title, matched),
			MatchedTerms:       matched,
			MatchType:          matchType,
			SearchQuery:        query,
			MatchContexts:      contexts,
			TotalMatches:       len(contexts),
			ContentPreview:     Preview(d.ContentText),
		})
	}
	return out
}

// Preview returns the first 500 characters of text, followed by "..." when truncated.
func Preview(text string) string {
	n := 0
	for i := range text {
		if n == previewLength {
			return text[:i] + previewSuffix
		}
		n++
	}
	return text
}
