package classify

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// tfidf is a fitted bag-of-words vectorizer with smoothed inverse document frequency
// and L2-normalised rows.
type tfidf struct {
	vocab map[string]int
	idf   []float64
}

// tokenize lower-cases s, drops single-character tokens and stop words.
func tokenize(s string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(s), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func fitTFIDF(docs []string, maxFeatures int) *tfidf {
	df := make(map[string]int)
	tf := make(map[string]int)
	for _, d := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(d) {
			tf[tok]++
			if !seen[tok] {
				df[tok]++
				seen[tok] = true
			}
		}
	}

	terms := make([]string, 0, len(tf))
	for term := range tf {
		terms = append(terms, term)
	}
	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if tf[terms[i]] != tf[terms[j]] {
				return tf[terms[i]] > tf[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	v := &tfidf{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, term := range terms {
		v.vocab[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return v
}

// transform returns the normalised tf-idf vector for s. Terms outside the vocabulary are ignored,
// so a document without known terms yields the zero vector.
func (v *tfidf) transform(s string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, tok := range tokenize(s) {
		if i, ok := v.vocab[tok]; ok {
			vec[i]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
