// Package classify assigns a topical category to document text using a
// TF-IDF vectorizer followed by a multinomial Naive Bayes model.
package classify

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"docanalytics/internal/model"
)

const (
	// DefaultConfidence is reported together with model.CategoryGeneral when no prediction can be made.
	DefaultConfidence = 0.5

	maxFeatures = 1000
	alpha       = 1.0
)

var nonAlpha = regexp.MustCompile(`[^a-z ]`)

// Sample is one labelled training phrase.
type Sample struct {
	Text     string
	Category model.Category
}

// DefaultCorpus is the fixed training set used by New.
var DefaultCorpus = []Sample{
	{"research methodology analysis statistical significant", model.CategoryAcademic},
	{"university college student education learning", model.CategoryAcademic},
	{"business strategy market revenue profit", model.CategoryBusiness},
	{"company management financial report quarterly", model.CategoryBusiness},
	{"algorithm software programming code development", model.CategoryTechnical},
	{"system architecture database network security", model.CategoryTechnical},
	{"contract agreement legal terms conditions", model.CategoryLegal},
	{"court case law regulation compliance", model.CategoryLegal},
	{"medical patient treatment diagnosis therapy", model.CategoryMedical},
	{"health clinical study pharmaceutical drug", model.CategoryMedical},
	{"general information document text content", model.CategoryGeneral},
	{"various topics discussion overview summary", model.CategoryGeneral},
}

// Classifier is a trained, immutable model. It is safe for concurrent use.
type Classifier struct {
	vectorizer     *tfidf
	classes        []model.Category
	classLogPrior  []float64
	featureLogProb [][]float64
}

// New trains a Classifier on DefaultCorpus.
func New() *Classifier {
	c, err := Train(DefaultCorpus)
	if err != nil {
		// DefaultCorpus is a constant; failing here is a programming error.
		panic(err)
	}
	return c
}

// Train fits a Classifier on the given samples.
func Train(samples []Sample) (*Classifier, error) {
	if len(samples) == 0 {
		return nil, errors.New("training corpus is empty")
	}

	texts := make([]string, len(samples))
	counts := make(map[model.Category]int)
	for i, s := range samples {
		if !s.Category.Valid() {
			return nil, fmt.Errorf("sample %d: unknown category %q", i, s.Category)
		}
		texts[i] = s.Text
		counts[s.Category]++
	}

	v := fitTFIDF(texts, maxFeatures)
	if len(v.idf) == 0 {
		return nil, errors.New("training corpus has no usable terms")
	}

	classes := make([]model.Category, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	index := make(map[model.Category]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	featureCount := make([][]float64, len(classes))
	for i := range featureCount {
		featureCount[i] = make([]float64, len(v.idf))
	}
	for i, s := range samples {
		row := featureCount[index[s.Category]]
		for j, x := range v.transform(texts[i]) {
			row[j] += x
		}
	}

	c := &Classifier{
		vectorizer:     v,
		classes:        classes,
		classLogPrior:  make([]float64, len(classes)),
		featureLogProb: make([][]float64, len(classes)),
	}
	for i, class := range classes {
		c.classLogPrior[i] = math.Log(float64(counts[class]) / float64(len(samples)))

		var total float64
		for _, x := range featureCount[i] {
			total += x + alpha
		}
		flp := make([]float64, len(v.idf))
		for j, x := range featureCount[i] {
			flp[j] = math.Log((x + alpha) / total)
		}
		c.featureLogProb[i] = flp
	}
	return c, nil
}

// clean lower-cases text, turns every Unicode space (NBSP, em space, \v, ...) into ' '
// and drops everything that is not an ASCII letter, so words never fuse across
// exotic separators.
func clean(text string) string {
	spaced := strings.Map(func(r rune) rune {
		if isSpace(r) {
			return ' '
		}
		return r
	}, strings.ToLower(text))
	return nonAlpha.ReplaceAllString(spaced, "")
}

// isSpace also treats the ASCII file, group, record and unit separators as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Classify returns the most likely category for text and its posterior probability.
// Blank or whitespace-only text, a nil receiver, or any inference failure yields (General, 0.5).
func (c *Classifier) Classify(text string) (cat model.Category, confidence float64) {
	if c == nil || strings.TrimFunc(text, isSpace) == "" {
		return model.CategoryGeneral, DefaultConfidence
	}
	defer func() {
		if r := recover(); r != nil {
			cat, confidence = model.CategoryGeneral, DefaultConfidence
		}
	}()

	x := c.vectorizer.transform(clean(text))

	jll := make([]float64, len(c.classes))
	for i := range c.classes {
		s := c.classLogPrior[i]
		for j, xj := range x {
			if xj != 0 {
				s += xj * c.featureLogProb[i][j]
			}
		}
		jll[i] = s
	}

	best := 0
	for i := 1; i < len(jll); i++ {
		if jll[i] > jll[best] {
			best = i
		}
	}

	// log-sum-exp shifted by the maximum for numerical stability
	var sum float64
	for _, v := range jll {
		sum += math.Exp(v - jll[best])
	}
	confidence = 1 / sum
	if math.IsNaN(confidence) {
		return model.CategoryGeneral, DefaultConfidence
	}
	return c.classes[best], confidence
}
