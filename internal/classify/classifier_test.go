package classify

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docanalytics/internal/model"
)

func TestClassify_Categories(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		text string
		want model.Category
	}{
		{"academic", "The university student wrote a research methodology paper.", model.CategoryAcademic},
		{"business", "Quarterly revenue and profit grew with the new market strategy.", model.CategoryBusiness},
		{"technical", "The software algorithm improves database security and network code.", model.CategoryTechnical},
		{"legal", "The contract agreement sets legal terms; the court reviewed compliance.", model.CategoryLegal},
		{"medical", "Patient diagnosis and treatment in the clinical therapy study.", model.CategoryMedical},
		{"general", "An overview summary of various topics and general information.", model.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, conf := c.Classify(tt.text)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, conf, 0.0)
			assert.LessOrEqual(t, conf, 1.0)
			assert.Greater(t, conf, 1.0/6)
		})
	}
}

func TestClassify_EmptyText(t *testing.T) {
	c := New()

	for _, text := range []string{"", "   ", "\n\t", "\u00a0\u2003\v\x1c"} {
		cat, conf := c.Classify(text)
		assert.Equal(t, model.CategoryGeneral, cat)
		assert.Equal(t, DefaultConfidence, conf)
	}
}

func TestClassify_NilClassifier(t *testing.T) {
	var c *Classifier
	cat, conf := c.Classify("revenue profit")
	assert.Equal(t, model.CategoryGeneral, cat)
	assert.Equal(t, DefaultConfidence, conf)
}

func TestClassify_UnknownVocabularyUsesPriors(t *testing.T) {
	c := New()

	// Every class has two samples, so the posterior is uniform and the
	// alphabetically first class wins.
	cat, conf := c.Classify("zebra xylophone 12345 !!!")
	assert.Equal(t, model.CategoryAcademic, cat)
	assert.InDelta(t, 1.0/6, conf, 1e-9)
}

func TestClassify_StripsNonLetters(t *testing.T) {
	c := New()

	a, confA := c.Classify("REVENUE, profit!")
	b, confB := c.Classify("revenue profit")
	assert.Equal(t, a, b)
	assert.InDelta(t, confA, confB, 1e-12)
}

func TestClassify_UnicodeWhitespaceSeparatesWords(t *testing.T) {
	c := New()
	wantCat, wantConf := c.Classify("court case law regulation")
	require.Equal(t, model.CategoryLegal, wantCat)

	for name, sep := range map[string]string{
		"nbsp":         "\u00a0",
		"em space":     "\u2003",
		"vertical tab": "\v",
		"ideographic":  "\u3000",
		"unit sep":     "\x1f",
	} {
		t.Run(name, func(t *testing.T) {
			text := strings.Join([]string{"court", "case", "law", "regulation"}, sep)
			cat, conf := c.Classify(text)
			assert.Equal(t, wantCat, cat)
			assert.InDelta(t, wantConf, conf, 1e-12)
		})
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "court case law", clean("Court\u00a0Case,\u2003Law!"))
	assert.Equal(t, " ", clean("123 456"))
}

func TestClassify_ConcurrentUse(t *testing.T) {
	c := New()
	want, wantConf := c.Classify("patient treatment")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, conf := c.Classify("patient treatment")
			assert.Equal(t, want, got)
			assert.Equal(t, wantConf, conf)
		}()
	}
	wg.Wait()
}

func TestTrain_Errors(t *testing.T) {
	_, err := Train(nil)
	assert.Error(t, err)

	_, err = Train([]Sample{{Text: "hello world", Category: "Sports"}})
	assert.Error(t, err)

	_, err = Train([]Sample{{Text: "a the of", Category: model.CategoryGeneral}})
	assert.Error(t, err, "only stop words")
}

func TestTokenize(t *testing.T) {
	got := tokenize("The system architecture is a network x")
	require.NotContains(t, got, "the")
	require.NotContains(t, got, "system")
	require.NotContains(t, got, "x")
	assert.Equal(t, []string{"architecture", "network"}, got)
}
