package processing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletoplab/bgg-harvester/internal/dataset"
	"github.com/tabletoplab/bgg-harvester/pkg/bgg"
)

// fieldsTokenizer splits on whitespace, giving tests a deterministic
// tokenizer without linguistic resources.
type fieldsTokenizer struct{}

func (fieldsTokenizer) Tokenize(text string) ([]string, error) {
	return strings.Fields(text), nil
}

type brokenTokenizer struct{}

func (brokenTokenizer) Tokenize(string) ([]string, error) {
	return nil, fmt.Errorf("model unavailable")
}

func TestCleanText(t *testing.T) {
	p := NewPreprocessor(fieldsTokenizer{})

	cases := []struct {
		in   string
		want string
	}{
		{"Catan IS Great!! (1995)", "catan is great "},
		{"", ""},
		{"   ", "   "},
		{"UPPER lower MiXeD", "upper lower mixed"},
		{"no1numbers2here3", "nonumbershere"},
		{"tabs\tand\nnewlines stay", "tabs\tand\nnewlines stay"},
		{"ümlauts vanish", "mlauts vanish"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.CleanText(tc.in), "%q", tc.in)
	}
}

func TestTokenizeRemovesStopwords(t *testing.T) {
	p := NewPreprocessor(fieldsTokenizer{})

	tokens := p.Tokenize("the settlers trade wood")
	assert.Equal(t, []string{"settlers", "trade", "wood"}, tokens)
}

func TestTokenizeStopwordMatchIsCaseSensitive(t *testing.T) {
	p := NewPreprocessor(fieldsTokenizer{})

	// The stopword set targets lowercased tokens; anything else passes.
	tokens := p.Tokenize("The the THE")
	assert.Equal(t, []string{"The", "THE"}, tokens)
}

func TestTokenizeFailureYieldsEmptySlice(t *testing.T) {
	p := NewPreprocessor(brokenTokenizer{})

	tokens := p.Tokenize("anything at all")
	require.NotNil(t, tokens)
	assert.Empty(t, tokens)
}

func TestProseTokenizer(t *testing.T) {
	tokens, err := ProseTokenizer{}.Tokenize("settlers trade wood")
	require.NoError(t, err)
	assert.Equal(t, []string{"settlers", "trade", "wood"}, tokens)
}

func TestPreprocessDataset(t *testing.T) {
	p := NewPreprocessor(fieldsTokenizer{})

	ds := dataset.New()
	ds.Set("CATAN", []bgg.Comment{
		{Username: "meeplefan", Rating: "9", Value: "Catan IS Great!! (1995)"},
		{Value: "the trade wood"},
	})
	ds.Set("On Mars", []bgg.Comment{})

	out := p.PreprocessDataset(ds)
	require.Len(t, out, 2)

	catan := out["CATAN"]
	require.Len(t, catan, 2)

	// Original fields survive untouched.
	assert.Equal(t, "meeplefan", catan[0].Username)
	assert.Equal(t, "9", catan[0].Rating)
	assert.Equal(t, "Catan IS Great!! (1995)", catan[0].Value)

	assert.Equal(t, "catan is great ", catan[0].CleanText)
	assert.Equal(t, []string{"catan", "great"}, catan[0].Tokens, "is is a stopword")

	assert.Equal(t, []string{"trade", "wood"}, catan[1].Tokens)

	assert.Empty(t, out["On Mars"])
}
