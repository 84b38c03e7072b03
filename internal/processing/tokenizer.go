package processing

import (
	prose "github.com/jdkato/prose/v2"
)

// ProseTokenizer tokenizes text with the prose NLP library. Tagging and
// entity extraction stay disabled; only the tokenizer runs.
type ProseTokenizer struct{}

// Tokenize implements Tokenizer
func (ProseTokenizer) Tokenize(text string) ([]string, error) {
	doc, err := prose.NewDocument(
		text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, err
	}

	tokens := doc.Tokens()
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Text)
	}
	return out, nil
}
