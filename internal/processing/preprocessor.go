package processing

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tabletoplab/bgg-harvester/internal/dataset"
	"github.com/tabletoplab/bgg-harvester/pkg/bgg"
	"github.com/tabletoplab/bgg-harvester/pkg/logging"
)

// Tokenizer splits cleaned text into word tokens. Implementations may lean
// on third-party linguistic resources; tests supply a deterministic fake.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// PreprocessedComment is a comment enriched with its cleaned text and
// tokens. It exists only in memory; persisting it is the caller's choice.
type PreprocessedComment struct {
	bgg.Comment
	CleanText string   `json:"clean_text"`
	Tokens    []string `json:"tokens"`
}

var nonLetterPattern = regexp.MustCompile(`[^a-zA-Z\s]`)

// Preprocessor normalizes raw review text into a bag-of-words friendly form
type Preprocessor struct {
	tokenizer Tokenizer
	stopwords map[string]struct{}
	logger    zerolog.Logger
}

// NewPreprocessor creates a preprocessor. A nil tokenizer selects the
// prose-backed default.
func NewPreprocessor(tokenizer Tokenizer) *Preprocessor {
	if tokenizer == nil {
		tokenizer = ProseTokenizer{}
	}
	stop := make(map[string]struct{}, len(englishStopwords))
	for _, w := range englishStopwords {
		stop[w] = struct{}{}
	}
	return &Preprocessor{
		tokenizer: tokenizer,
		stopwords: stop,
		logger:    logging.GetLogger("preprocessor"),
	}
}

// CleanText lowercases text and strips every rune that is not an ASCII
// letter or whitespace. Pure; empty or odd input yields empty or odd output
// rather than an error.
func (p *Preprocessor) CleanText(text string) string {
	return nonLetterPattern.ReplaceAllString(strings.ToLower(text), "")
}

// Tokenize splits cleaned text into tokens and drops English stopwords.
// Tokenization is best-effort: a tokenizer failure is logged and yields an
// empty slice.
func (p *Preprocessor) Tokenize(text string) []string {
	tokens, err := p.tokenizer.Tokenize(text)
	if err != nil {
		p.logger.Error().Err(err).Msg("Tokenization failed")
		return []string{}
	}

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, isStop := p.stopwords[tok]; isStop {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// PreprocessDataset enriches every comment's value with clean_text and
// tokens, preserving all original fields and per-game comment order.
func (p *Preprocessor) PreprocessDataset(ds *dataset.Dataset) map[string][]PreprocessedComment {
	out := make(map[string][]PreprocessedComment, ds.Len())
	for _, game := range ds.Games() {
		comments, _ := ds.Get(game)
		enriched := make([]PreprocessedComment, 0, len(comments))
		for _, comment := range comments {
			clean := p.CleanText(comment.Value)
			enriched = append(enriched, PreprocessedComment{
				Comment:   comment,
				CleanText: clean,
				Tokens:    p.Tokenize(clean),
			})
		}
		out[game] = enriched
	}
	return out
}
