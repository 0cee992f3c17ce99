// Package segment splits document text into sentences.
//
// Boundary detection uses the Punkt algorithm with the English model shipped
// by github.com/neurosnap/sentences, which knows common abbreviations and
// initials. Text is normalized before it is split, so the sentences produced
// here are already in comparison form.
package segment

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/nao1215/clausediff/internal/model"
	"github.com/nao1215/clausediff/internal/textnorm"
)

// Segmenter splits text into an ordered list of sentences.
// A Segmenter holds only read-only model data after construction.
type Segmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// New loads the English Punkt model and returns a Segmenter.
func New() (*Segmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence model: %w", err)
	}
	return &Segmenter{tokenizer: tokenizer}, nil
}

// Segment normalizes text and splits it into sentences in document order.
// Empty pieces are dropped and Index counts only the sentences kept, so an
// empty document yields an empty slice.
func (s *Segmenter) Segment(text string) []model.Sentence {
	normalized := textnorm.Normalize(text)
	if normalized == "" {
		return []model.Sentence{}
	}

	pieces := s.tokenizer.Tokenize(normalized)
	out := make([]model.Sentence, 0, len(pieces))
	for _, piece := range pieces {
		sentence := strings.TrimSpace(piece.Text)
		if sentence == "" {
			continue
		}
		out = append(out, model.Sentence{
			Text:       sentence,
			Normalized: textnorm.Normalize(sentence),
			Index:      len(out),
		})
	}
	return out
}
