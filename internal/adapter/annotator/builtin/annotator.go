// Package builtin is a rule-based German tokenizer and part-of-speech
// tagger. It needs no external service: a closed-class lexicon settles
// function words, capitalisation marks nouns, and suffixes classify the
// remaining lower-case words.
package builtin

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/deutschkurs/internal/domain"
)

// Annotator tags German text. It is safe for concurrent use.
type Annotator struct {
	lexicon map[string]domain.Category
}

// New creates an Annotator with the default lexicon.
func New() *Annotator {
	return &Annotator{lexicon: defaultLexicon()}
}

// Annotate splits text into tagged tokens in document order.
func (a *Annotator) Annotate(ctx context.Context, text string) ([]domain.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := tokenize(text)
	tokens := make([]domain.Token, len(raw))

	// Pass 1: lexicon and word-shape heuristics.
	for i, rt := range raw {
		tokens[i] = domain.Token{Text: rt.text, Category: a.baseline(rt)}
	}

	// Pass 2: context. A lower-case word between a determiner and a noun
	// is an attributive adjective ("das große Haus", "ein schnelles Auto").
	for i := 1; i+1 < len(tokens); i++ {
		if tokens[i-1].Category != domain.CategoryDeterminer || tokens[i+1].Category != domain.CategoryNoun {
			continue
		}
		if isLower(tokens[i].Text) && tokens[i].Category == domain.CategoryVerb {
			tokens[i].Category = domain.CategoryAdjective
		}
	}

	return tokens, nil
}

func (a *Annotator) baseline(rt rawToken) domain.Category {
	switch rt.kind {
	case kindSpace:
		return domain.CategorySpace
	case kindNumber:
		return domain.CategoryNumeral
	case kindPunct:
		return domain.CategoryPunctuation
	case kindSymbol:
		return domain.CategorySymbol
	}

	word := rt.text
	lower := strings.ToLower(word)

	if c, ok := a.lexicon[lower]; ok {
		// Capitalised function words are only function words at the start
		// of a sentence; "Sie" stays a pronoun everywhere.
		if isLower(word) || rt.sentenceStart || lower == "sie" || lower == "ihnen" {
			return c
		}
	}

	first, _ := utf8.DecodeRuneInString(word)
	if unicode.IsUpper(first) {
		if rt.sentenceStart {
			if c, ok := a.adjectiveStem(lower); ok {
				return c
			}
		}
		if isAcronym(word) {
			return domain.CategoryProperNoun
		}
		return domain.CategoryNoun
	}
	if c, ok := a.adjectiveStem(lower); ok {
		return c
	}
	return guessLowercase(lower)
}

// adjectiveStem recognises inflected forms of lexicon adjectives ("große",
// "kleinen").
func (a *Annotator) adjectiveStem(lower string) (domain.Category, bool) {
	for _, infl := range inflections {
		stem, ok := strings.CutSuffix(lower, infl)
		if ok && a.lexicon[stem] == domain.CategoryAdjective {
			return domain.CategoryAdjective, true
		}
	}
	return "", false
}

// guessLowercase classifies an unknown lower-case word by its ending.
func guessLowercase(lower string) domain.Category {
	for _, s := range adverbSuffixes {
		if strings.HasSuffix(lower, s) && len(lower) > len(s)+2 {
			return domain.CategoryAdverb
		}
	}
	stem := lower
	for _, infl := range inflections {
		if strings.HasSuffix(stem, infl) && len(stem) > len(infl)+3 {
			stem = strings.TrimSuffix(stem, infl)
			break
		}
	}
	for _, s := range adjectiveSuffixes {
		if strings.HasSuffix(lower, s) || strings.HasSuffix(stem, s) {
			return domain.CategoryAdjective
		}
	}
	return domain.CategoryVerb
}

func isLower(word string) bool {
	first, _ := utf8.DecodeRuneInString(word)
	return unicode.IsLower(first)
}

// isAcronym reports words like "EU" or "USA": two or more letters, all upper case.
func isAcronym(word string) bool {
	letters := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}
