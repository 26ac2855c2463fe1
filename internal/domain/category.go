package domain

import (
	"strings"
	"unicode"
)

// Category is the coarse grammatical category the annotator assigns to a token.
// Values follow the Universal POS tag set.
type Category string

const (
	CategoryNoun                     Category = "NOUN"
	CategoryProperNoun               Category = "PROPN"
	CategoryVerb                     Category = "VERB"
	CategoryAuxiliary                Category = "AUX"
	CategoryAdjective                Category = "ADJ"
	CategoryAdverb                   Category = "ADV"
	CategoryAdposition               Category = "ADP"
	CategoryDeterminer               Category = "DET"
	CategoryPronoun                  Category = "PRON"
	CategoryCoordinatingConjunction  Category = "CCONJ"
	CategorySubordinatingConjunction Category = "SCONJ"
	CategoryParticle                 Category = "PART"
	CategoryInterjection             Category = "INTJ"
	CategoryNumeral                  Category = "NUM"
	CategoryPunctuation              Category = "PUNCT"
	CategorySymbol                   Category = "SYM"
	CategorySpace                    Category = "SPACE"
	CategoryOther                    Category = "X"
)

// categoryLabels holds the human-readable part-of-speech label stored in
// VocabularyEntry.PartOfSpeech for each category.
var categoryLabels = map[Category]string{
	CategoryNoun:                     "Noun",
	CategoryProperNoun:               "Proper Noun",
	CategoryVerb:                     "Verb",
	CategoryAuxiliary:                "Auxiliary",
	CategoryAdjective:                "Adjective",
	CategoryAdverb:                   "Adverb",
	CategoryAdposition:               "Adposition",
	CategoryDeterminer:               "Determiner",
	CategoryPronoun:                  "Pronoun",
	CategoryCoordinatingConjunction:  "Coordinating Conjunction",
	CategorySubordinatingConjunction: "Subordinating Conjunction",
	CategoryParticle:                 "Particle",
	CategoryInterjection:             "Interjection",
	CategoryNumeral:                  "Numeral",
	CategoryPunctuation:              "Punctuation",
	CategorySymbol:                   "Symbol",
	CategorySpace:                    "Space",
	CategoryOther:                    "Other",
}

// categoryAliases maps tags some annotators emit outside the Universal set.
var categoryAliases = map[string]Category{
	"CONJ":  CategoryCoordinatingConjunction,
	"SPC":   CategorySpace,
	"_SP":   CategorySpace,
	"PUNC":  CategoryPunctuation,
	"OTHER": CategoryOther,
}

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human-readable part of speech, "Other" for unknown values.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// IsNoun reports whether tokens of this category are sent to the dictionary.
// Proper nouns are not.
func (c Category) IsNoun() bool { return c == CategoryNoun }

// IsExcluded reports whether tokens of this category are never cached.
func (c Category) IsExcluded() bool {
	switch c {
	case CategoryPunctuation, CategorySpace, CategoryNumeral:
		return true
	}
	return false
}

// MapCategory converts an annotator tag to a Category.
// The lookup is case-insensitive. Unknown or empty values map to CategoryOther.
func MapCategory(tag string) Category {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if c := Category(tag); c.IsValid() {
		return c
	}
	if c, ok := categoryAliases[tag]; ok {
		return c
	}
	return CategoryOther
}

// Token is one unit of annotated text.
type Token struct {
	Text     string
	Category Category
}

// IsCandidateWord reports whether text may be cached as a word: it must not
// contain a single digit. Decimal digits count, and so do superscript,
// subscript and circled ones, so "16.02.2021", "A4" and "m²" are rejected
// as a whole. Fractions such as "½" are not digits. Punctuation-only text
// passes; callers exclude it by category first.
func IsCandidateWord(text string) bool {
	for _, r := range text {
		if isDigit(r) {
			return false
		}
	}
	return true
}

// fractions are the No characters that carry a value but are not digits.
var fractions = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00bc, Hi: 0x00be, Stride: 1},
		{Lo: 0x2150, Hi: 0x215f, Stride: 1},
		{Lo: 0x2189, Hi: 0x2189, Stride: 1},
	},
	LatinOffset: 1,
}

func isDigit(r rune) bool {
	if unicode.IsDigit(r) {
		return true
	}
	return unicode.Is(unicode.No, r) && !unicode.Is(fractions, r)
}

// Qualifies combines the category exclusion and IsCandidateWord.
func Qualifies(t Token) bool {
	return !t.Category.IsExcluded() && IsCandidateWord(t.Text)
}
