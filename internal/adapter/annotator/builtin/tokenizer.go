package builtin

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	kindWord tokenKind = iota
	kindNumber
	kindPunct
	kindSymbol
	kindSpace
)

type rawToken struct {
	text string
	kind tokenKind
	// sentenceStart is set on the first word token of a sentence.
	sentenceStart bool
}

// tokenize splits German text into words, numbers, punctuation and
// line-break runs. Plain spaces are dropped.
//
// A word is a run of letters and digits that may contain an inner hyphen
// or apostrophe ("E-Mail", "geht's"). Digits joined by '.', ',' or ':'
// form one number ("16.02.2021", "3,5", "12:30").
func tokenize(text string) []rawToken {
	var tokens []rawToken
	sentenceStart := true

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])

		switch {
		case unicode.IsSpace(r):
			j := i
			for j < len(text) {
				r2, s2 := utf8.DecodeRuneInString(text[j:])
				if !unicode.IsSpace(r2) {
					break
				}
				j += s2
			}
			if run := text[i:j]; strings.Count(run, "\n") > 1 {
				tokens = append(tokens, rawToken{text: run, kind: kindSpace})
				sentenceStart = true
			}
			i = j

		case unicode.IsLetter(r) || unicode.IsDigit(r):
			j, kind := scanWord(text, i)
			tokens = append(tokens, rawToken{text: text[i:j], kind: kind, sentenceStart: sentenceStart && kind == kindWord})
			if kind == kindWord {
				sentenceStart = false
			}
			i = j

		default:
			kind := kindPunct
			if unicode.IsSymbol(r) {
				kind = kindSymbol
			}
			tokens = append(tokens, rawToken{text: text[i : i+size], kind: kind})
			if r == '.' || r == '!' || r == '?' || r == ':' {
				sentenceStart = true
			}
			i += size
		}
	}
	return tokens
}

// scanWord returns the end of the word or number starting at i.
func scanWord(text string, i int) (int, tokenKind) {
	onlyDigits := true
	j := i
	for j < len(text) {
		r, size := utf8.DecodeRuneInString(text[j:])
		switch {
		case unicode.IsLetter(r) || unicode.IsMark(r):
			onlyDigits = false
			j += size
		case unicode.IsDigit(r):
			j += size
		case isJoiner(r, onlyDigits) && j+size < len(text):
			next, _ := utf8.DecodeRuneInString(text[j+size:])
			if onlyDigits && !unicode.IsDigit(next) {
				return j, kindNumber
			}
			if !onlyDigits && !unicode.IsLetter(next) {
				return j, kindWord
			}
			j += size
		default:
			if onlyDigits {
				return j, kindNumber
			}
			return j, kindWord
		}
	}
	if onlyDigits {
		return j, kindNumber
	}
	return j, kindWord
}

func isJoiner(r rune, inNumber bool) bool {
	if inNumber {
		return r == '.' || r == ',' || r == ':'
	}
	return r == '-' || r == '\''
}
