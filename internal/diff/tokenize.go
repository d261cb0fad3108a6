package diff

import (
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

type tokenClass int

const (
	classNone tokenClass = iota
	classWord
	classSpace
	classOther
)

// Tokenize splits a line into the tokens used for intra-line highlighting: maximal runs of word characters (letters, digits, '_'), maximal runs of whitespace, and single
// grapheme clusters of anything else. Concatenating the tokens yields s.
//
// Segmentation is by grapheme cluster, so a letter followed by combining marks stays inside its word and a multi-code-point symbol (ex: a flag emoji) is one token.
func Tokenize(s string) []string {
	var tokens []string
	start := 0
	cur := classNone

	iter := graphemes.FromString(s)
	for iter.Next() {
		c := classify(iter.Value())
		if c == cur && c != classOther {
			continue
		}
		if cur != classNone {
			tokens = append(tokens, s[start:iter.Start()])
		}
		start = iter.Start()
		cur = c
	}
	if cur != classNone {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// classify classifies a grapheme cluster by its first rune.
func classify(g string) tokenClass {
	r, _ := utf8.DecodeRuneInString(g)
	switch {
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	case unicode.IsSpace(r):
		return classSpace
	default:
		return classOther
	}
}
