package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is an operation from old text to new text.
type Op int

// Operations from old text to new text.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// TokenEdit is a run of tokens that is equal in both lines, only in the old line (OpDelete), or only in the new line (OpInsert).
type TokenEdit struct {
	Op    Op
	Value string // Concatenated tokens.
}

// maxTokenRune bounds the rune alphabet used to encode tokens. Runes are assigned from 1 upward, skipping the surrogate range, which does not survive a round-trip
// through string.
const maxTokenRune = utf8MaxRune - surrogateCount

const (
	utf8MaxRune    = 0x10FFFF
	surrogateMin   = 0xD800
	surrogateCount = 0x800
)

// TokenDiff aligns the tokens of oldLine and newLine (see Tokenize) and returns the edit script.
//
// Alignment uses Myers' O((N+M)·D) algorithm from github.com/sergi/go-diff over a token alphabet, so edits never split a token. Results are deterministic: the longest
// common prefix and suffix are matched first, the middle is bisected, and the script is then normalized so that adjacent edits are merged and every divergence is a
// delete run followed by an insert run. A single edit between two equal runs is slid to its left-most equivalent position.
//
// TokenDiff is total: empty strings yield an empty script (both empty) or a single insert/delete.
func TokenDiff(oldLine, newLine string) []TokenEdit {
	oldTokens := Tokenize(oldLine)
	newTokens := Tokenize(newLine)

	index := make(map[string]rune)
	var table []string
	encode := func(tokens []string) ([]rune, bool) {
		runes := make([]rune, len(tokens))
		for i, tok := range tokens {
			r, ok := index[tok]
			if !ok {
				if len(table) >= maxTokenRune {
					return nil, false
				}
				r = tokenRune(len(table))
				index[tok] = r
				table = append(table, tok)
			}
			runes[i] = r
		}
		return runes, true
	}

	oldRunes, okOld := encode(oldTokens)
	newRunes, okNew := encode(newTokens)
	if !okOld || !okNew {
		// More distinct tokens than runes: fall back to replacing the whole line.
		return normalizeEdits([]TokenEdit{{Op: OpDelete, Value: oldLine}, {Op: OpInsert, Value: newLine}})
	}

	decode := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			b.WriteString(table[runeIndex(r)])
		}
		return b.String()
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // No deadline: a timeout would make results depend on machine speed.
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)

	edits := make([]TokenEdit, 0, len(diffs))
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = OpEqual
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		}
		edits = append(edits, TokenEdit{Op: op, Value: decode(d.Text)})
	}
	return normalizeEdits(edits)
}

func tokenRune(i int) rune {
	r := rune(i + 1)
	if r >= surrogateMin {
		r += surrogateCount
	}
	return r
}

func runeIndex(r rune) int {
	if r >= surrogateMin+surrogateCount {
		r -= surrogateCount
	}
	return int(r) - 1
}

// normalizeEdits drops empty edits, merges adjacent equal edits, and rewrites every run of non-equal edits as one delete followed by one insert.
func normalizeEdits(edits []TokenEdit) []TokenEdit {
	var out []TokenEdit
	var del, ins strings.Builder
	flush := func() {
		if del.Len() > 0 {
			out = append(out, TokenEdit{Op: OpDelete, Value: del.String()})
		}
		if ins.Len() > 0 {
			out = append(out, TokenEdit{Op: OpInsert, Value: ins.String()})
		}
		del.Reset()
		ins.Reset()
	}
	for _, e := range edits {
		if e.Value == "" {
			continue
		}
		switch e.Op {
		case OpDelete:
			del.WriteString(e.Value)
		case OpInsert:
			ins.WriteString(e.Value)
		default:
			flush()
			if len(out) > 0 && out[len(out)-1].Op == OpEqual {
				out[len(out)-1].Value += e.Value
				continue
			}
			out = append(out, e)
		}
	}
	flush()
	return out
}
