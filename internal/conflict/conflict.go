// Package conflict parses files containing 3-way merge conflict markers and groups their lines into blocks that a user resolves by picking "ours", "theirs", or both.
package conflict

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corylus-git/corylus-sub000/internal/simplelogger"
)

const (
	startMarker     = "<<<<<<<"
	separatorMarker = "======="
	endMarker       = ">>>>>>>"
)

var (
	// ErrUnterminatedConflict is returned by ParseFile when the input ends inside a conflict region.
	ErrUnterminatedConflict = errors.New("unterminated conflict region")

	// ErrBlockOutOfRange is returned by ToggleBlock when the block index does not exist.
	ErrBlockOutOfRange = errors.New("block index out of range")
)

var log = simplelogger.For("conflict")

// Line is one line of a conflicted file.
//
// Outside a conflict region only Ours is set and IsConflict is false. Inside a region, the i-th line of our side and the i-th line of their side share a Line; the
// shorter side leaves its field nil. A nil field means "no line on this side", which is different from a pointer to "" (an empty line).
type Line struct {
	Ours       *string `json:"ours,omitempty"`
	Theirs     *string `json:"theirs,omitempty"`
	IsConflict bool    `json:"isConflict"`
}

type scanState int

const (
	stateSame scanState = iota
	stateOurs
	stateTheirs
)

// ParseFile parses text containing conflict markers into lines. The input is split on "\n"; marker lines themselves are not part of the result.
//
// A region starts at a line beginning with "<<<<<<<", switches sides at a line that is exactly "=======" (optionally followed by "\r"), and ends at a line beginning
// with ">>>>>>>". Marker-like lines that do not fit the current state are ordinary content.
//
// If text ends inside a region, the lines buffered so far are still returned (as conflict lines) together with an error wrapping ErrUnterminatedConflict.
func ParseFile(text string) ([]Line, error) {
	var out []Line
	var pending []Line // Lines of the current region.
	theirsCount := 0
	state := stateSame

	for _, line := range strings.Split(text, "\n") {
		switch {
		case state == stateSame && strings.HasPrefix(line, startMarker):
			state = stateOurs
		case state == stateOurs && strings.TrimSuffix(line, "\r") == separatorMarker:
			state = stateTheirs
		case state == stateTheirs && strings.HasPrefix(line, endMarker):
			out = append(out, pending...)
			pending = nil
			theirsCount = 0
			state = stateSame
		case state == stateSame:
			out = append(out, Line{Ours: strPtr(line)})
		case state == stateOurs:
			pending = append(pending, Line{Ours: strPtr(line), IsConflict: true})
		default:
			if theirsCount >= len(pending) {
				pending = append(pending, Line{Theirs: strPtr(line), IsConflict: true})
			} else {
				pending[theirsCount].Theirs = strPtr(line)
			}
			theirsCount++
		}
	}

	if state != stateSame {
		log.Log("input ended inside a conflict region; flushing %d buffered lines", len(pending))
		out = append(out, pending...)
		return out, fmt.Errorf("%w: %d lines after the last start marker", ErrUnterminatedConflict, len(pending))
	}
	return out, nil
}

func strPtr(s string) *string {
	return &s
}
