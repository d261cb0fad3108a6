package diff

import "errors"

var (
	// ErrMalformedChunkHeader is returned when a chunk header does not have the "@@ -a,b +c,d @@" shape.
	ErrMalformedChunkHeader = errors.New("malformed chunk header")

	// ErrMissingFileHeader is returned when a "diff " record has no "---"/"+++" line pair before the next record or the end of input.
	ErrMissingFileHeader = errors.New("missing ---/+++ file header")

	// ErrSelectionOutOfBounds is returned by ModifyDiff when a selection boundary names a chunk or line that does not exist.
	ErrSelectionOutOfBounds = errors.New("selection out of bounds")

	// ErrSelectionOrder is returned by ModifyDiff when the selection's First boundary comes after its Last boundary.
	ErrSelectionOrder = errors.New("selection is not normalized")

	// ErrCombinedChunk is returned by ModifyDiff when a combined-diff ("@@@") chunk would need a new header. Slicing is only defined for 2-way diffs.
	ErrCombinedChunk = errors.New("cannot slice a combined-diff chunk")
)
