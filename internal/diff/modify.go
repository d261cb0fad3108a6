package diff

import (
	"fmt"
	"strings"

	"github.com/corylus-git/corylus-sub000/internal/simplelogger"
)

var modifyLog = simplelogger.For("modifyDiff")

// ModifyDiff returns a copy of file that only applies the edits inside sel. It implements partial staging, unstaging and discarding: the result is serialized with
// SerializeDiff and handed to `git apply`.
//
// Chunks entirely outside sel are dropped. In the first and last selected chunk, lines outside sel are neutralized: insert lines are removed and delete lines become
// context lines; pseudo-context lines are kept as-is. The headers of those chunks are recomputed from their remaining lines. Chunks strictly between the first
// and last selected chunk are kept verbatim.
//
// Dropping a chunk or an insert line changes where later chunks land in the new file. ModifyDiff tracks that shift (the accumulated delta) and moves the new-file start
// of every rewritten chunk by it, so each emitted header is consistent with its lines and its position.
//
// sel must be normalized (see SelectedLines.Normalize) and in bounds; otherwise an error wrapping ErrSelectionOrder or ErrSelectionOutOfBounds is returned. file is not
// modified.
//
// Slicing is defined for 2-way diffs. A combined-diff ("@@@") chunk passes through only while its header stays unchanged; if it would need a new header, an error
// wrapping ErrCombinedChunk is returned.
func ModifyDiff(file FileDiff, sel SelectedLines) (FileDiff, error) {
	if err := checkSelection(file, sel); err != nil {
		return FileDiff{}, err
	}

	chunks := make([]DiffChunk, 0, sel.Last.ChunkIndex-sel.First.ChunkIndex+1)
	accumulatedDelta := 0
	for i, c := range file.Chunks {
		if i < sel.First.ChunkIndex || i > sel.Last.ChunkIndex {
			h, err := ParseChunkHeader(c.Header)
			if err != nil {
				return FileDiff{}, fmt.Errorf("chunk[%d]: %w", i, err)
			}
			// Applying the patch as if this chunk never existed shifts everything after it.
			accumulatedDelta += h.NewLength - h.OldLength
			modifyLog.Log("dropping chunk %d (%s) outside the selection", i, c.Header)
			continue
		}

		if i != sel.First.ChunkIndex && i != sel.Last.ChunkIndex {
			chunks = append(chunks, c)
			continue
		}

		inWindow := func(li int) bool {
			if i == sel.First.ChunkIndex && li < sel.First.LineIndex {
				return false
			}
			if i == sel.Last.ChunkIndex && li > sel.Last.LineIndex {
				return false
			}
			return true
		}

		lines := make([]DiffLine, 0, len(c.Lines))
		for li, l := range c.Lines {
			switch {
			case l.Type == LinePseudoContext || inWindow(li):
				lines = append(lines, l)
			case l.Type == LineInsert:
				modifyLog.Log("leaving out insert outside the selection: chunk %d line %d", i, li)
			default:
				lines = append(lines, l.withType(LineContext))
			}
		}

		rewritten, lineDelta, err := correctHeader(DiffChunk{Header: c.Header, Lines: lines}, accumulatedDelta)
		if err != nil {
			return FileDiff{}, fmt.Errorf("chunk[%d]: %w", i, err)
		}
		if err := rewritten.Validate(); err != nil {
			panic(fmt.Errorf("ModifyDiff: chunk[%d]: validate failed with %v", i, err))
		}
		accumulatedDelta += lineDelta
		chunks = append(chunks, rewritten)
	}

	return FileDiff{
		Header:  file.Header,
		OldName: file.OldName,
		NewName: file.NewName,
		Chunks:  chunks,
	}, nil
}

// correctHeader recomputes c's header from its lines, moving the new start back by newStartCorrection, and renumbers the lines from the new header. It also returns
// how much shorter the chunk became on the new side, which later chunks must be corrected by.
func correctHeader(c DiffChunk, newStartCorrection int) (DiffChunk, int, error) {
	h, err := ParseChunkHeader(c.Header)
	if err != nil {
		return DiffChunk{}, 0, err
	}

	inserts, deletes, context := 0, 0, 0
	for _, l := range c.Lines {
		switch l.Type {
		case LineInsert:
			inserts++
		case LineDelete:
			deletes++
		case LineContext:
			context++
		}
	}

	corrected := ChunkHeader{
		OldStart:    h.OldStart,
		OldLength:   context + deletes,
		NewStart:    h.NewStart - newStartCorrection,
		NewLength:   context + inserts,
		Description: h.Description,
	}
	if corrected.NewStart < 0 {
		return DiffChunk{}, 0, fmt.Errorf("%w: %q: new start %d after shifting by %d", ErrMalformedChunkHeader, c.Header, corrected.NewStart, newStartCorrection)
	}
	header := c.Header
	if corrected != h {
		if strings.HasPrefix(c.Header, "@@@") {
			return DiffChunk{}, 0, fmt.Errorf("%w: %q", ErrCombinedChunk, c.Header)
		}
		header = corrected.String()
	}
	return DiffChunk{Header: header, Lines: renumber(c.Lines, corrected)}, h.NewLength - corrected.NewLength, nil
}

// renumber returns copies of lines with old/new numbers assigned from h's starts.
func renumber(lines []DiffLine, h ChunkHeader) []DiffLine {
	out := make([]DiffLine, len(lines))
	oldLine, newLine := h.OldStart, h.NewStart
	for i, l := range lines {
		l.OldNumber, l.NewNumber = nil, nil
		if l.Type.countsOld() {
			l.OldNumber = intPtr(oldLine)
			oldLine++
		}
		if l.Type.countsNew() {
			l.NewNumber = intPtr(newLine)
			newLine++
		}
		out[i] = l
	}
	return out
}

func checkSelection(file FileDiff, sel SelectedLines) error {
	for _, b := range []SelectionBoundary{sel.First, sel.Last} {
		if b.ChunkIndex < 0 || b.ChunkIndex >= len(file.Chunks) {
			return fmt.Errorf("%w: chunk %d (file has %d chunks)", ErrSelectionOutOfBounds, b.ChunkIndex, len(file.Chunks))
		}
		if n := len(file.Chunks[b.ChunkIndex].Lines); b.LineIndex < 0 || b.LineIndex >= n {
			return fmt.Errorf("%w: line %d of chunk %d (chunk has %d lines)", ErrSelectionOutOfBounds, b.LineIndex, b.ChunkIndex, n)
		}
	}
	if sel.Last.before(sel.First) {
		return fmt.Errorf("%w: first %+v is after last %+v", ErrSelectionOrder, sel.First, sel.Last)
	}
	return nil
}
