package diff

import (
	"fmt"
)

// Validate checks the header arithmetic of every chunk in f and returns an error on the first violation.
func (f FileDiff) Validate() error {
	for ci, c := range f.Chunks {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("chunk[%d]: %w", ci, err)
		}
	}
	return nil
}

// Validate checks that the lengths declared in c.Header match the lines of c: old length == context+delete and new length == context+insert. Pseudo-context lines
// count on neither side.
func (c DiffChunk) Validate() error {
	h, err := ParseChunkHeader(c.Header)
	if err != nil {
		return err
	}

	oldCount, newCount := 0, 0
	for _, l := range c.Lines {
		if l.Type.countsOld() {
			oldCount++
		}
		if l.Type.countsNew() {
			newCount++
		}
	}

	if h.OldLength != oldCount {
		return fmt.Errorf("header %q declares old length %d, lines have %d", c.Header, h.OldLength, oldCount)
	}
	if h.NewLength != newCount {
		return fmt.Errorf("header %q declares new length %d, lines have %d", c.Header, h.NewLength, newCount)
	}
	return nil
}
