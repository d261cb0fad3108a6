package conflict

import "fmt"

// Block is a maximal run of lines that are all conflicting or all non-conflicting.
type Block struct {
	Offset         int    `json:"offset"` // Index of the block's first line in the input.
	IsConflict     bool   `json:"isConflict"`
	Lines          []Line `json:"lines"`
	OursSelected   bool   `json:"oursSelected"`
	TheirsSelected bool   `json:"theirsSelected"`
}

// Side names one side of a conflict.
type Side int

const (
	Ours Side = iota
	Theirs
)

func (s Side) String() string {
	switch s {
	case Ours:
		return "ours"
	case Theirs:
		return "theirs"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// CalculateBlocks groups lines into blocks. Concatenating the blocks' lines yields lines again, and no two adjacent blocks have the same IsConflict. No side is
// selected in the result.
func CalculateBlocks(lines []Line) []Block {
	blocks := []Block{}
	for i, l := range lines {
		if len(blocks) == 0 || blocks[len(blocks)-1].IsConflict != l.IsConflict {
			blocks = append(blocks, Block{Offset: i, IsConflict: l.IsConflict})
		}
		last := &blocks[len(blocks)-1]
		last.Lines = append(last.Lines, l)
	}
	return blocks
}

// ToggleBlock returns a copy of blocks with side flipped on the block at index. blocks itself is not modified.
func ToggleBlock(blocks []Block, side Side, index int) ([]Block, error) {
	if index < 0 || index >= len(blocks) {
		return nil, fmt.Errorf("%w: %d (have %d blocks)", ErrBlockOutOfRange, index, len(blocks))
	}

	out := make([]Block, len(blocks))
	copy(out, blocks)
	switch side {
	case Ours:
		out[index].OursSelected = !out[index].OursSelected
	case Theirs:
		out[index].TheirsSelected = !out[index].TheirsSelected
	default:
		return nil, fmt.Errorf("unknown side %v", side)
	}
	return out, nil
}

// HasUnresolved reports whether any conflict block has neither side selected.
func HasUnresolved(blocks []Block) bool {
	for _, b := range blocks {
		if b.IsConflict && !b.OursSelected && !b.TheirsSelected {
			return true
		}
	}
	return false
}
