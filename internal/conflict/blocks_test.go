package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBlocks(t *testing.T) {
	lines, err := ParseFile("a\n<<<<<<< HEAD\nb\n=======\nc\n>>>>>>> br\nd")
	require.NoError(t, err)

	blocks := CalculateBlocks(lines)
	require.Len(t, blocks, 3)

	assert.Equal(t, Block{Offset: 0, Lines: []Line{same("a")}}, blocks[0])
	assert.Equal(t, Block{Offset: 1, IsConflict: true, Lines: []Line{both("b", "c")}}, blocks[1])
	assert.Equal(t, Block{Offset: 2, Lines: []Line{same("d")}}, blocks[2])
}

func TestCalculateBlocks_Partition(t *testing.T) {
	cases := []struct {
		name       string
		lines      []Line
		wantSizes  []int
		wantOffset []int
	}{
		{name: "empty", lines: nil, wantSizes: []int{}, wantOffset: []int{}},
		{name: "all same", lines: []Line{same("a"), same("b")}, wantSizes: []int{2}, wantOffset: []int{0}},
		{name: "all conflict", lines: []Line{oursOnly("a"), theirsOnly("b")}, wantSizes: []int{2}, wantOffset: []int{0}},
		{
			name:       "alternating",
			lines:      []Line{same("a"), same("b"), oursOnly("c"), same("d"), both("e", "f"), both("g", "h")},
			wantSizes:  []int{2, 1, 1, 2},
			wantOffset: []int{0, 2, 3, 4},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blocks := CalculateBlocks(tc.lines)
			require.NotNil(t, blocks)

			sizes := []int{}
			offsets := []int{}
			var joined []Line
			for i, b := range blocks {
				sizes = append(sizes, len(b.Lines))
				offsets = append(offsets, b.Offset)
				joined = append(joined, b.Lines...)
				if i > 0 {
					assert.NotEqual(t, blocks[i-1].IsConflict, b.IsConflict)
				}
				for _, l := range b.Lines {
					assert.Equal(t, b.IsConflict, l.IsConflict)
				}
			}
			assert.Equal(t, tc.wantSizes, sizes)
			assert.Equal(t, tc.wantOffset, offsets)
			assert.Equal(t, tc.lines, joined)
		})
	}
}

func TestToggleBlock(t *testing.T) {
	blocks := CalculateBlocks([]Line{same("a"), both("b", "c")})

	toggled, err := ToggleBlock(blocks, Theirs, 1)
	require.NoError(t, err)
	assert.True(t, toggled[1].TheirsSelected)
	assert.False(t, toggled[1].OursSelected)
	assert.False(t, blocks[1].TheirsSelected, "input must not be modified")

	toggled, err = ToggleBlock(toggled, Ours, 1)
	require.NoError(t, err)
	assert.True(t, toggled[1].OursSelected)

	toggled, err = ToggleBlock(toggled, Theirs, 1)
	require.NoError(t, err)
	assert.False(t, toggled[1].TheirsSelected)
	assert.True(t, toggled[1].OursSelected)
}

func TestToggleBlock_OutOfRange(t *testing.T) {
	blocks := CalculateBlocks([]Line{same("a")})
	for _, index := range []int{-1, 1, 5} {
		_, err := ToggleBlock(blocks, Ours, index)
		assert.ErrorIs(t, err, ErrBlockOutOfRange)
	}
}

func TestHasUnresolved(t *testing.T) {
	blocks := CalculateBlocks([]Line{same("a"), both("b", "c"), same("d"), oursOnly("e")})
	assert.True(t, HasUnresolved(blocks))

	blocks, err := ToggleBlock(blocks, Ours, 1)
	require.NoError(t, err)
	assert.True(t, HasUnresolved(blocks))

	blocks, err = ToggleBlock(blocks, Theirs, 3)
	require.NoError(t, err)
	assert.False(t, HasUnresolved(blocks))

	assert.False(t, HasUnresolved(nil))
}
