package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, text string) FileDiff {
	t.Helper()
	files, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, files, 1)
	return files[0]
}

func sel(fc, fl, lc, ll int) SelectedLines {
	return SelectedLines{
		First: SelectionBoundary{ChunkIndex: fc, LineIndex: fl},
		Last:  SelectionBoundary{ChunkIndex: lc, LineIndex: ll},
	}
}

// growShrinkDiff has a chunk that grows the file by two lines followed by one that shrinks it by one.
const growShrinkDiff = "diff --git a/f b/f\n" +
	"--- a/f\n" +
	"+++ b/f\n" +
	"@@ -1,2 +1,4 @@\n" +
	" a\n" +
	"+x\n" +
	"+y\n" +
	" b\n" +
	"@@ -10,3 +12,2 @@\n" +
	" j\n" +
	"-k\n" +
	" l\n"

func TestModifyDiff_WholeChunkKeepsHeader(t *testing.T) {
	f := parseOne(t, twoChunkDiff)

	got, err := ModifyDiff(f, WholeChunk(f, 0))
	require.NoError(t, err)

	assert.Equal(t, f.Header, got.Header)
	require.Len(t, got.Chunks, 1)
	assert.Equal(t, f.Chunks[0], got.Chunks[0])
	assert.Equal(t, "@@ -1,3 +1,3 @@ package main", got.Chunks[0].Header)
}

func TestModifyDiff_DroppedChunkShiftsLaterChunks(t *testing.T) {
	f := parseOne(t, growShrinkDiff)

	got, err := ModifyDiff(f, WholeChunk(f, 1))
	require.NoError(t, err)
	require.Len(t, got.Chunks, 1)

	c := got.Chunks[0]
	assert.Equal(t, "@@ -10,3 +10,2 @@", c.Header)
	assert.Equal(t, []DiffLine{ctx(" j", 10, 10), del("-k", 11), ctx(" l", 12, 11)}, c.Lines)
}

func TestModifyDiff_DropsInsertsOutsideSelection(t *testing.T) {
	f := parseOne(t, growShrinkDiff)

	got, err := ModifyDiff(f, sel(0, 0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got.Chunks, 1)

	c := got.Chunks[0]
	assert.Equal(t, "@@ -1,2 +1,3 @@", c.Header)
	assert.Equal(t, []DiffLine{ctx(" a", 1, 1), ins("+x", 2), ctx(" b", 2, 3)}, c.Lines)
}

func TestModifyDiff_DeletesOutsideSelectionBecomeContext(t *testing.T) {
	f := parseOne(t, twoChunkDiff)

	got, err := ModifyDiff(f, sel(0, 2, 0, 2))
	require.NoError(t, err)
	require.Len(t, got.Chunks, 1)

	c := got.Chunks[0]
	assert.Equal(t, "@@ -1,3 +1,4 @@ package main", c.Header)
	assert.Equal(t, []DiffLine{ctx(" a", 1, 1), ctx(" b", 2, 2), ins("+B", 3), ctx(" c", 3, 4)}, c.Lines)

	// The input is untouched.
	assert.Equal(t, del("-b", 2), f.Chunks[0].Lines[1])
}

func TestModifyDiff_SpanningSelection(t *testing.T) {
	f := parseOne(t, "diff --git a/f b/f\n"+
		"--- a/f\n"+
		"+++ b/f\n"+
		"@@ -1,2 +1,2 @@\n"+
		"-a\n"+
		"+A\n"+
		" b\n"+
		"@@ -5 +5,2 @@\n"+
		" e\n"+
		"+f\n"+
		"@@ -9,2 +10,2 @@\n"+
		"-i\n"+
		"+I\n"+
		" j\n")

	got, err := ModifyDiff(f, sel(0, 1, 2, 0))
	require.NoError(t, err)
	require.Len(t, got.Chunks, 3)

	assert.Equal(t, "@@ -1,2 +1,3 @@", got.Chunks[0].Header)
	assert.Equal(t, []DiffLine{ctx(" a", 1, 1), ins("+A", 2), ctx(" b", 2, 3)}, got.Chunks[0].Lines)

	// Chunks strictly inside the selection are kept verbatim.
	assert.Equal(t, f.Chunks[1], got.Chunks[1])

	assert.Equal(t, "@@ -9,2 +11 @@", got.Chunks[2].Header)
	assert.Equal(t, []DiffLine{del("-i", 9), ctx(" j", 10, 11)}, got.Chunks[2].Lines)
}

func TestModifyDiff_KeepsPseudoContext(t *testing.T) {
	f := parseOne(t, "diff --git a/f b/f\n"+
		"--- a/f\n"+
		"+++ b/f\n"+
		"@@ -1 +1 @@\n"+
		"-old\n"+
		"\\ No newline at end of file\n"+
		"+new\n"+
		"\\ No newline at end of file\n")

	got, err := ModifyDiff(f, sel(0, 0, 0, 0))
	require.NoError(t, err)
	require.Len(t, got.Chunks, 1)

	c := got.Chunks[0]
	assert.Equal(t, "@@ -1 +1,0 @@", c.Header)
	assert.Equal(t, []DiffLine{del("-old", 1), pseudo("\\ No newline at end of file"), pseudo("\\ No newline at end of file")}, c.Lines)
}

func TestModifyDiff_SerializesToValidPatch(t *testing.T) {
	f := parseOne(t, growShrinkDiff)

	for _, s := range []SelectedLines{sel(0, 1, 0, 1), sel(0, 2, 1, 1), WholeChunk(f, 1), sel(1, 1, 0, 2).Normalize()} {
		got, err := ModifyDiff(f, s)
		require.NoError(t, err)

		reparsed := parseOne(t, SerializeDiff(got.Header, got))
		require.NoError(t, reparsed.Validate())
		assert.Equal(t, got.Chunks, reparsed.Chunks)
	}
}

func TestModifyDiff_Errors(t *testing.T) {
	f := parseOne(t, twoChunkDiff)

	cases := []struct {
		name string
		sel  SelectedLines
		want error
	}{
		{name: "chunk past end", sel: sel(0, 0, 2, 0), want: ErrSelectionOutOfBounds},
		{name: "negative chunk", sel: sel(-1, 0, 0, 0), want: ErrSelectionOutOfBounds},
		{name: "line past end", sel: sel(0, 0, 1, 3), want: ErrSelectionOutOfBounds},
		{name: "negative line", sel: sel(0, -1, 0, 0), want: ErrSelectionOutOfBounds},
		{name: "reversed", sel: sel(1, 0, 0, 2), want: ErrSelectionOrder},
		{name: "reversed within chunk", sel: sel(0, 3, 0, 1), want: ErrSelectionOrder},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ModifyDiff(f, tc.sel)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSelectedLines_Normalize(t *testing.T) {
	s := sel(2, 1, 0, 4)
	assert.Equal(t, sel(0, 4, 2, 1), s.Normalize())
	assert.Equal(t, sel(0, 4, 2, 1), s.Normalize().Normalize())

	same := sel(1, 1, 1, 1)
	assert.Equal(t, same, same.Normalize())
}

func TestSelectedLines_Contains(t *testing.T) {
	s := sel(0, 2, 1, 1)
	assert.False(t, s.Contains(0, 1))
	assert.True(t, s.Contains(0, 2))
	assert.True(t, s.Contains(0, 99))
	assert.True(t, s.Contains(1, 0))
	assert.True(t, s.Contains(1, 1))
	assert.False(t, s.Contains(1, 2))
	assert.False(t, s.Contains(2, 0))
}

func TestMaxLineNumber(t *testing.T) {
	assert.Equal(t, 0, MaxLineNumber(nil))
	assert.Equal(t, 0, MaxLineNumber([]DiffChunk{{Lines: []DiffLine{pseudo("\\ No newline at end of file")}}}))

	f := parseOne(t, growShrinkDiff)
	assert.Equal(t, 13, MaxLineNumber(f.Chunks))
}

func TestModifyDiff_CombinedChunk(t *testing.T) {
	f := parseOne(t, "diff --cc f\n--- a/f\n+++ b/f\n@@@ -1,2 -1,2 +1,3 @@@\n  a\n  b\n+ c\n")

	// Selecting the whole chunk leaves its header unchanged.
	got, err := ModifyDiff(f, WholeChunk(f, 0))
	require.NoError(t, err)
	require.Len(t, got.Chunks, 1)
	assert.Equal(t, "@@@ -1,2 -1,2 +1,3 @@@", got.Chunks[0].Header)

	// Dropping the insert would need a new header, which a 2-way header cannot express.
	_, err = ModifyDiff(f, sel(0, 0, 0, 1))
	require.ErrorIs(t, err, ErrCombinedChunk)
}
