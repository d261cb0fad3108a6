// Package diff parses, slices, serializes, highlights, and renders unified diffs as produced by `git diff` and `git show`.
//
// Representation: Parse turns diff text into one FileDiff per file record. A FileDiff holds its raw header lines and an ordered slice of DiffChunk; each chunk holds its
// raw "@@ ... @@" header and its DiffLines. Every DiffLine has a LineType:
//   - LineContext: unchanged line, numbered on both sides
//   - LineDelete: line only in the old file, numbered on the old side
//   - LineInsert: line only in the new file, numbered on the new side
//   - LinePseudoContext: an annotation such as "\ No newline at end of file", numbered on neither side
//
// Line numbers are 1-based and absent (nil) on a side the line does not occupy. DiffLine.Content keeps the leading marker; DiffLine.Text strips it.
//
// Invariants (checked by DiffChunk.Validate):
//   - the header's old length == count(context) + count(delete)
//   - the header's new length == count(context) + count(insert)
//
// Partial patches: ModifyDiff keeps only the edits inside a SelectedLines range, rewriting chunk headers so the result still applies. SerializeDiff turns a FileDiff back
// into patch text:
//
//	files, err := diff.Parse(text)
//	sliced, err := diff.ModifyDiff(files[0], sel.Normalize())
//	patch := diff.SerializeDiff(sliced.Header, sliced)
//
// Highlighting: CalculateHighlightAreas pairs the delete and insert lines of each change group and marks the tokens (see Tokenize) that differ. TokenDiff exposes the
// underlying token alignment.
//
// Rendering: For human consumption:
//   - RenderPretty emits a unified view with a line-number gutter and emphasized intra-line changes.
//   - RenderSideBySide emits old and new lines in two columns.
//
// Set RenderOptions.Color to include ANSI colors.
//
// Newlines: This package treats '\n' as the line separator. A trailing "\r" from CRLF files is part of the line's content.
package diff
