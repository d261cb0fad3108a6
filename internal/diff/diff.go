package diff

// LineType classifies a line inside a diff chunk.
type LineType string

// Line types. A pseudo-context line is an annotation such as "\ No newline at end of file"; it carries no file content and is counted on neither side.
const (
	LineInsert        LineType = "insert"
	LineDelete        LineType = "delete"
	LineContext       LineType = "context"
	LinePseudoContext LineType = "pseudo-context"
)

// Marker returns the unified-diff marker character for t. Pseudo-context lines have no marker of their own and return "".
func (t LineType) Marker() string {
	switch t {
	case LineInsert:
		return "+"
	case LineDelete:
		return "-"
	case LineContext:
		return " "
	default:
		return ""
	}
}

// countsOld reports whether a line of type t occupies a line in the old file.
func (t LineType) countsOld() bool {
	return t == LineDelete || t == LineContext
}

// countsNew reports whether a line of type t occupies a line in the new file.
func (t LineType) countsNew() bool {
	return t == LineInsert || t == LineContext
}

// FileDiff is the diff of a single file as found in multi-file unified diff text.
//
// Header holds the raw header lines, from the "diff " record line up to and including the "+++" line. OldName and NewName are taken from the "---" and "+++" lines
// with one leading path segment ("a/", "b/") stripped; a side that is the null device has an empty name.
type FileDiff struct {
	Header  []string    `json:"header"`
	OldName string      `json:"oldName"`
	NewName string      `json:"newName"`
	Chunks  []DiffChunk `json:"chunks"` // Ordered by ascending old-file position.
}

// DiffChunk is one "@@ ... @@" delimited region of a file diff.
//
// Invariants (see Validate):
//   - the old length declared in Header == count(context) + count(delete)
//   - the new length declared in Header == count(context) + count(insert)
type DiffChunk struct {
	Header string     `json:"header"` // Raw chunk header, including any trailing description.
	Lines  []DiffLine `json:"lines"`
}

// DiffLine is a single line of a chunk.
//
// Content is the full line as it appears in the diff, including the leading marker. OldNumber is set for delete and context lines, NewNumber for insert and context
// lines; both are nil for pseudo-context lines. Numbers are 1-based.
type DiffLine struct {
	Type      LineType `json:"type"`
	Content   string   `json:"content"`
	OldNumber *int     `json:"oldNumber,omitempty"`
	NewNumber *int     `json:"newNumber,omitempty"`
}

// Text returns the line without its marker. Pseudo-context lines have no marker, so their full content is returned.
func (l DiffLine) Text() string {
	if l.Type == LinePseudoContext || l.Content == "" {
		return l.Content
	}
	return l.Content[1:]
}

// withType returns a copy of l converted to type t, with the marker in Content rewritten to match.
func (l DiffLine) withType(t LineType) DiffLine {
	return DiffLine{
		Type:      t,
		Content:   t.Marker() + l.Text(),
		OldNumber: l.OldNumber,
		NewNumber: l.NewNumber,
	}
}

// SelectionBoundary addresses one line of a FileDiff by chunk index and line index within that chunk.
type SelectionBoundary struct {
	ChunkIndex int `json:"chunkIndex"`
	LineIndex  int `json:"lineIndex"`
}

// before reports whether b is strictly before o in document order.
func (b SelectionBoundary) before(o SelectionBoundary) bool {
	return b.ChunkIndex < o.ChunkIndex || (b.ChunkIndex == o.ChunkIndex && b.LineIndex < o.LineIndex)
}

// SelectedLines is an inclusive range of lines. First must precede or equal Last in document order; use Normalize for ranges built from a drag that may run backwards.
type SelectedLines struct {
	First SelectionBoundary `json:"first"`
	Last  SelectionBoundary `json:"last"`
}

// Normalize returns s with First and Last swapped if Last precedes First.
func (s SelectedLines) Normalize() SelectedLines {
	if s.Last.before(s.First) {
		return SelectedLines{First: s.Last, Last: s.First}
	}
	return s
}

// Contains reports whether the line at (chunkIndex, lineIndex) is inside s.
func (s SelectedLines) Contains(chunkIndex, lineIndex int) bool {
	at := SelectionBoundary{ChunkIndex: chunkIndex, LineIndex: lineIndex}
	return !at.before(s.First) && !s.Last.before(at)
}

// WholeChunk returns a selection spanning every line of chunk chunkIndex in f. It is what "stage chunk" and "discard chunk" actions pass to ModifyDiff.
func WholeChunk(f FileDiff, chunkIndex int) SelectedLines {
	last := 0
	if chunkIndex >= 0 && chunkIndex < len(f.Chunks) && len(f.Chunks[chunkIndex].Lines) > 0 {
		last = len(f.Chunks[chunkIndex].Lines) - 1
	}
	return SelectedLines{
		First: SelectionBoundary{ChunkIndex: chunkIndex, LineIndex: 0},
		Last:  SelectionBoundary{ChunkIndex: chunkIndex, LineIndex: last},
	}
}

// MaxLineNumber returns the largest old or new line number found in chunks, or 0 if there is none. Renderers use it to size the line-number gutter.
func MaxLineNumber(chunks []DiffChunk) int {
	max := 0
	for _, c := range chunks {
		for _, l := range c.Lines {
			if l.OldNumber != nil && *l.OldNumber > max {
				max = *l.OldNumber
			}
			if l.NewNumber != nil && *l.NewNumber > max {
				max = *l.NewNumber
			}
		}
	}
	return max
}

func intPtr(n int) *int {
	return &n
}
