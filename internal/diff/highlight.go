package diff

// Span is a piece of a line's text. Highlight marks text that differs from the paired line on the other side.
type Span struct {
	Content   string `json:"content"`
	Highlight bool   `json:"highlight"`
}

// Highlights is the intra-line highlighting of one DiffLine: the line's metadata plus spans that partition its text.
//
// For insert, delete and context lines the spans partition DiffLine.Text() (the content without its marker), so a context line's single span is its text without
// the leading space. For pseudo-context lines they cover the full content, including the leading "\".
// A changed line whose spans are all unhighlighted was paired with an identical line: it is changed, but there is nothing inside it to emphasize.
type Highlights struct {
	Type      LineType `json:"type"`
	OldNumber *int     `json:"oldNumber,omitempty"`
	NewNumber *int     `json:"newNumber,omitempty"`
	Spans     []Span   `json:"spans"`
}

// CalculateHighlightAreas computes intra-line highlights for every line of chunk, returning one entry per line in input order.
//
// Consecutive delete and insert lines form a change group that ends at the next context or pseudo-context line. Within a group the i-th delete line is paired with the
// i-th insert line (a missing partner is the empty string) and the pair is aligned with TokenDiff. Delete lines get the equal and deleted tokens, with deleted tokens
// highlighted; insert lines get the equal and inserted tokens, with inserted tokens highlighted. Context and pseudo-context lines get a single unhighlighted span.
func CalculateHighlightAreas(chunk DiffChunk) []Highlights {
	out := make([]Highlights, len(chunk.Lines))
	var deletes, inserts []int // indexes into chunk.Lines

	flush := func() {
		n := max(len(deletes), len(inserts))
		for i := 0; i < n; i++ {
			oldText, newText := "", ""
			if i < len(deletes) {
				oldText = chunk.Lines[deletes[i]].Text()
			}
			if i < len(inserts) {
				newText = chunk.Lines[inserts[i]].Text()
			}
			edits := TokenDiff(oldText, newText)
			if i < len(deletes) {
				out[deletes[i]] = highlightsFor(chunk.Lines[deletes[i]], spansFor(edits, OpDelete))
			}
			if i < len(inserts) {
				out[inserts[i]] = highlightsFor(chunk.Lines[inserts[i]], spansFor(edits, OpInsert))
			}
		}
		deletes, inserts = nil, nil
	}

	for i, l := range chunk.Lines {
		switch l.Type {
		case LineDelete:
			deletes = append(deletes, i)
		case LineInsert:
			inserts = append(inserts, i)
		default:
			flush()
			out[i] = highlightsFor(l, []Span{{Content: l.Text(), Highlight: false}})
		}
	}
	flush()
	return out
}

// spansFor keeps the edits visible on one side (equal plus side) and highlights the side's own edits.
func spansFor(edits []TokenEdit, side Op) []Span {
	spans := []Span{}
	for _, e := range edits {
		if e.Op != OpEqual && e.Op != side {
			continue
		}
		spans = append(spans, Span{Content: e.Value, Highlight: e.Op == side})
	}
	return spans
}

func highlightsFor(l DiffLine, spans []Span) Highlights {
	return Highlights{
		Type:      l.Type,
		OldNumber: l.OldNumber,
		NewNumber: l.NewNumber,
		Spans:     spans,
	}
}
