package conflict

import "strings"

// Source says where a merged line came from.
type Source string

const (
	SourceBoth     Source = "both"     // Unconflicted line.
	SourceOurs     Source = "ours"     // Selected from our side of a conflict.
	SourceTheirs   Source = "theirs"   // Selected from their side of a conflict.
	SourceConflict Source = "conflict" // Placeholder for an unresolved conflict block.
)

// UnresolvedPlaceholder is the content of the line Merge emits for a conflict block with no side selected.
const UnresolvedPlaceholder = "<?>"

// MergedLine is one line of merge output.
type MergedLine struct {
	Source  Source `json:"source"`
	Content string `json:"content"`
}

// Merge computes the merge result of blocks. Non-conflict blocks contribute their lines unchanged. A conflict block contributes its selected ours lines followed by
// its selected theirs lines, skipping positions where that side has no line; if neither side is selected it contributes a single UnresolvedPlaceholder line.
func Merge(blocks []Block) []MergedLine {
	out := []MergedLine{}
	for _, b := range blocks {
		if !b.IsConflict {
			for _, l := range b.Lines {
				out = append(out, MergedLine{Source: SourceBoth, Content: deref(l.Ours)})
			}
			continue
		}

		if !b.OursSelected && !b.TheirsSelected {
			out = append(out, MergedLine{Source: SourceConflict, Content: UnresolvedPlaceholder})
			continue
		}
		if b.OursSelected {
			for _, l := range b.Lines {
				if l.Ours != nil {
					out = append(out, MergedLine{Source: SourceOurs, Content: *l.Ours})
				}
			}
		}
		if b.TheirsSelected {
			for _, l := range b.Lines {
				if l.Theirs != nil {
					out = append(out, MergedLine{Source: SourceTheirs, Content: *l.Theirs})
				}
			}
		}
	}
	return out
}

// Render joins the contents of merged with "\n".
func Render(merged []MergedLine) string {
	lines := make([]string, len(merged))
	for i, m := range merged {
		lines[i] = m.Content
	}
	return strings.Join(lines, "\n")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
