package diff

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// DefaultColumnWidth is the width of one side of RenderSideBySide when RenderOptions.Width is zero.
const DefaultColumnWidth = 80

// RenderOptions controls terminal rendering.
type RenderOptions struct {
	Color bool // Emit ANSI 256-color escape sequences. When false, output is plain text.
	Width int  // Display width of each column in RenderSideBySide, including the gutter. Zero means DefaultColumnWidth.
}

// RenderPretty returns a human-oriented rendering of file: a title line, then each chunk's header followed by its lines. Every line is prefixed with a gutter holding
// its old and new line numbers (blank where the line has none), right-aligned to the width of the largest number in the file, and then its unified-diff marker.
//
// The title line is in one of these forms:
//   - "add <new>:" when only NewName is set
//   - "delete <old>:" when only OldName is set
//   - "<name>:" when both are equal
//   - "<old> -> <new>:" otherwise
//   - the file's header line when neither name is set
//
// With opts.Color, deleted lines have a pink background and inserted lines a green background, and the spans CalculateHighlightAreas marks as highlighted are emphasized
// with a darker shade. The returned string ends with "\n".
func RenderPretty(file FileDiff, opts RenderOptions) string {
	p := newPalette(opts.Color)
	gw := gutterWidth(file)

	out := []string{p.paint(p.title, fileTitle(file))}
	for _, c := range file.Chunks {
		out = append(out, p.paint(p.chunk, c.Header))
		for _, h := range CalculateHighlightAreas(c) {
			gutter := fmt.Sprintf("%*s %*s ", gw, numberText(h.OldNumber), gw, numberText(h.NewNumber))
			text, _ := p.cell(h, -1)
			out = append(out, p.paint(p.gutter, gutter)+text)
		}
	}
	return strings.Join(out, "\n") + "\n"
}

// RenderSideBySide returns a two-column rendering of file: the old side on the left and the new side on the right, separated by " | ".
//
// Context lines appear on both sides. Within a run of changes, the i-th deleted line is shown next to the i-th inserted line; when one side has more lines, the other
// side is left blank. Pseudo-context lines (ex: "\ No newline at end of file") are shown verbatim across the full row. Each cell starts with the line number for its side
// and is truncated to opts.Width display columns; the left cell is padded to exactly that width. Tabs are expanded to four spaces so that columns line up.
func RenderSideBySide(file FileDiff, opts RenderOptions) string {
	p := newPalette(opts.Color)
	gw := gutterWidth(file)
	width := opts.Width
	if width <= 0 {
		width = DefaultColumnWidth
	}
	if width < gw+3 {
		width = gw + 3
	}

	out := []string{p.paint(p.title, fileTitle(file))}
	for _, c := range file.Chunks {
		out = append(out, p.paint(p.chunk, c.Header))

		var dels, ins []Highlights
		flush := func() {
			for i := 0; i < max(len(dels), len(ins)); i++ {
				var left, right *Highlights
				if i < len(dels) {
					left = &dels[i]
				}
				if i < len(ins) {
					right = &ins[i]
				}
				out = append(out, p.row(left, right, gw, width))
			}
			dels, ins = nil, nil
		}

		for _, h := range CalculateHighlightAreas(c) {
			switch h.Type {
			case LineDelete:
				dels = append(dels, h)
			case LineInsert:
				ins = append(ins, h)
			case LinePseudoContext:
				flush()
				out = append(out, spansText(h))
			default:
				flush()
				out = append(out, p.row(&h, &h, gw, width))
			}
		}
		flush()
	}
	return strings.Join(out, "\n") + "\n"
}

// palette holds the styles used by the renderers. The zero palette renders plain text.
type palette struct {
	color   bool
	title   lipgloss.Style
	chunk   lipgloss.Style
	gutter  lipgloss.Style
	del     lipgloss.Style
	delEmph lipgloss.Style
	ins     lipgloss.Style
	insEmph lipgloss.Style
}

func newPalette(color bool) palette {
	if !color {
		return palette{}
	}

	// The renderer only needs a color profile; callers decide where the string goes.
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	p := palette{color: true}
	p.title = base.Bold(true).Foreground(lipgloss.Color("6"))
	p.chunk = base.Foreground(lipgloss.Color("5"))
	p.gutter = base.Foreground(lipgloss.Color("244"))
	p.del = base.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("224"))   // light pink
	p.delEmph = base.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("217")) // darker pink
	p.ins = base.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("194"))   // light green
	p.insEmph = base.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("114")) // darker green
	return p
}

func (p palette) paint(s lipgloss.Style, text string) string {
	if !p.color || text == "" {
		return text
	}
	return s.Render(text)
}

// lineStyles returns the base and emphasis styles for a line type. ok is false for lines that are never styled.
func (p palette) lineStyles(t LineType) (base, emph lipgloss.Style, ok bool) {
	switch t {
	case LineDelete:
		return p.del, p.delEmph, true
	case LineInsert:
		return p.ins, p.insEmph, true
	default:
		return lipgloss.Style{}, lipgloss.Style{}, false
	}
}

// cell renders h's marker and spans, truncated to limit display columns (no limit if limit < 0). It returns the rendered text and its display width.
func (p palette) cell(h Highlights, limit int) (string, int) {
	base, emph, styled := p.lineStyles(h.Type)

	var b strings.Builder
	width := 0
	full := false
	write := func(text string, highlight bool) {
		if limit >= 0 && runewidth.StringWidth(text) > limit-width {
			text = runewidth.Truncate(text, limit-width, "")
			full = true
		}
		width += runewidth.StringWidth(text)
		switch {
		case !styled:
			b.WriteString(text)
		case highlight:
			b.WriteString(p.paint(emph, text))
		default:
			b.WriteString(p.paint(base, text))
		}
	}

	write(h.Type.Marker(), false)
	for _, sp := range h.Spans {
		if full {
			break
		}
		text := sp.Content
		if limit >= 0 {
			text = strings.ReplaceAll(text, "\t", "    ")
		}
		write(text, sp.Highlight)
	}
	return b.String(), width
}

// row renders one side-by-side row. A nil side is blank.
func (p palette) row(left, right *Highlights, gw, width int) string {
	var b strings.Builder

	avail := width - gw - 1
	if left != nil {
		text, w := p.cell(*left, avail)
		b.WriteString(p.paint(p.gutter, fmt.Sprintf("%*s ", gw, numberText(left.OldNumber))))
		b.WriteString(text)
		b.WriteString(strings.Repeat(" ", avail-w))
	} else {
		b.WriteString(strings.Repeat(" ", width))
	}

	b.WriteString(" |")
	if right != nil {
		text, _ := p.cell(*right, avail)
		b.WriteString(" ")
		b.WriteString(p.paint(p.gutter, fmt.Sprintf("%*s ", gw, numberText(right.NewNumber))))
		b.WriteString(text)
	}
	return b.String()
}

func fileTitle(f FileDiff) string {
	switch {
	case f.OldName == "" && f.NewName == "":
		if len(f.Header) == 0 {
			return ""
		}
		return f.Header[0]
	case f.OldName == "":
		return fmt.Sprintf("add %s:", f.NewName)
	case f.NewName == "":
		return fmt.Sprintf("delete %s:", f.OldName)
	case f.OldName == f.NewName:
		return fmt.Sprintf("%s:", f.OldName)
	default:
		return fmt.Sprintf("%s -> %s:", f.OldName, f.NewName)
	}
}

func gutterWidth(f FileDiff) int {
	return len(strconv.Itoa(MaxLineNumber(f.Chunks)))
}

func numberText(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func spansText(h Highlights) string {
	var b strings.Builder
	for _, sp := range h.Spans {
		b.WriteString(sp.Content)
	}
	return b.String()
}
