package diff

import "strings"

// SerializeDiff renders file back to patch text suitable for `git apply` (with or without --cached/--reverse).
//
// Non-empty headerLines come first, then each chunk's header followed by its lines. Each line is written as the marker of its Type followed by the line's text,
// so a line whose Type was changed (ex: a delete demoted to context by ModifyDiff) is written with the right marker even if its Content was not rewritten. Pseudo-context
// lines are written verbatim. Newlines embedded in content are removed from the written copy; the FileDiff is never modified. The result ends with a newline.
//
// For any FileDiff produced by Parse or ModifyDiff, Parse(SerializeDiff(f.Header, f)) reproduces f's chunks.
func SerializeDiff(headerLines []string, file FileDiff) string {
	var out []string
	for _, h := range headerLines {
		if h != "" {
			out = append(out, h)
		}
	}
	for _, c := range file.Chunks {
		out = append(out, c.Header)
		for _, l := range c.Lines {
			out = append(out, serializeLine(l))
		}
	}
	return strings.Join(out, "\n") + "\n"
}

func serializeLine(l DiffLine) string {
	if l.Type == LinePseudoContext {
		return strings.ReplaceAll(l.Content, "\n", "")
	}
	return l.Type.Marker() + strings.ReplaceAll(l.Text(), "\n", "")
}
