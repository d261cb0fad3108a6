package diff

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	fileMarker  = "diff "
	chunkMarker = "@@"
)

var (
	oldNameRE = regexp.MustCompile(`^---\s+[a-z]+/(.+)$`)
	newNameRE = regexp.MustCompile(`^\+\+\+\s+[a-z]+/(.+)$`)
)

// Parse parses unified diff text, as produced by git diff/show, into one FileDiff per "diff " record.
//
// Parsing stops at the first line that does not start a file record, so trailing text (including the empty line produced by a final newline) is ignored. Within a chunk,
// lines run until the next chunk header, the next file record, an empty line, or the end of input.
//
// An error is returned if a chunk header is malformed or if a file record has no "---"/"+++" pair; the error wraps ErrMalformedChunkHeader or ErrMissingFileHeader
// respectively. Text with no file records yields an empty, non-nil result and no error.
func Parse(text string) ([]FileDiff, error) {
	lines := strings.Split(text, "\n")

	files := []FileDiff{}
	for len(lines) > 0 && strings.HasPrefix(lines[0], fileMarker) {
		file, rest, err := parseFile(lines)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
		lines = rest
	}
	return files, nil
}

// parseFile consumes one file record from the start of lines and returns it with the remaining lines.
func parseFile(lines []string) (FileDiff, []string, error) {
	headerEnd := -1
	for i := 0; i < len(lines); i++ {
		if i > 0 && strings.HasPrefix(lines[i], fileMarker) {
			break
		}
		if strings.HasPrefix(lines[i], "---") {
			headerEnd = i
			break
		}
	}
	if headerEnd < 0 || headerEnd+1 >= len(lines) || !strings.HasPrefix(lines[headerEnd+1], "+++") {
		return FileDiff{}, nil, fmt.Errorf("%w: %q", ErrMissingFileHeader, lines[0])
	}

	file := FileDiff{
		Header:  append([]string(nil), lines[:headerEnd+2]...),
		OldName: stripPathPrefix(oldNameRE, lines[headerEnd]),
		NewName: stripPathPrefix(newNameRE, lines[headerEnd+1]),
		Chunks:  []DiffChunk{},
	}

	rest := lines[headerEnd+2:]
	for len(rest) > 0 && strings.HasPrefix(rest[0], chunkMarker) {
		chunk, remaining, err := parseChunk(rest)
		if err != nil {
			return FileDiff{}, nil, err
		}
		file.Chunks = append(file.Chunks, chunk)
		rest = remaining
	}
	return file, rest, nil
}

// stripPathPrefix returns the file name of a "---"/"+++" line without its first path segment. A line that does not match (ex: "--- /dev/null") yields "".
func stripPathPrefix(re *regexp.Regexp, line string) string {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// parseChunk consumes one chunk (header plus body) from the start of lines.
func parseChunk(lines []string) (DiffChunk, []string, error) {
	header, err := ParseChunkHeader(lines[0])
	if err != nil {
		return DiffChunk{}, nil, err
	}

	end := 1
	for end < len(lines) && lines[end] != "" && !strings.HasPrefix(lines[end], chunkMarker) && !strings.HasPrefix(lines[end], fileMarker) {
		end++
	}

	oldLine := header.OldStart
	newLine := header.NewStart
	body := make([]DiffLine, 0, end-1)
	for _, raw := range lines[1:end] {
		l := DiffLine{Type: lineTypeOf(raw), Content: raw}
		if l.Type.countsOld() {
			l.OldNumber = intPtr(oldLine)
			oldLine++
		}
		if l.Type.countsNew() {
			l.NewNumber = intPtr(newLine)
			newLine++
		}
		body = append(body, l)
	}

	return DiffChunk{Header: lines[0], Lines: body}, lines[end:], nil
}

func lineTypeOf(raw string) LineType {
	switch raw[0] {
	case '+':
		return LineInsert
	case '-':
		return LineDelete
	case ' ':
		return LineContext
	default:
		return LinePseudoContext
	}
}
