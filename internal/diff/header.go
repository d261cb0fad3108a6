package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// chunkHeaderRE matches 2-way ("@@ -1,2 +1,3 @@") and N-way ("@@@ -1,2 -1,2 +1,3 @@@") chunk headers. Only the first old range and the new range are captured;
// the extra old ranges of combined diffs are matched and discarded.
var chunkHeaderRE = regexp.MustCompile(`^@@(@*)\s+-(\d+)(?:,(\d+))?\s+(?:-\d+(?:,\d+)?\s+)*\+(\d+)(?:,(\d+))?\s+@@(@*)(.*)$`)

// ChunkHeader is the parsed form of a chunk header line.
type ChunkHeader struct {
	OldStart    int
	OldLength   int
	NewStart    int
	NewLength   int
	Description string // Everything after the closing "@@", verbatim (usually starts with a space).
}

// ParseChunkHeader parses a raw chunk header. A range without an explicit length ("-5" in "@@ -5 +5,2 @@") has length 1, per the unified-diff format.
func ParseChunkHeader(header string) (ChunkHeader, error) {
	m := chunkHeaderRE.FindStringSubmatch(header)
	if m == nil {
		return ChunkHeader{}, fmt.Errorf("%w: %q", ErrMalformedChunkHeader, header)
	}

	var h ChunkHeader
	var err error
	if h.OldStart, err = strconv.Atoi(m[2]); err != nil {
		return ChunkHeader{}, fmt.Errorf("%w: %q: %v", ErrMalformedChunkHeader, header, err)
	}
	if h.OldLength, err = rangeLength(m[3]); err != nil {
		return ChunkHeader{}, fmt.Errorf("%w: %q: %v", ErrMalformedChunkHeader, header, err)
	}
	if h.NewStart, err = strconv.Atoi(m[4]); err != nil {
		return ChunkHeader{}, fmt.Errorf("%w: %q: %v", ErrMalformedChunkHeader, header, err)
	}
	if h.NewLength, err = rangeLength(m[5]); err != nil {
		return ChunkHeader{}, fmt.Errorf("%w: %q: %v", ErrMalformedChunkHeader, header, err)
	}
	h.Description = m[7]
	return h, nil
}

// rangeLength parses the optional ",len" part of a range. The capture is empty when the length was omitted, which means 1.
func rangeLength(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	return strconv.Atoi(s)
}

// String renders h as a 2-way chunk header the way git does: a length of 1 is omitted.
func (h ChunkHeader) String() string {
	var b strings.Builder
	b.WriteString("@@ -")
	b.WriteString(formatRange(h.OldStart, h.OldLength))
	b.WriteString(" +")
	b.WriteString(formatRange(h.NewStart, h.NewLength))
	b.WriteString(" @@")
	b.WriteString(h.Description)
	return b.String()
}

func formatRange(start, length int) string {
	if length == 1 {
		return strconv.Itoa(start)
	}
	return strconv.Itoa(start) + "," + strconv.Itoa(length)
}
