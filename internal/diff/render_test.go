package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const wordChangeDiff = "diff --git a/f b/f\n" +
	"--- a/f\n" +
	"+++ b/f\n" +
	"@@ -1,2 +1,3 @@\n" +
	" keep\n" +
	"-foo bar\n" +
	"+foo baz\n" +
	"+extra\n"

func TestRenderPretty_Plain(t *testing.T) {
	f := parseOne(t, wordChangeDiff)

	exp := "f:\n" +
		"@@ -1,2 +1,3 @@\n" +
		"1 1  keep\n" +
		"2   -foo bar\n" +
		"  2 +foo baz\n" +
		"  3 +extra\n"
	assert.Equal(t, exp, RenderPretty(f, RenderOptions{}))
}

func TestRenderPretty_GutterWidth(t *testing.T) {
	f := parseOne(t, twoChunkDiff)

	lines := strings.Split(RenderPretty(f, RenderOptions{}), "\n")
	assert.Equal(t, " 1  1  a", lines[2])
	assert.Equal(t, " 2    -b", lines[3])
	assert.Equal(t, "    2 +B", lines[4])
	assert.Equal(t, "@@ -10,2 +10,3 @@ func main() {", lines[6])
	assert.Equal(t, "10 10  j", lines[7])
	assert.Equal(t, "   11 +k", lines[8])
}

func TestRenderPretty_Color(t *testing.T) {
	f := parseOne(t, wordChangeDiff)

	plain := RenderPretty(f, RenderOptions{})
	colored := RenderPretty(f, RenderOptions{Color: true})

	assert.NotEqual(t, plain, colored)
	assert.Contains(t, colored, "\x1b[")
	assert.Contains(t, colored, "48;5;217") // emphasized deletion
	assert.Contains(t, colored, "48;5;114") // emphasized insertion
	assert.Contains(t, colored, "bar")
}

func TestRenderPretty_Title(t *testing.T) {
	cases := []struct {
		name     string
		old, new string
		want     string
	}{
		{name: "header fallback", old: "", new: "", want: "diff --git a/x b/x"},
		{name: "add file", old: "", new: "somefile.go", want: "add somefile.go:"},
		{name: "delete file", old: "somefile.go", new: "", want: "delete somefile.go:"},
		{name: "same name", old: "same.go", new: "same.go", want: "same.go:"},
		{name: "rename", old: "old.go", new: "new.go", want: "old.go -> new.go:"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := FileDiff{Header: []string{"diff --git a/x b/x"}, OldName: tc.old, NewName: tc.new}
			assert.Equal(t, tc.want+"\n", RenderPretty(f, RenderOptions{}))
		})
	}
}

func TestRenderPretty_TitleWithoutHeader(t *testing.T) {
	assert.Equal(t, "\n", RenderPretty(FileDiff{}, RenderOptions{}))
}

func TestRenderSideBySide_Plain(t *testing.T) {
	f := parseOne(t, wordChangeDiff)

	exp := "f:\n" +
		"@@ -1,2 +1,3 @@\n" +
		"1  keep      | 1  keep\n" +
		"2 -foo bar   | 2 +foo baz\n" +
		strings.Repeat(" ", 12) + " | 3 +extra\n"
	assert.Equal(t, exp, RenderSideBySide(f, RenderOptions{Width: 12}))
}

func TestRenderSideBySide_Truncates(t *testing.T) {
	f := parseOne(t, wordChangeDiff)

	exp := "f:\n" +
		"@@ -1,2 +1,3 @@\n" +
		"1  kee | 1  kee\n" +
		"2 -foo | 2 +foo\n" +
		strings.Repeat(" ", 6) + " | 3 +ext\n"
	assert.Equal(t, exp, RenderSideBySide(f, RenderOptions{Width: 6}))
}

func TestRenderSideBySide_DefaultWidth(t *testing.T) {
	f := parseOne(t, wordChangeDiff)

	lines := strings.Split(RenderSideBySide(f, RenderOptions{}), "\n")
	assert.True(t, strings.HasPrefix(lines[2], "1  keep"+strings.Repeat(" ", DefaultColumnWidth-7)+" |"))
}

func TestRenderSideBySide_PseudoContextSpansRow(t *testing.T) {
	f := FileDiff{
		OldName: "f",
		NewName: "f",
		Chunks: []DiffChunk{{
			Header: "@@ -1 +1 @@",
			Lines:  []DiffLine{del("-a", 1), pseudo("\\ No newline at end of file"), ins("+b", 1)},
		}},
	}

	exp := "f:\n" +
		"@@ -1 +1 @@\n" +
		"1 -a     |\n" +
		"\\ No newline at end of file\n" +
		strings.Repeat(" ", 8) + " | 1 +b\n"
	assert.Equal(t, exp, RenderSideBySide(f, RenderOptions{Width: 8}))
}

func TestRenderSideBySide_ExpandsTabs(t *testing.T) {
	f := FileDiff{
		OldName: "f",
		NewName: "f",
		Chunks:  []DiffChunk{{Header: "@@ -1 +1 @@", Lines: []DiffLine{ctx(" \tx", 1, 1)}}},
	}

	exp := "f:\n" +
		"@@ -1 +1 @@\n" +
		"1      x   | 1      x\n"
	assert.Equal(t, exp, RenderSideBySide(f, RenderOptions{Width: 10}))
}
