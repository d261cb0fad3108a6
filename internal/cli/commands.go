package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/corylus-git/corylus-sub000/internal/config"
	"github.com/corylus-git/corylus-sub000/internal/conflict"
	"github.com/corylus-git/corylus-sub000/internal/diff"
)

func newParseCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Print a unified diff as JSON",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := env.parseDiff(args)
			if err != nil {
				return err
			}
			return writeJSON(env.out, files)
		},
	}
}

func newShowCommand(env *environment) *cobra.Command {
	var sideBySide bool
	var color string
	var width int

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Render a unified diff with intra-line highlighting",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("side-by-side") {
				sideBySide = env.cfg.SideBySide
			}
			if !cmd.Flags().Changed("color") {
				color = env.cfg.Color
			}
			if !cmd.Flags().Changed("width") {
				width = env.cfg.ColumnWidth
			}
			useColor, err := resolveColor(color, env.out)
			if err != nil {
				return err
			}
			if width <= 0 {
				return UsageError{Message: fmt.Sprintf("invalid --width: must be > 0 (got %d)", width)}
			}

			files, err := env.parseDiff(args)
			if err != nil {
				return err
			}

			opts := diff.RenderOptions{Color: useColor, Width: width}
			for _, f := range files {
				var rendered string
				if sideBySide {
					rendered = diff.RenderSideBySide(f, opts)
				} else {
					rendered = diff.RenderPretty(f, opts)
				}
				if _, err := io.WriteString(env.out, rendered); err != nil {
					return ExitError{Code: 1, Err: err}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&sideBySide, "side-by-side", "s", false, "Show old and new lines in two columns")
	cmd.Flags().StringVar(&color, "color", config.ColorAuto, "When to use colors: auto, always, never")
	cmd.Flags().IntVarP(&width, "width", "w", config.DefaultColumnWidth, "Column width for --side-by-side")
	return cmd
}

func newSliceCommand(env *environment) *cobra.Command {
	var fileIndex int
	var from, to string

	cmd := &cobra.Command{
		Use:   "slice [file]",
		Short: "Print a patch containing only the selected lines of one file's diff",
		Long:  "slice keeps the edits between --from and --to (inclusive, each given as CHUNK:LINE with 0-based indexes) and neutralizes the rest, so the output can be applied with `git apply`, `git apply --cached` or `git apply --reverse` to stage, unstage or discard part of a change.",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := parseBoundary("from", from)
			if err != nil {
				return err
			}
			last, err := parseBoundary("to", to)
			if err != nil {
				return err
			}

			files, err := env.parseDiff(args)
			if err != nil {
				return err
			}
			f, err := selectFile(files, fileIndex)
			if err != nil {
				return err
			}

			sel := diff.SelectedLines{First: first, Last: last}.Normalize()
			log.Log("slicing file %d (%s) from %d:%d to %d:%d", fileIndex, f.NewName, sel.First.ChunkIndex, sel.First.LineIndex, sel.Last.ChunkIndex, sel.Last.LineIndex)
			sliced, err := diff.ModifyDiff(f, sel)
			if err != nil {
				return ExitError{Code: 1, Err: err}
			}
			_, err = io.WriteString(env.out, diff.SerializeDiff(sliced.Header, sliced))
			if err != nil {
				return ExitError{Code: 1, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&fileIndex, "file-index", 0, "Index of the file in the diff")
	cmd.Flags().StringVar(&from, "from", "", "First selected line as CHUNK:LINE")
	cmd.Flags().StringVar(&to, "to", "", "Last selected line as CHUNK:LINE")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newHighlightCommand(env *environment) *cobra.Command {
	var fileIndex, chunkIndex int

	cmd := &cobra.Command{
		Use:   "highlight [file]",
		Short: "Print the intra-line highlights of one chunk as JSON",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := env.parseDiff(args)
			if err != nil {
				return err
			}
			f, err := selectFile(files, fileIndex)
			if err != nil {
				return err
			}
			if chunkIndex < 0 || chunkIndex >= len(f.Chunks) {
				return ExitError{Code: 1, Err: fmt.Errorf("%w: chunk %d (file has %d chunks)", diff.ErrSelectionOutOfBounds, chunkIndex, len(f.Chunks))}
			}
			return writeJSON(env.out, diff.CalculateHighlightAreas(f.Chunks[chunkIndex]))
		},
	}
	cmd.Flags().IntVar(&fileIndex, "file-index", 0, "Index of the file in the diff")
	cmd.Flags().IntVar(&chunkIndex, "chunk", 0, "Index of the chunk in the file")
	return cmd
}

func newConflictsCommand(env *environment) *cobra.Command {
	var take string

	cmd := &cobra.Command{
		Use:   "conflicts [file]",
		Short: "Print the conflict blocks of a file, or resolve them",
		Long:  "Without --take, conflicts prints the file's blocks as JSON and exits 1 if any conflict block is present. With --take, every conflict block is resolved to the given side (\"both\" keeps ours, then theirs) and the merged text is printed.",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sides []conflict.Side
			switch take {
			case "":
			case "ours":
				sides = []conflict.Side{conflict.Ours}
			case "theirs":
				sides = []conflict.Side{conflict.Theirs}
			case "both":
				sides = []conflict.Side{conflict.Ours, conflict.Theirs}
			default:
				return UsageError{Message: fmt.Sprintf("invalid --take: must be ours, theirs or both (got %q)", take)}
			}

			text, err := env.readInput(args)
			if err != nil {
				return err
			}
			lines, err := conflict.ParseFile(text)
			if errors.Is(err, conflict.ErrUnterminatedConflict) {
				fmt.Fprintf(env.err, "warning: %v\n", err)
			} else if err != nil {
				return ExitError{Code: 1, Err: err}
			}

			blocks := conflict.CalculateBlocks(lines)
			for i, b := range blocks {
				if !b.IsConflict {
					continue
				}
				for _, side := range sides {
					if blocks, err = conflict.ToggleBlock(blocks, side, i); err != nil {
						return ExitError{Code: 1, Err: err}
					}
				}
			}

			if take == "" {
				if err := writeJSON(env.out, blocks); err != nil {
					return err
				}
			} else {
				if _, err := io.WriteString(env.out, conflict.Render(conflict.Merge(blocks))); err != nil {
					return ExitError{Code: 1, Err: err}
				}
			}

			if conflict.HasUnresolved(blocks) {
				n := 0
				for _, b := range blocks {
					if b.IsConflict {
						n++
					}
				}
				return ExitError{Code: 1, Err: fmt.Errorf("%d unresolved conflict blocks", n)}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&take, "take", "", "Resolve every conflict block to ours, theirs, or both")
	return cmd
}

func (env *environment) parseDiff(args []string) ([]diff.FileDiff, error) {
	text, err := env.readInput(args)
	if err != nil {
		return nil, err
	}
	files, err := diff.Parse(text)
	if err != nil {
		return nil, ExitError{Code: 1, Err: err}
	}
	log.Log("parsed %d files", len(files))
	return files, nil
}

func selectFile(files []diff.FileDiff, index int) (diff.FileDiff, error) {
	if index < 0 || index >= len(files) {
		return diff.FileDiff{}, ExitError{Code: 1, Err: fmt.Errorf("%w: file %d (diff has %d files)", diff.ErrSelectionOutOfBounds, index, len(files))}
	}
	return files[index], nil
}

// parseBoundary parses a CHUNK:LINE flag value.
func parseBoundary(flag, value string) (diff.SelectionBoundary, error) {
	chunkPart, linePart, ok := strings.Cut(value, ":")
	if ok {
		chunk, errChunk := strconv.Atoi(chunkPart)
		line, errLine := strconv.Atoi(linePart)
		if errChunk == nil && errLine == nil {
			return diff.SelectionBoundary{ChunkIndex: chunk, LineIndex: line}, nil
		}
	}
	return diff.SelectionBoundary{}, UsageError{Message: fmt.Sprintf("invalid --%s: expected CHUNK:LINE (got %q)", flag, value)}
}

// resolveColor decides whether to emit colors. "auto" means yes when w is a terminal and NO_COLOR is not set.
func resolveColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case config.ColorAlways:
		return true, nil
	case config.ColorNever:
		return false, nil
	case config.ColorAuto:
		if termenv.EnvNoColor() {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, UsageError{Message: fmt.Sprintf("invalid --color: must be auto, always or never (got %q)", mode)}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return ExitError{Code: 1, Err: err}
	}
	return nil
}
