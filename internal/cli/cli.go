// Package cli implements the corydiff command line: parsing, rendering, slicing and highlighting unified diffs, and resolving conflict-marker files.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/corylus-git/corylus-sub000/internal/config"
	"github.com/corylus-git/corylus-sub000/internal/simplelogger"
)

// Version is the corydiff version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// RunOptions overrides standard I/O. If nil or a field is nil, the os default is used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// ExitError is returned by a command that failed after its arguments were accepted. Code is the process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

// UsageError is returned for malformed arguments or flags.
type UsageError struct {
	Message string
}

func (e UsageError) Error() string {
	return e.Message
}

var log = simplelogger.For("cli")

// Run runs the CLI with args (typically os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (flags are correct, etc).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	env := &environment{in: os.Stdin, out: os.Stdout, err: os.Stderr}
	if opts != nil {
		if opts.In != nil {
			env.in = opts.In
		}
		if opts.Out != nil {
			env.out = opts.Out
		}
		if opts.Err != nil {
			env.err = opts.Err
		}
	}
	defer simplelogger.SetMirror(nil)

	root := newRootCommand(env)
	root.SetArgs(argv)
	root.SetIn(env.in)
	root.SetOut(env.out)
	root.SetErr(env.err)

	err := root.Execute()
	if err == nil {
		return 0, nil
	}

	code := 2
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(env.err, "error: %s\n", msg)
	}
	if code == 2 {
		fmt.Fprintf(env.err, "Run '%s --help' for usage.\n", root.CommandPath())
	}
	return code, err
}

// environment is the state shared by every command of one Run.
type environment struct {
	in  io.Reader
	out io.Writer
	err io.Writer

	configPath string
	verbose    bool
	cfg        *config.Config
}

func newRootCommand(env *environment) *cobra.Command {
	root := &cobra.Command{
		Use:           "corydiff",
		Short:         "Parse, slice, highlight and render git diffs and conflict files",
		Long:          "corydiff reads unified diffs (as produced by `git diff` or `git show`) and files with merge conflict markers. It renders diffs with intra-line highlighting, cuts partial patches suitable for `git apply`, and resolves conflict blocks.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.setup()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return UsageError{Message: err.Error()}
	})

	root.PersistentFlags().StringVarP(&env.configPath, "config", "c", "", "Path to config file (default: ~/.config/corydiff/config.yaml)")
	root.PersistentFlags().BoolVarP(&env.verbose, "verbose", "v", false, "Mirror log output to stderr")

	root.AddCommand(
		newParseCommand(env),
		newShowCommand(env),
		newSliceCommand(env),
		newHighlightCommand(env),
		newConflictsCommand(env),
	)
	return root
}

// setup loads the configuration and wires logging. It runs before every subcommand.
func (env *environment) setup() error {
	if env.verbose {
		simplelogger.SetMirror(env.err)
	}

	cfg, err := config.Load(env.configPath)
	if err != nil {
		return ExitError{Code: 1, Err: fmt.Errorf("failed to load config: %w", err)}
	}
	if cfg.LogFile != "" && os.Getenv(simplelogger.EnvLogFile) == "" {
		if err := os.Setenv(simplelogger.EnvLogFile, cfg.LogFile); err != nil {
			return ExitError{Code: 1, Err: err}
		}
	}
	env.cfg = cfg

	source := cfg.Path
	if source == "" {
		source = "defaults"
	}
	log.Log("config loaded from %s: color=%s side_by_side=%t column_width=%d", source, cfg.Color, cfg.SideBySide, cfg.ColumnWidth)
	return nil
}

// readInput reads the file named by args[0], or stdin when there is no argument or it is "-".
func (env *environment) readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(env.in)
		if err != nil {
			return "", ExitError{Code: 1, Err: fmt.Errorf("reading stdin: %w", err)}
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", ExitError{Code: 1, Err: err}
	}
	return string(b), nil
}

// usageArgs wraps a cobra argument validator so its failures are reported as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return UsageError{Message: err.Error()}
		}
		return nil
	}
}
