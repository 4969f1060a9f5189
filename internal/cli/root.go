// Package cli implements the cobra-based command-line interface for cat.
//
// The tool has a single operation, so the root command does the work
// itself instead of dispatching to subcommands. This file defines the
// root command, the flag-to-option mapping, the config-file default
// merging, and the error-to-exit-code translation in Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/cat/internal/concat"
	"github.com/mmr-tortoise/cat/internal/config"
	"github.com/mmr-tortoise/cat/internal/model"
	"github.com/mmr-tortoise/cat/internal/source"
)

// verbose enables detailed logging output for debugging. It is bound to
// the --verbose persistent flag. Verbose output goes to stderr only —
// the stdout stream is the concatenated data itself and must never be
// polluted with diagnostics beyond the inline "cat: ..." lines.
var verbose bool

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// rootFlags holds the flag values for the root command.
// These are bound to cobra flags in NewRootCommand.
type rootFlags struct {
	// number annotates output lines with 1-based sequential numbers,
	// counted globally across all inputs.
	number bool

	// showEnds displays a '$' at the end of each line.
	showEnds bool

	// configPath names an explicit defaults file. When empty, the
	// standard config locations are probed instead.
	configPath string
}

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "cat [flags] [file...]",
		Short: "Concatenate FILE(s) to standard output",
		Long: `Concatenate FILE(s) to standard output.

With no FILE, or when FILE is -, read standard input.

A file that cannot be opened is reported inline on standard output
("cat: {file}: {reason}") and the remaining files are still processed.

Examples:
  cat notes.txt
  cat -n first.txt second.txt
  cat -E - < input.txt`,

		// Positional arguments are file paths; any number is valid,
		// including none (which reads standard input).
		Args: cobra.ArbitraryArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves in Execute.
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(cmd, flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.number, "number", "n", false, "number all output lines")
	cmd.Flags().BoolVarP(&flags.showEnds, "show-ends", "E", false, "display $ at end of each line")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "defaults file (YAML or JSONC)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output on stderr")

	return cmd
}

// runCat is the main logic function for the root command. It merges
// config-file defaults with explicitly-set flags, maps the positional
// arguments to source descriptors, resolves them, and hands the ordered
// resolved sequence to the concatenation engine.
//
// Input and output streams come from the cobra command (cmd.InOrStdin /
// cmd.OutOrStdout), which lets tests substitute in-memory buffers.
func runCat(cmd *cobra.Command, flags *rootFlags, args []string) error {
	opts, bufferSize, err := effectiveOptions(cmd, flags)
	if err != nil {
		return err
	}

	// Step 1: map command-line arguments to source descriptors,
	// preserving order ("-" means stdin; no args defaults to stdin).
	descriptors := model.ParseSources(args)
	VerboseLog("Concatenating %d source(s)", len(descriptors))

	// Step 2: resolve every descriptor up front. Failures stay in place
	// as values so the engine reports them at the right position.
	resolverOpts := []source.ResolverOption{source.WithStdin(cmd.InOrStdin())}
	if bufferSize > 0 {
		resolverOpts = append(resolverOpts, source.WithBufferSize(bufferSize))
	}
	resolved := source.NewResolver(resolverOpts...).ResolveAll(descriptors)

	// The engine closes each source it drains; this sweep only matters
	// when a fatal error leaves later sources untouched.
	defer closeAll(resolved)

	for _, res := range resolved {
		if res.Failed() {
			VerboseLog("Could not open %s", res.Name)
		} else {
			VerboseLog("Resolved %s", res.Name)
		}
	}

	// Step 3: run the scan-copy engine over the resolved sequence.
	var engineOpts []concat.Option
	if opts.NumberLines {
		engineOpts = append(engineOpts, concat.WithLineNumbers())
	}
	if opts.ShowEnds {
		engineOpts = append(engineOpts, concat.WithEndMarkers())
	}

	if err := concat.New(engineOpts...).Concatenate(resolved, cmd.OutOrStdout()); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "concatenating sources", err)
	}
	return nil
}

// effectiveOptions computes the display options and buffer size for
// this run: config-file values (explicit --config path, or discovered
// in the standard locations) first, then explicitly-set command-line
// flags on top.
//
// Flags().Changed distinguishes "flag left at its default" from "flag
// explicitly set to the default value", so `--number=false` still
// overrides a config file's `number: true`.
func effectiveOptions(cmd *cobra.Command, flags *rootFlags) (model.Options, int, error) {
	var opts model.Options
	var bufferSize int

	path := flags.configPath
	if path == "" {
		path = config.Find()
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return opts, 0, model.WrapCLIError(model.ExitBadConfig, "loading defaults", err)
		}
		bufferSize = cfg.Apply(&opts)
		VerboseLog("Loaded defaults from %s", path)
	}

	if cmd.Flags().Changed("number") {
		opts.NumberLines = flags.number
	}
	if cmd.Flags().Changed("show-ends") {
		opts.ShowEnds = flags.showEnds
	}
	return opts, bufferSize, nil
}

// closeAll releases whatever file handles are still open. Sources the
// engine already drained were closed there; double closes on os.File
// are harmless and ignored.
func closeAll(resolved []source.Resolved) {
	for _, res := range resolved {
		_ = res.Close()
	}
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		// Generic error (including cobra flag-parse errors) — exit 1.
		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes a fatal error to stderr. Inline per-source
// diagnostics never come through here — those are part of the output
// stream; this path is for errors that abort the whole run.
func printError(message string, underlying error) {
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

// VerboseLog prints a diagnostic line to stderr when --verbose is set.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[cat] "+format+"\n", args...)
	}
}
