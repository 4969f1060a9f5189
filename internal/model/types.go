package model

import "fmt"

// SourceKind identifies what a Source descriptor points at.
// There are exactly two kinds: the process's standard input and a
// named file path.
type SourceKind string

const (
	// SourceStdin selects the process's standard input stream.
	SourceStdin SourceKind = "stdin"

	// SourceFile selects a named file opened for reading.
	SourceFile SourceKind = "file"
)

// String returns the string representation of SourceKind.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in verbose logging.
func (k SourceKind) String() string {
	return string(k)
}

// IsValid checks whether the SourceKind value is one of the
// predefined valid kinds.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceStdin, SourceFile:
		return true
	default:
		return false
	}
}

// Source is an input descriptor: either standard input or a named file.
// It is an immutable value created by the CLI layer before the run starts
// and consumed by the resolver when its turn in the sequence comes.
//
// Path is only meaningful when Kind is SourceFile.
type Source struct {
	// Kind selects stdin vs named file.
	Kind SourceKind

	// Path is the file path to open. Empty for stdin descriptors.
	Path string
}

// Stdin returns a descriptor for the process's standard input.
func Stdin() Source {
	return Source{Kind: SourceStdin}
}

// File returns a descriptor for the named file path.
func File(path string) Source {
	return Source{Kind: SourceFile, Path: path}
}

// String returns a display name for the source, used in verbose logging.
// Stdin descriptors render as "-" to match the command-line convention.
func (s Source) String() string {
	if s.Kind == SourceStdin {
		return "-"
	}
	return s.Path
}

// ParseSources maps command-line file arguments to an ordered list of
// source descriptors:
//
//   - a literal "-" token maps to standard input
//   - any other token maps to a named file path
//   - an empty argument list defaults to a single stdin descriptor
//
// The caller-specified order is preserved; "-" may appear multiple times
// and each occurrence is a separate stdin descriptor.
func ParseSources(args []string) []Source {
	if len(args) == 0 {
		return []Source{Stdin()}
	}
	sources := make([]Source, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			sources = append(sources, Stdin())
		} else {
			sources = append(sources, File(arg))
		}
	}
	return sources
}

// Options holds the two display options consumed by the concatenation
// engine. Both default to off and are freely combinable.
type Options struct {
	// NumberLines annotates each output line with a 1-based sequential
	// number, counted globally across all sources in the run.
	NumberLines bool

	// ShowEnds writes a single '$' immediately before every line
	// terminator in the output.
	ShowEnds bool
}

// ExitCode defines the CLI process exit codes.
type ExitCode int

const (
	// ExitSuccess indicates the run completed successfully. Per-source
	// resolution failures are recovered and reported inline, so a run
	// that skipped unopenable files still exits 0.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates a fatal failure: a read error on an
	// already-resolved source, or a write/flush error on the output sink.
	ExitGeneralError ExitCode = 1

	// ExitBadConfig indicates the config file could not be read or parsed.
	ExitBadConfig ExitCode = 2
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As chains.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
