package source

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mmr-tortoise/cat/internal/model"
)

// DefaultBufferSize is the internal read buffer size used when the
// resolver is not configured otherwise. 32 KiB keeps syscall counts low
// on large files while staying far below any memory concern.
const DefaultBufferSize = 32 * 1024

// ChunkReader is the read capability the concatenation engine consumes.
// It mirrors a classic buffered-reader fill/consume contract:
//
//	NextChunk returns the next contiguous span of unread bytes sitting in
//	the internal buffer, refilling from the underlying stream when the
//	buffer is empty. It returns io.EOF once the stream is exhausted and
//	never returns an empty chunk with a nil error.
//
//	Advance marks n bytes of the most recent chunk as consumed, so the
//	next NextChunk call returns the bytes that follow.
//
// Callers must not retain a chunk across Advance or NextChunk calls; the
// slice aliases the internal buffer.
type ChunkReader interface {
	NextChunk() ([]byte, error)
	Advance(n int) error
}

// bufferedStream adapts a bufio.Reader to the ChunkReader contract.
// Peek(1) forces a refill when the buffer is empty; Peek(Buffered())
// then exposes everything currently buffered without copying.
type bufferedStream struct {
	r *bufio.Reader
}

func (b *bufferedStream) NextChunk() ([]byte, error) {
	if _, err := b.r.Peek(1); err != nil {
		// io.EOF signals a cleanly exhausted stream; anything else is a
		// real read error and is fatal to the run.
		return nil, err
	}
	return b.r.Peek(b.r.Buffered())
}

func (b *bufferedStream) Advance(n int) error {
	_, err := b.r.Discard(n)
	return err
}

// NewChunkReader wraps an arbitrary reader in a ChunkReader with the
// given buffer size. Sizes below bufio's minimum are raised by bufio
// itself. Used for standard input and by tests that need to force small
// chunk sizes.
func NewChunkReader(r io.Reader, size int) ChunkReader {
	return &bufferedStream{r: bufio.NewReaderSize(r, size)}
}

// Resolved is the outcome of resolving one source descriptor: either an
// open buffered stream, or a failure message describing why the source
// could not be opened. Exactly one of Stream / Failure is set.
//
// A Resolved value is owned by the engine while it is being drained and
// discarded once exhausted (or once its failure has been reported).
type Resolved struct {
	// Name is the display name of the source ("-" for stdin), carried
	// for verbose logging.
	Name string

	// Stream is the open buffered stream. Nil when resolution failed.
	Stream ChunkReader

	// Failure is the human-readable resolution failure, formatted as
	// "{path}: {underlying error text}". Empty when resolution succeeded.
	Failure string

	closer io.Closer
}

// Failed reports whether this source could not be opened.
func (r Resolved) Failed() bool {
	return r.Failure != ""
}

// Close releases the underlying file handle, if any. Closing a failed
// source or a stdin source is a no-op. Close is idempotent only to the
// extent the underlying handle's Close is; callers close each source
// exactly once, after draining it.
func (r Resolved) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Resolver turns source descriptors into Resolved values.
//
// The struct is configurable with the read buffer size so that callers
// (and tests) can control chunking granularity; it is otherwise
// stateless and safe to reuse across descriptors.
type Resolver struct {
	bufferSize int
	stdin      io.Reader
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithBufferSize sets the internal read buffer size for every stream
// the resolver opens.
func WithBufferSize(size int) ResolverOption {
	return func(r *Resolver) {
		if size > 0 {
			r.bufferSize = size
		}
	}
}

// WithStdin substitutes the reader used for stdin descriptors.
// Tests use this to feed canned input without touching os.Stdin.
func WithStdin(in io.Reader) ResolverOption {
	return func(r *Resolver) {
		r.stdin = in
	}
}

// NewResolver creates a Resolver with the default buffer size bound to
// the process's standard input.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		bufferSize: DefaultBufferSize,
		stdin:      os.Stdin,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve opens the descriptor's underlying byte stream.
//
// Stdin descriptors always resolve successfully: the hosting process is
// assumed to have a standard input handle, even if it is empty or
// already closed. File descriptors attempt os.Open; on error the
// returned value carries a failure message instead of a stream, and the
// caller is expected to report it and continue with the next source.
func (r *Resolver) Resolve(src model.Source) Resolved {
	switch src.Kind {
	case model.SourceStdin:
		return Resolved{
			Name:   src.String(),
			Stream: NewChunkReader(r.stdin, r.bufferSize),
		}
	default:
		f, err := os.Open(src.Path)
		if err != nil {
			return Resolved{
				Name:    src.String(),
				Failure: fmt.Sprintf("%s: %v", src.Path, underlying(err)),
			}
		}
		return Resolved{
			Name:   src.String(),
			Stream: NewChunkReader(f, r.bufferSize),
			closer: f,
		}
	}
}

// ResolveAll resolves an ordered descriptor list, preserving order.
// Failures stay in place as values so the engine reports each one at
// the position its source holds in the sequence.
func (r *Resolver) ResolveAll(srcs []model.Source) []Resolved {
	resolved := make([]Resolved, 0, len(srcs))
	for _, src := range srcs {
		resolved = append(resolved, r.Resolve(src))
	}
	return resolved
}

// underlying strips the *fs.PathError wrapper that os.Open adds, so the
// failure message reads "{path}: {error}" rather than
// "{path}: open {path}: {error}".
func underlying(err error) error {
	if pe, ok := err.(*os.PathError); ok {
		return pe.Err
	}
	return err
}
