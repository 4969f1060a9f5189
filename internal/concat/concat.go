package concat

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/mmr-tortoise/cat/internal/source"
)

// Formatting constants define the exact bytes the engine interleaves with
// source data. They are load-bearing for output compatibility and must not
// change shape.
const (
	// numberPrefix precedes every line-number annotation: five literal
	// spaces, then the decimal counter, then one horizontal tab.
	numberPrefix = "     "

	// endMarker is written immediately before a line terminator when
	// end-of-line marking is enabled.
	endMarker = '$'

	// lineTerm is the single-byte logical line terminator.
	lineTerm = '\n'

	// diagPrefix starts every inline resolution-failure line.
	diagPrefix = "cat: "
)

// linePosition tracks whether the next byte written begins a new logical
// line. It is a run-long value: only emitting a terminator (or a failure
// boundary) resets it to atLineStart, never the mere start of a new source.
type linePosition int

const (
	atLineStart linePosition = iota
	midLine
)

// Concatenator copies an ordered sequence of resolved sources to one
// output sink, with optional line numbering and end-of-line marking.
// The zero value (via New with no options) is a plain concatenator whose
// output is byte-for-byte the concatenation of its inputs.
//
// A Concatenator holds only configuration; all run state lives in
// Concatenate, so the same Concatenator can be reused and two runs over
// the same inputs produce identical output.
type Concatenator struct {
	numberLines bool
	showEnds    bool
}

// Option configures a Concatenator.
type Option func(*Concatenator)

// WithLineNumbers enables the per-line annotation: five spaces, the
// 1-based global line number, one tab.
func WithLineNumbers() Option {
	return func(c *Concatenator) {
		c.numberLines = true
	}
}

// WithEndMarkers enables a visible '$' immediately before every line
// terminator.
func WithEndMarkers() Option {
	return func(c *Concatenator) {
		c.showEnds = true
	}
}

// New creates a Concatenator with the given options applied.
func New(opts ...Option) *Concatenator {
	c := &Concatenator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// run carries the mutable state of one Concatenate call: the buffered
// sink, the run-global line counter, and the line-position flag.
type run struct {
	w       *bufio.Writer
	pos     linePosition
	counter int
}

// Concatenate drains every source in order into out.
//
// Failed sources contribute exactly one diagnostic line and are skipped;
// they never advance the line counter. Read errors on a live stream and
// write or flush errors on the sink are fatal: Concatenate stops
// immediately and returns the error, leaving later sources unprocessed.
//
// Each successfully drained source is closed when exhausted. Sources
// left unprocessed by a fatal error remain open for the caller to clean
// up before the process exits.
func (c *Concatenator) Concatenate(sources []source.Resolved, out io.Writer) error {
	r := &run{
		w:       bufio.NewWriter(out),
		pos:     atLineStart,
		counter: 1,
	}

	for _, src := range sources {
		if src.Failed() {
			if err := c.reportFailure(r, src.Failure); err != nil {
				return err
			}
			continue
		}

		err := c.drain(r, src.Stream)
		// Close errors on exhausted read-only sources carry no signal;
		// the read loop already saw EOF.
		_ = src.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// drain copies one stream to the sink, chunk by chunk, until the stream
// reports EOF. The scan per chunk: annotate if a new line is starting,
// write up to (not including) the first terminator, then either close the
// line out or record that it continues into the next chunk.
func (c *Concatenator) drain(r *run, in source.ChunkReader) error {
	for {
		chunk, err := in.NextChunk()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}

		if r.pos == atLineStart && c.numberLines {
			if _, err := fmt.Fprintf(r.w, "%s%d\t", numberPrefix, r.counter); err != nil {
				return err
			}
			r.counter++
		}

		// Write the entire chunk, or the bytes before the first
		// terminator if one is present.
		span := chunk
		term := bytes.IndexByte(chunk, lineTerm)
		if term >= 0 {
			span = chunk[:term]
		}
		if _, err := r.w.Write(span); err != nil {
			return err
		}

		consumed := len(span)
		if term >= 0 {
			if err := c.endLine(r); err != nil {
				return err
			}
			// The terminator itself was consumed from the source but
			// rewritten by endLine.
			consumed++
		} else {
			// No terminator in this chunk: either more of the line is
			// coming in the next chunk, or the stream ends mid-line.
			// The two cases are indistinguishable here and need no
			// distinction — the EOF check above terminates the loop.
			r.pos = midLine
		}

		if err := in.Advance(consumed); err != nil {
			return fmt.Errorf("reading source: %w", err)
		}
		if err := r.w.Flush(); err != nil {
			return err
		}
	}
}

// endLine closes out the current logical line: optional '$' marker, the
// terminator, and the state reset that re-arms line-start detection.
// This is the only place the position flag returns to atLineStart during
// normal copying.
func (c *Concatenator) endLine(r *run) error {
	if c.showEnds {
		if err := r.w.WriteByte(endMarker); err != nil {
			return err
		}
	}
	if err := r.w.WriteByte(lineTerm); err != nil {
		return err
	}
	r.pos = atLineStart
	return nil
}

// reportFailure writes the inline diagnostic for an unresolvable source
// and flushes it immediately so it appears at the correct position even
// when the run later stalls.
//
// A failure forces a line break on both sides of its message: if the
// previous source left the run mid-line, that partial line is closed out
// first (marker included when enabled), and the source after the failure
// starts a fresh line. The line counter is untouched — diagnostic lines
// are never numbered.
func (c *Concatenator) reportFailure(r *run, message string) error {
	if r.pos == midLine {
		if err := c.endLine(r); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(r.w, "%s%s%c", diagPrefix, message, lineTerm); err != nil {
		return err
	}
	return r.w.Flush()
}
