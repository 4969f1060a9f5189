// Package concat implements the buffered scan-and-copy engine at the
// heart of the cat CLI.
//
// The engine drains an ordered sequence of resolved sources into a single
// output sink. It never materializes a whole line or a whole file: each
// iteration peeks at whatever span of bytes the source has buffered, scans
// that span for a line terminator, writes the appropriate prefix of it, and
// advances the source past exactly the bytes written. Correctness does not
// depend on chunk size — a chunk may hold many lines' worth of bytes or a
// fraction of one line.
//
// Two display options decorate the copy: a 1-based line-number annotation
// at the start of each logical line, and a visible '$' marker before each
// line terminator. The line counter is global to the run; it is never reset
// between sources.
//
// Line-start detection is driven purely by "a terminator was just written".
// A source that ends mid-line therefore merges with the first bytes of the
// following source — one logical line, one annotation. The two exceptions
// that force a fresh line are the very first byte of the run and a source
// resolution failure, whose diagnostic always occupies a line of its own.
//
// Sources that failed to resolve are reported inline on the same output
// stream ("cat: {message}") and skipped; read or write errors on live
// streams abort the whole run.
package concat
