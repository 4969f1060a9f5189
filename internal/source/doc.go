// Package source resolves input descriptors into open, buffered byte
// streams for the concatenation engine.
//
// The resolver is the boundary between "what to read" (a model.Source
// descriptor) and "something readable" (a Resolved value). Resolution of a
// named file can fail — missing file, permission denied — and that failure
// is expected and recoverable at the granularity of one source, so it is
// carried as a value inside Resolved rather than returned as an error. The
// engine reports failed entries inline and moves on.
//
// Resolved streams expose a ChunkReader: peek at the next span of buffered
// unread bytes, then advance past however many were consumed. The span size
// is a buffering detail, never a protocol guarantee — callers must be
// correct for any non-empty chunk size, including chunks smaller than a
// single line.
package source
