// Package model defines the domain types and value objects for the
// cat CLI.
//
// This package contains pure data structures with no external dependencies:
// source descriptors (stdin or named file), the display options consumed by
// the concatenation engine, and the exit-code / error types used by the CLI
// layer to translate failures into OS process exit codes.
//
// A Source is a closed, immutable value constructed by the CLI layer and
// consumed by the source resolver. It carries no open handle — resolving a
// descriptor into a readable stream is the job of the source package.
package model
