package source

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/cat/internal/model"
)

// writeTempFile creates a file with the given content inside a
// test-scoped temp directory and returns its path.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// drain reads a ChunkReader to exhaustion, consuming every chunk in
// full, and returns the concatenated bytes.
func drain(t *testing.T, cr ChunkReader) string {
	t.Helper()
	var out strings.Builder
	for {
		chunk, err := cr.NextChunk()
		if err == io.EOF {
			return out.String()
		}
		require.NoError(t, err)
		require.NotEmpty(t, chunk, "NextChunk must never return an empty chunk with a nil error")
		out.Write(chunk)
		require.NoError(t, cr.Advance(len(chunk)))
	}
}

// TestResolve_File verifies that a readable file resolves to an open
// stream that yields the file's exact contents.
func TestResolve_File(t *testing.T) {
	path := writeTempFile(t, "input.txt", "hello\nworld\n")

	res := NewResolver().Resolve(model.File(path))
	defer func() { _ = res.Close() }()

	require.False(t, res.Failed())
	require.NotNil(t, res.Stream)
	assert.Equal(t, path, res.Name)
	assert.Equal(t, "hello\nworld\n", drain(t, res.Stream))
}

// TestResolve_MissingFile verifies the failure message format for an
// unopenable file: "{path}: {underlying error text}", without the
// "open {path}:" wrapper that os.Open adds.
func TestResolve_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")

	res := NewResolver().Resolve(model.File(path))

	require.True(t, res.Failed())
	assert.Nil(t, res.Stream)
	assert.True(t, strings.HasPrefix(res.Failure, path+": "),
		"failure message should start with the path, got %q", res.Failure)
	assert.NotContains(t, res.Failure, "open "+path,
		"failure message should carry the underlying error, not the PathError wrapper")

	// Closing a failed source is a no-op.
	assert.NoError(t, res.Close())
}

// TestResolve_Stdin verifies that stdin descriptors always resolve and
// read from the resolver's bound stdin reader.
func TestResolve_Stdin(t *testing.T) {
	r := NewResolver(WithStdin(strings.NewReader("from stdin")))

	res := r.Resolve(model.Stdin())

	require.False(t, res.Failed())
	assert.Equal(t, "-", res.Name)
	assert.Equal(t, "from stdin", drain(t, res.Stream))
	assert.NoError(t, res.Close(), "stdin sources have no handle to close")
}

// TestResolveAll verifies that order is preserved and failures stay in
// place as values within the resolved sequence.
func TestResolveAll(t *testing.T) {
	good := writeTempFile(t, "good.txt", "ok")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	resolver := NewResolver(WithStdin(strings.NewReader("")))
	resolved := resolver.ResolveAll([]model.Source{
		model.File(good),
		model.File(missing),
		model.Stdin(),
	})

	require.Len(t, resolved, 3)
	assert.False(t, resolved[0].Failed())
	assert.True(t, resolved[1].Failed())
	assert.False(t, resolved[2].Failed())
	for _, res := range resolved {
		_ = res.Close()
	}
}

// TestChunkReader_SmallBuffer verifies the fill/consume contract with a
// buffer far smaller than the input: chunks never exceed the buffer
// size, partial Advance re-exposes the remaining bytes, and the reader
// terminates with io.EOF.
func TestChunkReader_SmallBuffer(t *testing.T) {
	// 16 is bufio's minimum buffer size.
	const size = 16
	input := strings.Repeat("abcdefgh", 10) // 80 bytes, no newlines

	cr := NewChunkReader(strings.NewReader(input), size)

	var out strings.Builder
	for {
		chunk, err := cr.NextChunk()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.LessOrEqual(t, len(chunk), size)

		// Consume one byte at a time to exercise partial Advance.
		out.WriteByte(chunk[0])
		require.NoError(t, cr.Advance(1))
	}
	assert.Equal(t, input, out.String())
}

// TestChunkReader_EmptyInput verifies that an empty stream reports EOF
// on the very first chunk request.
func TestChunkReader_EmptyInput(t *testing.T) {
	cr := NewChunkReader(strings.NewReader(""), DefaultBufferSize)
	chunk, err := cr.NextChunk()
	assert.Nil(t, chunk)
	assert.ErrorIs(t, err, io.EOF)
}
