package stream

import (
	"context"
	"errors"
	"io"
	"sync"
)

// DefaultReadSize is the read buffer size used by ReaderSource.
const DefaultReadSize = 32 * 1024

// Source is a pull-based byte source. Next returns (chunk, true, nil) while
// data remains and (nil, false, nil) at end of stream. Release frees the
// underlying handle and is safe to call more than once.
type Source interface {
	Next(ctx context.Context) ([]byte, bool, error)
	Release()
}

// ReaderSource adapts an io.ReadCloser, typically an HTTP response body.
type ReaderSource struct {
	r       io.ReadCloser
	buf     []byte
	eof     bool
	release sync.Once
}

// NewReaderSource wraps r. The reader is closed on Release.
func NewReaderSource(r io.ReadCloser) *ReaderSource {
	return &ReaderSource{r: r, buf: make([]byte, DefaultReadSize)}
}

// Next reads the next chunk from the underlying reader.
func (s *ReaderSource) Next(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	for !s.eof {
		n, err := s.r.Read(s.buf)
		if errors.Is(err, io.EOF) {
			s.eof = true
		} else if err != nil {
			return nil, false, err
		}
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, s.buf[:n])
			return chunk, true, nil
		}
	}
	return nil, false, nil
}

// Release closes the underlying reader exactly once.
func (s *ReaderSource) Release() {
	s.release.Do(func() {
		_ = s.r.Close()
	})
}

// ChunkSource replays a fixed sequence of chunks. A non-nil Err is returned
// once the chunks are exhausted instead of a clean end of stream.
type ChunkSource struct {
	Chunks   [][]byte
	Err      error
	Released int

	pos int
}

// NewChunkSource builds a ChunkSource from strings.
func NewChunkSource(chunks ...string) *ChunkSource {
	out := make([][]byte, len(chunks))
	for i, c := range chunks {
		out[i] = []byte(c)
	}
	return &ChunkSource{Chunks: out}
}

// Next returns the next stored chunk.
func (s *ChunkSource) Next(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if s.pos < len(s.Chunks) {
		chunk := s.Chunks[s.pos]
		s.pos++
		return chunk, true, nil
	}
	if s.Err != nil {
		return nil, false, s.Err
	}
	return nil, false, nil
}

// Release counts releases so callers can verify the handle discipline.
func (s *ChunkSource) Release() {
	s.Released++
}
