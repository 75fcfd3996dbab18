// Package stream decodes newline-delimited JSON from a chunked byte source,
// such as the body of a streaming HTTP search response.
package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/people-finder/internal/logger"
	"github.com/jonathan/people-finder/internal/payload"
)

// ErrConsumed is returned when a Decoder is used more than once.
var ErrConsumed = errors.New("stream decoder already used")

// Error reports that the byte source could not be read to completion.
// Records gathered before the failure are discarded.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stream error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("stream error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Stats counts what happened to each newline-terminated segment.
type Stats struct {
	Chunks    int // chunks pulled from the source
	Segments  int // newline-terminated segments seen
	Blank     int // empty or whitespace-only segments
	Malformed int // segments that were not valid JSON
	Gated     int // valid JSON without a ggId or ardaId
	Records   int // records collected
	TailBytes int // unterminated bytes discarded at end of stream
}

// Decoder turns a Source into identity-bearing JSON objects. It is one-shot:
// a second call to Decode fails with ErrConsumed.
type Decoder struct {
	src     Source
	text    *textDecoder
	buf     []byte
	records []payload.Object
	stats   Stats
	used    bool
}

// NewDecoder creates a decoder that owns src until Decode returns.
func NewDecoder(src Source) *Decoder {
	return &Decoder{src: src, text: newTextDecoder()}
}

// Decode drains the source and returns the collected records in arrival order.
//
// Segments that are blank or fail to parse are skipped. Text after the last
// newline is dropped when the stream ends, even when it is valid JSON. The
// source is released on every return path.
func (d *Decoder) Decode(ctx context.Context) ([]payload.Object, error) {
	if d.used {
		return nil, ErrConsumed
	}
	d.used = true
	defer d.src.Release()

	log := logger.C(ctx).With().Str("component", "stream").Logger()

	for {
		chunk, more, err := d.src.Next(ctx)
		if err != nil {
			d.records = nil
			return nil, &Error{Message: "unable to read response stream", Cause: err}
		}
		if !more {
			break
		}
		d.stats.Chunks++

		d.buf, err = d.text.decode(d.buf, chunk)
		if err != nil {
			d.records = nil
			return nil, &Error{Message: "unable to decode response text", Cause: err}
		}
		d.drain()
	}

	d.stats.TailBytes = len(d.buf)
	d.buf = nil

	log.Debug().
		Int("chunks", d.stats.Chunks).
		Int("segments", d.stats.Segments).
		Int("records", d.stats.Records).
		Int("malformed", d.stats.Malformed).
		Int("gated", d.stats.Gated).
		Int("tail_bytes", d.stats.TailBytes).
		Msg("stream decoded")

	records := d.records
	if records == nil {
		records = []payload.Object{}
	}
	return records, nil
}

// Stats returns segment counters for the last Decode call.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// drain consumes every newline-terminated segment in the buffer and keeps
// only the trailing partial one.
func (d *Decoder) drain() {
	last := bytes.LastIndexByte(d.buf, '\n')
	if last < 0 {
		return
	}
	rest := d.buf[:last+1]
	for len(rest) > 0 {
		i := bytes.IndexByte(rest, '\n')
		d.consider(rest[:i])
		rest = rest[i+1:]
	}
	d.buf = append(d.buf[:0], d.buf[last+1:]...)
}

// consider applies the segment policy: skip blanks, drop malformed JSON,
// keep only objects that carry an identity key.
func (d *Decoder) consider(segment []byte) {
	d.stats.Segments++
	if !isCandidate(segment) {
		d.stats.Blank++
		return
	}
	obj, isObject, err := payload.Decode(segment)
	if err != nil {
		d.stats.Malformed++
		return
	}
	if !isObject || !obj.HasIdentity() {
		d.stats.Gated++
		return
	}
	d.stats.Records++
	d.records = append(d.records, obj)
}

// isCandidate reports whether a segment is worth parsing.
func isCandidate(segment []byte) bool {
	return len(bytes.TrimSpace(segment)) > 0
}

// Decode is a convenience wrapper around NewDecoder(src).Decode(ctx).
func Decode(ctx context.Context, src Source) ([]payload.Object, Stats, error) {
	d := NewDecoder(src)
	records, err := d.Decode(ctx)
	return records, d.Stats(), err
}
