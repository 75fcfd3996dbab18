package stream

import (
	"errors"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// textDecoder converts byte chunks to UTF-8 text incrementally. Incomplete
// multi-byte sequences at the end of a chunk are held back until the next
// one; invalid sequences become U+FFFD and a leading BOM is dropped.
type textDecoder struct {
	t       transform.Transformer
	pending []byte
	dst     []byte
}

func newTextDecoder() *textDecoder {
	return &textDecoder{
		t:   unicode.UTF8BOM.NewDecoder(),
		dst: make([]byte, 4096),
	}
}

// decode appends the text of chunk to out and returns it.
func (d *textDecoder) decode(out, chunk []byte) ([]byte, error) {
	src := chunk
	if len(d.pending) > 0 {
		src = append(d.pending, chunk...)
		d.pending = nil
	}
	for {
		nDst, nSrc, err := d.t.Transform(d.dst, src, false)
		out = append(out, d.dst[:nDst]...)
		src = src[nSrc:]
		switch {
		case err == nil:
			return out, nil
		case errors.Is(err, transform.ErrShortDst):
			if nDst == 0 && nSrc == 0 {
				d.dst = make([]byte, 2*len(d.dst))
			}
		case errors.Is(err, transform.ErrShortSrc):
			d.pending = append([]byte(nil), src...)
			return out, nil
		default:
			return out, err
		}
	}
}
