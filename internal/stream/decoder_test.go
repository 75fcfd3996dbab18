package stream

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/jonathan/people-finder/internal/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(t *testing.T, records []payload.Object) []string {
	t.Helper()
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Identity())
	}
	return out
}

func TestDecode_ChunkBoundaryInvariance(t *testing.T) {
	line := `{"ggId":"ä€😀","name":"Ñandú","professionalHeadline":"Go • Rust"}` + "\n"

	whole, _, err := Decode(context.Background(), NewChunkSource(line))
	require.NoError(t, err)
	require.Len(t, whole, 1)

	raw := []byte(line)
	for i := 0; i <= len(raw); i++ {
		src := &ChunkSource{Chunks: [][]byte{raw[:i], raw[i:]}}
		got, _, err := Decode(context.Background(), src)
		require.NoError(t, err, "offset %d", i)
		require.Len(t, got, 1, "offset %d", i)
		assert.Equal(t, whole[0], got[0], "offset %d", i)
	}
}

func TestDecode_OneByteChunks(t *testing.T) {
	input := `{"ggId":"a","name":"Zoë"}` + "\n" + `{"ardaId":42}` + "\n"
	src := &ChunkSource{}
	for i := 0; i < len(input); i++ {
		src.Chunks = append(src.Chunks, []byte{input[i]})
	}

	got, stats, err := Decode(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Zoë", got[0]["name"])
	assert.Equal(t, []string{"a", "42"}, ids(t, got))
	assert.Equal(t, len(input), stats.Chunks)
}

func TestDecode_TrailingPartialIsDropped(t *testing.T) {
	got, stats, err := Decode(context.Background(), NewChunkSource(`{"ggId":"a"}`+"\n"+`{"ggId":"b"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(t, got))
	assert.Equal(t, len(`{"ggId":"b"}`), stats.TailBytes)
}

func TestDecode_MalformedLineTolerance(t *testing.T) {
	got, stats, err := Decode(context.Background(), NewChunkSource(`{"ggId":"a"}`+"\nNOT-JSON\n"+`{"ggId":"b"}`+"\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(t, got))
	assert.Equal(t, 1, stats.Malformed)
	assert.Equal(t, 2, stats.Records)
}

func TestDecode_IdentityGate(t *testing.T) {
	input := `{"name":"X"}` + "\n" + `{"ardaId":123}` + "\n" + `[1,2,3]` + "\n" + `{"ggId":""}` + "\n"
	got, stats, err := Decode(context.Background(), NewChunkSource(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "123", got[0].Identity())
	assert.Equal(t, 3, stats.Gated)
}

func TestDecode_BlankSegmentsSkipped(t *testing.T) {
	input := "\n   \n\t\r\n" + `{"ggId":"a"}` + "\r\n\n"
	got, stats, err := Decode(context.Background(), NewChunkSource(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(t, got))
	assert.Equal(t, 4, stats.Blank)
	assert.Zero(t, stats.Malformed)
}

func TestDecode_PreservesOrderAcrossChunks(t *testing.T) {
	src := NewChunkSource(
		`{"ggId":"1"}`+"\n"+`{"gg`,
		`Id":"2"}`+"\n"+`{"ggId":"3"}`,
		"\n",
		`{"ggId":"4"}`+"\n",
	)
	got, _, err := Decode(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(t, got))
}

func TestDecode_StripsLeadingBOM(t *testing.T) {
	got, _, err := Decode(context.Background(), NewChunkSource("\xef\xbb", "\xbf"+`{"ggId":"a"}`+"\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(t, got))
}

func TestDecode_InvalidUTF8IsReplaced(t *testing.T) {
	got, _, err := Decode(context.Background(), NewChunkSource(`{"ggId":"a","name":"x`+"\xff"+`y"}`+"\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x�y", got[0]["name"])
}

func TestDecode_EmptyStream(t *testing.T) {
	got, stats, err := Decode(context.Background(), NewChunkSource())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, stats.Segments)
}

func TestDecode_ReleasesOnSuccess(t *testing.T) {
	src := NewChunkSource(`{"ggId":"a"}` + "\n")
	_, _, err := Decode(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, src.Released)
}

func TestDecode_TransportErrorDiscardsPartialResults(t *testing.T) {
	boom := errors.New("connection reset")
	src := NewChunkSource(`{"ggId":"a"}`+"\n", `{"ggId":"b"}`+"\n")
	src.Err = boom

	got, _, err := Decode(context.Background(), src)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, src.Released)

	var streamErr *Error
	require.ErrorAs(t, err, &streamErr)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "unable to read response stream")
}

func TestDecode_CanceledContextIsStreamError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewChunkSource(`{"ggId":"a"}` + "\n")
	_, _, err := Decode(ctx, src)

	var streamErr *Error
	require.ErrorAs(t, err, &streamErr)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, src.Released)
}

func TestDecoder_IsOneShot(t *testing.T) {
	src := NewChunkSource(`{"ggId":"a"}` + "\n")
	d := NewDecoder(src)

	_, err := d.Decode(context.Background())
	require.NoError(t, err)

	_, err = d.Decode(context.Background())
	assert.ErrorIs(t, err, ErrConsumed)
	assert.Equal(t, 1, src.Released)
}

type closeCounter struct {
	io.Reader
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestReaderSource_OneByteReads(t *testing.T) {
	body := &closeCounter{Reader: iotest.OneByteReader(strings.NewReader(`{"ggId":"é"}` + "\n" + `{"ggId":"b"}` + "\n"))}

	got, _, err := Decode(context.Background(), NewReaderSource(body))
	require.NoError(t, err)
	assert.Equal(t, []string{"é", "b"}, ids(t, got))
	assert.Equal(t, 1, body.closed)
}

func TestReaderSource_DataWithEOF(t *testing.T) {
	body := &closeCounter{Reader: iotest.DataErrReader(strings.NewReader(`{"ggId":"a"}` + "\n"))}

	got, _, err := Decode(context.Background(), NewReaderSource(body))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(t, got))
}

func TestReaderSource_ReadErrorIsStreamError(t *testing.T) {
	boom := errors.New("unexpected EOF from proxy")
	body := &closeCounter{Reader: io.MultiReader(strings.NewReader(`{"ggId":"a"}`+"\n"), iotest.ErrReader(boom))}

	got, _, err := Decode(context.Background(), NewReaderSource(body))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, body.closed)
}

func TestReaderSource_ReleaseIsIdempotent(t *testing.T) {
	body := &closeCounter{Reader: strings.NewReader("")}
	src := NewReaderSource(body)
	src.Release()
	src.Release()
	assert.Equal(t, 1, body.closed)
}
