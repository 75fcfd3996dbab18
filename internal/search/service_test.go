package search

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"testing/iotest"
	"time"

	"github.com/jonathan/people-finder/internal/fetch"
	"github.com/jonathan/people-finder/internal/metrics"
	"github.com/jonathan/people-finder/internal/stream"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ndjsonServer writes each chunk separately, flushing in between.
func ndjsonServer(t *testing.T, hits *atomic.Int32, gotBody *map[string]any, chunks ...string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if gotBody != nil {
			_ = json.NewDecoder(r.Body).Decode(gotBody)
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		flusher, _ := w.(http.Flusher)
		for _, c := range chunks {
			_, _ = io.WriteString(w, c)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newService(server *httptest.Server, m *metrics.Metrics) *Service {
	client := fetch.NewClient(&fetch.Options{SearchURL: server.URL, Timeout: 5 * time.Second})
	return NewService(client, m)
}

func TestSearch_EndToEnd(t *testing.T) {
	var hits atomic.Int32
	var gotBody map[string]any
	server := ndjsonServer(t, &hits, &gotBody,
		`{"ggId":"1","name":"Ada","professionalHeadline":"Engineer | Manager, Lead"}`+"\n"+`{"ard`,
		`aId":123}`+"\n",
		"not json\n",
		`{"name":"no identity"}`+"\n",
		"\n",
		`{"ggId":"tail"}`,
	)
	m := metrics.New()

	resp, err := newService(server, m).Search(context.Background(), Request{Query: "  engineer ", Limit: 500})
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "1", resp.Results[0].ID)
	assert.Equal(t, "Ada", resp.Results[0].Name)
	assert.Equal(t, []string{"Engineer", "Manager", "Lead"}, resp.Results[0].Skills)
	assert.Equal(t, "123", resp.Results[1].ID)
	assert.Equal(t, "Unknown", resp.Results[1].Name)
	assert.Equal(t, IdentityPerson, resp.Results[1].Type)

	assert.Equal(t, Meta{Total: 2, Page: 1, Limit: MaxLimit}, resp.Meta)

	assert.Equal(t, "engineer", gotBody["query"])
	assert.Equal(t, "person", gotBody["identityType"])
	assert.EqualValues(t, MaxLimit, gotBody["limit"])
	assert.Equal(t, true, gotBody["meta"])
	assert.Equal(t, true, gotBody["excludeContacts"])
	assert.Equal(t, "", gotBody["torreGgId"])
	assert.Equal(t, []any{}, gotBody["excluding"])
	assert.Equal(t, []any{}, gotBody["excludedPeople"])

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SearchCounter("person", "ok")))
}

func TestSearch_EmptyStream(t *testing.T) {
	var hits atomic.Int32
	server := ndjsonServer(t, &hits, nil)

	resp, err := newService(server, nil).Search(context.Background(), Request{Query: "nobody", IdentityType: IdentityOrganization})
	require.NoError(t, err)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Equal(t, Meta{Total: 0, Page: 1, Limit: DefaultLimit}, resp.Meta)
}

func TestSearch_OrganizationType(t *testing.T) {
	var hits atomic.Int32
	var gotBody map[string]any
	server := ndjsonServer(t, &hits, &gotBody, `{"ggId":"org-1","name":"Acme"}`+"\n")

	resp, err := newService(server, nil).Search(context.Background(), Request{Query: "acme", IdentityType: IdentityOrganization})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, IdentityOrganization, resp.Results[0].Type)
	assert.Equal(t, "organization", gotBody["identityType"])
}

func TestSearch_ValidationMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	server := ndjsonServer(t, &hits, nil, `{"ggId":"1"}`+"\n")
	svc := newService(server, nil)

	for _, q := range []string{"a", "  ", ""} {
		_, err := svc.Search(context.Background(), Request{Query: q})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, q)
	}
	assert.Zero(t, hits.Load())
}

func TestSearch_UpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()
	m := metrics.New()

	_, err := newService(server, m).Search(context.Background(), Request{Query: "golang"})
	var fetchErr *fetch.Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, fetch.CodeRateLimited, fetchErr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SearchCounter("person", "upstream_error")))
}

type brokenStreamer struct {
	body io.Reader
}

func (b brokenStreamer) SearchStream(context.Context, any) (io.ReadCloser, error) {
	return io.NopCloser(b.body), nil
}

func TestSearch_StreamFailureDiscardsPartialResults(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(brokenStreamer{
		body: io.MultiReader(strings.NewReader(`{"ggId":"1"}`+"\n"), iotest.ErrReader(boom)),
	}, nil)

	resp, err := svc.Search(context.Background(), Request{Query: "golang"})
	assert.Nil(t, resp)

	var streamErr *stream.Error
	require.ErrorAs(t, err, &streamErr)
	assert.ErrorIs(t, err, boom)
}
