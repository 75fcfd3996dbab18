package search

import (
	"context"
	"errors"
	"io"

	"github.com/jonathan/people-finder/internal/fetch"
	"github.com/jonathan/people-finder/internal/logger"
	"github.com/jonathan/people-finder/internal/metrics"
	"github.com/jonathan/people-finder/internal/stream"
)

// Streamer opens the streaming search endpoint.
type Streamer interface {
	SearchStream(ctx context.Context, body any) (io.ReadCloser, error)
}

// Service validates requests, drains the search stream and normalizes results.
type Service struct {
	client  Streamer
	metrics *metrics.Metrics
}

// NewService creates a search service. m may be nil.
func NewService(client Streamer, m *metrics.Metrics) *Service {
	return &Service{client: client, metrics: m}
}

// Search runs one search. Results are returned only after the stream ends.
//
// Errors are *ValidationError (no request was made), *fetch.Error (the
// endpoint refused or could not be reached) or *stream.Error (the body broke
// off mid-way; nothing is returned in that case).
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	log := logger.C(ctx).With().Str("component", "search").Logger()
	body := req.upstream()

	if err := req.Validate(); err != nil {
		s.metrics.Search(string(body.IdentityType), "validation_error")
		return nil, err
	}

	rc, err := s.client.SearchStream(ctx, body)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) {
			s.metrics.UpstreamError(fetchErr.Op, string(fetchErr.Code))
		}
		s.metrics.Search(string(body.IdentityType), "upstream_error")
		log.Warn().Err(err).Str("query", body.Query).Msg("search request failed")
		return nil, err
	}

	decoder := stream.NewDecoder(stream.NewReaderSource(rc))
	records, err := decoder.Decode(ctx)
	s.recordStats(decoder.Stats())
	if err != nil {
		s.metrics.Search(string(body.IdentityType), "stream_error")
		log.Warn().Err(err).Str("query", body.Query).Msg("search stream failed")
		return nil, err
	}

	results := Normalize(records, body.IdentityType)
	s.metrics.Search(string(body.IdentityType), "ok")
	log.Debug().
		Str("query", body.Query).
		Str("identity_type", string(body.IdentityType)).
		Int("results", len(results)).
		Msg("search complete")

	return &Response{
		Results: results,
		Meta: Meta{
			Total: len(results),
			Page:  1,
			Limit: body.Limit,
		},
	}, nil
}

func (s *Service) recordStats(st stream.Stats) {
	s.metrics.Segments("record", st.Records)
	s.metrics.Segments("malformed", st.Malformed)
	s.metrics.Segments("gated", st.Gated)
	s.metrics.Segments("blank", st.Blank)
	if st.TailBytes > 0 {
		s.metrics.Segments("tail", 1)
	}
}
