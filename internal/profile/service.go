package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/people-finder/internal/fetch"
	"github.com/jonathan/people-finder/internal/logger"
	"github.com/jonathan/people-finder/internal/metrics"
	"github.com/jonathan/people-finder/internal/payload"
)

// BioFetcher retrieves the raw bio document for a username.
type BioFetcher interface {
	Bio(ctx context.Context, username string) ([]byte, error)
}

// Service looks up and normalizes profiles.
type Service struct {
	client  BioFetcher
	metrics *metrics.Metrics
}

// NewService creates a profile service. m may be nil.
func NewService(client BioFetcher, m *metrics.Metrics) *Service {
	return &Service{client: client, metrics: m}
}

// Get fetches the bio for username. Errors are *Error or *fetch.Error.
func (s *Service) Get(ctx context.Context, username string) (*Profile, error) {
	log := logger.C(ctx).With().Str("component", "profile").Str("username", username).Logger()

	username = strings.TrimSpace(username)
	if username == "" {
		s.metrics.Profile("invalid")
		return nil, errInvalidUsername()
	}

	data, err := s.client.Bio(ctx, username)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) {
			s.metrics.UpstreamError(fetchErr.Op, string(fetchErr.Code))
			if fetchErr.Code == fetch.CodeUserNotFound {
				s.metrics.Profile("not_found")
				return nil, err
			}
		}
		s.metrics.Profile("upstream_error")
		log.Warn().Err(err).Msg("bio request failed")
		return nil, err
	}

	obj, ok, err := payload.Decode(data)
	if err != nil {
		s.metrics.Profile("decode_error")
		log.Warn().Err(err).Msg("bio response is not valid JSON")
		return nil, errUnexpected(err)
	}
	if !ok {
		s.metrics.Profile("no_data")
		return nil, errNoData()
	}

	s.metrics.Profile("ok")
	return Normalize(unwrapPerson(obj)), nil
}

// unwrapPerson returns the nested person object when the bio document wraps
// the profile in a {"person": {...}} envelope.
func unwrapPerson(obj payload.Object) payload.Object {
	if obj.HasIdentity() || obj.Truthy("name") {
		return obj
	}
	if person := obj.Object("person"); len(person) > 0 {
		return person
	}
	return obj
}
