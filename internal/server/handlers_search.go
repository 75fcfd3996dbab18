package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/people-finder/internal/logger"
	"github.com/jonathan/people-finder/internal/schemas"
	"github.com/jonathan/people-finder/internal/search"
)

// decodeSearchRequest reads the body, checks it against the request schema
// and decodes it. Query rules are left to search.Request.Validate.
func (s *Server) decodeSearchRequest(w http.ResponseWriter, r *http.Request) (*search.Request, bool) {
	body, err := readBody(w, r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return nil, false
	}
	if err := schemas.Validate(schemas.SearchRequest, body); err != nil {
		s.apiErrorResponse(w, r, err)
		return nil, false
	}

	var req search.Request
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
		return nil, false
	}
	return &req, true
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearchRequest(w, r)
	if !ok {
		return
	}

	resp, err := s.search.Search(r.Context(), *req)
	if err != nil {
		s.apiErrorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleSearchStream delivers each result as an SSE "result" event followed by
// "complete". Request errors are answered as JSON before the stream opens;
// later failures arrive as an "error" event.
func (s *Server) handleSearchStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearchRequest(w, r)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		s.apiErrorResponse(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, CodeInternal, "Streaming not supported")
		return
	}
	log := logger.C(r.Context())

	resp, err := s.search.Search(r.Context(), *req)
	if err != nil {
		apiErr := describe(err)
		if werr := sse.WriteError(apiErr.Code, apiErr.Message); werr != nil {
			log.Debug().Err(werr).Msg("client went away before error event")
		}
		return
	}

	for _, result := range resp.Results {
		if err := sse.WriteEvent("result", result); err != nil {
			log.Debug().Err(err).Msg("client went away during search stream")
			return
		}
	}
	if err := sse.WriteComplete(resp.Meta); err != nil {
		log.Debug().Err(err).Msg("client went away before complete event")
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.New("request body too large")
		}
		return nil, errors.New("failed to read request body")
	}
	return body, nil
}
