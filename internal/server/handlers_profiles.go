package server

import (
	"net/http"

	"github.com/jonathan/people-finder/internal/profile"
)

type profileResponse struct {
	Success bool             `json:"success"`
	Data    *profile.Profile `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
	Code    string           `json:"code,omitempty"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context(), r.PathValue("username"))
	if err != nil {
		apiErr := describe(err)
		if apiErr.Status >= http.StatusInternalServerError {
			s.apiErrorLog(r, err, apiErr)
		}
		s.jsonResponse(w, apiErr.Status, profileResponse{Error: apiErr.Message, Code: apiErr.Code})
		return
	}
	s.jsonResponse(w, http.StatusOK, profileResponse{Success: true, Data: p})
}
