package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/people-finder/internal/schemas"
	"github.com/jonathan/people-finder/internal/users"
)

// decodeUserBody validates the body against schema and decodes it into v.
func (s *Server) decodeUserBody(w http.ResponseWriter, r *http.Request, schema string, v any) bool {
	body, err := readBody(w, r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return false
	}
	if err := schemas.Validate(schema, body); err != nil {
		s.apiErrorResponse(w, r, err)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List(r.Context())
	if err != nil {
		s.apiErrorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"users": list, "total": len(list)})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req users.CreateRequest
	if !s.decodeUserBody(w, r, schemas.UserCreate, &req) {
		return
	}

	user, err := s.users.Create(r.Context(), &req)
	if err != nil {
		s.apiErrorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := users.ParseID(r.PathValue("id"))
	if err != nil {
		s.apiErrorResponse(w, r, err)
		return
	}

	user, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.apiErrorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := users.ParseID(r.PathValue("id"))
	if err != nil {
		s.apiErrorResponse(w, r, err)
		return
	}

	var req users.UpdateRequest
	if !s.decodeUserBody(w, r, schemas.UserUpdate, &req) {
		return
	}

	user, err := s.users.Update(r.Context(), id, &req)
	if err != nil {
		s.apiErrorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := users.ParseID(r.PathValue("id"))
	if err != nil {
		s.apiErrorResponse(w, r, err)
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		s.apiErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
