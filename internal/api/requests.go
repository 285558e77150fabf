package api

import (
	"encoding/json"
	"net/http"
)

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var payload struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := s.requests.Create(r.Context(), payload.Description, actor)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	views, err := s.requests.GetOwn(r.Context(), actor)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleListOtherRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	from, size, err := s.pagination(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	views, err := s.requests.GetOthers(r.Context(), actor, from, size)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	requestID, err := pathID(r, "requestID")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	view, err := s.requests.GetByID(r.Context(), requestID, actor)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
