package api

import (
	"encoding/json"
	"net/http"

	"renthub/internal/models"
)

func (s *HTTPServer) handleAddItem(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var item models.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := s.items.AddItem(r.Context(), &item, actor)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var upd models.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := s.items.UpdateItem(r.Context(), itemID, actor, upd)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	view, err := s.items.GetItem(r.Context(), itemID, actor)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleListOwnerItems(w http.ResponseWriter, r *http.Request) {
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

	views, err := s.items.GetItemsByOwner(r.Context(), actor, from, size)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	from, size, err := s.pagination(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	views, err := s.items.Search(r.Context(), r.URL.Query().Get("text"), from, size)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if err := s.items.Delete(r.Context(), itemID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := s.items.CreateComment(r.Context(), payload.Text, itemID, actor)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
