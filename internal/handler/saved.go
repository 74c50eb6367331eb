package handler

import (
	"net/http"

	"github.com/pkordes/tourist-guide/internal/service"
)

// ListSaved handles GET /saved.
func (s *Server) ListSaved(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.saved.List(r.Context()))
}

// SavePlace handles POST /saved.
// Returns 201 when the place was added and 200 when it was already saved.
func (s *Server) SavePlace(w http.ResponseWriter, r *http.Request) {
	var in service.SaveInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, added, err := s.saved.Save(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, "place not found")
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, p)
}

// GetSavedStatus handles GET /saved/{placeId}.
func (s *Server) GetSavedStatus(w http.ResponseWriter, r *http.Request) {
	withPath(w, r, "placeId", func(id string) {
		writeJSON(w, http.StatusOK, SavedStatus{PlaceID: id, Saved: s.saved.IsSaved(r.Context(), id)})
	})
}

// RemoveSaved handles DELETE /saved/{placeId}. It answers 204 whether or not
// the place was saved.
func (s *Server) RemoveSaved(w http.ResponseWriter, r *http.Request) {
	withPath(w, r, "placeId", func(id string) {
		if err := s.saved.Remove(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "place not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// ShareSaved handles POST /saved/{placeId}/share.
func (s *Server) ShareSaved(w http.ResponseWriter, r *http.Request) {
	withPath(w, r, "placeId", func(id string) {
		p, err := s.saved.Share(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "saved place not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
	})
}
