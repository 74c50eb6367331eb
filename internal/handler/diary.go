package handler

import (
	"net/http"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/service"
)

// ListDiary handles GET /diary.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListDiary(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if err := queryParam(r, "page", &page); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	if err := queryParam(r, "limit", &limit); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	entries, total := s.diary.List(r.Context(), params)
	writeJSON(w, http.StatusOK, DiaryList{
		Data:       entries,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// CreateDiaryEntry handles POST /diary.
func (s *Server) CreateDiaryEntry(w http.ResponseWriter, r *http.Request) {
	var in service.DiaryInput
	if !decodeBody(w, r, &in) {
		return
	}
	e, err := s.diary.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, "place not found")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// GetDiaryEntry handles GET /diary/{entryId}.
func (s *Server) GetDiaryEntry(w http.ResponseWriter, r *http.Request) {
	withPath(w, r, "entryId", func(id string) {
		e, err := s.diary.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "diary entry not found")
			return
		}
		writeJSON(w, http.StatusOK, e)
	})
}

// UpdateDiaryEntry handles PATCH /diary/{entryId}. Only fields present in
// the body are changed.
func (s *Server) UpdateDiaryEntry(w http.ResponseWriter, r *http.Request) {
	withPath(w, r, "entryId", func(id string) {
		var in service.DiaryPatchInput
		if !decodeBody(w, r, &in) {
			return
		}
		e, err := s.diary.Update(r.Context(), id, in)
		if err != nil {
			writeServiceError(w, r, err, "diary entry not found")
			return
		}
		writeJSON(w, http.StatusOK, e)
	})
}

// DeleteDiaryEntry handles DELETE /diary/{entryId}. It answers 204 whether or
// not the entry existed.
func (s *Server) DeleteDiaryEntry(w http.ResponseWriter, r *http.Request) {
	withPath(w, r, "entryId", func(id string) {
		if err := s.diary.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "diary entry not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// ShareDiaryEntry handles POST /diary/{entryId}/share.
func (s *Server) ShareDiaryEntry(w http.ResponseWriter, r *http.Request) {
	withPath(w, r, "entryId", func(id string) {
		p, err := s.diary.Share(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "diary entry not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
	})
}
