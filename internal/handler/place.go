package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/tourist-guide/internal/domain"
)

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats := s.places.Categories(r.Context())
	out := make([]CategorySummary, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategorySummary{ID: c.ID, Title: c.Title, Image: c.Image, PlaceCount: len(c.Places)})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListCategoryPlaces handles GET /categories/{categoryId}/places.
func (s *Server) ListCategoryPlaces(w http.ResponseWriter, r *http.Request) {
	withPath(w, r, "categoryId", func(id string) {
		places, err := s.places.CategoryPlaces(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "category not found")
			return
		}
		writeJSON(w, http.StatusOK, places)
	})
}

// ListPlaces handles GET /places.
// ?q= filters by name. ?lat= and ?lng= (both required together) return the
// place at exactly those coordinates, as a list of zero or one.
func (s *Server) ListPlaces(w http.ResponseWriter, r *http.Request) {
	var (
		q        *string
		lat, lng *float64
	)
	for name, dest := range map[string]any{"q": &q, "lat": &lat, "lng": &lng} {
		if err := queryParam(r, name, dest); err != nil {
			writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
			return
		}
	}

	if lat != nil || lng != nil {
		if lat == nil || lng == nil {
			writeJSON(w, http.StatusBadRequest, requestBody("lat and lng must be given together"))
			return
		}
		p, err := s.places.AtCoordinates(r.Context(), *lat, *lng)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeJSON(w, http.StatusOK, []domain.Place{})
		case err != nil:
			writeServiceError(w, r, err, "place not found")
		default:
			writeJSON(w, http.StatusOK, []domain.Place{p})
		}
		return
	}

	query := ""
	if q != nil {
		query = *q
	}
	writeJSON(w, http.StatusOK, s.places.List(r.Context(), query))
}

// GetPlace handles GET /places/{placeId}.
func (s *Server) GetPlace(w http.ResponseWriter, r *http.Request) {
	withPath(w, r, "placeId", func(id string) {
		d, err := s.places.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "place not found")
			return
		}
		writeJSON(w, http.StatusOK, PlaceDetail{Place: d.Place, Saved: d.Saved})
	})
}

// SharePlace handles POST /places/{placeId}/share.
func (s *Server) SharePlace(w http.ResponseWriter, r *http.Request) {
	withPath(w, r, "placeId", func(id string) {
		p, err := s.places.Share(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "place not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
	})
}
