// Package handler implements the HTTP handlers for the tourist guide API.
// All handlers are methods on Server. They are split into resource files
// (health.go, place.go, saved.go, diary.go, export.go) but share the same
// Server struct so they can reach its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/service"
	"github.com/pkordes/tourist-guide/internal/share"
)

// PlaceServicer defines the catalog operations the place handlers depend on.
// The interfaces live here, in the consumer package, so handler tests can
// inject mocks without building stores or a catalog.
type PlaceServicer interface {
	Categories(ctx context.Context) []domain.Category
	CategoryPlaces(ctx context.Context, categoryID string) ([]domain.Place, error)
	List(ctx context.Context, q string) []domain.Place
	AtCoordinates(ctx context.Context, lat, lng float64) (domain.Place, error)
	Get(ctx context.Context, id string) (service.PlaceDetail, error)
	Share(ctx context.Context, id string) (share.Payload, error)
}

// SavedServicer defines the bookmark operations.
type SavedServicer interface {
	List(ctx context.Context) []domain.Place
	Save(ctx context.Context, in service.SaveInput) (domain.Place, bool, error)
	IsSaved(ctx context.Context, id string) bool
	Remove(ctx context.Context, id string) error
	Share(ctx context.Context, id string) (share.Payload, error)
}

// DiaryServicer defines the diary operations.
type DiaryServicer interface {
	List(ctx context.Context, p domain.PaginationParams) ([]domain.DiaryEntry, int)
	Create(ctx context.Context, in service.DiaryInput) (domain.DiaryEntry, error)
	Get(ctx context.Context, id string) (domain.DiaryEntry, error)
	Update(ctx context.Context, id string, in service.DiaryPatchInput) (domain.DiaryEntry, error)
	Delete(ctx context.Context, id string) error
	Share(ctx context.Context, id string) (share.Payload, error)
}

// ExportServicer produces the flat diary export.
type ExportServicer interface {
	Export(ctx context.Context) []domain.ExportRow
}

// Server holds the services every handler needs.
type Server struct {
	places PlaceServicer
	saved  SavedServicer
	diary  DiaryServicer
	export ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(places PlaceServicer, saved SavedServicer, diary DiaryServicer, export ExportServicer) *Server {
	return &Server{places: places, saved: saved, diary: diary, export: export}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Handler returns a chi router serving every API route of s.
func Handler(s *Server) http.Handler {
	return HandlerFromMux(s, chi.NewRouter())
}

// HandlerFromMux registers every API route of s on r and returns it.
func HandlerFromMux(s *Server, r chi.Router) http.Handler {
	r.Get("/healthz", s.GetHealth)

	r.Get("/categories", s.ListCategories)
	r.Get("/categories/{categoryId}/places", s.ListCategoryPlaces)

	r.Get("/places", s.ListPlaces)
	r.Get("/places/{placeId}", s.GetPlace)
	r.Post("/places/{placeId}/share", s.SharePlace)

	r.Get("/saved", s.ListSaved)
	r.Post("/saved", s.SavePlace)
	r.Get("/saved/{placeId}", s.GetSavedStatus)
	r.Delete("/saved/{placeId}", s.RemoveSaved)
	r.Post("/saved/{placeId}/share", s.ShareSaved)

	r.Get("/diary", s.ListDiary)
	r.Post("/diary", s.CreateDiaryEntry)
	r.Get("/diary/{entryId}", s.GetDiaryEntry)
	r.Patch("/diary/{entryId}", s.UpdateDiaryEntry)
	r.Delete("/diary/{entryId}", s.DeleteDiaryEntry)
	r.Post("/diary/{entryId}/share", s.ShareDiaryEntry)

	r.Get("/export", s.GetExport)
	return r
}
