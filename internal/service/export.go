package service

import (
	"context"

	"github.com/pkordes/tourist-guide/internal/domain"
)

// ExportService assembles a flat export of the whole diary.
type ExportService struct {
	diary interface{ List() []domain.DiaryEntry }
	saved interface{ IsSaved(id string) bool }
}

// NewExportService constructs an ExportService.
func NewExportService(d DiaryStore, saved SavedStore) *ExportService {
	return &ExportService{diary: d, saved: saved}
}

// Export returns one ExportRow per diary entry, newest first.
func (s *ExportService) Export(_ context.Context) []domain.ExportRow {
	entries := s.diary.List()
	rows := make([]domain.ExportRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, domain.ExportRow{
			EntryID:     e.ID,
			PlaceID:     e.Place.ID,
			PlaceName:   e.Place.Name,
			CategoryID:  e.Place.CategoryID,
			Latitude:    e.Place.Latitude,
			Longitude:   e.Place.Longitude,
			Rating:      e.Rating,
			Description: e.Description,
			Saved:       s.saved.IsSaved(e.Place.ID),
		})
	}
	return rows
}
