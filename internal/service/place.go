package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/share"
)

// PlaceDetail is a catalog place together with its bookmark state.
type PlaceDetail struct {
	domain.Place
	Saved bool
}

// PlaceService answers catalog browsing questions.
type PlaceService struct {
	catalog Catalog
	saved   interface{ IsSaved(id string) bool }
	sharer  share.Sharer
	logger  *slog.Logger
}

// NewPlaceService constructs a PlaceService.
func NewPlaceService(c Catalog, saved SavedStore, s share.Sharer, logger *slog.Logger) *PlaceService {
	return &PlaceService{catalog: c, saved: saved, sharer: s, logger: logger}
}

// Categories returns every category in catalog order.
func (s *PlaceService) Categories(_ context.Context) []domain.Category {
	return s.catalog.Categories()
}

// CategoryPlaces returns the places of one category, or domain.ErrNotFound.
func (s *PlaceService) CategoryPlaces(_ context.Context, categoryID string) ([]domain.Place, error) {
	c, err := s.catalog.Category(categoryID)
	if err != nil {
		return nil, fmt.Errorf("service.PlaceService.CategoryPlaces: %w", err)
	}
	return c.Places, nil
}

// List returns every place whose name matches q (all places when q is empty).
func (s *PlaceService) List(_ context.Context, q string) []domain.Place {
	return s.catalog.Search(q)
}

// AtCoordinates returns the place located exactly at lat/lng.
func (s *PlaceService) AtCoordinates(_ context.Context, lat, lng float64) (domain.Place, error) {
	p, err := s.catalog.FindByCoordinates(lat, lng)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.AtCoordinates: %w", err)
	}
	return p, nil
}

// Get returns one place with its saved flag.
func (s *PlaceService) Get(_ context.Context, id string) (PlaceDetail, error) {
	p, err := s.catalog.FindPlace(id)
	if err != nil {
		return PlaceDetail{}, fmt.Errorf("service.PlaceService.Get: %w", err)
	}
	return PlaceDetail{Place: p, Saved: s.saved.IsSaved(id)}, nil
}

// Share shares a catalog place as its name and coordinates.
func (s *PlaceService) Share(ctx context.Context, id string) (share.Payload, error) {
	p, err := s.catalog.FindPlace(id)
	if err != nil {
		return share.Payload{}, fmt.Errorf("service.PlaceService.Share: %w", err)
	}
	payload := share.ForPlace(p)
	deliver(ctx, s.sharer, s.logger, payload)
	return payload, nil
}
