package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/share"
)

// SaveInput is the body of a save request.
type SaveInput struct {
	PlaceID string `json:"place_id" validate:"notblank"`
}

// SavedService manages the user's bookmarked places.
type SavedService struct {
	catalog Catalog
	saved   SavedStore
	policy  PersistPolicy
	sharer  share.Sharer
	logger  *slog.Logger
}

// NewSavedService constructs a SavedService.
func NewSavedService(c Catalog, saved SavedStore, policy PersistPolicy, s share.Sharer, logger *slog.Logger) *SavedService {
	return &SavedService{catalog: c, saved: saved, policy: policy, sharer: s, logger: logger}
}

// List returns the saved places in the order they were saved.
func (s *SavedService) List(_ context.Context) []domain.Place {
	return s.saved.List()
}

// Save bookmarks a catalog place. It reports whether the place was newly
// added; saving an already saved place is a no-op.
func (s *SavedService) Save(ctx context.Context, in SaveInput) (domain.Place, bool, error) {
	if err := validateStruct(in); err != nil {
		return domain.Place{}, false, fmt.Errorf("service.SavedService.Save: %w", err)
	}
	p, err := s.catalog.FindPlace(in.PlaceID)
	if err != nil {
		return domain.Place{}, false, fmt.Errorf("service.SavedService.Save: %w", err)
	}
	added, err := s.saved.Add(ctx, p)
	if err := s.policy.settle(ctx, "saved.add", err); err != nil {
		return p, added, fmt.Errorf("service.SavedService.Save: %w", err)
	}
	return p, added, nil
}

// IsSaved reports whether id is bookmarked.
func (s *SavedService) IsSaved(_ context.Context, id string) bool {
	return s.saved.IsSaved(id)
}

// Remove deletes a bookmark. Removing one that does not exist succeeds.
func (s *SavedService) Remove(ctx context.Context, id string) error {
	_, err := s.saved.Remove(ctx, id)
	if err := s.policy.settle(ctx, "saved.remove", err); err != nil {
		return fmt.Errorf("service.SavedService.Remove: %w", err)
	}
	return nil
}

// Share shares a saved place as its name and description. Only saved places
// can be shared this way; others yield domain.ErrNotFound.
func (s *SavedService) Share(ctx context.Context, id string) (share.Payload, error) {
	p, ok := s.saved.Find(id)
	if !ok {
		return share.Payload{}, fmt.Errorf("service.SavedService.Share: %w", domain.ErrNotFound)
	}
	payload := share.ForSavedPlace(p)
	deliver(ctx, s.sharer, s.logger, payload)
	return payload, nil
}
