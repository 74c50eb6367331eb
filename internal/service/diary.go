package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/share"
)

// DiaryInput is a new diary entry as submitted by a client. A place must be
// chosen and the description must contain more than whitespace; the rating
// defaults to zero stars.
type DiaryInput struct {
	PlaceID     string `json:"place_id" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	Rating      int    `json:"rating" validate:"min=0,max=5"`
}

// DiaryPatchInput is a partial update. Nil fields are left untouched.
type DiaryPatchInput struct {
	PlaceID     *string `json:"place_id" validate:"omitempty,notblank"`
	Description *string `json:"description" validate:"omitempty,notblank"`
	Rating      *int    `json:"rating" validate:"omitempty,min=0,max=5"`
}

// DiaryService implements the diary use cases.
type DiaryService struct {
	catalog Catalog
	diary   DiaryStore
	policy  PersistPolicy
	sharer  share.Sharer
	logger  *slog.Logger
}

// NewDiaryService constructs a DiaryService.
func NewDiaryService(c Catalog, d DiaryStore, policy PersistPolicy, s share.Sharer, logger *slog.Logger) *DiaryService {
	return &DiaryService{catalog: c, diary: d, policy: policy, sharer: s, logger: logger}
}

// List returns one page of entries, newest first, and the total count.
func (s *DiaryService) List(_ context.Context, p domain.PaginationParams) ([]domain.DiaryEntry, int) {
	return s.diary.Page(p)
}

// Create validates in, snapshots the chosen catalog place into the entry and
// prepends it to the diary.
func (s *DiaryService) Create(ctx context.Context, in DiaryInput) (domain.DiaryEntry, error) {
	if err := validateStruct(in); err != nil {
		return domain.DiaryEntry{}, fmt.Errorf("service.DiaryService.Create: %w", err)
	}
	p, err := s.catalog.FindPlace(in.PlaceID)
	if err != nil {
		return domain.DiaryEntry{}, fmt.Errorf("service.DiaryService.Create: place: %w", err)
	}
	e, err := s.diary.Add(ctx, domain.DiaryDraft{Place: p, Description: in.Description, Rating: in.Rating})
	if err := s.policy.settle(ctx, "diary.add", err); err != nil {
		return e, fmt.Errorf("service.DiaryService.Create: %w", err)
	}
	return e, nil
}

// Get returns the entry with id or domain.ErrNotFound.
func (s *DiaryService) Get(_ context.Context, id string) (domain.DiaryEntry, error) {
	e, ok := s.diary.FindByID(id)
	if !ok {
		return domain.DiaryEntry{}, fmt.Errorf("service.DiaryService.Get: %w", domain.ErrNotFound)
	}
	return e, nil
}

// Update merges the present fields of in into the entry with id. A new
// place_id re-snapshots the place from the catalog.
func (s *DiaryService) Update(ctx context.Context, id string, in DiaryPatchInput) (domain.DiaryEntry, error) {
	if err := validateStruct(in); err != nil {
		return domain.DiaryEntry{}, fmt.Errorf("service.DiaryService.Update: %w", err)
	}
	patch := domain.DiaryPatch{Description: in.Description, Rating: in.Rating}
	if in.PlaceID != nil {
		p, err := s.catalog.FindPlace(*in.PlaceID)
		if err != nil {
			// An unknown place in a body is bad input, not a missing resource.
			return domain.DiaryEntry{}, fmt.Errorf("service.DiaryService.Update: %w: place_id %q does not exist", domain.ErrValidation, *in.PlaceID)
		}
		patch.Place = &p
	}
	e, err := s.diary.Update(ctx, id, patch)
	if err := s.policy.settle(ctx, "diary.update", err); err != nil {
		return e, fmt.Errorf("service.DiaryService.Update: %w", err)
	}
	return e, nil
}

// Delete removes the entry with id. Deleting an absent entry succeeds.
func (s *DiaryService) Delete(ctx context.Context, id string) error {
	_, err := s.diary.Remove(ctx, id)
	if err := s.policy.settle(ctx, "diary.remove", err); err != nil {
		return fmt.Errorf("service.DiaryService.Delete: %w", err)
	}
	return nil
}

// Share shares an entry as place name, coordinates and note.
func (s *DiaryService) Share(ctx context.Context, id string) (share.Payload, error) {
	e, ok := s.diary.FindByID(id)
	if !ok {
		return share.Payload{}, fmt.Errorf("service.DiaryService.Share: %w", domain.ErrNotFound)
	}
	payload := share.ForDiaryEntry(e)
	deliver(ctx, s.sharer, s.logger, payload)
	return payload, nil
}
