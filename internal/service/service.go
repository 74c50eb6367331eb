// Package service contains the business logic of the tourist guide API.
// Services validate inputs, resolve catalog places and orchestrate the
// stores. They depend on small consumer-side interfaces, not on the concrete
// catalog or store types.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/share"
)

// Catalog is the read-only place lookup the services need.
type Catalog interface {
	Categories() []domain.Category
	Category(id string) (domain.Category, error)
	FindPlace(id string) (domain.Place, error)
	AllPlaces() []domain.Place
	FindByCoordinates(lat, lng float64) (domain.Place, error)
	Search(q string) []domain.Place
}

// SavedStore is the saved-places collection.
type SavedStore interface {
	List() []domain.Place
	Find(id string) (domain.Place, bool)
	IsSaved(id string) bool
	Add(ctx context.Context, p domain.Place) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
}

// DiaryStore is the diary collection.
type DiaryStore interface {
	List() []domain.DiaryEntry
	Page(p domain.PaginationParams) ([]domain.DiaryEntry, int)
	FindByID(id string) (domain.DiaryEntry, bool)
	Add(ctx context.Context, d domain.DiaryDraft) (domain.DiaryEntry, error)
	Update(ctx context.Context, id string, p domain.DiaryPatch) (domain.DiaryEntry, error)
	Remove(ctx context.Context, id string) (bool, error)
}

// PersistPolicy decides what happens when a store applied a mutation but
// could not write its snapshot. By default the failure is logged and the
// caller sees success; with Strict the error is returned.
type PersistPolicy struct {
	Strict bool
	Logger *slog.Logger
}

// settle applies the policy to a store mutator's error. Errors that are not
// persistence failures pass through unchanged.
func (p PersistPolicy) settle(ctx context.Context, op string, err error) error {
	if err == nil || !errors.Is(err, domain.ErrPersistence) || p.Strict {
		return err
	}
	p.logger().WarnContext(ctx, "persistence write failed; in-memory state kept", "op", op, "error", err)
	return nil
}

func (p PersistPolicy) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// deliver hands a payload to the sharer. Failures are logged and dropped.
func deliver(ctx context.Context, s share.Sharer, logger *slog.Logger, p share.Payload) {
	if err := s.Share(ctx, p); err != nil {
		logger.DebugContext(ctx, "share failed", "kind", p.Kind, "error", err)
	}
}
