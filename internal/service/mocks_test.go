package service_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/service"
	"github.com/pkordes/tourist-guide/internal/share"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones the test needs. An unset field panics, which flags an unexpected call.

type mockCatalog struct {
	categories        func() []domain.Category
	category          func(id string) (domain.Category, error)
	findPlace         func(id string) (domain.Place, error)
	allPlaces         func() []domain.Place
	findByCoordinates func(lat, lng float64) (domain.Place, error)
	search            func(q string) []domain.Place
}

func (m *mockCatalog) Categories() []domain.Category { return m.categories() }
func (m *mockCatalog) Category(id string) (domain.Category, error) { return m.category(id) }
func (m *mockCatalog) FindPlace(id string) (domain.Place, error) { return m.findPlace(id) }
func (m *mockCatalog) AllPlaces() []domain.Place { return m.allPlaces() }
func (m *mockCatalog) Search(q string) []domain.Place { return m.search(q) }
func (m *mockCatalog) FindByCoordinates(lat, lng float64) (domain.Place, error) {
	return m.findByCoordinates(lat, lng)
}

var _ service.Catalog = (*mockCatalog)(nil)

type mockSavedStore struct {
	list    func() []domain.Place
	find    func(id string) (domain.Place, bool)
	isSaved func(id string) bool
	add     func(ctx context.Context, p domain.Place) (bool, error)
	remove  func(ctx context.Context, id string) (bool, error)
}

func (m *mockSavedStore) List() []domain.Place { return m.list() }
func (m *mockSavedStore) Find(id string) (domain.Place, bool) { return m.find(id) }
func (m *mockSavedStore) IsSaved(id string) bool { return m.isSaved(id) }
func (m *mockSavedStore) Add(ctx context.Context, p domain.Place) (bool, error) {
	return m.add(ctx, p)
}
func (m *mockSavedStore) Remove(ctx context.Context, id string) (bool, error) {
	return m.remove(ctx, id)
}

var _ service.SavedStore = (*mockSavedStore)(nil)

type mockDiaryStore struct {
	list     func() []domain.DiaryEntry
	page     func(p domain.PaginationParams) ([]domain.DiaryEntry, int)
	findByID func(id string) (domain.DiaryEntry, bool)
	add      func(ctx context.Context, d domain.DiaryDraft) (domain.DiaryEntry, error)
	update   func(ctx context.Context, id string, p domain.DiaryPatch) (domain.DiaryEntry, error)
	remove   func(ctx context.Context, id string) (bool, error)
}

func (m *mockDiaryStore) List() []domain.DiaryEntry { return m.list() }
func (m *mockDiaryStore) Page(p domain.PaginationParams) ([]domain.DiaryEntry, int) {
	return m.page(p)
}
func (m *mockDiaryStore) FindByID(id string) (domain.DiaryEntry, bool) { return m.findByID(id) }
func (m *mockDiaryStore) Add(ctx context.Context, d domain.DiaryDraft) (domain.DiaryEntry, error) {
	return m.add(ctx, d)
}
func (m *mockDiaryStore) Update(ctx context.Context, id string, p domain.DiaryPatch) (domain.DiaryEntry, error) {
	return m.update(ctx, id, p)
}
func (m *mockDiaryStore) Remove(ctx context.Context, id string) (bool, error) {
	return m.remove(ctx, id)
}

var _ service.DiaryStore = (*mockDiaryStore)(nil)

// recordingSharer remembers every payload and fails when err is set.
type recordingSharer struct {
	got []share.Payload
	err error
}

func (r *recordingSharer) Share(_ context.Context, p share.Payload) error {
	r.got = append(r.got, p)
	return r.err
}

// ---- helpers ---------------------------------------------------------------

var (
	castle = domain.Place{ID: "castelo", Name: "Castelo de São Jorge", Description: "Moorish castle", Latitude: 38.7139, Longitude: -9.1334, CategoryID: "history"}
	tower  = domain.Place{ID: "torre", Name: "Torre de Belém", Description: "Tower", Latitude: 38.6916, Longitude: -9.216, CategoryID: "history"}
)

// catalogOf resolves ids against the given places only.
func catalogOf(places ...domain.Place) *mockCatalog {
	return &mockCatalog{
		findPlace: func(id string) (domain.Place, error) {
			for _, p := range places {
				if p.ID == id {
					return p, nil
				}
			}
			return domain.Place{}, fmt.Errorf("mock: %w", domain.ErrNotFound)
		},
	}
}

func bufLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func ptr[T any](v T) *T { return &v }

func persistErr() error {
	return fmt.Errorf("store: %w: disk full", domain.ErrPersistence)
}
