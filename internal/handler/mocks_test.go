package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/handler"
	"github.com/pkordes/tourist-guide/internal/service"
	"github.com/pkordes/tourist-guide/internal/share"
)

// Test doubles for the handler's servicer interfaces.
// Set only the method fields your test needs.

type mockPlaceServicer struct {
	categories     func(ctx context.Context) []domain.Category
	categoryPlaces func(ctx context.Context, id string) ([]domain.Place, error)
	list           func(ctx context.Context, q string) []domain.Place
	atCoordinates  func(ctx context.Context, lat, lng float64) (domain.Place, error)
	get            func(ctx context.Context, id string) (service.PlaceDetail, error)
	share          func(ctx context.Context, id string) (share.Payload, error)
}

func (m *mockPlaceServicer) Categories(ctx context.Context) []domain.Category {
	return m.categories(ctx)
}
func (m *mockPlaceServicer) CategoryPlaces(ctx context.Context, id string) ([]domain.Place, error) {
	return m.categoryPlaces(ctx, id)
}
func (m *mockPlaceServicer) List(ctx context.Context, q string) []domain.Place {
	return m.list(ctx, q)
}
func (m *mockPlaceServicer) AtCoordinates(ctx context.Context, lat, lng float64) (domain.Place, error) {
	return m.atCoordinates(ctx, lat, lng)
}
func (m *mockPlaceServicer) Get(ctx context.Context, id string) (service.PlaceDetail, error) {
	return m.get(ctx, id)
}
func (m *mockPlaceServicer) Share(ctx context.Context, id string) (share.Payload, error) {
	return m.share(ctx, id)
}

var _ handler.PlaceServicer = (*mockPlaceServicer)(nil)

type mockSavedServicer struct {
	list    func(ctx context.Context) []domain.Place
	save    func(ctx context.Context, in service.SaveInput) (domain.Place, bool, error)
	isSaved func(ctx context.Context, id string) bool
	remove  func(ctx context.Context, id string) error
	share   func(ctx context.Context, id string) (share.Payload, error)
}

func (m *mockSavedServicer) List(ctx context.Context) []domain.Place { return m.list(ctx) }
func (m *mockSavedServicer) Save(ctx context.Context, in service.SaveInput) (domain.Place, bool, error) {
	return m.save(ctx, in)
}
func (m *mockSavedServicer) IsSaved(ctx context.Context, id string) bool { return m.isSaved(ctx, id) }
func (m *mockSavedServicer) Remove(ctx context.Context, id string) error { return m.remove(ctx, id) }
func (m *mockSavedServicer) Share(ctx context.Context, id string) (share.Payload, error) {
	return m.share(ctx, id)
}

var _ handler.SavedServicer = (*mockSavedServicer)(nil)

type mockDiaryServicer struct {
	list   func(ctx context.Context, p domain.PaginationParams) ([]domain.DiaryEntry, int)
	create func(ctx context.Context, in service.DiaryInput) (domain.DiaryEntry, error)
	get    func(ctx context.Context, id string) (domain.DiaryEntry, error)
	update func(ctx context.Context, id string, in service.DiaryPatchInput) (domain.DiaryEntry, error)
	delete func(ctx context.Context, id string) error
	share  func(ctx context.Context, id string) (share.Payload, error)
}

func (m *mockDiaryServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.DiaryEntry, int) {
	return m.list(ctx, p)
}
func (m *mockDiaryServicer) Create(ctx context.Context, in service.DiaryInput) (domain.DiaryEntry, error) {
	return m.create(ctx, in)
}
func (m *mockDiaryServicer) Get(ctx context.Context, id string) (domain.DiaryEntry, error) {
	return m.get(ctx, id)
}
func (m *mockDiaryServicer) Update(ctx context.Context, id string, in service.DiaryPatchInput) (domain.DiaryEntry, error) {
	return m.update(ctx, id, in)
}
func (m *mockDiaryServicer) Delete(ctx context.Context, id string) error { return m.delete(ctx, id) }
func (m *mockDiaryServicer) Share(ctx context.Context, id string) (share.Payload, error) {
	return m.share(ctx, id)
}

var _ handler.DiaryServicer = (*mockDiaryServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context) []domain.ExportRow
}

func (m *mockExportServicer) Export(ctx context.Context) []domain.ExportRow { return m.export(ctx) }

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

var (
	castle = domain.Place{ID: "castelo", Name: "Castelo de São Jorge", Description: "Moorish castle", Latitude: 38.7139, Longitude: -9.1334, CategoryID: "history"}
	tower  = domain.Place{ID: "torre", Name: "Torre de Belém", Description: "Tower", Latitude: 38.6916, Longitude: -9.216, CategoryID: "history"}
)

// serve wires the mocks into the router exactly as main.go does and runs one request.
func serve(t *testing.T, srv *handler.Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.Handler(srv).ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}
