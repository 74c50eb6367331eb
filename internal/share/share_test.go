package share_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourist-guide/internal/domain"
	"github.com/pkordes/tourist-guide/internal/share"
)

var belem = domain.Place{
	ID:          "torre-de-belem",
	Name:        "Torre de Belém",
	Description: "Fortified tower on the Tagus.",
	Latitude:    38.6916,
	Longitude:   -9.216,
}

func TestForPlace(t *testing.T) {
	got := share.ForPlace(belem)
	assert.Equal(t, "Torre de Belém", got.Title)
	assert.Equal(t, "Torre de Belém\n38.6916, -9.216", got.Message)
}

func TestForSavedPlace(t *testing.T) {
	got := share.ForSavedPlace(belem)
	assert.Equal(t, "Torre de Belém\nFortified tower on the Tagus.", got.Message)
}

func TestForDiaryEntry(t *testing.T) {
	got := share.ForDiaryEntry(domain.DiaryEntry{ID: "1", Place: belem, Description: "Windy but worth it", Rating: 4})
	assert.Equal(t, "Torre de Belém\n38.6916, -9.216\n\nWindy but worth it", got.Message)
}

func TestForPlace_IntegralCoordinates(t *testing.T) {
	got := share.ForPlace(domain.Place{Name: "Null Island", Latitude: 0, Longitude: 10})
	assert.Equal(t, "Null Island\n0, 10", got.Message)
}

func TestLogSharer(t *testing.T) {
	var buf bytes.Buffer
	s := share.LogSharer{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	require.NoError(t, s.Share(context.Background(), share.ForPlace(belem)))
	assert.Contains(t, buf.String(), `"title":"Torre de Belém"`)
}

func TestWebhookSharer_PostsJSON(t *testing.T) {
	var got share.Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := share.NewWebhookSharer(srv.URL, nil).Share(context.Background(), share.ForPlace(belem))

	require.NoError(t, err)
	assert.Equal(t, share.ForPlace(belem), got)
}

func TestWebhookSharer_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := share.NewWebhookSharer(srv.URL, srv.Client()).Share(context.Background(), share.ForPlace(belem))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestWebhookSharer_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := share.NewWebhookSharer(url, nil).Share(context.Background(), share.ForPlace(belem))
	assert.Error(t, err)
}
