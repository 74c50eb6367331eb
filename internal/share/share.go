// Package share builds the text that the guide hands to a platform share
// sheet, and delivers it. Sharing is fire-and-forget: callers log failures and
// never report them to the user.
package share

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/pkordes/tourist-guide/internal/domain"
)

// Kinds of shared content.
const (
	KindPlace      = "place"
	KindSavedPlace = "saved_place"
	KindDiaryEntry = "diary_entry"
)

// Payload is what gets shared.
type Payload struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Sharer delivers a payload somewhere.
type Sharer interface {
	Share(ctx context.Context, p Payload) error
}

// ForPlace shares a catalog place as its name and coordinates.
func ForPlace(p domain.Place) Payload {
	return Payload{Kind: KindPlace, Title: p.Name, Message: p.Name + "\n" + coords(p)}
}

// ForSavedPlace shares a bookmarked place as its name and description.
func ForSavedPlace(p domain.Place) Payload {
	return Payload{Kind: KindSavedPlace, Title: p.Name, Message: p.Name + "\n" + p.Description}
}

// ForDiaryEntry shares a diary entry as the place name, its coordinates and
// the user's note, separated from the header by a blank line.
func ForDiaryEntry(e domain.DiaryEntry) Payload {
	return Payload{
		Kind:    KindDiaryEntry,
		Title:   e.Place.Name,
		Message: e.Place.Name + "\n" + coords(e.Place) + "\n\n" + e.Description,
	}
}

func coords(p domain.Place) string {
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + ", " + strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}

// LogSharer writes every payload to the log. It is the default when no
// webhook is configured.
type LogSharer struct {
	Logger *slog.Logger
}

// Share logs p at info level. It never fails.
func (s LogSharer) Share(ctx context.Context, p Payload) error {
	s.Logger.InfoContext(ctx, "share", "kind", p.Kind, "title", p.Title, "message", p.Message)
	return nil
}
