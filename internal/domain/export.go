package domain

// ExportRow is a single row in the diary export.
// It is a flat, denormalized view: one row per diary entry, with the place
// snapshot fields inlined. Rows keep the diary order (newest first).
type ExportRow struct {
	EntryID     string
	PlaceID     string
	PlaceName   string
	CategoryID  string
	Latitude    float64
	Longitude   float64
	Rating      int
	Description string
	// Saved reports whether the place is also in the saved-places list.
	Saved bool
}
