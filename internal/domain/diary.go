package domain

// DiaryEntry is a user-authored note about a place.
// Place is a snapshot taken when the entry was written or last re-pointed;
// later catalog edits do not propagate into it.
type DiaryEntry struct {
	ID          string `json:"id"`
	Place       Place  `json:"place"`
	Description string `json:"description"`
	Rating      int    `json:"rating"` // 0..5 stars
}

// MinRating and MaxRating bound DiaryEntry.Rating.
const (
	MinRating = 0
	MaxRating = 5
)

// DiaryDraft carries the fields of a new entry before an ID is assigned.
type DiaryDraft struct {
	Place       Place
	Description string
	Rating      int
}

// DiaryPatch is a partial update of a DiaryEntry.
// Nil fields are left untouched.
type DiaryPatch struct {
	Place       *Place
	Description *string
	Rating      *int
}

// IsEmpty reports whether the patch changes nothing.
func (p DiaryPatch) IsEmpty() bool {
	return p.Place == nil && p.Description == nil && p.Rating == nil
}

// Apply returns e with every field present in p merged in. The ID never changes.
func (p DiaryPatch) Apply(e DiaryEntry) DiaryEntry {
	if p.Place != nil {
		e.Place = *p.Place
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Rating != nil {
		e.Rating = *p.Rating
	}
	return e
}
