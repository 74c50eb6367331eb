package handler

import "github.com/pkordes/tourist-guide/internal/domain"

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// CategorySummary is one row of GET /categories.
type CategorySummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Image      string `json:"image"`
	PlaceCount int    `json:"place_count"`
}

// PlaceDetail is a place plus its bookmark state.
type PlaceDetail struct {
	domain.Place
	Saved bool `json:"saved"`
}

// SavedStatus is the body of GET /saved/{placeId}.
type SavedStatus struct {
	PlaceID string `json:"place_id"`
	Saved   bool   `json:"saved"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// DiaryList is the body of GET /diary.
type DiaryList struct {
	Data       []domain.DiaryEntry `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// ExportRow is one row of the JSON export.
type ExportRow struct {
	EntryID     string  `json:"entry_id"`
	PlaceID     string  `json:"place_id"`
	PlaceName   string  `json:"place_name"`
	CategoryID  string  `json:"category_id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Rating      int     `json:"rating"`
	Description string  `json:"description"`
	Saved       bool    `json:"saved"`
}
