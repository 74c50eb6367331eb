// Package domain contains the core data types for the tourist guide backend.
// This package has zero external dependencies and is imported by every other
// internal package (catalog, store, service, handler).
package domain

// Place is a single point of interest from the catalog.
// Places are read-only reference data: the catalog owns them and the stores
// hold full copies, never references.
type Place struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Image       string  `json:"image"`      // asset reference, e.g. "places/old-town.png"
	CategoryID  string  `json:"categoryId"` // filled from the owning category on catalog load
}

// Category groups catalog places for browsing.
// Places keeps the catalog order, which is also the display order.
type Category struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Image  string  `json:"image"`
	Places []Place `json:"places"`
}
