// Package catalog is the read-only reference data of the guide: an ordered
// list of categories, each holding an ordered list of places. The catalog is
// loaded once at start-up and never mutated; a Source can swap in a whole new
// catalog when the backing file changes.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/tourist-guide/internal/domain"
)

//go:embed catalog.yaml
var builtin []byte

// ErrInvalid is returned by Parse when the document breaks a catalog rule.
var ErrInvalid = errors.New("invalid catalog")

// document is the YAML shape of a catalog file.
type document struct {
	Categories []struct {
		ID     string `yaml:"id"`
		Title  string `yaml:"title"`
		Image  string `yaml:"image"`
		Places []struct {
			ID          string  `yaml:"id"`
			Name        string  `yaml:"name"`
			Description string  `yaml:"description"`
			Latitude    float64 `yaml:"latitude"`
			Longitude   float64 `yaml:"longitude"`
			Image       string  `yaml:"image"`
		} `yaml:"places"`
	} `yaml:"categories"`
}

// Catalog is an immutable, validated catalog. The zero value is an empty catalog.
type Catalog struct {
	categories []domain.Category
	byPlace    map[string]domain.Place
	byCategory map[string]int
}

// Default returns the built-in catalog. It panics if the embedded document is
// invalid, which the package tests rule out.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog: %v", err))
	}
	return c
}

// LoadFile reads and parses the catalog file at path.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog document. Category and place ids
// must be unique (place ids across the whole catalog), names non-blank and
// coordinates within range. Each place's CategoryID is set from its category.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var problems []string
	c := &Catalog{
		categories: make([]domain.Category, 0, len(doc.Categories)),
		byPlace:    make(map[string]domain.Place),
		byCategory: make(map[string]int, len(doc.Categories)),
	}
	for ci, dc := range doc.Categories {
		if strings.TrimSpace(dc.ID) == "" {
			problems = append(problems, fmt.Sprintf("category #%d: id is required", ci+1))
			continue
		}
		if _, dup := c.byCategory[dc.ID]; dup {
			problems = append(problems, fmt.Sprintf("category %q: duplicate id", dc.ID))
			continue
		}
		if strings.TrimSpace(dc.Title) == "" {
			problems = append(problems, fmt.Sprintf("category %q: title is required", dc.ID))
		}

		cat := domain.Category{ID: dc.ID, Title: dc.Title, Image: dc.Image, Places: make([]domain.Place, 0, len(dc.Places))}
		for pi, dp := range dc.Places {
			p := domain.Place{
				ID:          dp.ID,
				Name:        dp.Name,
				Description: dp.Description,
				Latitude:    dp.Latitude,
				Longitude:   dp.Longitude,
				Image:       dp.Image,
				CategoryID:  dc.ID,
			}
			if msg := checkPlace(p); msg != "" {
				problems = append(problems, fmt.Sprintf("category %q place #%d: %s", dc.ID, pi+1, msg))
				continue
			}
			if prev, dup := c.byPlace[p.ID]; dup {
				problems = append(problems, fmt.Sprintf("place %q: duplicate id (also in category %q)", p.ID, prev.CategoryID))
				continue
			}
			c.byPlace[p.ID] = p
			cat.Places = append(cat.Places, p)
		}
		c.byCategory[dc.ID] = len(c.categories)
		c.categories = append(c.categories, cat)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return c, nil
}

func checkPlace(p domain.Place) string {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return "id is required"
	case strings.TrimSpace(p.Name) == "":
		return fmt.Sprintf("place %q: name is required", p.ID)
	case p.Latitude < -90 || p.Latitude > 90:
		return fmt.Sprintf("place %q: latitude %v out of range", p.ID, p.Latitude)
	case p.Longitude < -180 || p.Longitude > 180:
		return fmt.Sprintf("place %q: longitude %v out of range", p.ID, p.Longitude)
	}
	return ""
}

// Categories returns every category in catalog order. Callers must not modify
// the returned places slices.
func (c *Catalog) Categories() []domain.Category {
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category returns the category with id or domain.ErrNotFound.
func (c *Catalog) Category(id string) (domain.Category, error) {
	i, ok := c.byCategory[id]
	if !ok {
		return domain.Category{}, fmt.Errorf("catalog.Category %q: %w", id, domain.ErrNotFound)
	}
	return c.categories[i], nil
}

// FindPlace returns the place with id or domain.ErrNotFound.
func (c *Catalog) FindPlace(id string) (domain.Place, error) {
	p, ok := c.byPlace[id]
	if !ok {
		return domain.Place{}, fmt.Errorf("catalog.FindPlace %q: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// AllPlaces returns every place across all categories, in category order and
// then place order.
func (c *Catalog) AllPlaces() []domain.Place {
	out := make([]domain.Place, 0, len(c.byPlace))
	for _, cat := range c.categories {
		out = append(out, cat.Places...)
	}
	return out
}

// FindByCoordinates returns the first place, in catalog order, located exactly
// at lat/lng, or domain.ErrNotFound.
func (c *Catalog) FindByCoordinates(lat, lng float64) (domain.Place, error) {
	for _, cat := range c.categories {
		for _, p := range cat.Places {
			if p.Latitude == lat && p.Longitude == lng {
				return p, nil
			}
		}
	}
	return domain.Place{}, fmt.Errorf("catalog.FindByCoordinates %v,%v: %w", lat, lng, domain.ErrNotFound)
}

// Search returns the places whose name contains q, ignoring case, in catalog
// order. An empty q matches every place.
func (c *Catalog) Search(q string) []domain.Place {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return c.AllPlaces()
	}
	var out []domain.Place
	for _, cat := range c.categories {
		for _, p := range cat.Places {
			if strings.Contains(strings.ToLower(p.Name), q) {
				out = append(out, p)
			}
		}
	}
	if out == nil {
		out = []domain.Place{}
	}
	return out
}
