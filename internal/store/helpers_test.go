package store_test

import "github.com/pkordes/tourist-guide/internal/domain"

// ---- fixtures --------------------------------------------------------------

func place(id string) domain.Place {
	return domain.Place{
		ID:          id,
		Name:        "Place " + id,
		Description: "About " + id,
		Latitude:    38.7139,
		Longitude:   -9.1334,
		Image:       "places/" + id + ".png",
		CategoryID:  "views",
	}
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func placeIDs(ps []domain.Place) []string {
	return ids(ps, func(p domain.Place) string { return p.ID })
}

func entryIDs(es []domain.DiaryEntry) []string {
	return ids(es, func(e domain.DiaryEntry) string { return e.ID })
}

func ptr[T any](v T) *T { return &v }

// fixedGenerator replays ids in order and then repeats the last one.
type fixedGenerator struct {
	ids []string
	n   int
}

func (g *fixedGenerator) NewID() string {
	id := g.ids[min(g.n, len(g.ids)-1)]
	g.n++
	return id
}
