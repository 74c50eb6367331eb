package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pkordes/tourist-guide/internal/domain"
)

const reloadDebounce = 200 * time.Millisecond

// Source serves lookups from the current catalog and lets a watcher replace it
// atomically. Readers never observe a partially loaded catalog.
type Source struct {
	cur atomic.Pointer[Catalog]
}

// NewSource returns a Source serving c.
func NewSource(c *Catalog) *Source {
	s := &Source{}
	s.cur.Store(c)
	return s
}

// Current returns the catalog in effect.
func (s *Source) Current() *Catalog { return s.cur.Load() }

// Replace swaps in c for every later lookup.
func (s *Source) Replace(c *Catalog) { s.cur.Store(c) }

// Reload re-reads path and swaps it in. On failure the current catalog stays.
func (s *Source) Reload(path string) error {
	c, err := LoadFile(path)
	if err != nil {
		return err
	}
	s.Replace(c)
	return nil
}

func (s *Source) Categories() []domain.Category { return s.Current().Categories() }

func (s *Source) Category(id string) (domain.Category, error) { return s.Current().Category(id) }

func (s *Source) FindPlace(id string) (domain.Place, error) { return s.Current().FindPlace(id) }

func (s *Source) AllPlaces() []domain.Place { return s.Current().AllPlaces() }

func (s *Source) FindByCoordinates(lat, lng float64) (domain.Place, error) {
	return s.Current().FindByCoordinates(lat, lng)
}

func (s *Source) Search(q string) []domain.Place { return s.Current().Search(q) }

// Watch reloads path whenever it is written, created or renamed into place,
// until ctx is cancelled. The parent directory is watched rather than the file
// so editors that save via rename are picked up. Bursts of events are
// debounced into one reload. A file that fails to parse is logged and the
// previous catalog keeps serving.
func (s *Source) Watch(ctx context.Context, path string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog.Watch: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("catalog.Watch %s: %w", path, err)
	}
	name := filepath.Base(path)
	logger.Info("catalog watch started", "path", path)

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			if err := s.Reload(path); err != nil {
				logger.Warn("catalog reload failed, keeping previous catalog", "path", path, "error", err)
				continue
			}
			logger.Info("catalog reloaded", "path", path, "places", len(s.AllPlaces()))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", "error", err)
		}
	}
}
