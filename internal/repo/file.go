package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkordes/tourist-guide/internal/domain"
)

// fileSlotRepo stores each slot as <dir>/<key>.json.
// Writes go to a temp file in the same directory which is then renamed over
// the target, so a crash mid-write leaves the previous snapshot intact.
type fileSlotRepo struct {
	dir string
}

// NewFileSlotRepo constructs a SlotRepo rooted at dir.
// The directory is created lazily on the first Put.
func NewFileSlotRepo(dir string) SlotRepo {
	return &fileSlotRepo{dir: dir}
}

func (r *fileSlotRepo) path(key string) string {
	return filepath.Join(r.dir, key+".json")
}

func (r *fileSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, fmt.Errorf("repo.FileSlotRepo.Get: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("repo.FileSlotRepo.Get: %w", err)
	}
	b, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("repo.FileSlotRepo.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.FileSlotRepo.Get: %w", err)
	}
	return b, nil
}

func (r *fileSlotRepo) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return fmt.Errorf("repo.FileSlotRepo.Put: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("repo.FileSlotRepo.Put: %w", err)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("repo.FileSlotRepo.Put: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("repo.FileSlotRepo.Put: create temp: %w", err)
	}
	// Remove is a no-op after a successful rename.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.FileSlotRepo.Put: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.FileSlotRepo.Put: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repo.FileSlotRepo.Put: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path(key)); err != nil {
		return fmt.Errorf("repo.FileSlotRepo.Put: rename: %w", err)
	}
	return nil
}
