package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Shuaibullattil/daily-motivation/internal/domain/profile"
	"github.com/Shuaibullattil/daily-motivation/internal/observability"
)

// Store keeps the single profile document in one JSON file.
// The mutex serialises access within this process only.
type Store struct {
	path string
	prom *observability.Prom

	mu sync.Mutex
}

func New(path string, prom *observability.Prom) *Store {
	return &Store{path: path, prom: prom}
}

func (s *Store) Path() string { return s.path }

// Read returns the stored document, creating an empty one on disk when the file is missing.
func (s *Store) Read(ctx context.Context) (profile.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read(ctx)
}

// Write replaces the whole file with doc.
func (s *Store) Write(ctx context.Context, doc profile.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(ctx, doc)
}

// Create overwrites any stored profile.
func (s *Store) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, profile.Document{User: &p}); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func (s *Store) Get(ctx context.Context) (profile.Profile, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return profile.Profile{}, err
	}
	if doc.User == nil {
		return profile.Profile{}, profile.ErrNotFound
	}
	return *doc.User, nil
}

func (s *Store) Update(ctx context.Context, patch profile.Patch) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read(ctx)
	if err != nil {
		return profile.Profile{}, err
	}
	if doc.User == nil {
		return profile.Profile{}, profile.ErrNotFound
	}

	next := doc.User.Apply(patch)
	if err := s.write(ctx, profile.Document{User: &next}); err != nil {
		return profile.Profile{}, err
	}
	return next, nil
}

// Ping reports whether the directory holding the file is usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat storage dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage dir %s is not a directory", dir)
	}
	return nil
}

func (s *Store) read(ctx context.Context) (profile.Document, error) {
	var doc profile.Document

	err := s.prom.ObserveStore("read", func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := os.ReadFile(s.path)
		if errors.Is(err, fs.ErrNotExist) {
			return s.writeFile([]byte("{}"))
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", s.path, err)
		}

		if len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}

		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode %s: %w", s.path, err)
		}
		return nil
	})

	return doc, err
}

func (s *Store) write(ctx context.Context, doc profile.Document) error {
	return s.prom.ObserveStore("write", func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := json.MarshalIndent(doc, "", "    ")
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}

		return s.writeFile(append(raw, '\n'))
	})
}

// writeFile replaces the file through a temp file + rename in the same directory.
func (s *Store) writeFile(data []byte) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
