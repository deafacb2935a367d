package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/waymark/pkg/domain"
)

// Store implements ports.ResourceStore using the local filesystem.
// Records are stored as <BasePath>/<kind>/<id>.json.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".waymark/resources".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".waymark", "resources")
	}
	return &Store{BasePath: basePath}
}

type storedRecord struct {
	Kind       string         `json:"kind"`
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Save persists the record to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, rec *domain.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	destPath, err := s.path(rec.Kind, rec.ID)
	if err != nil {
		return err
	}
	dir := filepath.Dir(destPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure resource directory: %w", err)
	}

	data, err := json.MarshalIndent(storedRecord{Kind: rec.Kind, ID: rec.ID, Attributes: rec.Attributes}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	// Same directory as the destination, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+rec.ID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing record file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to record: %w", err)
	}
	return nil
}

// Load retrieves the record from its JSON file.
func (s *Store) Load(ctx context.Context, kind, id string) (*domain.Record, error) {
	filePath, err := s.path(kind, id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	var stored storedRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return domain.NewRecord(stored.Kind, stored.ID, stored.Attributes), nil
}

// Delete removes the record file.
func (s *Store) Delete(ctx context.Context, kind, id string) error {
	filePath, err := s.path(kind, id)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record file: %w", err)
	}
	return nil
}

// List returns the ids stored for kind.
func (s *Store) List(ctx context.Context, kind string) ([]string, error) {
	if err := checkSegment("kind", kind); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.BasePath, kind))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) path(kind, id string) (string, error) {
	if err := checkSegment("kind", kind); err != nil {
		return "", err
	}
	if err := checkSegment("id", id); err != nil {
		return "", err
	}
	return filepath.Join(s.BasePath, kind, id+".json"), nil
}

// checkSegment keeps kinds and ids inside BasePath.
func checkSegment(name, v string) error {
	if v == "" || v == "." || v == ".." || strings.ContainsAny(v, `/\`) || strings.HasPrefix(v, "tmp-") {
		return fmt.Errorf("invalid %s %q", name, v)
	}
	return nil
}
