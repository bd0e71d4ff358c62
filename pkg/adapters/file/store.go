package file

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/confcheck/pkg/domain"
)

// Store implements ports.DocumentStore using the local filesystem.
// Document names are slash-separated paths relative to BasePath.
type Store struct {
	BasePath string
}

// New creates a new Store rooted at basePath.
// If basePath is empty, it defaults to the current directory.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = "."
	}
	return &Store{BasePath: basePath}
}

// resolve maps a document name to a path inside BasePath.
func (s *Store) resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidDocumentName)
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || escapes(clean) {
		return "", fmt.Errorf("%w: %q escapes base directory", domain.ErrInvalidDocumentName, name)
	}
	return filepath.Join(s.BasePath, clean), nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// contained rejects paths whose symlinks resolve outside BasePath.
// A path that does not exist yet is left for the caller to report.
func (s *Store) contained(name, path string) error {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to resolve document: %w", err)
	}
	base, err := filepath.EvalSymlinks(s.BasePath)
	if err != nil {
		return fmt.Errorf("failed to resolve base directory: %w", err)
	}

	rel, err := filepath.Rel(base, resolved)
	if err != nil || filepath.IsAbs(rel) || escapes(rel) {
		return fmt.Errorf("%w: %q resolves outside base directory", domain.ErrInvalidDocumentName, name)
	}
	return nil
}

// Read returns the file contents as text.
// Directories are not documents and read as ErrDocumentNotFound.
func (s *Store) Read(ctx context.Context, name string) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := s.contained(name, path); err != nil {
		return "", err
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", domain.ErrDocumentNotFound, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, name)
		}
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}

// Put writes the document atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Put(ctx context.Context, name, content string) error {
	destPath, err := s.resolve(name)
	if err != nil {
		return err
	}

	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure document directory: %w", err)
	}
	if err := s.contained(name, dir); err != nil {
		return err
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(content); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing document for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Delete removes the document file. Deleting a missing document is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat document: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", domain.ErrInvalidDocumentName, name)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// List walks BasePath and returns every regular file as a slash-separated name.
// Hidden files and directories are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string

	err := filepath.WalkDir(s.BasePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != s.BasePath && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.BasePath, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	sort.Strings(names)
	return names, nil
}
