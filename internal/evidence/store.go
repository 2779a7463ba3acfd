// Package evidence stores uploaded evidence files on disk and hands back
// opaque references. The rest of the system copies references; it never
// re-uploads or inspects file content.
package evidence

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store writes evidence files under a base directory
type Store struct {
	dir     string
	maxSize int64
	log     zerolog.Logger
}

// NewStore creates an evidence store rooted at dir
func NewStore(dir string, maxSize int64, log zerolog.Logger) *Store {
	return &Store{
		dir:     dir,
		maxSize: maxSize,
		log:     log.With().Str("component", "evidence").Logger(),
	}
}

// Save validates and persists one uploaded file, returning the opaque
// reference stored on submissions and copied onto promoted articles.
func (s *Store) Save(filename string, size int64, r io.Reader) (string, error) {
	if errs := validation.ValidateEvidenceFile(filename, size, s.maxSize); len(errs) > 0 {
		return "", errs
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create evidence directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create evidence file: %w", err)
	}
	defer dst.Close()

	// The handler has already bounded the request body; LimitReader is the
	// backstop in case size lied.
	written, err := io.Copy(dst, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write evidence file: %w", err)
	}
	if written > s.maxSize {
		os.Remove(path)
		return "", models.ValidationErrors{{
			Field:   "evidence",
			Message: fmt.Sprintf("file too large, max size is %d MB", s.maxSize/(1024*1024)),
		}}
	}

	s.log.Info().Str("ref", name).Int64("size_bytes", written).Msg("Evidence stored")
	return "evidence/" + name, nil
}

// Exists reports whether the blob behind a reference is still present.
// Promotion refuses to produce an article with a dangling reference.
func (s *Store) Exists(ref string) bool {
	if ref == "" {
		return true // no evidence attached
	}
	name := strings.TrimPrefix(ref, "evidence/")
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// Path resolves a reference to the on-disk location, for the media handler
func (s *Store) Path(ref string) string {
	return filepath.Join(s.dir, strings.TrimPrefix(ref, "evidence/"))
}
