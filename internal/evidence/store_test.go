package evidence

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/breachxpress-api/internal/models"
	"github.com/rs/zerolog"
)

func TestSaveAndExists(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1024, zerolog.Nop())

	content := "fake pdf bytes"
	ref, err := store.Save("dossier.pdf", int64(len(content)), strings.NewReader(content))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasPrefix(ref, "evidence/") {
		t.Errorf("Reference must carry the evidence/ prefix, got %s", ref)
	}
	if !strings.HasSuffix(ref, ".pdf") {
		t.Errorf("Reference must keep the file extension, got %s", ref)
	}
	if strings.Contains(ref, "dossier") {
		t.Errorf("Reference must not leak the original filename, got %s", ref)
	}

	if !store.Exists(ref) {
		t.Error("Saved reference must resolve")
	}

	data, err := os.ReadFile(store.Path(ref))
	if err != nil {
		t.Fatalf("Reading stored file failed: %v", err)
	}
	if string(data) != content {
		t.Errorf("Stored content mismatch: %q", data)
	}
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	store := NewStore(t.TempDir(), 1024, zerolog.Nop())

	_, err := store.Save("payload.exe", 10, strings.NewReader("xxxxxxxxxx"))
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}
}

func TestSaveRejectsOversizedDeclaredSize(t *testing.T) {
	store := NewStore(t.TempDir(), 16, zerolog.Nop())

	_, err := store.Save("dossier.pdf", 17, strings.NewReader("does not matter"))
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}
}

func TestSaveCatchesUnderdeclaredSize(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 16, zerolog.Nop())

	// Declared size passes the pre-check but the stream is longer than the cap
	_, err := store.Save("dossier.pdf", 10, strings.NewReader(strings.Repeat("x", 32)))
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}

	// Nothing should be left behind
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("ReadDir failed: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("Oversized upload must be removed, found %d entries", len(entries))
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1024, zerolog.Nop())

	if !store.Exists("") {
		t.Error("Empty reference means no evidence attached and must pass")
	}
	if store.Exists("evidence/gone.pdf") {
		t.Error("Dangling reference must not resolve")
	}

	if err := os.WriteFile(filepath.Join(dir, "blob.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !store.Exists("evidence/blob.pdf") {
		t.Error("Existing blob must resolve")
	}
}
