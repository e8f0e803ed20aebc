package extraction

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yurist-tools/lawsplit/internal/core/errs"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want bool
	}{
		{"закон.docx", true},
		{"кодекс.PDF", true},
		{"заметки.txt", false},
		{"архив.zip", false},
		{"без_расширения", false},
	}
	for _, tc := range cases {
		if got := Allowed(tc.name); got != tc.want {
			t.Errorf("Allowed(%q) = %t, want %t", tc.name, got, tc.want)
		}
	}
}

func TestExtractTextRejectsUnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "заметки.txt")
	if err := os.WriteFile(path, []byte("простой текст"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ex := NewDocconvExtractor(false)
	if _, err := ex.ExtractText(context.Background(), path); !errors.Is(err, errs.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	t.Parallel()

	ex := NewDocconvExtractor(false)
	_, err := ex.ExtractText(context.Background(), filepath.Join(t.TempDir(), "нет.pdf"))
	if !errors.Is(err, errs.ErrExtractionFailure) {
		t.Fatalf("expected ErrExtractionFailure, got %v", err)
	}
}
