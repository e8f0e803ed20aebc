package extraction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"

	"github.com/yurist-tools/lawsplit/internal/core"
	"github.com/yurist-tools/lawsplit/internal/core/errs"
)

// allowedExtensions is the set of binary formats the service accepts.
var allowedExtensions = map[string]bool{
	".docx": true,
	".pdf":  true,
}

// Allowed reports whether the file extension is a supported document format.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

var _ core.Extractor = (*DocconvExtractor)(nil)

// DocconvExtractor converts DOCX and PDF files into plain text using
// sajari/docconv.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

// ExtractText reads the whole document at path and returns its text body.
func (e *DocconvExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	if !Allowed(path) {
		return "", fmt.Errorf("%w: %s", errs.ErrUnsupportedFileType, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", errs.ErrExtractionFailure, filepath.Base(path), err)
	}
	defer f.Close()

	res, err := docconv.Convert(f, docconv.MimeTypeByExtension(path), e.useReadability)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", errs.ErrExtractionFailure, filepath.Base(path), err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if strings.TrimSpace(res.Body) == "" {
		return "", fmt.Errorf("%w: %s: document is empty", errs.ErrExtractionFailure, filepath.Base(path))
	}
	return res.Body, nil
}
