package markdown

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/yurist-tools/lawsplit/internal/models"
)

// Writer renders articles to markdown and persists them under a job's
// output directory.
type Writer struct {
	names *Synthesizer
}

func NewWriter(names *Synthesizer) *Writer {
	return &Writer{names: names}
}

// Render produces the markdown artifact for one article: title heading,
// hierarchy headings at descending levels, content, then keywords and
// topic blocks.
func (w *Writer) Render(a models.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", a.Title)
	if a.SectionTitle != "" {
		fmt.Fprintf(&b, "## %s\n\n", a.SectionTitle)
	}
	if a.ChapterTitle != "" {
		fmt.Fprintf(&b, "### %s\n\n", a.ChapterTitle)
	}
	if a.ParagraphMarker != "" {
		fmt.Fprintf(&b, "#### %s\n\n", a.ParagraphMarker)
	}
	fmt.Fprintf(&b, "%s\n\n", a.Content)
	if len(a.Keywords) > 0 {
		fmt.Fprintf(&b, "## Keywords\n%s\n\n", strings.Join(a.Keywords, ", "))
	}
	if a.Topic != "" {
		fmt.Fprintf(&b, "## Topic\n%s\n", a.Topic)
	}

	return b.String()
}

// Write persists one article. index is the zero-based position of the
// article within its document; it seeds the fallback filename used when
// the synthesized name cannot be written.
func (w *Writer) Write(a models.Article, outputDir, docBase string, index int) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	content := []byte(w.Render(a))

	path := filepath.Join(outputDir, w.names.Filename(a, docBase))
	err := os.WriteFile(path, content, 0o644)
	if err == nil {
		return path, nil
	}
	log.Printf("markdown: error saving %q: %v, trying fallback name", path, err)

	fallback := filepath.Join(outputDir, fmt.Sprintf("%s_Article_%d.md", w.names.DocPrefix(docBase), index+1))
	if err := os.WriteFile(fallback, content, 0o644); err != nil {
		return "", fmt.Errorf("fallback write for %q: %w", a.Title, err)
	}
	return fallback, nil
}
