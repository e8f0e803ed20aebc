package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yurist-tools/lawsplit/internal/core"
	"github.com/yurist-tools/lawsplit/internal/core/enricher"
	"github.com/yurist-tools/lawsplit/internal/core/markdown"
	"github.com/yurist-tools/lawsplit/internal/core/segmenter"
	"github.com/yurist-tools/lawsplit/internal/models"
)

// enrichParallelism bounds concurrent NLP classification calls per
// document so one large law cannot monopolize the sidecar.
const enrichParallelism = 4

// DocumentProcessor runs the full pipeline for a single document:
// extract text, segment into articles, enrich with keywords/topic, write
// markdown files.
type DocumentProcessor struct {
	extractor core.Extractor
	segmenter *segmenter.Segmenter
	enricher  *enricher.Enricher
	writer    *markdown.Writer
}

func NewDocumentProcessor(ex core.Extractor, seg *segmenter.Segmenter, enr *enricher.Enricher, w *markdown.Writer) *DocumentProcessor {
	return &DocumentProcessor{extractor: ex, segmenter: seg, enricher: enr, writer: w}
}

// ProcessDocument runs the pipeline stages in order and reports how many
// articles were found and how many files landed on disk. Any stage error
// aborts the document; a per-article write failure (after the fallback
// name also failed) only drops that article.
func (p *DocumentProcessor) ProcessDocument(ctx context.Context, filePath, outputDir string) (models.ProcessResult, error) {
	docBase := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	log.Printf("processor: processing document %s", filePath)

	text, err := p.extractor.ExtractText(ctx, filePath)
	if err != nil {
		return models.ProcessResult{}, err
	}
	log.Printf("processor: extracted %d characters from %s", len(text), docBase)

	articles, err := p.segmenter.Segment(ctx, text)
	if err != nil {
		return models.ProcessResult{}, fmt.Errorf("segment %s: %w", docBase, err)
	}

	if err := p.enrichAll(ctx, articles); err != nil {
		return models.ProcessResult{}, fmt.Errorf("enrich %s: %w", docBase, err)
	}

	created := 0
	for i, article := range articles {
		if _, err := p.writer.Write(article, outputDir, docBase, i); err != nil {
			log.Printf("processor: dropping article %q: %v", article.Title, err)
			continue
		}
		created++
	}

	log.Printf("processor: %s: %d articles, %d files written", docBase, len(articles), created)

	return models.ProcessResult{
		Document:      docBase,
		ArticlesCount: len(articles),
		FilesCreated:  created,
		OutputDir:     outputDir,
	}, nil
}

// enrichAll classifies articles concurrently; each goroutine owns its own
// slice element, so results stay in document order.
func (p *DocumentProcessor) enrichAll(ctx context.Context, articles []models.Article) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichParallelism)

	for i := range articles {
		i := i
		g.Go(func() error {
			return p.enricher.Enrich(gctx, &articles[i])
		})
	}
	return g.Wait()
}
