package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yurist-tools/lawsplit/internal/config"
	"github.com/yurist-tools/lawsplit/internal/core/enricher"
	"github.com/yurist-tools/lawsplit/internal/core/errs"
	"github.com/yurist-tools/lawsplit/internal/core/extraction"
	"github.com/yurist-tools/lawsplit/internal/core/markdown"
	"github.com/yurist-tools/lawsplit/internal/core/nlp"
	"github.com/yurist-tools/lawsplit/internal/core/segmenter"
	"github.com/yurist-tools/lawsplit/internal/jobs"
	"github.com/yurist-tools/lawsplit/internal/services"
)

type App struct {
	JobService *services.JobService
	Server     *Server

	workDir string
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	linguist := nlp.NewClient(cfg.NLPBaseURL, cfg.NLPAPIKey)
	if err := linguist.Ready(pingCtx); err != nil {
		// No job can proceed without the language model.
		return nil, fmt.Errorf("%w: %v", errs.ErrNLPUnavailable, err)
	}
	log.Println("Linguistic service is ready.")

	rules, err := segmenter.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, err
	}
	patterns, err := rules.Compile()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}

	useReadability := false
	extractor := extraction.NewDocconvExtractor(useReadability)
	seg := segmenter.New(linguist, patterns)
	enr := enricher.New(linguist, cfg.NumKeywords)
	writer := markdown.NewWriter(markdown.NewSynthesizer(patterns))

	processor := services.NewDocumentProcessor(extractor, seg, enr, writer)
	jobService := services.NewJobService(jobs.NewRegistry(), processor, cfg.WorkDir, cfg.CleanupTimeout)
	jobService.Start(ctx, cfg.Workers)

	server := NewServer(cfg, jobService, linguist)

	return &App{JobService: jobService, Server: server, workDir: cfg.WorkDir}, nil
}

// Close removes the whole workspace tree on shutdown; jobs do not
// survive a restart.
func (a *App) Close() {
	if a.workDir != "" {
		_ = os.RemoveAll(a.workDir)
	}
}
