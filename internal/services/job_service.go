package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yurist-tools/lawsplit/internal/core/archive"
	"github.com/yurist-tools/lawsplit/internal/core/errs"
	"github.com/yurist-tools/lawsplit/internal/core/extraction"
	"github.com/yurist-tools/lawsplit/internal/jobs"
	"github.com/yurist-tools/lawsplit/internal/models"
)

const (
	uploadsDirName = "uploads"
	outputDirName  = "output"
	mergedDirName  = "merged_articles"
)

// UploadedFile is one incoming document, decoupled from the transport.
type UploadedFile struct {
	Name    string
	Content io.Reader
}

// JobService owns the job registry and every job's workspace on disk.
// Submissions enqueue job IDs on a bounded channel consumed by worker
// goroutines; each job is processed by exactly one worker.
type JobService struct {
	registry  *jobs.Registry
	processor *DocumentProcessor

	workDir        string
	cleanupTimeout time.Duration
	queue          chan string
}

// NewJobService constructs the service with a bounded job queue (64).
func NewJobService(registry *jobs.Registry, processor *DocumentProcessor, workDir string, cleanupTimeout time.Duration) *JobService {
	return &JobService{
		registry:       registry,
		processor:      processor,
		workDir:        workDir,
		cleanupTimeout: cleanupTimeout,
		queue:          make(chan string, 64),
	}
}

// Start launches numWorkers goroutines consuming the job queue.
func (s *JobService) Start(ctx context.Context, numWorkers int) {
	for w := 1; w <= numWorkers; w++ {
		go func(w int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("jobservice: worker %d shutting down", w)
					return
				case jobID := <-s.queue:
					log.Printf("jobservice: worker %d picked up job %s", w, jobID)
					s.runJob(ctx, jobID)
				}
			}
		}(w)
	}
}

// Submit validates the batch, materializes the job workspace and
// enqueues processing. Validation failures happen before any job state
// exists, so a rejected upload leaves no trace.
func (s *JobService) Submit(files []UploadedFile, mergeMode bool) (models.Job, error) {
	// Opportunistic reclamation of abandoned workspaces.
	s.SweepExpired()

	if len(files) == 0 {
		return models.Job{}, errs.ErrEmptyUpload
	}
	for _, f := range files {
		if !extraction.Allowed(f.Name) {
			return models.Job{}, fmt.Errorf("%w: %s (only DOCX and PDF are allowed)", errs.ErrUnsupportedFileType, f.Name)
		}
	}

	jobID := uuid.NewString()
	uploadsDir := filepath.Join(s.jobDir(jobID), uploadsDirName)
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return models.Job{}, fmt.Errorf("create job workspace: %w", err)
	}

	for _, f := range files {
		dst := filepath.Join(uploadsDir, filepath.Base(f.Name))
		out, err := os.Create(dst)
		if err != nil {
			return models.Job{}, fmt.Errorf("save upload %s: %w", f.Name, err)
		}
		if _, err := io.Copy(out, f.Content); err != nil {
			out.Close()
			return models.Job{}, fmt.Errorf("save upload %s: %w", f.Name, err)
		}
		if err := out.Close(); err != nil {
			return models.Job{}, fmt.Errorf("save upload %s: %w", f.Name, err)
		}
		log.Printf("jobservice: saved uploaded file %s", f.Name)
	}

	job := models.Job{
		ID:         jobID,
		Status:     models.StatusPending,
		Progress:   0,
		Message:    "Job queued for processing",
		CreatedAt:  time.Now(),
		FilesCount: len(files),
		MergeMode:  mergeMode,
	}
	s.registry.Create(job)

	s.queue <- jobID
	log.Printf("jobservice: created job %s with %d files (merge_mode=%t)", jobID, len(files), mergeMode)

	return job, nil
}

// Status returns the current job record.
func (s *JobService) Status(jobID string) (models.Job, error) {
	job, ok := s.registry.Get(jobID)
	if !ok {
		return models.Job{}, errs.ErrJobNotFound
	}
	return job, nil
}

// Archive returns the path of the finished archive for download.
func (s *JobService) Archive(jobID string) (string, error) {
	job, ok := s.registry.Get(jobID)
	if !ok {
		return "", errs.ErrJobNotFound
	}
	if job.Status != models.StatusCompleted {
		return "", fmt.Errorf("%w: current status %s", errs.ErrJobNotReady, job.Status)
	}
	if job.ArchivePath == "" {
		return "", errs.ErrArchiveMissing
	}
	if _, err := os.Stat(job.ArchivePath); err != nil {
		return "", errs.ErrArchiveMissing
	}
	return job.ArchivePath, nil
}

// Cleanup destroys the job workspace and drops the registry entry. Used
// after a successful download.
func (s *JobService) Cleanup(jobID string) {
	log.Printf("jobservice: cleaning up job %s", jobID)
	if err := os.RemoveAll(s.jobDir(jobID)); err != nil {
		log.Printf("jobservice: remove workspace of %s: %v", jobID, err)
	}
	s.registry.Remove(jobID)
}

// SweepExpired reclaims jobs older than the cleanup timeout together
// with their workspaces. In-flight jobs are younger than the timeout by
// construction and are never touched.
func (s *JobService) SweepExpired() {
	cutoff := time.Now().Add(-s.cleanupTimeout)
	for _, job := range s.registry.SweepExpired(cutoff) {
		log.Printf("jobservice: sweeping expired job %s", job.ID)
		if err := os.RemoveAll(s.jobDir(job.ID)); err != nil {
			log.Printf("jobservice: remove workspace of %s: %v", job.ID, err)
		}
	}
}

// ActiveJobs reports the number of registered jobs, for health checks.
func (s *JobService) ActiveJobs() int {
	return s.registry.Count()
}

// runJob drives one job through all pipeline stages. Every failure path,
// including a worker panic, lands in a terminal Failed state so no job is
// ever left stuck in Processing.
func (s *JobService) runJob(ctx context.Context, jobID string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("jobservice: job %s panicked: %v", jobID, r)
			s.markFailed(jobID, fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := s.processJob(ctx, jobID); err != nil {
		log.Printf("jobservice: job %s failed: %v", jobID, err)
		s.markFailed(jobID, err)
	}
}

func (s *JobService) processJob(ctx context.Context, jobID string) error {
	s.registry.Update(jobID, func(j *models.Job) {
		j.Status = models.StatusProcessing
		j.Message = "Processing documents..."
	})

	jobDir := s.jobDir(jobID)
	outputBase := filepath.Join(jobDir, outputDirName)

	filePaths, err := listUploads(filepath.Join(jobDir, uploadsDirName))
	if err != nil {
		return err
	}

	job, ok := s.registry.Get(jobID)
	if !ok {
		return errs.ErrJobNotFound
	}

	totalArticles := 0
	for idx, filePath := range filePaths {
		name := filepath.Base(filePath)
		progress := idx * 90 / len(filePaths)
		s.registry.Update(jobID, func(j *models.Job) {
			j.Message = fmt.Sprintf("Processing file %d/%d: %s", idx+1, len(filePaths), name)
			j.Progress = progress
		})

		outputDir := filepath.Join(outputBase, mergedDirName)
		if !job.MergeMode {
			docBase := name[:len(name)-len(filepath.Ext(name))]
			outputDir = filepath.Join(outputBase, docBase)
		}

		result, err := s.processor.ProcessDocument(ctx, filePath, outputDir)
		if err != nil {
			return err
		}
		totalArticles += result.ArticlesCount
		log.Printf("jobservice: processed %s: %d articles", name, result.ArticlesCount)
	}

	s.registry.Update(jobID, func(j *models.Job) {
		j.Message = "Creating archive..."
		j.Progress = 95
	})

	archivePath := filepath.Join(jobDir, jobID+".zip")
	if err := archive.BuildZip(outputBase, archivePath); err != nil {
		return fmt.Errorf("build archive: %w", err)
	}

	s.registry.Update(jobID, func(j *models.Job) {
		j.Status = models.StatusCompleted
		j.Message = "Processing completed successfully"
		j.Progress = 100
		j.TotalArticles = &totalArticles
		j.ArchivePath = archivePath
	})
	log.Printf("jobservice: job %s completed, total articles: %d", jobID, totalArticles)

	return nil
}

func (s *JobService) markFailed(jobID string, err error) {
	s.registry.Update(jobID, func(j *models.Job) {
		j.Status = models.StatusFailed
		j.Message = "Processing failed"
		j.Progress = 0
		j.Error = err.Error()
	})
}

func (s *JobService) jobDir(jobID string) string {
	return filepath.Join(s.workDir, jobID)
}

// listUploads returns the uploaded document paths in stable name order.
func listUploads(uploadsDir string) ([]string, error) {
	entries, err := os.ReadDir(uploadsDir)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() {
			paths = append(paths, filepath.Join(uploadsDir, e.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, errs.ErrEmptyUpload
	}
	return paths, nil
}
