package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yurist-tools/lawsplit/internal/core"
	"github.com/yurist-tools/lawsplit/internal/core/errs"
	"github.com/yurist-tools/lawsplit/internal/models"
	"github.com/yurist-tools/lawsplit/internal/services"
)

type JobHandler struct {
	svc            *services.JobService
	nlp            core.Linguist
	maxUploadBytes int64
}

func NewJobHandler(svc *services.JobService, nlp core.Linguist, maxUploadMB int64) *JobHandler {
	return &JobHandler{svc: svc, nlp: nlp, maxUploadBytes: maxUploadMB << 20}
}

// Upload accepts a multipart batch of DOCX/PDF files plus a merge_mode
// flag, creates a job and schedules background processing.
func (h *JobHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	mergeMode := r.FormValue("merge_mode") == "true"

	var files []services.UploadedFile
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			f, err := header.Open()
			if err != nil {
				http.Error(w, fmt.Sprintf("invalid file %s", header.Filename), http.StatusBadRequest)
				return
			}
			defer f.Close()
			files = append(files, services.UploadedFile{Name: header.Filename, Content: f})
		}
	}

	job, err := h.svc.Submit(files, mergeMode)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrEmptyUpload), errors.Is(err, errs.ErrUnsupportedFileType):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("handlers: upload failed: %v", err)
			http.Error(w, "failed to create job", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, models.UploadResponse{
		JobID:         job.ID,
		Message:       "Files uploaded successfully. Processing started.",
		FilesReceived: job.FilesCount,
	})
}

// Status reports current progress of a job.
func (h *JobHandler) Status(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")

	job, err := h.svc.Status(jobID)
	if err != nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, models.JobStatusResponse{
		JobID:         job.ID,
		Status:        job.Status,
		Progress:      job.Progress,
		Message:       job.Message,
		TotalArticles: job.TotalArticles,
		Error:         job.Error,
	})
}

// Download serves the finished archive and then destroys the job's
// workspace, so a second download of the same job returns 404.
func (h *JobHandler) Download(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")

	archivePath, err := h.svc.Archive(jobID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrJobNotFound):
			http.Error(w, "job not found", http.StatusNotFound)
		case errors.Is(err, errs.ErrJobNotReady):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "result file not found", http.StatusNotFound)
		}
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="processed_articles_%s.zip"`, jobID))
	http.ServeFile(w, r, archivePath)

	// ServeFile has finished writing the response by the time it
	// returns; the workspace can go now.
	h.svc.Cleanup(jobID)
}

// Health reports linguistic model readiness and the active job count.
func (h *JobHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ready := h.nlp.Ready(ctx) == nil

	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:     "healthy",
		NLPReady:   ready,
		ActiveJobs: h.svc.ActiveJobs(),
	})
}

// Info describes the API surface.
func (h *JobHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "Legal Document Splitter API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"upload":   "POST /upload - Upload documents for processing",
			"status":   "GET /status/{job_id} - Check job status",
			"download": "GET /download/{job_id} - Download results",
			"health":   "GET /health - Health check",
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handlers: encode response: %v", err)
	}
}
