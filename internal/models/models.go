package models

import (
	"time"
)

// JobStatus is the closed set of lifecycle states a processing job moves
// through. Transitions are Pending -> Processing -> {Completed, Failed};
// both Completed and Failed are terminal.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Article is one titled span of a legal document together with the
// structural context it was found under. Title and Content are always
// non-empty; the hierarchy fields are set only when the enclosing heading
// was seen before the article.
type Article struct {
	Title           string   `json:"title"`
	SectionTitle    string   `json:"section_title,omitempty"`
	ChapterTitle    string   `json:"chapter_title,omitempty"`
	ParagraphMarker string   `json:"paragraph_marker,omitempty"`
	Content         string   `json:"content"`
	Keywords        []string `json:"keywords,omitempty"`
	Topic           string   `json:"topic,omitempty"`
}

// Job tracks one batch of uploaded documents through the processing
// pipeline. Each job owns an isolated workspace directory holding its
// uploads, output tree and final archive.
type Job struct {
	ID            string    `json:"id"`
	Status        JobStatus `json:"status"`
	Progress      int       `json:"progress"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
	FilesCount    int       `json:"files_count"`
	MergeMode     bool      `json:"merge_mode"`
	TotalArticles *int      `json:"total_articles,omitempty"`
	Error         string    `json:"error,omitempty"`
	ArchivePath   string    `json:"-"`
}

// ProcessResult summarizes one processed document.
type ProcessResult struct {
	Document      string `json:"document"`
	ArticlesCount int    `json:"articles_count"`
	FilesCreated  int    `json:"files_created"`
	OutputDir     string `json:"output_dir"`
}

// UploadResponse is returned from POST /upload.
type UploadResponse struct {
	JobID         string `json:"job_id"`
	Message       string `json:"message"`
	FilesReceived int    `json:"files_received"`
}

// JobStatusResponse is returned from GET /status/{job_id}.
type JobStatusResponse struct {
	JobID         string    `json:"job_id"`
	Status        JobStatus `json:"status"`
	Progress      int       `json:"progress"`
	Message       string    `json:"message"`
	TotalArticles *int      `json:"total_articles,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	NLPReady   bool   `json:"nlp_ready"`
	ActiveJobs int    `json:"active_jobs"`
}
