package errs

import "errors"

// Sentinel errors for the cases callers branch on.
var (
	ErrEmptyUpload         = errors.New("no files provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrExtractionFailure   = errors.New("text extraction failed")
	ErrNLPUnavailable      = errors.New("linguistic service unavailable")
	ErrJobNotFound         = errors.New("job not found")
	ErrJobNotReady         = errors.New("job is not completed")
	ErrArchiveMissing      = errors.New("result archive not found")
)
