package core

import "context"

// Token is one classified token as reported by the linguistic service.
// A token the model could not lemmatize comes back with an empty Lemma
// and is skipped downstream.
type Token struct {
	Text       string `json:"text"`
	Lemma      string `json:"lemma"`
	IsStopword bool   `json:"is_stopword"`
	IsPunct    bool   `json:"is_punct"`
	IsNumeric  bool   `json:"is_numeric"`
}

// Linguist is the boundary to the external NLP model for one fixed
// language (Russian). Both calls are blocking inference and should only
// be made from worker goroutines, never from a request handler.
type Linguist interface {
	// Ready reports whether the underlying model is loaded and serving.
	Ready(ctx context.Context) error
	// SplitSentences returns the ordered sentences of text, trimmed,
	// with empty sentences removed.
	SplitSentences(ctx context.Context, text string) ([]string, error)
	// ClassifyTokens tokenizes text and classifies every token.
	ClassifyTokens(ctx context.Context, text string) ([]Token, error)
}

// Extractor converts a binary document on disk into a single text blob.
type Extractor interface {
	// ExtractText fails with errs.ErrUnsupportedFileType for any
	// extension outside the supported set.
	ExtractText(ctx context.Context, path string) (string, error)
}
