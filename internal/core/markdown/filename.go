package markdown

import (
	"regexp"
	"strings"

	"github.com/yurist-tools/lawsplit/internal/core/segmenter"
	"github.com/yurist-tools/lawsplit/internal/models"
)

const (
	maxDocBaseLen  = 40
	maxSegmentLen  = 50
	maxKeywordLen  = 20
	maxFilenameLen = 200
	markdownExt    = ".md"
)

var unsafeChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// Synthesizer builds deterministic filenames from an article's structural
// metadata: doc base, structural numbers of each enclosing level, the
// article's own number, its descriptive title and up to two keywords.
type Synthesizer struct {
	pats *segmenter.Patterns
}

func NewSynthesizer(pats *segmenter.Patterns) *Synthesizer {
	return &Synthesizer{pats: pats}
}

// DocPrefix returns the sanitized document base used as the first
// filename segment and in fallback names.
func (s *Synthesizer) DocPrefix(docBase string) string {
	return sanitize(docBase, maxDocBaseLen)
}

// Filename synthesizes the markdown filename for one article. The result
// never exceeds 200 characters and always ends in ".md".
func (s *Synthesizer) Filename(article models.Article, docBase string) string {
	parts := []string{s.DocPrefix(docBase)}

	appendPart := func(part string) {
		if part != "" {
			parts = append(parts, part)
		}
	}

	if article.SectionTitle != "" {
		appendPart(sanitize(s.pats.SectionID(article.SectionTitle), maxSegmentLen))
	}
	if article.ChapterTitle != "" {
		appendPart(sanitize(s.pats.ChapterID(article.ChapterTitle), maxSegmentLen))
	}
	if article.ParagraphMarker != "" {
		appendPart(sanitize(s.pats.ParagraphID(article.ParagraphMarker), maxSegmentLen))
	}

	appendPart(sanitize(s.pats.ArticleID(article.Title), maxSegmentLen))

	descriptive := strings.TrimSpace(s.pats.StripArticlePrefix(article.Title))
	appendPart(sanitize(descriptive, maxSegmentLen))

	if len(article.Keywords) > 0 {
		kws := article.Keywords
		if len(kws) > 2 {
			kws = kws[:2]
		}
		sanitized := make([]string, 0, len(kws))
		for _, kw := range kws {
			sanitized = append(sanitized, sanitize(kw, maxKeywordLen))
		}
		appendPart(strings.Trim(strings.Join(sanitized, "_"), "_"))
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	name := strings.Join(nonEmpty, "_") + markdownExt
	if runes := []rune(name); len(runes) > maxFilenameLen {
		base := runes[:maxFilenameLen-len(markdownExt)]
		name = string(base) + markdownExt
	}
	return name
}

// sanitize strips filesystem-unsafe characters, replaces spaces with
// underscores and truncates to maxLen runes.
func sanitize(text string, maxLen int) string {
	s := unsafeChars.ReplaceAllString(text, "")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxLen {
		s = string(runes[:maxLen])
	}
	return s
}
