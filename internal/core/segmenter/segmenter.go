package segmenter

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/yurist-tools/lawsplit/internal/core"
	"github.com/yurist-tools/lawsplit/internal/models"
)

// Segmenter turns a flat document text into an ordered sequence of
// articles tagged with their enclosing section/chapter/paragraph.
type Segmenter struct {
	nlp  core.Linguist
	pats *Patterns
}

func New(nlp core.Linguist, pats *Patterns) *Segmenter {
	return &Segmenter{nlp: nlp, pats: pats}
}

// scanState is the accumulator carried across the sentence scan. The
// hierarchy fields survive flushes; title and buffer are reset on every
// flush.
type scanState struct {
	title  string
	buffer []string

	section   string
	chapter   string
	paragraph string
}

// flush emits the open article, if any. A flush with no open title or an
// empty buffer is a no-op, so consecutive headings never produce empty
// articles.
func (st *scanState) flush(out []models.Article) []models.Article {
	if st.title != "" && len(st.buffer) > 0 {
		out = append(out, models.Article{
			Title:           st.title,
			SectionTitle:    st.section,
			ChapterTitle:    st.chapter,
			ParagraphMarker: st.paragraph,
			Content:         strings.TrimSpace(strings.Join(st.buffer, "\n")),
		})
	}
	st.title = ""
	st.buffer = nil
	return out
}

// Segment splits text into sentences via the linguistic service and folds
// them into articles. Recognizer priority is fixed:
// section > chapter > paragraph marker > article > body text.
func (s *Segmenter) Segment(ctx context.Context, text string) ([]models.Article, error) {
	sentences, err := s.nlp.SplitSentences(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("split sentences: %w", err)
	}
	log.Printf("segmenter: document split into %d sentences", len(sentences))

	var (
		articles []models.Article
		st       scanState
	)

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		// The recognizers return the whole matched heading line. A
		// sentence spanning several lines matches on its first line
		// only, since the patterns do not cross newlines.
		switch {
		case s.pats.section.MatchString(sentence):
			articles = st.flush(articles)
			st.section = strings.TrimSpace(s.pats.section.FindString(sentence))
			st.chapter = ""
			st.paragraph = ""

		case s.pats.chapter.MatchString(sentence):
			articles = st.flush(articles)
			st.chapter = strings.TrimSpace(s.pats.chapter.FindString(sentence))
			st.paragraph = ""

		case s.pats.paragraph.MatchString(sentence):
			articles = st.flush(articles)
			st.paragraph = strings.TrimSpace(s.pats.paragraph.FindString(sentence))

		case s.pats.article.MatchString(sentence):
			articles = st.flush(articles)
			st.title = strings.TrimSpace(s.pats.article.FindString(sentence))
			st.buffer = []string{sentence}

		default:
			// Body text before the first article heading is discarded.
			if st.title != "" {
				st.buffer = append(st.buffer, sentence)
			}
		}
	}

	articles = st.flush(articles)
	log.Printf("segmenter: found %d articles", len(articles))

	return articles, nil
}
