package enricher

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yurist-tools/lawsplit/internal/core"
	"github.com/yurist-tools/lawsplit/internal/models"
)

// DefaultTopic is assigned when no keyword survives filtering.
const DefaultTopic = "Общее положение"

// minKeywordRunes: lemmas of 2 runes or fewer are noise (prepositions the
// stoplist missed, initials).
const minKeywordRunes = 3

// Enricher computes keywords and a topic for each article from lemma
// frequencies of its content, excluding lemmas already present in the
// title.
type Enricher struct {
	nlp         core.Linguist
	numKeywords int
}

func New(nlp core.Linguist, numKeywords int) *Enricher {
	if numKeywords <= 0 {
		numKeywords = 7
	}
	return &Enricher{nlp: nlp, numKeywords: numKeywords}
}

// Enrich fills in article.Keywords and article.Topic in place.
func (e *Enricher) Enrich(ctx context.Context, article *models.Article) error {
	titleLemmas, err := e.filteredLemmaSet(ctx, article.Title)
	if err != nil {
		return fmt.Errorf("classify title: %w", err)
	}

	tokens, err := e.nlp.ClassifyTokens(ctx, article.Content)
	if err != nil {
		return fmt.Errorf("classify content: %w", err)
	}

	// Count surviving content lemmas, remembering first-seen order so
	// that equal frequencies rank by first occurrence.
	counts := make(map[string]int)
	var order []string
	for _, tok := range tokens {
		lemma, ok := keep(tok)
		if !ok || titleLemmas[lemma] {
			continue
		}
		if counts[lemma] == 0 {
			order = append(order, lemma)
		}
		counts[lemma]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	var keywords []string
	for _, lemma := range order {
		if utf8.RuneCountInString(lemma) < minKeywordRunes {
			continue
		}
		keywords = append(keywords, lemma)
		if len(keywords) == e.numKeywords {
			break
		}
	}

	article.Keywords = keywords
	if len(keywords) > 0 {
		article.Topic = keywords[0]
	} else {
		article.Topic = DefaultTopic
	}
	return nil
}

// filteredLemmaSet lemmatizes text and returns the set of lemmas that are
// not stopwords, punctuation or numeric literals.
func (e *Enricher) filteredLemmaSet(ctx context.Context, text string) (map[string]bool, error) {
	tokens, err := e.nlp.ClassifyTokens(ctx, text)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if lemma, ok := keep(tok); ok {
			set[lemma] = true
		}
	}
	return set, nil
}

// keep applies the shared token filter and normalizes the lemma. A token
// the model failed to lemmatize has an empty lemma and is skipped rather
// than failing the article.
func keep(tok core.Token) (string, bool) {
	if tok.IsStopword || tok.IsPunct || tok.IsNumeric {
		return "", false
	}
	if strings.TrimSpace(tok.Text) == "" {
		return "", false
	}
	lemma := strings.ToLower(strings.TrimSpace(tok.Lemma))
	if lemma == "" {
		return "", false
	}
	return lemma, true
}
