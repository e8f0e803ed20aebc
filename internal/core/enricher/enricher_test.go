package enricher

import (
	"context"
	"strings"
	"testing"

	"github.com/yurist-tools/lawsplit/internal/core"
	"github.com/yurist-tools/lawsplit/internal/models"
)

// fakeLinguist classifies by whitespace tokenization: lemma is the
// lowercased token with trailing punctuation split off, and class flags
// come from small lookup tables.
type fakeLinguist struct {
	stopwords map[string]bool
	noLemma   map[string]bool
}

func (f *fakeLinguist) Ready(ctx context.Context) error { return nil }

func (f *fakeLinguist) SplitSentences(ctx context.Context, text string) ([]string, error) {
	return []string{text}, nil
}

func (f *fakeLinguist) ClassifyTokens(ctx context.Context, text string) ([]core.Token, error) {
	var tokens []core.Token
	for _, raw := range strings.Fields(text) {
		word := strings.Trim(raw, ".,;:")
		if word == "" {
			tokens = append(tokens, core.Token{Text: raw, Lemma: raw, IsPunct: true})
			continue
		}
		lower := strings.ToLower(word)
		tok := core.Token{Text: word, Lemma: lower}
		if f.stopwords[lower] {
			tok.IsStopword = true
		}
		if strings.IndexFunc(lower, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
			tok.IsNumeric = true
		}
		if f.noLemma[lower] {
			tok.Lemma = ""
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func newTestEnricher(numKeywords int) (*Enricher, *fakeLinguist) {
	fake := &fakeLinguist{
		stopwords: map[string]bool{"и": true, "в": true, "на": true},
		noLemma:   map[string]bool{},
	}
	return New(fake, numKeywords), fake
}

func TestEnrichExcludesTitleLemmas(t *testing.T) {
	t.Parallel()

	enr, _ := newTestEnricher(7)

	article := models.Article{
		Title:   "договор поставки",
		Content: "договор аренда аренда имущество поставки",
	}
	if err := enr.Enrich(context.Background(), &article); err != nil {
		t.Fatalf("enrich returned error: %v", err)
	}

	for _, kw := range article.Keywords {
		if kw == "договор" || kw == "поставки" {
			t.Fatalf("keyword %q appears among title lemmas", kw)
		}
	}
	if len(article.Keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %v", article.Keywords)
	}
	if article.Keywords[0] != "аренда" {
		t.Fatalf("most frequent lemma should rank first, got %v", article.Keywords)
	}
	if article.Topic != "аренда" {
		t.Fatalf("topic should be the first keyword, got %q", article.Topic)
	}
}

func TestEnrichFirstOccurrenceTieBreak(t *testing.T) {
	t.Parallel()

	enr, _ := newTestEnricher(7)

	// "имущество" and "аренда" both occur twice; "имущество" is seen
	// first, so it must rank first.
	article := models.Article{
		Title:   "заголовок",
		Content: "имущество аренда имущество аренда пошлина",
	}
	if err := enr.Enrich(context.Background(), &article); err != nil {
		t.Fatalf("enrich returned error: %v", err)
	}

	want := []string{"имущество", "аренда", "пошлина"}
	if len(article.Keywords) != len(want) {
		t.Fatalf("expected %v, got %v", want, article.Keywords)
	}
	for i := range want {
		if article.Keywords[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, article.Keywords)
		}
	}
}

func TestEnrichFiltersShortStopAndNumericLemmas(t *testing.T) {
	t.Parallel()

	enr, _ := newTestEnricher(7)

	article := models.Article{
		Title:   "заголовок",
		Content: "ип ип ип 2024 2024 и в налог",
	}
	if err := enr.Enrich(context.Background(), &article); err != nil {
		t.Fatalf("enrich returned error: %v", err)
	}

	if len(article.Keywords) != 1 || article.Keywords[0] != "налог" {
		t.Fatalf("expected only %q to survive, got %v", "налог", article.Keywords)
	}
}

func TestEnrichKeywordLimit(t *testing.T) {
	t.Parallel()

	enr, _ := newTestEnricher(3)

	article := models.Article{
		Title:   "заголовок",
		Content: "альфа бета гамма дельта эпсилон",
	}
	if err := enr.Enrich(context.Background(), &article); err != nil {
		t.Fatalf("enrich returned error: %v", err)
	}

	if len(article.Keywords) != 3 {
		t.Fatalf("expected at most 3 keywords, got %v", article.Keywords)
	}
}

func TestEnrichTopicFallback(t *testing.T) {
	t.Parallel()

	enr, _ := newTestEnricher(7)

	article := models.Article{
		Title:   "налог",
		Content: "налог и в 42",
	}
	if err := enr.Enrich(context.Background(), &article); err != nil {
		t.Fatalf("enrich returned error: %v", err)
	}

	if len(article.Keywords) != 0 {
		t.Fatalf("expected no keywords, got %v", article.Keywords)
	}
	if article.Topic != DefaultTopic {
		t.Fatalf("expected fallback topic %q, got %q", DefaultTopic, article.Topic)
	}
}

func TestEnrichSkipsUnclassifiableTokens(t *testing.T) {
	t.Parallel()

	enr, fake := newTestEnricher(7)
	fake.noLemma["сбой"] = true

	article := models.Article{
		Title:   "заголовок",
		Content: "сбой налог сбой налог",
	}
	if err := enr.Enrich(context.Background(), &article); err != nil {
		t.Fatalf("a token without a lemma must not fail the article: %v", err)
	}

	if len(article.Keywords) != 1 || article.Keywords[0] != "налог" {
		t.Fatalf("expected the bad token to be skipped, got %v", article.Keywords)
	}
}
