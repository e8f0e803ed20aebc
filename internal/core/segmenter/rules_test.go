package segmenter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRulesDefaults(t *testing.T) {
	t.Parallel()

	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("load default rules: %v", err)
	}
	if rules != DefaultRules() {
		t.Fatalf("empty path should yield defaults, got %+v", rules)
	}
}

func TestLoadRulesPartialOverride(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "article: \"Ст.\"\nchapter: \"Часть\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if rules.Article != "Ст." || rules.Chapter != "Часть" {
		t.Fatalf("overrides not applied: %+v", rules)
	}
	if rules.Section != "Раздел" || rules.Paragraph != "§" {
		t.Fatalf("unset keywords should keep defaults: %+v", rules)
	}

	// The overridden keyword must be treated literally, dot included.
	pats, err := rules.Compile()
	if err != nil {
		t.Fatalf("compile rules: %v", err)
	}
	if !pats.article.MatchString("Ст. 5. Предмет.") {
		t.Fatal("custom article keyword not recognized")
	}
	if pats.article.MatchString("Стх 5. Предмет.") {
		t.Fatal("keyword dot must not match arbitrary characters")
	}
}

func TestStructureIDExtraction(t *testing.T) {
	t.Parallel()

	pats := MustCompile()

	cases := []struct {
		name string
		got  string
		want string
	}{
		{"section", pats.SectionID("Раздел 2. Особенная часть."), "Раздел 2"},
		{"chapter", pats.ChapterID("Глава 10. Аренда."), "Глава 10"},
		{"paragraph", pats.ParagraphID("§ 3. Поставка."), "§ 3"},
		{"article dotted", pats.ArticleID("Статья 12.1. Требования."), "Статья 12.1"},
		{"no match", pats.ArticleID("Просто текст."), ""},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestStripArticlePrefix(t *testing.T) {
	t.Parallel()

	pats := MustCompile()

	if got := pats.StripArticlePrefix("Статья 12.1. Дополнительные требования."); got != "Дополнительные требования." {
		t.Fatalf("unexpected remainder: %q", got)
	}
	if got := pats.StripArticlePrefix("Без префикса."); got != "Без префикса." {
		t.Fatalf("text without prefix should be unchanged, got %q", got)
	}
}
