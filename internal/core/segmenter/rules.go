package segmenter

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rules names the structural prefix keywords the segmenter recognizes.
// The defaults match Russian federal law layout; digests using other
// markers can override them from a yaml file.
type Rules struct {
	Section   string `yaml:"section"`
	Chapter   string `yaml:"chapter"`
	Paragraph string `yaml:"paragraph"`
	Article   string `yaml:"article"`
}

// DefaultRules returns the standard Раздел/Глава/§/Статья keyword set.
func DefaultRules() Rules {
	return Rules{
		Section:   "Раздел",
		Chapter:   "Глава",
		Paragraph: "§",
		Article:   "Статья",
	}
}

// LoadRules reads rules from a yaml file, falling back to defaults for
// any keyword the file leaves empty. An empty path means defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}

	if loaded.Section != "" {
		rules.Section = loaded.Section
	}
	if loaded.Chapter != "" {
		rules.Chapter = loaded.Chapter
	}
	if loaded.Paragraph != "" {
		rules.Paragraph = loaded.Paragraph
	}
	if loaded.Article != "" {
		rules.Article = loaded.Article
	}
	return rules, nil
}

// Patterns holds the compiled recognizers for one rule set. A heading is
// the prefix keyword, a numeric identifier (dotted numbering allowed), an
// optional closing dot and an optional descriptive phrase.
type Patterns struct {
	rules Rules

	section   *regexp.Regexp
	chapter   *regexp.Regexp
	paragraph *regexp.Regexp
	article   *regexp.Regexp

	sectionID    *regexp.Regexp
	chapterID    *regexp.Regexp
	paragraphID  *regexp.Regexp
	articleID    *regexp.Regexp
	articleStrip *regexp.Regexp
}

// Compile builds the recognizers. Section/chapter/paragraph keywords must
// be followed by whitespace; the article keyword tolerates a missing
// space before the number, which occurs in scanned documents.
func (r Rules) Compile() (*Patterns, error) {
	heading := func(prefix, sep string) (*regexp.Regexp, error) {
		return regexp.Compile(`(?i)^\s*` + regexp.QuoteMeta(prefix) + sep + `\d+(?:\.\d+)*\.?\s*(.*)`)
	}
	structureID := func(prefix string) (*regexp.Regexp, error) {
		return regexp.Compile(`(?i)(` + regexp.QuoteMeta(prefix) + `\s*\d+(?:\.\d+)*)`)
	}

	p := &Patterns{rules: r}
	var err error

	if p.section, err = heading(r.Section, `\s+`); err != nil {
		return nil, fmt.Errorf("compile section pattern: %w", err)
	}
	if p.chapter, err = heading(r.Chapter, `\s+`); err != nil {
		return nil, fmt.Errorf("compile chapter pattern: %w", err)
	}
	if p.paragraph, err = heading(r.Paragraph, `\s+`); err != nil {
		return nil, fmt.Errorf("compile paragraph pattern: %w", err)
	}
	if p.article, err = heading(r.Article, `\s*`); err != nil {
		return nil, fmt.Errorf("compile article pattern: %w", err)
	}

	if p.sectionID, err = structureID(r.Section); err != nil {
		return nil, err
	}
	if p.chapterID, err = structureID(r.Chapter); err != nil {
		return nil, err
	}
	if p.paragraphID, err = structureID(r.Paragraph); err != nil {
		return nil, err
	}
	if p.articleID, err = structureID(r.Article); err != nil {
		return nil, err
	}

	p.articleStrip, err = regexp.Compile(`(?i)^\s*` + regexp.QuoteMeta(r.Article) + `\s*\d+(?:\.\d+)*\.?\s*`)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// MustCompile is Compile for the default rules; it cannot fail.
func MustCompile() *Patterns {
	p, err := DefaultRules().Compile()
	if err != nil {
		panic(err)
	}
	return p
}

// SectionID extracts "<keyword> <number>" from a section title, or "".
func (p *Patterns) SectionID(title string) string { return firstGroup(p.sectionID, title) }

// ChapterID extracts "<keyword> <number>" from a chapter title, or "".
func (p *Patterns) ChapterID(title string) string { return firstGroup(p.chapterID, title) }

// ParagraphID extracts "<keyword> <number>" from a paragraph marker, or "".
func (p *Patterns) ParagraphID(title string) string { return firstGroup(p.paragraphID, title) }

// ArticleID extracts "<keyword> <number>" from an article title, or "".
func (p *Patterns) ArticleID(title string) string { return firstGroup(p.articleID, title) }

// StripArticlePrefix removes the leading "<keyword> <number>." from an
// article title, leaving the descriptive remainder.
func (p *Patterns) StripArticlePrefix(title string) string {
	return p.articleStrip.ReplaceAllString(title, "")
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}
