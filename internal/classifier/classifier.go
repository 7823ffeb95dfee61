// Package classifier decides whether a repository looks like a hackathon project.
package classifier

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"hackathon-importer/internal/model"
)

// DefaultKeywords is the broad keyword net. "hack" deliberately matches any word containing it.
var DefaultKeywords = []string{
	"hackathon", "devpost", "submission", "24 hour", "48 hour",
	"built in", "hack", "datathon", "makeathon", "code jam",
	"programming contest", "coding competition", "tech challenge",
	"nasa space apps", "space apps", "crushathon", "top 100 coders",
}

// DefaultStrongIndicators are repository-name substrings that justify a fallback record
// when model extraction fails.
var DefaultStrongIndicators = []string{"hackathon", "nasa"}

// Classifier is a keyword-membership predicate over repository metadata and README text.
type Classifier struct {
	keywords []string
}

// New returns a Classifier for keywords; an empty list selects DefaultKeywords.
func New(keywords []string) *Classifier {
	kw := Normalize(keywords)
	if len(kw) == 0 {
		kw = Normalize(DefaultKeywords)
	}
	return &Classifier{keywords: kw}
}

// Keywords returns a copy of the active keyword list.
func (c *Classifier) Keywords() []string {
	return append([]string(nil), c.keywords...)
}

// IsHackathon reports whether any keyword occurs in the lowercase name, description and README.
func (c *Classifier) IsHackathon(repo model.Repository, readme string) bool {
	parts := make([]string, 0, 3)
	if repo.Name != "" {
		parts = append(parts, strings.ToLower(repo.Name))
	}
	if repo.Description != nil && *repo.Description != "" {
		parts = append(parts, strings.ToLower(*repo.Description))
	}
	if readme != "" {
		parts = append(parts, strings.ToLower(readme))
	}
	combined := strings.Join(parts, " ")

	for _, kw := range c.keywords {
		if strings.Contains(combined, kw) {
			return true
		}
	}
	return false
}

// Normalize lowercases and trims keywords, dropping blanks and duplicates. Order is kept.
func Normalize(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// KeywordFile is the YAML document accepted by LoadKeywordFile.
//
//	keywords: [hackathon, devpost]
//	strong_indicators: [hackathon, nasa]
type KeywordFile struct {
	Keywords         []string `yaml:"keywords"`
	StrongIndicators []string `yaml:"strong_indicators"`
}

// LoadKeywordFile reads keyword overrides from a YAML file.
func LoadKeywordFile(path string) (*KeywordFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword file: %w", err)
	}

	var kf KeywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse keyword file %s: %w", path, err)
	}
	kf.Keywords = Normalize(kf.Keywords)
	kf.StrongIndicators = Normalize(kf.StrongIndicators)
	return &kf, nil
}
