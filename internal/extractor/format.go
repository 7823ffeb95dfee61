package extractor

import (
	"hash/fnv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxDescriptionRunes is the longest description persisted for a project.
const MaxDescriptionRunes = 500

// Palette holds the card gradients assigned to projects.
var Palette = []string{
	"from-blue-400 to-purple-500",
	"from-green-400 to-blue-500",
	"from-purple-400 to-pink-500",
	"from-yellow-400 to-red-500",
	"from-indigo-400 to-purple-500",
	"from-pink-400 to-red-500",
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// ColorGradient picks a palette entry from the FNV-1a hash of title. The mapping is
// stable across runs and processes.
func ColorGradient(title string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(title))
	return Palette[h.Sum32()%uint32(len(Palette))]
}

// Humanize turns a repository slug such as "nasa-space-apps-2024" into "Nasa Space Apps 2024".
func Humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	return titleCaser.String(strings.Join(words, " "))
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
