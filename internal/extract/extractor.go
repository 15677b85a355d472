// Package extract pulls English word tokens out of raw text. The
// extractor strips markup and other non-prose noise first, then matches
// tokens with a word pattern; callers normalize the result further with
// the normalize package before lookups.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

var (
	wordPattern       = regexp.MustCompile(`\b[A-Za-z]+\b`)
	strictWordPattern = regexp.MustCompile(`\b[A-Za-z]{2,}\b`)

	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	wwwPattern        = regexp.MustCompile(`www\.\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+\.\S+`)
	nonWordPattern    = regexp.MustCompile(`[^\w\s\-']`)
	hyphenPattern     = regexp.MustCompile(`\b(\w+)-(\w+)\b`)
	possessivePattern = regexp.MustCompile(`(\w+)'s\b`)
	apostrophePattern = regexp.MustCompile(`(\w+)'\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Extractor finds English word tokens in text. In strict mode
// single-letter tokens are dropped at the matching stage.
type Extractor struct {
	pattern *regexp.Regexp
}

func New(strict bool) *Extractor {
	pattern := wordPattern
	if strict {
		pattern = strictWordPattern
	}
	return &Extractor{pattern: pattern}
}

// Extract returns every word token in text in document order.
// Duplicates are kept; use ExtractUnique or Frequency when they are not
// wanted.
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return nil
	}
	return e.pattern.FindAllString(preprocess(text), -1)
}

// ExtractUnique returns the word tokens of text deduplicated
// case-insensitively, keeping the first-seen form and order.
func (e *Extractor) ExtractUnique(text string) []string {
	words := e.Extract(text)
	if len(words) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(words))
	unique := make([]string, 0, len(words))
	for _, word := range words {
		key := strings.ToLower(word)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, word)
	}
	return unique
}

// preprocess removes markup, URLs and addresses, splits hyphenated
// compounds and strips possessives so the word pattern sees plain
// prose.
func preprocess(text string) string {
	text = htmlTagPattern.ReplaceAllString(text, " ")
	text = urlPattern.ReplaceAllString(text, " ")
	text = wwwPattern.ReplaceAllString(text, " ")
	text = emailPattern.ReplaceAllString(text, " ")
	text = nonWordPattern.ReplaceAllString(text, " ")
	text = hyphenPattern.ReplaceAllString(text, "$1 $2")
	text = possessivePattern.ReplaceAllString(text, "$1")
	text = apostrophePattern.ReplaceAllString(text, "$1")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// WordCount pairs a word with its occurrence count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Frequency counts occurrences per word, case-insensitively. Blank
// tokens are skipped.
func Frequency(words []string) map[string]int {
	freq := make(map[string]int, len(words))
	for _, word := range words {
		normalized := strings.ToLower(strings.TrimSpace(word))
		if normalized == "" {
			continue
		}
		freq[normalized]++
	}
	return freq
}

// MostCommon returns the n highest-frequency words, most frequent
// first. Ties order alphabetically. n <= 0 returns all words.
func MostCommon(words []string, n int) []WordCount {
	freq := Frequency(words)

	counts := make([]WordCount, 0, len(freq))
	for word, count := range freq {
		counts = append(counts, WordCount{Word: word, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	if n > 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts
}
