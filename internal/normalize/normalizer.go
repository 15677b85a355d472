// Package normalize cleans extracted word tokens into canonical
// dictionary lookup forms: lower-cased, alphabetic only, length-bounded,
// with junk tokens and (optionally) stop words filtered out.
package normalize

import (
	"regexp"
	"strings"

	"github.com/LavishGent/wordbook/internal/config"
)

// stripPattern removes everything but word characters and hyphens;
// hyphens are resolved separately before the final alphabetic check.
var stripPattern = regexp.MustCompile(`[^\w\-]`)

// stopWords are common English words that carry no vocabulary value.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true,
	"will": true, "with": true, "this": true, "but": true, "they": true,
	"have": true, "had": true, "what": true, "said": true, "each": true,
	"which": true, "she": true, "do": true, "how": true, "their": true,
	"if": true, "up": true, "out": true, "many": true, "then": true,
	"them": true, "these": true, "so": true, "some": true, "her": true,
	"would": true, "make": true, "like": true, "into": true, "him": true,
	"time": true, "two": true, "more": true, "go": true, "no": true,
	"way": true, "could": true, "my": true, "than": true, "first": true,
	"been": true, "call": true, "who": true, "oil": true, "sit": true,
	"now": true, "find": true, "down": true, "day": true, "did": true,
	"get": true, "come": true, "made": true, "may": true, "part": true,
}

// protocolPrefixes are tokens left behind by stripped URLs.
var protocolPrefixes = map[string]bool{
	"www": true, "http": true, "https": true, "ftp": true,
}

// yWordExceptions are vowel-free words that are nonetheless real
// English. They pass both the vowel requirement and the all-consonant
// rejection.
var yWordExceptions = map[string]bool{
	"gym": true, "spy": true, "try": true, "dry": true, "fly": true,
	"sky": true, "cry": true, "why": true, "shy": true,
}

// Normalizer converts raw tokens to canonical lookup words.
type Normalizer struct {
	minLength     int
	maxLength     int
	keepStopWords bool
}

func New(cfg config.ProcessingConfig) *Normalizer {
	minLength := cfg.MinWordLength
	if minLength <= 0 {
		minLength = 1
	}
	maxLength := cfg.MaxWordLength
	if maxLength <= 0 {
		maxLength = 50
	}

	return &Normalizer{
		minLength:     minLength,
		maxLength:     maxLength,
		keepStopWords: cfg.IncludeStopWords,
	}
}

// Normalize cleans every token and dedupes the survivors, preserving
// first-seen order.
func (n *Normalizer) Normalize(words []string) []string {
	if len(words) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(words))
	result := make([]string, 0, len(words))
	for _, word := range words {
		normalized, ok := n.Word(word)
		if !ok {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}

// Word normalizes a single token. The second return is false when the
// token does not survive filtering.
func (n *Normalizer) Word(word string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(word))
	normalized = stripPattern.ReplaceAllString(normalized, "")

	if strings.Contains(normalized, "-") {
		normalized = n.firstValidPart(normalized)
	}

	if normalized == "" || !isAlpha(normalized) {
		return "", false
	}
	if len(normalized) < n.minLength || len(normalized) > n.maxLength {
		return "", false
	}
	if !n.keepStopWords && stopWords[normalized] {
		return "", false
	}
	if protocolPrefixes[normalized] {
		return "", false
	}
	if !hasEnglishStructure(normalized) {
		return "", false
	}
	return normalized, true
}

// firstValidPart resolves a hyphenated token to its first part that is
// alphabetic and long enough, falling back to the leading part.
func (n *Normalizer) firstValidPart(word string) string {
	parts := strings.Split(word, "-")
	for _, part := range parts {
		if len(part) >= n.minLength && isAlpha(part) {
			return part
		}
	}
	if len(parts) > 0 && isAlpha(parts[0]) {
		return parts[0]
	}
	return ""
}

// isAlpha reports whether s is non-empty ASCII letters only. The strip
// pattern leaves only ASCII word characters and hyphens, so a byte scan
// is exact here.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// hasEnglishStructure rejects letter strings no English word looks
// like: vowel-free words of three or more letters outside the y-word
// exceptions, all-vowel strings, and words with a letter repeated four
// or more times in a row.
func hasEnglishStructure(word string) bool {
	if len(word) >= 3 {
		if !containsVowel(word) && !yWordExceptions[word] {
			return false
		}
		if allVowels(word) {
			return false
		}
	}
	if len(word) >= 4 && hasLongRun(word) {
		return false
	}
	return true
}

func containsVowel(word string) bool {
	return strings.ContainsAny(word, "aeiou")
}

func allVowels(word string) bool {
	for i := 0; i < len(word); i++ {
		if !strings.ContainsRune("aeiou", rune(word[i])) {
			return false
		}
	}
	return true
}

func hasLongRun(word string) bool {
	run := 1
	for i := 1; i < len(word); i++ {
		if word[i] == word[i-1] {
			run++
			if run >= 4 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
