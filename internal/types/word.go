package types

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// MaxWordLength bounds lookup input. Longer strings are never dictionary
// words and would only waste provider quota.
const MaxWordLength = 64

// ValidateWord checks that a normalized word is safe to send to a
// provider: non-empty, bounded, valid UTF-8, and made of letters with at
// most interior hyphens or apostrophes. Words that fail validation are
// soft-failed by the lookup manager without touching the network.
func ValidateWord(word string) error {
	if word == "" {
		return fmt.Errorf("word cannot be empty")
	}

	if len(word) > MaxWordLength {
		return fmt.Errorf("word length %d exceeds maximum %d", len(word), MaxWordLength)
	}

	if !utf8.ValidString(word) {
		return fmt.Errorf("word contains invalid UTF-8")
	}

	for i, r := range word {
		if unicode.IsLetter(r) {
			continue
		}
		if (r == '-' || r == '\'') && i > 0 && i < len(word)-1 {
			continue
		}
		return fmt.Errorf("word contains invalid character %q at position %d", r, i)
	}

	return nil
}

// IsValidWord reports whether ValidateWord accepts the word.
func IsValidWord(word string) bool {
	return ValidateWord(word) == nil
}
