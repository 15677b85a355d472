package cache

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/LavishGent/wordbook/internal/types"
)

// Key derives the stable cache key for a word lookup. The word is
// normalized first so "Hello" and "hello " map to the same entry, then
// hashed together with the query kind. Definition and pronunciation
// lookups for the same word never collide.
func Key(kind types.QueryKind, word string) string {
	raw := kind.String() + ":" + types.NormalizeWord(word)
	hash := md5.Sum([]byte(raw))
	return hex.EncodeToString(hash[:])
}

// DefinitionKey returns the cache key for a word's definition.
func DefinitionKey(word string) string {
	return Key(types.KindDefinition, word)
}

// PronunciationKey returns the cache key for a word's pronunciation.
func PronunciationKey(word string) string {
	return Key(types.KindPronunciation, word)
}
