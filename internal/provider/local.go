// Package provider contains the dictionary service adapters the lookup
// manager routes between. Each adapter wraps its failures in the
// taxonomy classes from the types package so routing and retry
// decisions stay uniform across services.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/types"
)

const localName = "local"

type localEntry struct {
	Definition    string `json:"definition"`
	Pronunciation string `json:"pronunciation"`
}

// builtinEntries is the seed vocabulary every LocalDictionary starts
// with. Definitions are zh-CN, pronunciations IPA.
var builtinEntries = map[string]localEntry{
	"hello":    {Definition: "你好", Pronunciation: "/həˈloʊ/"},
	"world":    {Definition: "世界", Pronunciation: "/wɜːrld/"},
	"computer": {Definition: "计算机", Pronunciation: "/kəmˈpjuːtər/"},
	"program":  {Definition: "程序", Pronunciation: "/ˈproʊɡræm/"},
	"language": {Definition: "语言", Pronunciation: "/ˈlæŋɡwɪdʒ/"},
}

// LocalDictionary serves lookups from an in-memory table: the builtin
// seed entries, optionally merged with a JSON file of the same shape.
// It never fails except on unknown words.
type LocalDictionary struct {
	mu      sync.RWMutex
	entries map[string]localEntry
}

var _ types.BatchProvider = (*LocalDictionary)(nil)

// NewLocalDictionary builds the dictionary from the builtin seed plus
// the entries in cfg.Path, when set. File entries override the seed.
func NewLocalDictionary(cfg config.LocalConfig) (*LocalDictionary, error) {
	entries := make(map[string]localEntry, len(builtinEntries))
	for word, entry := range builtinEntries {
		entries[word] = entry
	}

	if cfg.Path != "" {
		loaded, err := loadEntries(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("load local dictionary %s: %w", cfg.Path, err)
		}
		for word, entry := range loaded {
			entries[types.NormalizeWord(word)] = entry
		}
	}

	return &LocalDictionary{entries: entries}, nil
}

func loadEntries(path string) (map[string]localEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries map[string]localEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *LocalDictionary) Name() string {
	return localName
}

// Add inserts or replaces an entry. Mostly useful for tests and for
// callers that build up a custom vocabulary at runtime.
func (d *LocalDictionary) Add(word, definition, pronunciation string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[types.NormalizeWord(word)] = localEntry{
		Definition:    definition,
		Pronunciation: pronunciation,
	}
}

// Len returns the number of entries currently held.
func (d *LocalDictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

func (d *LocalDictionary) LookupDefinition(_ context.Context, word string) (string, error) {
	d.mu.RLock()
	entry, ok := d.entries[types.NormalizeWord(word)]
	d.mu.RUnlock()

	if !ok || entry.Definition == "" {
		return "", types.NewProviderError(localName, "LookupDefinition", word, types.ErrWordNotFound)
	}
	return entry.Definition, nil
}

func (d *LocalDictionary) LookupPronunciation(_ context.Context, word string) (string, error) {
	d.mu.RLock()
	entry, ok := d.entries[types.NormalizeWord(word)]
	d.mu.RUnlock()

	if !ok || entry.Pronunciation == "" {
		return "", types.NewProviderError(localName, "LookupPronunciation", word, types.ErrWordNotFound)
	}
	return entry.Pronunciation, nil
}

// LookupBatch resolves every word it knows in one pass. Unknown words
// are simply absent from the result; the caller falls back to the
// per-word path for them.
func (d *LocalDictionary) LookupBatch(_ context.Context, words []string) (map[string]types.WordRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	results := make(map[string]types.WordRecord, len(words))
	for _, word := range words {
		normalized := types.NormalizeWord(word)
		entry, ok := d.entries[normalized]
		if !ok {
			continue
		}
		results[normalized] = types.WordRecord{
			Word:               normalized,
			Definition:         entry.Definition,
			Pronunciation:      entry.Pronunciation,
			FoundDefinition:    entry.Definition != "",
			FoundPronunciation: entry.Pronunciation != "",
		}
	}
	return results, nil
}
