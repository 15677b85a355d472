package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/types"
)

const (
	freeDictName      = "freedict"
	freeDictUserAgent = "wordbook/1.0 (https://github.com/LavishGent/wordbook)"
)

// FreeDictionary looks words up against the Free Dictionary API
// (api.dictionaryapi.dev). The API is unauthenticated, so a client-side
// rate limiter keeps request bursts polite.
type FreeDictionary struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

var _ types.Provider = (*FreeDictionary)(nil)

func NewFreeDictionary(cfg config.FreeDictionaryConfig) *FreeDictionary {
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}

	return &FreeDictionary{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

func (f *FreeDictionary) Name() string {
	return freeDictName
}

func (f *FreeDictionary) LookupDefinition(ctx context.Context, word string) (string, error) {
	entries, err := f.fetch(ctx, "LookupDefinition", word)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, def := range meaning.Definitions {
				if def.Definition != "" {
					return def.Definition, nil
				}
			}
		}
	}
	return "", types.NewProviderError(freeDictName, "LookupDefinition", word, types.ErrWordNotFound)
}

func (f *FreeDictionary) LookupPronunciation(ctx context.Context, word string) (string, error) {
	entries, err := f.fetch(ctx, "LookupPronunciation", word)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if entry.Phonetic != "" {
			return entry.Phonetic, nil
		}
		for _, phonetic := range entry.Phonetics {
			if phonetic.Text != "" {
				return phonetic.Text, nil
			}
		}
	}
	return "", types.NewProviderError(freeDictName, "LookupPronunciation", word, types.ErrWordNotFound)
}

func (f *FreeDictionary) fetch(ctx context.Context, op, word string) ([]freeDictEntry, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, types.NewProviderError(freeDictName, op, word, err)
	}

	endpoint := fmt.Sprintf("%s/%s", f.baseURL, url.PathEscape(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, types.NewProviderError(freeDictName, op, word, err)
	}
	req.Header.Set("User-Agent", freeDictUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, types.NewProviderError(freeDictName, op, word,
			fmt.Errorf("%w: %v", types.ErrTransient, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, types.NewProviderError(freeDictName, op, word, types.ErrWordNotFound)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, types.NewProviderError(freeDictName, op, word, types.ErrRateLimited)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, types.NewProviderError(freeDictName, op, word, types.ErrAuthentication)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, types.NewProviderError(freeDictName, op, word,
			fmt.Errorf("%w: status %d", types.ErrTransient, resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, types.NewProviderError(freeDictName, op, word,
			fmt.Errorf("%w: status %d", types.ErrPermanent, resp.StatusCode))
	}

	var entries []freeDictEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, types.NewProviderError(freeDictName, op, word,
			fmt.Errorf("%w: decode response: %v", types.ErrTransient, err))
	}
	return entries, nil
}

type freeDictEntry struct {
	Word      string             `json:"word"`
	Phonetic  string             `json:"phonetic"`
	Phonetics []freeDictPhonetic `json:"phonetics"`
	Meanings  []freeDictMeaning  `json:"meanings"`
}

type freeDictPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

type freeDictMeaning struct {
	PartOfSpeech string               `json:"partOfSpeech"`
	Definitions  []freeDictDefinition `json:"definitions"`
}

type freeDictDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}
