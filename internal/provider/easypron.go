package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/LavishGent/wordbook/internal/config"
	"github.com/LavishGent/wordbook/internal/types"
)

const easyPronName = "easypron"

// EasyPronunciation is the client for the EasyPronunciation API. The
// service has shipped several response shapes over time, so values are
// probed from a handful of known keys instead of a fixed struct.
type EasyPronunciation struct {
	client   *resty.Client
	language string
	limiter  *rate.Limiter
}

var _ types.Provider = (*EasyPronunciation)(nil)

func NewEasyPronunciation(cfg config.EasyPronunciationConfig) *EasyPronunciation {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("X-API-Key", cfg.APIKey.Value()).
		SetTimeout(cfg.Timeout)

	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}

	return &EasyPronunciation{
		client:   client,
		language: cfg.Language,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

func (e *EasyPronunciation) Name() string {
	return easyPronName
}

func (e *EasyPronunciation) LookupDefinition(ctx context.Context, word string) (string, error) {
	payload, err := e.fetch(ctx, "LookupDefinition", word, "/definition", map[string]string{
		"word":     word,
		"language": e.language,
	})
	if err != nil {
		return "", err
	}

	if definition := probeString(payload, "definition", "definitions", "meaning"); definition != "" {
		return definition, nil
	}
	return "", types.NewProviderError(easyPronName, "LookupDefinition", word, types.ErrWordNotFound)
}

func (e *EasyPronunciation) LookupPronunciation(ctx context.Context, word string) (string, error) {
	payload, err := e.fetch(ctx, "LookupPronunciation", word, "/pronunciation", map[string]string{
		"word":   word,
		"format": "ipa",
	})
	if err != nil {
		return "", err
	}

	if pronunciation := probeString(payload, "ipa", "pronunciation", "phonetic"); pronunciation != "" {
		return pronunciation, nil
	}
	return "", types.NewProviderError(easyPronName, "LookupPronunciation", word, types.ErrWordNotFound)
}

func (e *EasyPronunciation) fetch(ctx context.Context, op, word, path string, params map[string]string) (map[string]any, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, types.NewProviderError(easyPronName, op, word, err)
	}

	res, err := e.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, types.NewProviderError(easyPronName, op, word,
			fmt.Errorf("%w: %v", types.ErrTransient, err))
	}

	switch {
	case res.StatusCode() == http.StatusNotFound:
		return nil, types.NewProviderError(easyPronName, op, word, types.ErrWordNotFound)
	case res.StatusCode() == http.StatusTooManyRequests:
		return nil, types.NewProviderError(easyPronName, op, word, types.ErrRateLimited)
	case res.StatusCode() == http.StatusUnauthorized || res.StatusCode() == http.StatusForbidden:
		return nil, types.NewProviderError(easyPronName, op, word, types.ErrAuthentication)
	case res.StatusCode() >= http.StatusInternalServerError:
		return nil, types.NewProviderError(easyPronName, op, word,
			fmt.Errorf("%w: status %d", types.ErrTransient, res.StatusCode()))
	case res.StatusCode() != http.StatusOK:
		return nil, types.NewProviderError(easyPronName, op, word,
			fmt.Errorf("%w: status %d", types.ErrPermanent, res.StatusCode()))
	}

	var payload map[string]any
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return nil, types.NewProviderError(easyPronName, op, word,
			fmt.Errorf("%w: decode response: %v", types.ErrTransient, err))
	}
	return payload, nil
}

// probeString tries each key in order and returns the first non-empty
// string it finds. A key holding a list is resolved to its first
// element, itself either a string or an object keyed by "definition"
// or "text".
func probeString(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		switch value := payload[key].(type) {
		case string:
			if value != "" {
				return value
			}
		case []any:
			if len(value) == 0 {
				continue
			}
			switch first := value[0].(type) {
			case string:
				if first != "" {
					return first
				}
			case map[string]any:
				if s, ok := first["definition"].(string); ok && s != "" {
					return s
				}
				if s, ok := first["text"].(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}
