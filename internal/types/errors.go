package types

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

var (
	ErrCacheMiss           = errors.New("cache: key not found")
	ErrStoreUnavailable    = errors.New("cache: persistent store unavailable")
	ErrClosed              = errors.New("lookup: manager closed")
	ErrUnknownService      = errors.New("lookup: unknown service")
	ErrSerializationFailed = errors.New("cache: serialization failed")

	// Provider error taxonomy. Adapters wrap their failures in exactly one
	// of these classes so routing and retry decisions stay uniform.
	ErrAuthentication = errors.New("provider: authentication rejected")
	ErrRateLimited    = errors.New("provider: rate limited")
	ErrTransient      = errors.New("provider: transient failure")
	ErrPermanent      = errors.New("provider: permanent failure")
	ErrWordNotFound   = errors.New("provider: word not found")
)

type CacheError struct {
	Op    string
	Key   string
	Layer string
	Err   error
}

func (e *CacheError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache %s on %s [%s]: %v", e.Op, e.Layer, e.Key, e.Err)
	}
	return fmt.Sprintf("cache %s on %s: %v", e.Op, e.Layer, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

func NewCacheError(op, key, layer string, err error) *CacheError {
	return &CacheError{
		Op:    op,
		Key:   key,
		Layer: layer,
		Err:   err,
	}
}

// ProviderError records which provider and operation produced a lookup
// failure. The wrapped error carries the taxonomy class.
type ProviderError struct {
	Provider string
	Op       string
	Word     string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Word != "" {
		return fmt.Sprintf("provider %s: %s %q: %v", e.Provider, e.Op, e.Word, e.Err)
	}
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider, op, word string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Op:       op,
		Word:     word,
		Err:      err,
	}
}

func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanent) || errors.Is(err, ErrWordNotFound)
}

func IsWordNotFound(err error) bool {
	return errors.Is(err, ErrWordNotFound)
}

// IsRetryable reports whether a lookup failure is worth retrying against
// the same provider. Only the transient class qualifies; authentication,
// rate-limit and permanent failures count against the provider immediately.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	if IsAuthentication(err) || IsRateLimited(err) || IsPermanent(err) {
		return false
	}

	if IsTransient(err) {
		return true
	}

	// Unclassified errors from raw adapters: sniff common network failures.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	return false
}
