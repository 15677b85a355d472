package wordbook

import (
	"github.com/LavishGent/wordbook/internal/types"
)

// ProviderError records which provider and operation produced a lookup
// failure. The wrapped error carries the taxonomy class.
type ProviderError = types.ProviderError

var (
	// ErrWordNotFound indicates that no provider had an entry for the word.
	ErrWordNotFound = types.ErrWordNotFound
	// ErrAuthentication indicates that a provider rejected the credentials.
	ErrAuthentication = types.ErrAuthentication
	// ErrRateLimited indicates that a provider is throttling requests.
	ErrRateLimited = types.ErrRateLimited
	// ErrTransient indicates a provider failure worth retrying.
	ErrTransient = types.ErrTransient
	// ErrPermanent indicates a provider failure that will not resolve on retry.
	ErrPermanent = types.ErrPermanent
	// ErrCacheMiss indicates that a requested key was not cached.
	ErrCacheMiss = types.ErrCacheMiss
	// ErrClosed indicates that the client has been closed.
	ErrClosed = types.ErrClosed
	// ErrUnknownService indicates an operation named an unregistered provider.
	ErrUnknownService = types.ErrUnknownService
)

// IsWordNotFound returns true if the error means the word has no entry.
func IsWordNotFound(err error) bool {
	return types.IsWordNotFound(err)
}

// IsAuthentication returns true if the error is an authentication failure.
func IsAuthentication(err error) bool {
	return types.IsAuthentication(err)
}

// IsRateLimited returns true if the error is a rate limit rejection.
func IsRateLimited(err error) bool {
	return types.IsRateLimited(err)
}

// IsTransient returns true if the error is worth retrying.
func IsTransient(err error) bool {
	return types.IsTransient(err)
}

// IsPermanent returns true if the error will not resolve on retry.
func IsPermanent(err error) bool {
	return types.IsPermanent(err)
}

// IsRetryable returns true if a lookup failure is worth retrying against
// the same provider.
func IsRetryable(err error) bool {
	return types.IsRetryable(err)
}

// IsCacheMiss returns true if the error is a cache miss.
func IsCacheMiss(err error) bool {
	return types.IsCacheMiss(err)
}
