package types

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestQueryKindString(t *testing.T) {
	tests := []struct {
		kind     QueryKind
		expected string
	}{
		{KindDefinition, "definition"},
		{KindPronunciation, "pronunciation"},
		{QueryKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("QueryKind.String() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestServicePriorityOrdering(t *testing.T) {
	// The numeric values are part of the routing contract.
	if PriorityPrimary != 1 || PrioritySecondary != 2 || PriorityFallback != 3 {
		t.Errorf("priority values = %d/%d/%d, want 1/2/3",
			PriorityPrimary, PrioritySecondary, PriorityFallback)
	}
}

func TestServicePriorityString(t *testing.T) {
	tests := []struct {
		priority ServicePriority
		expected string
	}{
		{PriorityPrimary, "primary"},
		{PrioritySecondary, "secondary"},
		{PriorityFallback, "fallback"},
		{ServicePriority(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.priority.String(); got != tt.expected {
				t.Errorf("ServicePriority.String() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestServiceStatusString(t *testing.T) {
	tests := []struct {
		status   ServiceStatus
		expected string
	}{
		{StatusActive, "active"},
		{StatusDegraded, "degraded"},
		{StatusFailed, "failed"},
		{StatusDisabled, "disabled"},
		{ServiceStatus(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("ServiceStatus.String() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestCacheEntryIsExpired(t *testing.T) {
	t.Run("never expires without TTL", func(t *testing.T) {
		entry := CacheEntry{
			Value:     "value",
			CreatedAt: time.Now().Add(-24 * time.Hour),
		}

		if entry.IsExpired() {
			t.Error("IsExpired() = true, want false (no TTL)")
		}
	})

	t.Run("not expired within TTL", func(t *testing.T) {
		entry := NewCacheEntry("value", 1*time.Hour)

		if entry.IsExpired() {
			t.Error("IsExpired() = true, want false")
		}
	})

	t.Run("expired after TTL elapses", func(t *testing.T) {
		entry := CacheEntry{
			Value:     "value",
			CreatedAt: time.Now().Add(-2 * time.Hour),
			TTL:       1 * time.Hour,
		}

		if !entry.IsExpired() {
			t.Error("IsExpired() = false, want true")
		}
	})

	t.Run("boundary just inside TTL", func(t *testing.T) {
		entry := CacheEntry{
			Value:     "value",
			CreatedAt: time.Now().Add(-time.Hour + 50*time.Millisecond),
			TTL:       time.Hour,
		}

		if entry.IsExpired() {
			t.Error("IsExpired() = true just before TTL elapses, want false")
		}
	})
}

func TestNewCacheEntry(t *testing.T) {
	before := time.Now()
	entry := NewCacheEntry("hello", 30*time.Minute)
	after := time.Now()

	if entry.Value != "hello" {
		t.Errorf("Value = %s, want hello", entry.Value)
	}
	if entry.TTL != 30*time.Minute {
		t.Errorf("TTL = %v, want 30m", entry.TTL)
	}
	if entry.CreatedAt.Before(before) || entry.CreatedAt.After(after) {
		t.Error("CreatedAt is not the construction time")
	}
}

func TestNewWordRecord(t *testing.T) {
	record := NewWordRecord("  Hello ")

	if record.Word != "hello" {
		t.Errorf("Word = %q, want %q", record.Word, "hello")
	}
	if record.FoundDefinition || record.FoundPronunciation {
		t.Error("new record should have no found flags set")
	}
}

func TestWordRecordComplete(t *testing.T) {
	tests := []struct {
		name     string
		record   WordRecord
		complete bool
	}{
		{"both found", WordRecord{FoundDefinition: true, FoundPronunciation: true}, true},
		{"definition only", WordRecord{FoundDefinition: true}, false},
		{"pronunciation only", WordRecord{FoundPronunciation: true}, false},
		{"neither", WordRecord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Complete(); got != tt.complete {
				t.Errorf("Complete() = %v, want %v", got, tt.complete)
			}
		})
	}
}

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello", "hello"},
		{"  world  ", "world"},
		{"MIXED", "mixed"},
		{"", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeWord(tt.input); got != tt.expected {
				t.Errorf("NormalizeWord(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateWord(t *testing.T) {
	tests := []struct {
		name  string
		word  string
		valid bool
	}{
		{"simple word", "hello", true},
		{"hyphenated", "well-known", true},
		{"apostrophe", "don't", true},
		{"empty", "", false},
		{"leading hyphen", "-hello", false},
		{"trailing hyphen", "hello-", false},
		{"digits", "h3llo", false},
		{"whitespace", "two words", false},
		{"path traversal", "../etc", false},
		{"too long", string(make([]byte, MaxWordLength+1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWord(tt.word)
			if tt.valid && err != nil {
				t.Errorf("ValidateWord(%q) = %v, want nil", tt.word, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ValidateWord(%q) = nil, want error", tt.word)
			}
		})
	}
}

func TestCacheErrorError(t *testing.T) {
	t.Run("with key", func(t *testing.T) {
		err := &CacheError{
			Op:    "Get",
			Key:   "a1b2c3",
			Layer: "file",
			Err:   errors.New("permission denied"),
		}

		expected := "cache Get on file [a1b2c3]: permission denied"
		if got := err.Error(); got != expected {
			t.Errorf("Error() = %s, want %s", got, expected)
		}
	})

	t.Run("without key", func(t *testing.T) {
		err := &CacheError{
			Op:    "Clear",
			Layer: "memory",
			Err:   errors.New("operation failed"),
		}

		expected := "cache Clear on memory: operation failed"
		if got := err.Error(); got != expected {
			t.Errorf("Error() = %s, want %s", got, expected)
		}
	})
}

func TestCacheErrorUnwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := NewCacheError("Set", "key", "file", underlying)

	if err.Unwrap() != underlying {
		t.Error("Unwrap() did not return underlying error")
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should work with wrapped error")
	}
}

func TestProviderErrorError(t *testing.T) {
	err := NewProviderError("freedict", "definition", "hello", ErrRateLimited)

	expected := `provider freedict: definition "hello": provider: rate limited`
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %s, want %s", got, expected)
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	err := NewProviderError("local", "pronunciation", "zzz", ErrWordNotFound)

	if !errors.Is(err, ErrWordNotFound) {
		t.Error("errors.Is should find ErrWordNotFound through ProviderError")
	}
	if !IsWordNotFound(err) {
		t.Error("IsWordNotFound() = false for wrapped ErrWordNotFound")
	}
}

func TestIsCacheMiss(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"direct ErrCacheMiss", ErrCacheMiss, true},
		{"wrapped ErrCacheMiss", NewCacheError("Get", "key", "memory", ErrCacheMiss), true},
		{"other error", errors.New("other"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCacheMiss(tt.err); got != tt.expect {
				t.Errorf("IsCacheMiss() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		auth bool
		rate bool
		perm bool
	}{
		{"authentication", ErrAuthentication, true, false, false},
		{"rate limited", ErrRateLimited, false, true, false},
		{"permanent", ErrPermanent, false, false, true},
		{"word not found", ErrWordNotFound, false, false, true},
		{"wrapped auth", NewProviderError("p", "definition", "w", ErrAuthentication), true, false, false},
		{"transient", ErrTransient, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthentication(tt.err); got != tt.auth {
				t.Errorf("IsAuthentication() = %v, want %v", got, tt.auth)
			}
			if got := IsRateLimited(tt.err); got != tt.rate {
				t.Errorf("IsRateLimited() = %v, want %v", got, tt.rate)
			}
			if got := IsPermanent(tt.err); got != tt.perm {
				t.Errorf("IsPermanent() = %v, want %v", got, tt.perm)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"authentication", ErrAuthentication, false},
		{"rate limited", ErrRateLimited, false},
		{"permanent", ErrPermanent, false},
		{"word not found", ErrWordNotFound, false},
		{"transient", ErrTransient, true},
		{"wrapped transient", NewProviderError("p", "definition", "w", ErrTransient), true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, false},
		{"unclassified", errors.New("something odd"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.expect {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.expect)
			}
		})
	}
}
