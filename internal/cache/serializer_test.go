package cache

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/LavishGent/wordbook/internal/types"
)

func TestNewJSONSerializer(t *testing.T) {
	s := NewJSONSerializer()
	if s == nil {
		t.Fatal("NewJSONSerializer() returned nil")
	}
}

func TestJSONSerializerMarshal(t *testing.T) {
	s := NewJSONSerializer()

	t.Run("marshals a cache entry", func(t *testing.T) {
		entry := types.NewCacheEntry("你好", 1*time.Hour)

		data, err := s.Marshal(entry)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		if !strings.Contains(string(data), `"value":"你好"`) {
			t.Errorf("Marshal() = %s, missing value field", string(data))
		}
		if !strings.Contains(string(data), `"created_at"`) {
			t.Errorf("Marshal() = %s, missing created_at field", string(data))
		}
	})

	t.Run("omits zero TTL", func(t *testing.T) {
		entry := types.NewCacheEntry("forever", 0)

		data, err := s.Marshal(entry)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		if strings.Contains(string(data), `"ttl"`) {
			t.Errorf("Marshal() = %s, zero TTL should be omitted", string(data))
		}
	})

	t.Run("wraps failures in the serialization sentinel", func(t *testing.T) {
		// Channels can't be marshaled to JSON
		_, err := s.Marshal(make(chan int))
		if err == nil {
			t.Fatal("Marshal(chan) error = nil, want error")
		}
		if !errors.Is(err, types.ErrSerializationFailed) {
			t.Errorf("Marshal(chan) error = %v, want ErrSerializationFailed", err)
		}
	})
}

func TestJSONSerializerUnmarshal(t *testing.T) {
	s := NewJSONSerializer()

	t.Run("unmarshals a cache entry", func(t *testing.T) {
		data := []byte(`{"value":"世界","created_at":"2026-08-01T10:00:00Z","ttl":3600000000000}`)

		var entry types.CacheEntry
		if err := s.Unmarshal(data, &entry); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}

		if entry.Value != "世界" {
			t.Errorf("Value = %q, want %q", entry.Value, "世界")
		}
		if entry.TTL != 1*time.Hour {
			t.Errorf("TTL = %v, want 1h", entry.TTL)
		}
		if entry.CreatedAt.IsZero() {
			t.Error("CreatedAt is zero, want parsed timestamp")
		}
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		var entry types.CacheEntry
		err := s.Unmarshal([]byte(`not valid json`), &entry)
		if err == nil {
			t.Fatal("Unmarshal(invalid) error = nil, want error")
		}
		if !errors.Is(err, types.ErrSerializationFailed) {
			t.Errorf("Unmarshal(invalid) error = %v, want ErrSerializationFailed", err)
		}
	})

	t.Run("returns error for type mismatch", func(t *testing.T) {
		var entry types.CacheEntry
		if err := s.Unmarshal([]byte(`{"value":42}`), &entry); err == nil {
			t.Error("Unmarshal(type mismatch) error = nil, want error")
		}
	})
}

func TestJSONSerializerSnapshotRoundTrip(t *testing.T) {
	s := NewJSONSerializer()

	original := map[string]types.CacheEntry{
		DefinitionKey("hello"):    types.NewCacheEntry("你好", 7*24*time.Hour),
		PronunciationKey("hello"): types.NewCacheEntry("/həˈloʊ/", 7*24*time.Hour),
		DefinitionKey("forever"):  types.NewCacheEntry("no expiry", 0),
	}

	data, err := s.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var result map[string]types.CacheEntry
	if err := s.Unmarshal(data, &result); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(result) != len(original) {
		t.Fatalf("len(result) = %d, want %d", len(result), len(original))
	}
	for key, want := range original {
		got, ok := result[key]
		if !ok {
			t.Errorf("key %q missing after round trip", key)
			continue
		}
		if got.Value != want.Value {
			t.Errorf("Value = %q, want %q", got.Value, want.Value)
		}
		if got.TTL != want.TTL {
			t.Errorf("TTL = %v, want %v", got.TTL, want.TTL)
		}
		if !got.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
		}
	}
}
