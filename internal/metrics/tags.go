package metrics

import "fmt"

// Tag creates a formatted DataDog tag string in "key:value" format.
func Tag(key, value string) string {
	return fmt.Sprintf("%s:%s", key, value)
}

// TierTag creates a cache tier tag (memory/file/redis).
func TierTag(tier string) string {
	return Tag("tier", tier)
}

// ProviderTag creates a dictionary provider tag.
func ProviderTag(provider string) string {
	return Tag("provider", provider)
}

// StatusTag creates a status tag (hit/miss/set, ok/error).
func StatusTag(status string) string {
	return Tag("status", status)
}

// OperationTag creates an operation tag.
func OperationTag(op string) string {
	return Tag("operation", op)
}

// ComponentTag creates a component tag (cache/lookup).
func ComponentTag(component string) string {
	return Tag("component", component)
}
