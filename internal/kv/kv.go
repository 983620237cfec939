// Package kv defines the local key-value cache used for generated content.
//
// Values are opaque bytes; typed access goes through GetJSON and SetJSON.
// A missing key is reported as found=false, never as an error.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Store is a string-keyed byte store.
type Store interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Has reports whether key is present.
	Has(ctx context.Context, key string) (bool, error)
}

// CurrentTestKey holds the question list of the test in progress.
const CurrentTestKey = "current-test"

// ErrCorrupt is returned when a stored value cannot be decoded.
type ErrCorrupt struct {
	Key string
	Err error
}

func (e *ErrCorrupt) Error() string {
	return fmt.Sprintf("corrupt value for %q: %v", e.Key, e.Err)
}

func (e *ErrCorrupt) Unwrap() error { return e.Err }

// TopicSlug turns a display topic into its URL-style slug:
// lowercase, each space replaced by a hyphen.
func TopicSlug(topic string) string {
	return strings.ReplaceAll(strings.ToLower(topic), " ", "-")
}

// SkillSlug is like TopicSlug but collapses whitespace runs and trims.
func SkillSlug(skill string) string {
	return strings.Join(strings.Fields(strings.ToLower(skill)), "-")
}

// DisplayName reverses a slug for display.
func DisplayName(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// ProblemsKey is the cache key for a topic's generated practice problems.
func ProblemsKey(topic string) string {
	return "problems-" + TopicSlug(topic)
}

// GetJSON decodes the value at key into a T. Fields absent from the
// stored document decode to their zero values.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var out T
	raw, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return out, false, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		return zero, false, &ErrCorrupt{Key: key, Err: err}
	}
	return out, true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
