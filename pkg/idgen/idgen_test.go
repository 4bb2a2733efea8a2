// Package idgen provides ID generation utilities for the application.
// This file contains unit tests for the idgen package.
package idgen

import (
	"regexp"
	"sync"
	"testing"
)

func TestNewRequestID(t *testing.T) {
	t.Run("returns non-empty ID", func(t *testing.T) {
		id := NewRequestID()
		if id == "" {
			t.Error("NewRequestID() returned empty string")
		}
	})

	t.Run("returns 20 character ID", func(t *testing.T) {
		id := NewRequestID()
		if len(id) != 20 {
			t.Errorf("NewRequestID() returned ID with length %d, want 20", len(id))
		}
	})

	t.Run("generates unique IDs", func(t *testing.T) {
		ids := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := NewRequestID()
			if ids[id] {
				t.Errorf("NewRequestID() generated duplicate ID: %s", id)
			}
			ids[id] = true
		}
	})

	t.Run("generates URL-safe IDs", func(t *testing.T) {
		urlSafe := regexp.MustCompile(`^[a-z0-9]+$`)
		for i := 0; i < 100; i++ {
			id := NewRequestID()
			if !urlSafe.MatchString(id) {
				t.Errorf("NewRequestID() returned non-URL-safe ID: %s", id)
			}
		}
	})

	t.Run("IDs are sortable by creation time", func(t *testing.T) {
		var prevID string
		for i := 0; i < 100; i++ {
			id := NewRequestID()
			if prevID != "" && id <= prevID {
				t.Errorf("NewRequestID() generated non-sortable IDs: %s <= %s", id, prevID)
			}
			prevID = id
		}
	})

	t.Run("concurrent generation is safe", func(t *testing.T) {
		var wg sync.WaitGroup
		ids := make(chan string, 1000)

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					ids <- NewRequestID()
				}
			}()
		}

		wg.Wait()
		close(ids)

		seen := make(map[string]bool)
		for id := range ids {
			if seen[id] {
				t.Errorf("Concurrent NewRequestID() generated duplicate ID: %s", id)
			}
			seen[id] = true
		}
	})
}
