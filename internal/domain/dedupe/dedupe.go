// Package dedupe provides first-seen-wins filtering keyed by string ids.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen ids so that only the first occurrence of each is kept.
type Deduper interface {
	// SeenAndRecord reports whether id was already seen and records it if not.
	SeenAndRecord(ctx context.Context, id string) bool
}

// inMemoryDeduper is a mutex-guarded set.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an empty deduper.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{seen: make(map[string]struct{})}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seen[id] = struct{}{}
	return false
}

// FirstSeen returns items with every repeated key dropped, keeping the first
// occurrence and the input order. The input slice is not modified.
func FirstSeen[T any](ctx context.Context, items []T, key func(T) string) []T {
	d := NewInMemoryDeduper()
	out := make([]T, 0, len(items))
	for _, it := range items {
		if d.SeenAndRecord(ctx, key(it)) {
			continue
		}
		out = append(out, it)
	}
	return out
}
