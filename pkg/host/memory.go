package host

import (
	"context"
	"sync"
)

// MemoryHost keeps published artifacts in memory, keyed by ID. It is
// safe for concurrent use. A non-zero Limit caps retention: publishing
// past the cap evicts the oldest artifact.
type MemoryHost struct {
	// Limit is the maximum number of retained artifacts. Zero keeps
	// everything.
	Limit int

	mu        sync.RWMutex
	artifacts map[string]*Artifact
	order     []string
}

// NewMemoryHost returns an empty in-memory host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{artifacts: make(map[string]*Artifact)}
}

// Publish stores the artifact and returns its ID.
func (h *MemoryHost) Publish(ctx context.Context, art *Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.artifacts[art.ID]; !ok {
		h.order = append(h.order, art.ID)
	}
	h.artifacts[art.ID] = art
	for h.Limit > 0 && len(h.order) > h.Limit {
		delete(h.artifacts, h.order[0])
		h.order = h.order[1:]
	}
	return art.ID, nil
}

// Artifact returns the artifact with the given ID.
func (h *MemoryHost) Artifact(id string) (*Artifact, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	art, ok := h.artifacts[id]
	return art, ok
}

// List returns all artifacts in publish order.
func (h *MemoryHost) List() []*Artifact {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Artifact, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.artifacts[id])
	}
	return out
}
