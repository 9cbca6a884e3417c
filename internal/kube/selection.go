package kube

import (
	"slices"
	"sync"
)

// Selection is the state shared between the UI, which writes it, and the
// poller, which reads snapshots of it.
type Selection struct {
	mu   sync.RWMutex
	snap Snapshot
}

// Snapshot is an immutable copy of a Selection.
type Snapshot struct {
	Context      string
	Namespaces   []string
	APIResources []APIResource
}

// NewSelection returns a selection for context and namespaces.
func NewSelection(context string, namespaces []string) *Selection {
	return &Selection{snap: Snapshot{Context: context, Namespaces: slices.Clone(namespaces)}}
}

// Snapshot returns a copy safe to use without the lock.
func (s *Selection) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Context:      s.snap.Context,
		Namespaces:   slices.Clone(s.snap.Namespaces),
		APIResources: slices.Clone(s.snap.APIResources),
	}
}

// SetContext switches context and namespaces. API resource choices are
// cluster specific and are cleared.
func (s *Selection) SetContext(context string, namespaces []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Context = context
	s.snap.Namespaces = slices.Clone(namespaces)
	s.snap.APIResources = nil
}

// SetNamespaces replaces the selected namespaces.
func (s *Selection) SetNamespaces(namespaces []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Namespaces = slices.Clone(namespaces)
}

// SetAPIResources replaces the selected API resources.
func (s *Selection) SetAPIResources(resources []APIResource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.APIResources = slices.Clone(resources)
}
