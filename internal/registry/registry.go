// Package registry holds the type descriptor table that drives identity
// computation, URL routing, and graph decomposition for every item type
// exchanged by the review pipeline (Sentence, Article, Tweet, Rating,
// Review, Reviewer/Bot, ...).
package registry

import (
	"fmt"
	"sync"
)

// Descriptor describes one item @type: which of its fields participate in
// identity hashing, how to route it to a URL when it has none of its own,
// and which fields hold nested items rather than plain values.
type Descriptor struct {
	// SuperTypes lists the types this type is considered an instance of,
	// e.g. Claim is also a Sentence and a CreativeWork.
	SuperTypes []string
	// IdentKeys are the fields whose values uniquely identify an item of
	// this type; their values (with nested items replaced by their own
	// identifiers) are hashed to produce the item's identifier.
	IdentKeys []string
	// RouteTemplate is a Go template string (using {field} placeholders)
	// used to synthesize a URL for items of this type that don't carry
	// their own url field. Empty when the type always carries its own url.
	RouteTemplate string
	// ItemRefKeys are fields whose values are themselves items (or lists
	// of items) rather than plain scalars.
	ItemRefKeys []string
}

// Registry is a thread-safe store of type descriptors. It is populated once
// at startup via RegisterDefaults/Register and read concurrently by every
// reviewer goroutine thereafter.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

// New creates an empty Registry. Call RegisterDefaults or Register to
// populate it before use.
func New() *Registry {
	return &Registry{
		descriptors: make(map[string]Descriptor),
	}
}

// Register adds a descriptor for typeName. It returns an error if typeName
// is already registered - duplicate registration is a programming error,
// not a runtime condition to tolerate.
func (r *Registry) Register(typeName string, d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[typeName]; exists {
		return fmt.Errorf("registry: type %q already registered", typeName)
	}
	r.descriptors[typeName] = d
	return nil
}

// Get returns the descriptor for typeName and whether it was found.
func (r *Registry) Get(typeName string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[typeName]
	return d, ok
}

// MustGet returns the descriptor for typeName, panicking if unregistered.
// Reserved for call sites where an unregistered type is a startup-time
// programming error rather than a request-time condition.
func (r *Registry) MustGet(typeName string) Descriptor {
	d, ok := r.Get(typeName)
	if !ok {
		panic(fmt.Sprintf("registry: type %q has not been registered", typeName))
	}
	return d
}

// SuperTypes returns the registered super types for typeName, or nil if the
// type is unregistered.
func (r *Registry) SuperTypes(typeName string) []string {
	d, ok := r.Get(typeName)
	if !ok {
		return nil
	}
	return d.SuperTypes
}

// IdentKeys returns the ident keys registered for typeName and whether the
// type was found.
func (r *Registry) IdentKeys(typeName string) ([]string, bool) {
	d, ok := r.Get(typeName)
	if !ok {
		return nil, false
	}
	return d.IdentKeys, true
}

// RouteTemplate returns the route template registered for typeName.
func (r *Registry) RouteTemplate(typeName string) (string, bool) {
	d, ok := r.Get(typeName)
	if !ok {
		return "", false
	}
	return d.RouteTemplate, true
}

// ItemRefKeys returns the itemref keys registered for typeName.
func (r *Registry) ItemRefKeys(typeName string) ([]string, bool) {
	d, ok := r.Get(typeName)
	if !ok {
		return nil, false
	}
	return d.ItemRefKeys, true
}

// Count returns the number of registered types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}

// TypeNames returns all registered type names.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	return names
}
