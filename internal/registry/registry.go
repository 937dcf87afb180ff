// Package registry collects annotated files into named libraries.
package registry

import (
	"strings"

	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

// Registry maps library names to their registered members.
// It is owned by a single build run and is not safe for concurrent use.
type Registry struct {
	norm      clientlibs.Normalizer
	libraries map[string]*entry
	order     []string
}

type entry struct {
	lib       *clientlibs.Library
	paths     map[clientlibs.AssetType]map[string]bool
	mentioned map[string]bool
}

// New creates an empty registry. Member paths are deduplicated using norm.
func New(norm clientlibs.Normalizer) *Registry {
	return &Registry{
		norm:      norm,
		libraries: make(map[string]*entry),
	}
}

// Register adds rec to the named library.
//
// Registration is additive: the library is created on first reference and
// never replaced. Re-registering a file whose normalized path is already a
// member of the same asset-type collection is a no-op for membership, but
// its dependency names are still merged into the mention set.
// Returns true when the record was added as a new member.
func (r *Registry) Register(libraryName string, rec clientlibs.FileRecord) bool {
	name := strings.TrimSpace(libraryName)
	if name == "" {
		return false
	}

	e, ok := r.libraries[name]
	if !ok {
		e = &entry{
			lib:       &clientlibs.Library{Name: name},
			paths:     make(map[clientlibs.AssetType]map[string]bool),
			mentioned: make(map[string]bool),
		}
		r.libraries[name] = e
		r.order = append(r.order, name)
	}

	for _, dep := range rec.DependsOn {
		if dep == "" || e.mentioned[dep] {
			continue
		}
		e.mentioned[dep] = true
		e.lib.Mentioned = append(e.lib.Mentioned, dep)
	}

	seen := e.paths[rec.AssetType]
	if seen == nil {
		seen = make(map[string]bool)
		e.paths[rec.AssetType] = seen
	}
	key := r.norm.RecordKey(rec)
	if seen[key] {
		return false
	}
	seen[key] = true

	switch rec.AssetType {
	case clientlibs.AssetStyle:
		e.lib.Styles = append(e.lib.Styles, rec)
	case clientlibs.AssetScript:
		e.lib.Scripts = append(e.lib.Scripts, rec)
	default:
		delete(seen, key)
		return false
	}
	return true
}

// Library returns the named library, if registered.
func (r *Registry) Library(name string) (*clientlibs.Library, bool) {
	e, ok := r.libraries[strings.TrimSpace(name)]
	if !ok {
		return nil, false
	}
	return e.lib, true
}

// Libraries returns all libraries in first-registration order.
func (r *Registry) Libraries() []*clientlibs.Library {
	libs := make([]*clientlibs.Library, 0, len(r.order))
	for _, name := range r.order {
		libs = append(libs, r.libraries[name].lib)
	}
	return libs
}

// Len returns the number of registered libraries.
func (r *Registry) Len() int {
	return len(r.order)
}
