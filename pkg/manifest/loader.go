// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package manifest

import (
	gocache "github.com/patrickmn/go-cache"
)

// Loader parses manifests and memoizes the parsed, pre-substitution
// documents for the lifetime of the cache it owns. Construct one per
// process (or per test) rather than sharing module state.
type Loader struct {
	cache *gocache.Cache
}

func NewLoader() *Loader {
	return NewLoaderWithCache(gocache.New(gocache.NoExpiration, 0))
}

// NewLoaderWithCache lets the caller own the cache lifetime.
func NewLoaderWithCache(store *gocache.Cache) *Loader {
	return &Loader{cache: store}
}

// Load returns the cached document for path, parsing it on first use.
// Entries are keyed by the literal path string: "./m.yaml" and its
// absolute form are distinct entries. That, and the absence of any
// invalidation when the file changes on disk, are intentional
// simplifications. Only successfully parsed documents are cached.
func (l *Loader) Load(path string) (*Document, error) {
	if cached, ok := l.cache.Get(path); ok {
		return cached.(*Document), nil
	}

	doc, err := Parse(path)
	if err != nil {
		return nil, err
	}

	l.cache.Set(path, doc, gocache.NoExpiration)

	return doc, nil
}
