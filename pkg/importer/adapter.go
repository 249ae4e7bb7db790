// Package importer loads dictionary headwords into a termdb store from
// downloadable or local sources.
package importer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/hazyhaar/yomikata/pkg/termdb"
)

// Report summarizes one finished import.
type Report struct {
	Dictionary string `json:"dictionary"`
	Terms      int    `json:"terms"`
}

// Adapter converts one kind of dictionary source into terms.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "jmdict").
	ID() string
	Description() string
	// DefaultURL is the source seeded into import_sources. Empty when the
	// adapter only reads sources named on the command line.
	DefaultURL() string
	License() string
	// Import reads source (an http(s) URL or a local path) and replaces the
	// dictionary it describes in store.
	Import(ctx context.Context, source string, store *termdb.Store) (Report, error)
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// ErrUnknownAdapter is returned by Get for an unregistered ID.
var ErrUnknownAdapter = errors.New("unknown import adapter")

// Get returns a registered adapter by ID.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	a, ok := adapters[id]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAdapter, id)
	}
	return a, nil
}

// All returns the registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	list := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		list = append(list, a)
	}
	registryMu.RUnlock()
	slices.SortFunc(list, func(a, b Adapter) int { return cmp.Compare(a.ID(), b.ID()) })
	return list
}
