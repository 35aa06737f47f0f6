// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package config implements the layered settings store shared by all
// orchestration components. Settings are applied in a fixed layer order
// and the highest layer defining a key wins. Command-line overrides are
// loaded twice, once before the file and environment layers and once
// after, so explicit flags always take precedence over both.
package config

import (
	"sort"
	"strings"
	"sync"

	"github.com/onosproject/vsperf/pkg/vsperferrors"
)

// Layer identifies the origin of a setting. Higher layers shadow lower ones.
type Layer int

const (
	// LayerDefaults holds the built-in defaults
	LayerDefaults Layer = iota
	// LayerConfDir holds settings loaded from a configuration directory
	LayerConfDir
	// LayerConfFile holds settings loaded from an explicit --conf-file
	LayerConfFile
	// LayerArgsEarly holds the first application of command-line overrides
	LayerArgsEarly
	// LayerEnvironment holds settings loaded from environment variables
	LayerEnvironment
	// LayerArgsLate holds the second application of command-line overrides
	LayerArgsLate
	// LayerRuntime holds ad hoc mutations made during test execution
	LayerRuntime

	numLayers int = iota
)

func (l Layer) String() string {
	switch l {
	case LayerDefaults:
		return "defaults"
	case LayerConfDir:
		return "conf-dir"
	case LayerConfFile:
		return "conf-file"
	case LayerArgsEarly:
		return "args"
	case LayerEnvironment:
		return "environment"
	case LayerArgsLate:
		return "args"
	case LayerRuntime:
		return "runtime"
	}
	return "unknown"
}

type layerSet [numLayers]map[string]any

// Store is a layered configuration store
type Store struct {
	mu     sync.RWMutex
	layers *layerSet
}

// NewStore creates an empty configuration store
func NewStore() *Store {
	var layers layerSet
	for i := range layers {
		layers[i] = make(map[string]any)
	}
	return &Store{
		layers: &layers,
	}
}

// CanonicalKey returns the canonical form of a settings key.
// Keys are case-sensitive on lookup but all loaders canonicalize to
// upper case, which keeps file, flag and environment spellings aligned.
func CanonicalKey(key string) string {
	return strings.ToUpper(key)
}

// Get returns the effective value of a key, determined by the highest
// layer that defines it
func (s *Store) Get(key string) (Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for layer := numLayers - 1; layer >= 0; layer-- {
		if value, ok := s.layers[layer][key]; ok {
			return NewValue(value), nil
		}
	}
	return Value{}, &vsperferrors.ErrKeyNotFound{Key: key}
}

// Default returns the effective value of a key, or the given fallback
// when no layer defines it or the defining layer holds nil
func (s *Store) Default(key string, fallback any) Value {
	value, err := s.Get(key)
	if err != nil || !value.IsSet() {
		return NewValue(fallback)
	}
	return value
}

// Set assigns a value in the runtime layer, the highest layer. The new
// value is visible to readers immediately.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers[LayerRuntime][CanonicalKey(key)] = value
}

// Origin returns the layer providing the effective value of a key
func (s *Store) Origin(key string) (Layer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for layer := numLayers - 1; layer >= 0; layer-- {
		if _, ok := s.layers[layer][key]; ok {
			return Layer(layer), true
		}
	}
	return 0, false
}

// Keys returns the sorted set of keys defined in any layer
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	for layer := range s.layers {
		for key := range s.layers[layer] {
			seen[key] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot is an opaque copy of the full store state
type Snapshot struct {
	layers *layerSet
}

// Snapshot captures the full state of the store. The returned snapshot
// is detached from the live store; later mutations do not affect it.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var layers layerSet
	for i := range s.layers {
		layers[i] = copyMap(s.layers[i])
	}
	return &Snapshot{layers: &layers}
}

// Restore atomically replaces the store state with a snapshot. The swap
// is whole-state, never key-by-key, so readers observe either the old
// state or the new state but no mixture. The snapshot remains valid for
// further restores.
func (s *Store) Restore(snapshot *Snapshot) {
	var layers layerSet
	for i := range snapshot.layers {
		layers[i] = copyMap(snapshot.layers[i])
	}
	s.mu.Lock()
	s.layers = &layers
	s.mu.Unlock()
}

// load merges values into a layer, canonicalizing top-level keys
func (s *Store) load(layer Layer, values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range values {
		s.layers[layer][CanonicalKey(key)] = copyValue(value)
	}
}

func copyMap(values map[string]any) map[string]any {
	copied := make(map[string]any, len(values))
	for key, value := range values {
		copied[key] = copyValue(value)
	}
	return copied
}

// copyValue deep-copies the container types produced by the YAML and
// flag parsers so snapshots cannot alias live state
func copyValue(value any) any {
	switch value := value.(type) {
	case map[string]any:
		return copyMap(value)
	case []any:
		copied := make([]any, len(value))
		for i, element := range value {
			copied[i] = copyValue(element)
		}
		return copied
	case []string:
		copied := make([]string, len(value))
		copy(copied, value)
		return copied
	default:
		return value
	}
}
