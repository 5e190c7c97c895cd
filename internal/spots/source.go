package spots

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Source produces raw candidate spots for one imaging volume. Image-domain
// detectors (local maxima, blob detection) live outside this module and are
// plugged in behind this interface; the decoder only consumes their output.
type Source interface {
	Spots(ctx context.Context) ([]RawSpot, error)
}

// SliceSource adapts an in-memory candidate list to Source, for callers
// that already hold decoded detector output.
type SliceSource []RawSpot

// Spots returns the slice unchanged.
func (s SliceSource) Spots(context.Context) ([]RawSpot, error) {
	return s, nil
}

// SourceFactory builds a Source variant from detector-specific parameters.
type SourceFactory func(params map[string]any) (Source, error)

var (
	sourcesMu sync.RWMutex
	sources   = make(map[string]SourceFactory)
)

// RegisterSource makes a detector variant selectable by name. Registering a
// duplicate name panics; variants are wired once at init time.
func RegisterSource(name string, factory SourceFactory) {
	sourcesMu.Lock()
	defer sourcesMu.Unlock()
	if _, dup := sources[name]; dup {
		panic(fmt.Sprintf("spots: source %q registered twice", name))
	}
	sources[name] = factory
}

// NewSource instantiates a registered detector variant by name.
func NewSource(name string, params map[string]any) (Source, error) {
	sourcesMu.RLock()
	factory, ok := sources[name]
	sourcesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("spots: unknown source %q (registered: %v)", name, SourceNames())
	}
	return factory(params)
}

// SourceNames lists registered variants in sorted order.
func SourceNames() []string {
	sourcesMu.RLock()
	defer sourcesMu.RUnlock()
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
