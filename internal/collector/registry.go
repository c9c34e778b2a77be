package collector

import (
	"sort"
	"sync"

	"github.com/newthinker/tickr/internal/core"
)

// Registry manages collector plugins
type Registry struct {
	mu         sync.RWMutex
	collectors map[string]Collector
}

// NewRegistry creates a new collector registry
func NewRegistry() *Registry {
	return &Registry{
		collectors: make(map[string]Collector),
	}
}

// Register adds a collector to the registry
func (r *Registry) Register(c Collector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collectors[c.Name()] = c
}

// Get retrieves a collector by name
func (r *Registry) Get(name string) (Collector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.collectors[name]
	return c, ok
}

// GetAll returns all registered collectors sorted by name
func (r *Registry) GetAll() []Collector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Collector, 0, len(r.collectors))
	for _, c := range r.collectors {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

// Select returns the collector for a market: the preferred one when it
// serves the market, otherwise the first registered collector that does.
func (r *Registry) Select(preferred string, market core.Market) (Collector, bool) {
	if c, ok := r.Get(preferred); ok && supports(c, market) {
		return c, true
	}
	for _, c := range r.GetAll() {
		if supports(c, market) {
			return c, true
		}
	}
	return nil, false
}

func supports(c Collector, market core.Market) bool {
	for _, m := range c.SupportedMarkets() {
		if m == market {
			return true
		}
	}
	return false
}
