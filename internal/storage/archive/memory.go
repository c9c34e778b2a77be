package archive

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// DefaultMemoryCapacity bounds a Memory store created with capacity <= 0.
const DefaultMemoryCapacity = 1000

// Memory is a bounded in-process Storage. When full, the oldest written
// object is evicted.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
	order   []string
	maxSize int
}

// NewMemory creates a memory store holding at most maxSize objects.
func NewMemory(maxSize int) *Memory {
	if maxSize <= 0 {
		maxSize = DefaultMemoryCapacity
	}
	return &Memory{
		objects: make(map[string][]byte),
		maxSize: maxSize,
	}
}

func (m *Memory) Write(ctx context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[path]; !ok {
		m.order = append(m.order, path)
	}
	m.objects[path] = append([]byte(nil), data...)

	// Trim if over capacity (remove oldest)
	for len(m.order) > m.maxSize {
		delete(m.objects, m.order[0])
		m.order = m.order[1:]
	}
	return nil
}

func (m *Memory) Read(ctx context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[path]
	if !ok {
		return nil, fmt.Errorf("reading %s: %w", path, os.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := []string{}
	for p := range m.objects {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
