package host

import (
	"errors"
	"fmt"
	"sync"
)

// PageSize is the size of one memory page.
const PageSize = 64 * 1024

var ErrMemoryExhausted = errors.New("host: requested memory end too large")

// Memory accounts for the linear memory of a host. It starts empty and grows
// by a single page when a store runs past the end; a store that still does
// not fit fails.
type Memory struct {
	mu   sync.Mutex
	size uint64
}

// Size returns the current memory size in bytes.
func (m *Memory) Size() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

// Grow adds pages to the memory.
func (m *Memory) Grow(pages uint32) {
	m.mu.Lock()
	m.size += uint64(pages) * PageSize
	m.mu.Unlock()
}

// Store accounts for writing n bytes at offset.
func (m *Memory) Store(offset, n uint32) error {
	if n == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	end := uint64(offset) + uint64(n)
	if end > m.size {
		m.size += PageSize
	}
	if end > m.size {
		return fmt.Errorf("%w: end %d, size %d", ErrMemoryExhausted, end, m.size)
	}
	return nil
}
