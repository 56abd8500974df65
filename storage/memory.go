package storage

import (
	"context"

	"github.com/puzpuzpuz/xsync/v4"
)

// Memory is an in-process Store.
type Memory struct {
	m *xsync.Map[string, []byte]
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{m: xsync.NewMap[string, []byte]()}
}

func (s *Memory) Get(_ context.Context, key []byte) ([]byte, error) {
	v, ok := s.m.Load(string(key))
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (s *Memory) Set(_ context.Context, key, value []byte) error {
	if len(value) == 0 {
		s.m.Delete(string(key))
		return nil
	}
	s.m.Store(string(key), append([]byte(nil), value...))
	return nil
}

// Len returns the number of stored keys.
func (s *Memory) Len() int { return s.m.Size() }

// Range calls f for every entry until f returns false. Values must not be
// modified.
func (s *Memory) Range(f func(key string, value []byte) bool) {
	s.m.Range(f)
}
