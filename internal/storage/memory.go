package storage

import "context"

// Memory is an in-memory Provider. It backs tests and throwaway runs where
// durability does not matter.
type Memory struct {
	data  []byte
	saves int
}

// NewMemory creates an empty in-memory provider.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns the last saved blob, or nil when nothing has been saved.
func (m *Memory) Load(ctx context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

// Save overwrites the blob.
func (m *Memory) Save(ctx context.Context, data []byte) error {
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *Memory) Saves() int {
	return m.saves
}
