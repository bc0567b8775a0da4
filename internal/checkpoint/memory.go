package checkpoint

import (
	"sync"

	"pkg.jsn.cam/brc/pkg/brc"
)

// MemoryStore implements Store in memory (not persistent).
type MemoryStore struct {
	partials map[Fingerprint]map[brc.ByteRange]brc.Result
	mu       sync.RWMutex
	closed   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		partials: make(map[Fingerprint]map[brc.ByteRange]brc.Result),
	}
}

// Load returns a copy of the partial saved for r under fp.
func (m *MemoryStore) Load(fp Fingerprint, r brc.ByteRange) (brc.Result, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, ErrStoreClosed
	}

	res, ok := m.partials[fp][r]
	if !ok {
		return nil, false, nil
	}

	return clone(res), true, nil
}

// Save stores a copy of res so later changes by the caller are not seen.
func (m *MemoryStore) Save(fp Fingerprint, r brc.ByteRange, res brc.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	file, ok := m.partials[fp]
	if !ok {
		file = make(map[brc.ByteRange]brc.Result)
		m.partials[fp] = file
	}
	file[r] = clone(res)

	return nil
}

// Forget deletes every partial saved under fp.
func (m *MemoryStore) Forget(fp Fingerprint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.partials, fp)

	return nil
}

// Close marks the store closed; later calls fail with ErrStoreClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	return nil
}

// Len returns the number of partials saved under fp.
func (m *MemoryStore) Len(fp Fingerprint) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.partials[fp])
}

func clone(res brc.Result) brc.Result {
	c := make(brc.Result, len(res))
	for k, s := range res {
		c[k] = s.Clone()
	}
	return c
}
