// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"sync"
)

// Shared guards a Memory for use by more than one owner.
// Readers run concurrently, writers are exclusive.
type Shared struct {
	lock sync.RWMutex
	mem  *Memory
}

var _ Bus = (*Shared)(nil)

// NewShared creates a shared memory of size words.
func NewShared(size uint16) *Shared {
	return &Shared{mem: NewMemory(size)}
}

// Share wraps an existing memory. The caller must not use mem directly
// afterwards.
func Share(mem *Memory) *Shared {
	return &Shared{mem: mem}
}

func (sh *Shared) Len() uint16 {
	sh.lock.RLock()
	defer sh.lock.RUnlock()

	return sh.mem.Len()
}

func (sh *Shared) Get(pos uint16) (value uint16, err error) {
	sh.lock.RLock()
	defer sh.lock.RUnlock()

	return sh.mem.Get(pos)
}

func (sh *Shared) Set(pos uint16, value uint16) (err error) {
	sh.lock.Lock()
	defer sh.lock.Unlock()

	return sh.mem.Set(pos, value)
}

func (sh *Shared) GetRange(pos uint16, count uint16) (values []uint16, err error) {
	sh.lock.RLock()
	defer sh.lock.RUnlock()

	return sh.mem.GetRange(pos, count)
}

func (sh *Shared) SetRange(pos uint16, values []uint16) (err error) {
	sh.lock.Lock()
	defer sh.lock.Unlock()

	return sh.mem.SetRange(pos, values)
}

// Words returns a consistent copy of the whole memory.
func (sh *Shared) Words() []uint16 {
	sh.lock.RLock()
	defer sh.lock.RUnlock()

	return sh.mem.Words()
}

// Inspect calls fn with the memory held for reading.
func (sh *Shared) Inspect(fn func(mem *Memory)) {
	sh.lock.RLock()
	defer sh.lock.RUnlock()

	fn(sh.mem)
}

// Update calls fn with the memory held exclusively.
func (sh *Shared) Update(fn func(mem *Memory) error) error {
	sh.lock.Lock()
	defer sh.lock.Unlock()

	return fn(sh.mem)
}
