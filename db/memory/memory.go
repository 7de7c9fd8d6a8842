// Package memory provides an in-memory slot store, used as the host double in
// tests and by the CLI.
package memory

import (
	"sync"

	"github.com/NethermindEth/starkstore/core/felt"
	"github.com/NethermindEth/starkstore/db"
)

var _ db.SlotStore = (*Store)(nil)

// Store is an in-memory felt-addressed slot store.
// It is thread-safe.
type Store struct {
	slots    map[[32]byte]felt.Felt
	listener db.EventListener
	lock     sync.RWMutex
}

func New() *Store {
	return &Store{
		slots: make(map[[32]byte]felt.Felt),
	}
}

// WithListener registers an event listener and returns the store.
func (s *Store) WithListener(listener db.EventListener) *Store {
	s.listener = listener
	return s
}

func (s *Store) Get(addr *felt.Felt) (felt.Felt, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.slots == nil {
		return felt.Zero, db.ErrStoreClosed
	}
	if s.listener != nil {
		s.listener.OnIO(false)
	}

	// absent slots read as zero
	return s.slots[addr.Bytes()], nil
}

func (s *Store) Has(addr *felt.Felt) (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.slots == nil {
		return false, db.ErrStoreClosed
	}

	_, ok := s.slots[addr.Bytes()]
	return ok, nil
}

func (s *Store) Put(addr, value *felt.Felt) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.slots == nil {
		return db.ErrStoreClosed
	}
	if s.listener != nil {
		s.listener.OnIO(true)
	}

	s.slots[addr.Bytes()] = *value
	return nil
}

func (s *Store) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.slots = nil
	return nil
}

// Len returns the number of written slots.
func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.slots)
}
