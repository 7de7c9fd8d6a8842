// Package pebble persists storage slots in a pebble database keyed by the
// 32-byte big-endian slot address.
package pebble

import (
	"github.com/NethermindEth/starkstore/core/felt"
	"github.com/NethermindEth/starkstore/db"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

var _ db.SlotStore = (*Store)(nil)

type Store struct {
	pebble   *pebble.DB
	listener db.EventListener
}

// New opens a slot store at the given path.
func New(path string, opts ...Option) (*Store, error) {
	cfg := newConfig(opts)
	pDB, err := pebble.Open(path, &pebble.Options{Logger: cfg.logger})
	if err != nil {
		return nil, err
	}
	return &Store{pebble: pDB, listener: cfg.listener}, nil
}

// NewMem opens a slot store backed by an in-memory filesystem.
func NewMem(opts ...Option) (*Store, error) {
	cfg := newConfig(opts)
	pDB, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem(), Logger: cfg.logger})
	if err != nil {
		return nil, err
	}
	return &Store{pebble: pDB, listener: cfg.listener}, nil
}

func (s *Store) Get(addr *felt.Felt) (felt.Felt, error) {
	if s.listener != nil {
		s.listener.OnIO(false)
	}

	var value felt.Felt
	data, closer, err := s.pebble.Get(addr.Marshal())
	if err != nil {
		if err == pebble.ErrNotFound {
			// never-written slots read as zero
			return felt.Zero, nil
		}
		return felt.Zero, err
	}
	value.Unmarshal(data)
	return value, closer.Close()
}

func (s *Store) Has(addr *felt.Felt) (bool, error) {
	_, closer, err := s.pebble.Get(addr.Marshal())
	if err != nil {
		if err == pebble.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, closer.Close()
}

func (s *Store) Put(addr, value *felt.Felt) error {
	if s.listener != nil {
		s.listener.OnIO(true)
	}
	return s.pebble.Set(addr.Marshal(), value.Marshal(), pebble.Sync)
}

func (s *Store) Close() error {
	return s.pebble.Close()
}
