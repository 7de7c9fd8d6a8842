// Package db defines the host key-value store this layer persists into: a
// flat space of felt-sized slots addressed by felts. Backends never iterate,
// range-scan or batch on behalf of the storage layer; access is one slot at a
// time, and a never-written address reads as the zero felt.
package db

import (
	"errors"
	"io"

	"github.com/NethermindEth/starkstore/core/felt"
)

var ErrStoreClosed = errors.New("slot store closed")

// SlotReader reads single storage slots.
type SlotReader interface {
	// Get returns the slot value at addr, or the zero felt if the slot was
	// never written.
	Get(addr *felt.Felt) (felt.Felt, error)
	// Has reports whether the slot at addr was ever written. Exposed for
	// tooling and tests only; the storage layer never distinguishes an absent
	// slot from a zero one.
	Has(addr *felt.Felt) (bool, error)
}

// SlotWriter writes single storage slots.
type SlotWriter interface {
	// Put sets the slot at addr to value.
	Put(addr, value *felt.Felt) error
}

// SlotStore is a complete felt-addressed slot store.
type SlotStore interface {
	SlotReader
	SlotWriter
	io.Closer
}
