package storage

import (
	"fmt"

	"github.com/NethermindEth/starkstore/core/felt"
	"github.com/NethermindEth/starkstore/db"
)

// Mapping is the accessor for one keyed storage variable. It is an address
// computation, not a stored entity: there is no length, no enumeration and no
// existence flag, and "deleting" an entry writes the value type's zero.
//
// Each access takes exactly KeyArity() key values, one per declared key type,
// in declaration order. A composite key type contributes one Pedersen fold
// per flattened leaf field, not one for the whole composite.
type Mapping struct {
	name     string
	keyTypes []Type
	valueTyp Type
	base     felt.Felt
}

func (m *Mapping) Name() string {
	return m.name
}

func (m *Mapping) KeyTypes() []Type {
	return m.keyTypes
}

func (m *Mapping) ValueType() Type {
	return m.valueTyp
}

// KeyArity is the number of key values every access must supply.
func (m *Mapping) KeyArity() int {
	return len(m.keyTypes)
}

// KeyFeltCount is the number of Pedersen fold steps one access performs:
// composite keys contribute one step per flattened leaf.
func (m *Mapping) KeyFeltCount() int {
	count := 0
	for _, kt := range m.keyTypes {
		count += kt.SlotCount()
	}
	return count
}

// Address resolves the storage address for the given keys: the mapping's base
// address with every flattened key felt folded in by Pedersen, reduced into
// the valid address range.
func (m *Mapping) Address(keys ...any) (felt.Felt, error) {
	flat, err := m.flattenKeys(keys)
	if err != nil {
		return felt.Zero, err
	}
	return foldAddress(&m.base, flat), nil
}

// Read loads and decodes the value stored under the given keys. Keys that
// were never written decode to the value type's canonical zero value.
func (m *Mapping) Read(r db.SlotReader, keys ...any) (any, error) {
	addr, err := m.Address(keys...)
	if err != nil {
		return nil, err
	}
	return readSlots(r, &addr, m.valueTyp)
}

// Write stores value under the given keys.
func (m *Mapping) Write(w db.SlotWriter, value any, keys ...any) error {
	addr, err := m.Address(keys...)
	if err != nil {
		return err
	}
	return writeSlots(w, &addr, m.valueTyp, value)
}

// Delete writes the value type's zero under the given keys. There is no
// tombstone: a deleted entry is indistinguishable from one never written.
func (m *Mapping) Delete(w db.SlotWriter, keys ...any) error {
	addr, err := m.Address(keys...)
	if err != nil {
		return err
	}

	zero := make([]felt.Felt, m.valueTyp.SlotCount())
	for i := range zero {
		slotAddr := slotAddress(&addr, i)
		if err := w.Put(&slotAddr, &zero[i]); err != nil {
			return fmt.Errorf("write slot %s: %w", slotAddr.String(), err)
		}
	}
	return nil
}

// flattenKeys encodes each key value with its declared type and concatenates
// the resulting felts in declaration order. Key types only contain 1-slot
// leaves, so the slot encoding and the key flattening coincide.
func (m *Mapping) flattenKeys(keys []any) ([]felt.Felt, error) {
	if len(keys) != len(m.keyTypes) {
		return nil, fmt.Errorf("%w: %q wants %d keys, got %d",
			ErrKeyArityMismatch, m.name, len(m.keyTypes), len(keys))
	}

	var flat []felt.Felt
	for i, kt := range m.keyTypes {
		slots := make([]felt.Felt, kt.SlotCount())
		if err := kt.encodeSlots(keys[i], slots); err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		flat = append(flat, slots...)
	}
	return flat, nil
}

// validKeyType reports whether t may be declared as a mapping key. Enums are
// rejected: their reserved zero padding would fold into the address and make
// equal-valued keys of different variants collide structurally.
func validKeyType(t Type) bool {
	switch kt := t.(type) {
	case *StructType:
		for _, f := range kt.fields {
			if !validKeyType(f.Type) {
				return false
			}
		}
		return true
	case *TupleType:
		for _, e := range kt.elems {
			if !validKeyType(e) {
				return false
			}
		}
		return true
	case *EnumType:
		return false
	default:
		return true
	}
}
