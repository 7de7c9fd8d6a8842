package storage

import (
	"fmt"

	"github.com/NethermindEth/starkstore/core/felt"
	"github.com/NethermindEth/starkstore/db"
)

// Variable is the accessor for one unkeyed storage variable. Instances are
// created once, at declaration time, by Schema; they are immutable for the
// contract's lifetime.
type Variable struct {
	name string
	typ  Type
	base felt.Felt
}

func (v *Variable) Name() string {
	return v.name
}

func (v *Variable) Type() Type {
	return v.typ
}

// Address returns the variable's base storage address, sn_keccak(name).
func (v *Variable) Address() *felt.Felt {
	addr := v.base
	return &addr
}

// Read loads the variable's slots and decodes them. A variable that was never
// written decodes from all-zero slots to its type's canonical zero value.
func (v *Variable) Read(r db.SlotReader) (any, error) {
	return readSlots(r, &v.base, v.typ)
}

// Write encodes value and stores every slot of the variable's layout.
func (v *Variable) Write(w db.SlotWriter, value any) error {
	return writeSlots(w, &v.base, v.typ, value)
}

func readSlots(r db.SlotReader, base *felt.Felt, typ Type) (any, error) {
	slots := make([]felt.Felt, typ.SlotCount())
	for i := range slots {
		addr := slotAddress(base, i)
		value, err := r.Get(&addr)
		if err != nil {
			return nil, fmt.Errorf("read slot %s: %w", addr.String(), err)
		}
		slots[i] = value
	}
	return typ.decodeSlots(slots)
}

func writeSlots(w db.SlotWriter, base *felt.Felt, typ Type, value any) error {
	// Encode fully before touching the store so a bad value never leaves a
	// partial write behind.
	slots := make([]felt.Felt, typ.SlotCount())
	if err := typ.encodeSlots(value, slots); err != nil {
		return err
	}
	for i := range slots {
		addr := slotAddress(base, i)
		if err := w.Put(&addr, &slots[i]); err != nil {
			return fmt.Errorf("write slot %s: %w", addr.String(), err)
		}
	}
	return nil
}
