package storage

import (
	"fmt"

	"github.com/NethermindEth/starkstore/core/felt"
)

// MaxSlots is the most contiguous slots a single storable value may occupy.
// Declaring a type past this limit fails with ErrLayoutTooLarge.
const MaxSlots = 256

// Type describes a storable type: how many slots a value occupies and how a
// value is serialized into and out of those slots. The codec for composite
// types is derived from their shape, never hand-written, so the layout
// invariant (one slot per leaf, declaration order, prefix-sum offsets) holds
// by construction.
//
// All implementations live in this package. Mappings are deliberately not
// Types: they are address-computation policies, not values.
type Type interface {
	String() string
	// SlotCount is the number of contiguous slots a value of this type
	// occupies, fixed at definition time.
	SlotCount() int

	// encodeSlots serializes v into dst, which has exactly SlotCount
	// zero-initialized elements.
	encodeSlots(v any, dst []felt.Felt) error
	// decodeSlots deserializes a value from src, which has exactly SlotCount
	// elements.
	decodeSlots(src []felt.Felt) (any, error)
}

// Storable primitives. Each occupies exactly one slot.
var (
	Felt252         Type = feltType{}
	Bool            Type = boolType{}
	Uint8           Type = uintType{name: "u8", bits: 8}
	Uint16          Type = uintType{name: "u16", bits: 16}
	Uint32          Type = uintType{name: "u32", bits: 32}
	Uint64          Type = uintType{name: "u64", bits: 64}
	Uint128         Type = u128Type{}
	ContractAddress Type = addrType{}
)

type feltType struct{}

func (feltType) String() string { return "felt252" }
func (feltType) SlotCount() int { return 1 }

func (t feltType) encodeSlots(v any, dst []felt.Felt) error {
	switch f := v.(type) {
	case *felt.Felt:
		dst[0].Set(f)
	case felt.Felt:
		dst[0] = f
	default:
		return fmt.Errorf("%w: %s got %T", ErrValueType, t, v)
	}
	return nil
}

func (feltType) decodeSlots(src []felt.Felt) (any, error) {
	f := src[0]
	return &f, nil
}

type boolType struct{}

func (boolType) String() string { return "bool" }
func (boolType) SlotCount() int { return 1 }

func (t boolType) encodeSlots(v any, dst []felt.Felt) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("%w: %s got %T", ErrValueType, t, v)
	}
	if b {
		dst[0].SetUint64(1)
	}
	return nil
}

func (t boolType) decodeSlots(src []felt.Felt) (any, error) {
	switch {
	case src[0].IsZero():
		return false, nil
	case src[0].IsOne():
		return true, nil
	default:
		return nil, &DecodeError{
			Type: t.String(),
			Err:  fmt.Errorf("%w: %s is not a bool", ErrOutOfRange, src[0].String()),
		}
	}
}

// uintType covers the fixed-width unsigned integers up to 64 bits.
type uintType struct {
	name string
	bits uint
}

func (t uintType) String() string { return t.name }
func (uintType) SlotCount() int   { return 1 }

func (t uintType) max() uint64 {
	if t.bits == 64 {
		return ^uint64(0)
	}
	return 1<<t.bits - 1
}

func (t uintType) encodeSlots(v any, dst []felt.Felt) error {
	u, ok := asUint64(v)
	if !ok {
		return fmt.Errorf("%w: %s got %T", ErrValueType, t, v)
	}
	if u > t.max() {
		return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, u, t)
	}
	dst[0].SetUint64(u)
	return nil
}

func (t uintType) decodeSlots(src []felt.Felt) (any, error) {
	if !src[0].IsUint64() || src[0].Uint64() > t.max() {
		return nil, &DecodeError{
			Type: t.String(),
			Err:  fmt.Errorf("%w: stored %s does not fit %s", ErrOutOfRange, src[0].String(), t),
		}
	}
	v := src[0].Uint64()
	switch t.bits {
	case 8:
		return uint8(v), nil
	case 16:
		return uint16(v), nil
	case 32:
		return uint32(v), nil
	default:
		return v, nil
	}
}

// asUint64 widens the accepted Go integer forms. Signed forms are a
// convenience for literals; negatives never fit an unsigned slot.
func asUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}

type u128Type struct{}

func (u128Type) String() string { return "u128" }
func (u128Type) SlotCount() int { return 1 }

func (t u128Type) encodeSlots(v any, dst []felt.Felt) error {
	switch u := v.(type) {
	case *felt.Uint128:
		dst[0].SetBytes(u.Bytes())
	case felt.Uint128:
		dst[0].SetBytes(u.Bytes())
	default:
		return fmt.Errorf("%w: %s got %T", ErrValueType, t, v)
	}
	return nil
}

func (t u128Type) decodeSlots(src []felt.Felt) (any, error) {
	b := src[0].Bytes()
	for _, hi := range b[:16] {
		if hi != 0 {
			return nil, &DecodeError{
				Type: t.String(),
				Err:  fmt.Errorf("%w: stored %s does not fit u128", ErrOutOfRange, src[0].String()),
			}
		}
	}
	u, err := new(felt.Uint128).SetBytes(b[16:])
	if err != nil {
		return nil, &DecodeError{Type: t.String(), Err: err}
	}
	return u, nil
}

type addrType struct{}

func (addrType) String() string { return "contract_address" }
func (addrType) SlotCount() int { return 1 }

func (t addrType) encodeSlots(v any, dst []felt.Felt) error {
	var f *felt.Felt
	switch a := v.(type) {
	case *felt.Address:
		f = a.AsFelt()
	case felt.Address:
		f = a.AsFelt()
	default:
		return fmt.Errorf("%w: %s got %T", ErrValueType, t, v)
	}
	if !inAddressRange(f) {
		return fmt.Errorf("%w: %s is not a valid contract address", ErrOutOfRange, f.String())
	}
	dst[0].Set(f)
	return nil
}

func (t addrType) decodeSlots(src []felt.Felt) (any, error) {
	if !inAddressRange(&src[0]) {
		return nil, &DecodeError{
			Type: t.String(),
			Err:  fmt.Errorf("%w: stored %s is not a valid contract address", ErrOutOfRange, src[0].String()),
		}
	}
	a := felt.Address(src[0])
	return &a, nil
}
