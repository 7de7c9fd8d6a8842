package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NethermindEth/starkstore/core/felt"
)

// Field is one named member of a struct type.
type Field struct {
	Name string
	Type Type
}

// StructType lays its fields out contiguously in declaration order, each field
// at the prefix sum of the preceding fields' slot counts. Values are
// map[string]any keyed by field name.
type StructType struct {
	fields []Field
	slots  int
}

func NewStruct(fields ...Field) (*StructType, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: struct needs at least one field", ErrInvalidName)
	}

	seen := make(map[string]struct{}, len(fields))
	slots := 0
	for _, f := range fields {
		if f.Name == "" || f.Type == nil {
			return nil, fmt.Errorf("%w: struct field needs a name and a type", ErrInvalidName)
		}
		if _, ok := seen[f.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate struct field %q", ErrInvalidName, f.Name)
		}
		seen[f.Name] = struct{}{}
		slots += f.Type.SlotCount()
	}
	if slots > MaxSlots {
		return nil, fmt.Errorf("%w: struct occupies %d slots, limit is %d", ErrLayoutTooLarge, slots, MaxSlots)
	}

	return &StructType{fields: fields, slots: slots}, nil
}

// MustStruct is NewStruct for statically known shapes.
func MustStruct(fields ...Field) *StructType {
	s, err := NewStruct(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *StructType) Fields() []Field {
	return s.fields
}

func (s *StructType) SlotCount() int {
	return s.slots
}

func (s *StructType) String() string {
	parts := make([]string, len(s.fields))
	for i, f := range s.fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "struct(" + strings.Join(parts, ", ") + ")"
}

func (s *StructType) encodeSlots(v any, dst []felt.Felt) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: %s got %T", ErrValueType, s, v)
	}
	if len(m) != len(s.fields) {
		return fmt.Errorf("%w: %s got %d values for %d fields", ErrValueType, s, len(m), len(s.fields))
	}

	offset := 0
	for _, f := range s.fields {
		fv, ok := m[f.Name]
		if !ok {
			return fmt.Errorf("%w: missing field %q", ErrValueType, f.Name)
		}
		n := f.Type.SlotCount()
		if err := f.Type.encodeSlots(fv, dst[offset:offset+n]); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		offset += n
	}
	return nil
}

func (s *StructType) decodeSlots(src []felt.Felt) (any, error) {
	m := make(map[string]any, len(s.fields))
	offset := 0
	for _, f := range s.fields {
		n := f.Type.SlotCount()
		fv, err := f.Type.decodeSlots(src[offset : offset+n])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		m[f.Name] = fv
		offset += n
	}
	return m, nil
}

// TupleType is a struct with positional members. Values are []any.
type TupleType struct {
	elems []Type
	slots int
}

func NewTuple(elems ...Type) (*TupleType, error) {
	if len(elems) == 0 {
		return nil, fmt.Errorf("%w: tuple needs at least one element", ErrInvalidName)
	}

	slots := 0
	for i, e := range elems {
		if e == nil {
			return nil, fmt.Errorf("%w: tuple element %d has no type", ErrInvalidName, i)
		}
		slots += e.SlotCount()
	}
	if slots > MaxSlots {
		return nil, fmt.Errorf("%w: tuple occupies %d slots, limit is %d", ErrLayoutTooLarge, slots, MaxSlots)
	}

	return &TupleType{elems: elems, slots: slots}, nil
}

func MustTuple(elems ...Type) *TupleType {
	t, err := NewTuple(elems...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *TupleType) Elems() []Type {
	return t.elems
}

func (t *TupleType) SlotCount() int {
	return t.slots
}

func (t *TupleType) String() string {
	parts := make([]string, len(t.elems))
	for i, e := range t.elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *TupleType) encodeSlots(v any, dst []felt.Felt) error {
	vals, ok := v.([]any)
	if !ok {
		return fmt.Errorf("%w: %s got %T", ErrValueType, t, v)
	}
	if len(vals) != len(t.elems) {
		return fmt.Errorf("%w: %s got %d values for %d elements", ErrValueType, t, len(vals), len(t.elems))
	}

	offset := 0
	for i, e := range t.elems {
		n := e.SlotCount()
		if err := e.encodeSlots(vals[i], dst[offset:offset+n]); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		offset += n
	}
	return nil
}

func (t *TupleType) decodeSlots(src []felt.Felt) (any, error) {
	vals := make([]any, len(t.elems))
	offset := 0
	for i, e := range t.elems {
		n := e.SlotCount()
		ev, err := e.decodeSlots(src[offset : offset+n])
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		vals[i] = ev
		offset += n
	}
	return vals, nil
}

// Variant is one alternative of an enum type. A nil Type declares a unit
// variant with no payload.
type Variant struct {
	Name string
	Type Type
}

// EnumType stores the variant discriminant in its first slot and the active
// variant's payload right after. The payload area is sized for the largest
// variant so the slot count stays static; unused trailing slots are written
// as zero.
type EnumType struct {
	variants     []Variant
	payloadSlots int
}

func NewEnum(variants ...Variant) (*EnumType, error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: enum needs at least one variant", ErrInvalidName)
	}

	seen := make(map[string]struct{}, len(variants))
	payloadSlots := 0
	for _, v := range variants {
		if v.Name == "" {
			return nil, fmt.Errorf("%w: enum variant needs a name", ErrInvalidName)
		}
		if _, ok := seen[v.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate enum variant %q", ErrInvalidName, v.Name)
		}
		seen[v.Name] = struct{}{}
		if v.Type != nil && v.Type.SlotCount() > payloadSlots {
			payloadSlots = v.Type.SlotCount()
		}
	}
	if 1+payloadSlots > MaxSlots {
		return nil, fmt.Errorf("%w: enum occupies %d slots, limit is %d", ErrLayoutTooLarge, 1+payloadSlots, MaxSlots)
	}

	return &EnumType{variants: variants, payloadSlots: payloadSlots}, nil
}

func MustEnum(variants ...Variant) *EnumType {
	e, err := NewEnum(variants...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *EnumType) Variants() []Variant {
	return e.variants
}

func (e *EnumType) SlotCount() int {
	return 1 + e.payloadSlots
}

func (e *EnumType) String() string {
	parts := make([]string, len(e.variants))
	for i, v := range e.variants {
		if v.Type == nil {
			parts[i] = v.Name
		} else {
			parts[i] = v.Name + ": " + v.Type.String()
		}
	}
	return "enum(" + strings.Join(parts, ", ") + ")"
}

// EnumValue is a value of an EnumType: the active variant's name and its
// payload (nil for unit variants).
type EnumValue struct {
	Variant string
	Payload any
}

func (e *EnumType) encodeSlots(v any, dst []felt.Felt) error {
	var ev EnumValue
	switch val := v.(type) {
	case EnumValue:
		ev = val
	case *EnumValue:
		ev = *val
	default:
		return fmt.Errorf("%w: %s got %T", ErrValueType, e, v)
	}

	for i, variant := range e.variants {
		if variant.Name != ev.Variant {
			continue
		}
		dst[0].SetUint64(uint64(i))
		if variant.Type == nil {
			if ev.Payload != nil {
				return fmt.Errorf("%w: unit variant %q given a payload", ErrValueType, variant.Name)
			}
			return nil
		}
		// dst is zero-initialized, so slots past this variant's payload are
		// cleared even when a larger variant was stored before.
		if err := variant.Type.encodeSlots(ev.Payload, dst[1:1+variant.Type.SlotCount()]); err != nil {
			return fmt.Errorf("variant %q: %w", variant.Name, err)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown enum variant %q", ErrValueType, ev.Variant)
}

func (e *EnumType) decodeSlots(src []felt.Felt) (any, error) {
	if !src[0].IsUint64() || src[0].Uint64() >= uint64(len(e.variants)) {
		return nil, &DecodeError{
			Type: e.String(),
			Err:  fmt.Errorf("%w: stored discriminant %s", ErrOutOfRange, src[0].String()),
		}
	}

	variant := e.variants[src[0].Uint64()]
	if variant.Type == nil {
		return EnumValue{Variant: variant.Name}, nil
	}
	payload, err := variant.Type.decodeSlots(src[1 : 1+variant.Type.SlotCount()])
	if err != nil {
		return nil, fmt.Errorf("variant %q: %w", variant.Name, err)
	}
	return EnumValue{Variant: variant.Name, Payload: payload}, nil
}

// Leaf is one primitive slot block of a type's layout: its dotted path within
// the value and its offset from the variable's resolved address. Enums are
// reported as a single leaf spanning their full reserved size.
type Leaf struct {
	Path   string `json:"path"`
	Offset int    `json:"offset"`
}

// Leaves enumerates a type's layout in declaration order. Offsets are prefix
// sums over the preceding leaves' slot counts.
func Leaves(t Type) []Leaf {
	return appendLeaves(nil, "", 0, t)
}

// Offsets returns just the per-leaf offsets of Leaves.
func Offsets(t Type) []int {
	leaves := Leaves(t)
	offsets := make([]int, len(leaves))
	for i, l := range leaves {
		offsets[i] = l.Offset
	}
	return offsets
}

func appendLeaves(dst []Leaf, path string, offset int, t Type) []Leaf {
	switch ct := t.(type) {
	case *StructType:
		for _, f := range ct.fields {
			dst = appendLeaves(dst, joinPath(path, f.Name), offset, f.Type)
			offset += f.Type.SlotCount()
		}
		return dst
	case *TupleType:
		for i, e := range ct.elems {
			dst = appendLeaves(dst, joinPath(path, strconv.Itoa(i)), offset, e)
			offset += e.SlotCount()
		}
		return dst
	default:
		return append(dst, Leaf{Path: path, Offset: offset})
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
