package storage

import (
	"fmt"

	"github.com/NethermindEth/starkstore/core/crypto"
	"github.com/NethermindEth/starkstore/core/felt"
)

// Schema is the definition surface for one contract's storage struct: the
// static set of named variables and mappings the contract persists. All
// declaration errors (bad names, oversized layouts, invalid key types,
// duplicates) surface here, before anything is deployed; a Schema that built
// successfully cannot fail at address-resolution time.
type Schema struct {
	order     []string
	variables map[string]*Variable
	mappings  map[string]*Mapping
}

func NewSchema() *Schema {
	return &Schema{
		variables: make(map[string]*Variable),
		mappings:  make(map[string]*Mapping),
	}
}

// AddVariable declares an unkeyed variable and returns its accessor.
func (s *Schema) AddVariable(name string, t Type) (*Variable, error) {
	if err := s.checkName(name); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: variable %q has no type", ErrInvalidName, name)
	}

	base, err := BaseAddress(name)
	if err != nil {
		return nil, err
	}

	v := &Variable{name: name, typ: t, base: base}
	s.variables[name] = v
	s.order = append(s.order, name)
	return v, nil
}

// AddMapping declares a keyed variable and returns its accessor. A mapping
// needs at least one key type; every key type must flatten cleanly into felts.
func (s *Schema) AddMapping(name string, value Type, keys ...Type) (*Mapping, error) {
	if err := s.checkName(name); err != nil {
		return nil, err
	}
	if value == nil {
		return nil, fmt.Errorf("%w: mapping %q has no value type", ErrInvalidName, name)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: mapping %q declares no keys", ErrInvalidMappingUsage, name)
	}
	for i, kt := range keys {
		if kt == nil || !validKeyType(kt) {
			return nil, fmt.Errorf("%w: mapping %q key %d", ErrInvalidKeyType, name, i)
		}
	}

	base, err := BaseAddress(name)
	if err != nil {
		return nil, err
	}

	m := &Mapping{name: name, keyTypes: keys, valueTyp: value, base: base}
	s.mappings[name] = m
	s.order = append(s.order, name)
	return m, nil
}

// Variable returns the accessor declared under name, if it is unkeyed.
func (s *Schema) Variable(name string) (*Variable, bool) {
	v, ok := s.variables[name]
	return v, ok
}

// Mapping returns the accessor declared under name, if it is keyed.
func (s *Schema) Mapping(name string) (*Mapping, bool) {
	m, ok := s.mappings[name]
	return m, ok
}

// Names returns every declared variable name in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Commitment folds every declared variable's identity (base address, slot
// count, key arity) into a single felt in declaration order. Two schemas with
// the same commitment lay their storage out identically, which makes the
// commitment a cheap audit handle for deployed layouts.
func (s *Schema) Commitment() *felt.Felt {
	var elems []*felt.Felt
	for _, name := range s.order {
		var base felt.Felt
		var slots, arity uint64
		if v, ok := s.variables[name]; ok {
			base = v.base
			slots = uint64(v.typ.SlotCount())
		} else {
			m := s.mappings[name]
			base = m.base
			slots = uint64(m.valueTyp.SlotCount())
			arity = uint64(len(m.keyTypes))
		}
		elems = append(elems,
			&base,
			new(felt.Felt).SetUint64(slots),
			new(felt.Felt).SetUint64(arity),
		)
	}
	return crypto.PedersenArray(elems...)
}

func (s *Schema) checkName(name string) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, ok := s.variables[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
	}
	if _, ok := s.mappings[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
	}
	return nil
}

// validName accepts ASCII identifiers: letters, digits and underscores, not
// starting with a digit. The name is hash input, so the restriction is about
// keeping declarations unambiguous rather than about what would hash.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
