package storage_test

import (
	"fmt"
	"testing"

	"github.com/NethermindEth/starkstore/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveSlotCounts(t *testing.T) {
	for _, typ := range []storage.Type{
		storage.Felt252, storage.Bool,
		storage.Uint8, storage.Uint16, storage.Uint32, storage.Uint64, storage.Uint128,
		storage.ContractAddress,
	} {
		assert.Equal(t, 1, typ.SlotCount(), typ.String())
	}
}

func TestStructLayout(t *testing.T) {
	pair := storage.MustStruct(
		storage.Field{Name: "a", Type: storage.Felt252},
		storage.Field{Name: "b", Type: storage.Uint64},
	)
	assert.Equal(t, 2, pair.SlotCount())
	assert.Equal(t, []int{0, 1}, storage.Offsets(pair))

	nested := storage.MustStruct(
		storage.Field{Name: "id", Type: storage.Uint32},
		storage.Field{Name: "pair", Type: pair},
		storage.Field{Name: "flag", Type: storage.Bool},
	)
	assert.Equal(t, 4, nested.SlotCount())
	assert.Equal(t, []int{0, 1, 2, 3}, storage.Offsets(nested))

	leaves := storage.Leaves(nested)
	paths := make([]string, len(leaves))
	for i, l := range leaves {
		paths[i] = l.Path
	}
	assert.Equal(t, []string{"id", "pair.a", "pair.b", "flag"}, paths)
}

func TestTupleLayout(t *testing.T) {
	tuple := storage.MustTuple(storage.Felt252, storage.Uint8, storage.Bool)
	assert.Equal(t, 3, tuple.SlotCount())
	assert.Equal(t, []int{0, 1, 2}, storage.Offsets(tuple))

	leaves := storage.Leaves(tuple)
	assert.Equal(t, "0", leaves[0].Path)
	assert.Equal(t, "2", leaves[2].Path)
}

func TestEnumLayout(t *testing.T) {
	t.Run("unit variants occupy one slot", func(t *testing.T) {
		e := storage.MustEnum(
			storage.Variant{Name: "none"},
			storage.Variant{Name: "some"},
		)
		assert.Equal(t, 1, e.SlotCount())
	})

	t.Run("payload area sized for the largest variant", func(t *testing.T) {
		pair := storage.MustStruct(
			storage.Field{Name: "x", Type: storage.Felt252},
			storage.Field{Name: "y", Type: storage.Felt252},
		)
		e := storage.MustEnum(
			storage.Variant{Name: "empty"},
			storage.Variant{Name: "one", Type: storage.Uint64},
			storage.Variant{Name: "two", Type: pair},
		)
		assert.Equal(t, 1+2, e.SlotCount())
	})
}

func TestSlotLimit(t *testing.T) {
	field := func(i int) storage.Field {
		return storage.Field{Name: fmt.Sprintf("f%d", i), Type: storage.Felt252}
	}

	t.Run("256 slots accepted", func(t *testing.T) {
		fields := make([]storage.Field, storage.MaxSlots)
		for i := range fields {
			fields[i] = field(i)
		}
		s, err := storage.NewStruct(fields...)
		require.NoError(t, err)
		assert.Equal(t, storage.MaxSlots, s.SlotCount())
	})

	t.Run("257 slots rejected", func(t *testing.T) {
		fields := make([]storage.Field, storage.MaxSlots+1)
		for i := range fields {
			fields[i] = field(i)
		}
		_, err := storage.NewStruct(fields...)
		assert.ErrorIs(t, err, storage.ErrLayoutTooLarge)
	})

	t.Run("tuple past the limit rejected", func(t *testing.T) {
		elems := make([]storage.Type, storage.MaxSlots+1)
		for i := range elems {
			elems[i] = storage.Felt252
		}
		_, err := storage.NewTuple(elems...)
		assert.ErrorIs(t, err, storage.ErrLayoutTooLarge)
	})

	t.Run("enum discriminant counts against the limit", func(t *testing.T) {
		elems := make([]storage.Type, storage.MaxSlots)
		for i := range elems {
			elems[i] = storage.Felt252
		}
		payload := storage.MustTuple(elems...)

		// 1 discriminant + 256 payload slots = 257
		_, err := storage.NewEnum(storage.Variant{Name: "full", Type: payload})
		assert.ErrorIs(t, err, storage.ErrLayoutTooLarge)
	})
}

func TestStructDefinitionErrors(t *testing.T) {
	_, err := storage.NewStruct()
	assert.Error(t, err)

	_, err = storage.NewStruct(
		storage.Field{Name: "a", Type: storage.Felt252},
		storage.Field{Name: "a", Type: storage.Uint8},
	)
	assert.Error(t, err)

	_, err = storage.NewEnum(
		storage.Variant{Name: "v"},
		storage.Variant{Name: "v"},
	)
	assert.Error(t, err)
}
