package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NethermindEth/starkstore/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenSchema = `
contract: my_token
storage:
  - name: total_supply
    type: u128
  - name: owner
    type:
      struct:
        - {name: name, type: felt252}
        - {name: address, type: contract_address}
  - name: state
    type:
      enum:
        - {name: paused}
        - {name: active, type: u64}
  - name: bounds
    type:
      tuple: [u64, u64]
  - name: balances
    mapping:
      keys: [contract_address]
      value: u128
  - name: allowances
    mapping:
      keys: [contract_address, contract_address]
      value: u128
`

func TestParseSchemaFile(t *testing.T) {
	schemaFile, err := storage.ParseSchemaFile([]byte(tokenSchema))
	require.NoError(t, err)
	assert.Equal(t, "my_token", schemaFile.Contract)

	schema := schemaFile.Schema
	assert.Equal(t,
		[]string{"total_supply", "owner", "state", "bounds", "balances", "allowances"},
		schema.Names())

	owner, ok := schema.Variable("owner")
	require.True(t, ok)
	assert.Equal(t, 2, owner.Type().SlotCount())

	state, ok := schema.Variable("state")
	require.True(t, ok)
	assert.Equal(t, 2, state.Type().SlotCount())

	allowances, ok := schema.Mapping("allowances")
	require.True(t, ok)
	assert.Equal(t, 2, allowances.KeyArity())
}

func TestLoadSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tokenSchema), 0o600))

	schemaFile, err := storage.LoadSchemaFile(path)
	require.NoError(t, err)
	assert.Equal(t, "my_token", schemaFile.Contract)

	_, err = storage.LoadSchemaFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseSchemaFileErrors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		target error
	}{
		{
			name: "mapping nested in struct",
			yaml: `
contract: bad
storage:
  - name: holder
    type:
      struct:
        - name: inner
          type:
            mapping:
              keys: [felt252]
              value: felt252
`,
			target: storage.ErrInvalidMappingUsage,
		},
		{
			name: "mapping as mapping value",
			yaml: `
contract: bad
storage:
  - name: nested
    mapping:
      keys: [felt252]
      value:
        mapping:
          keys: [felt252]
          value: felt252
`,
			target: storage.ErrInvalidMappingUsage,
		},
		{
			name: "mapping as mapping key",
			yaml: `
contract: bad
storage:
  - name: nested
    mapping:
      keys:
        - mapping:
            keys: [felt252]
            value: felt252
      value: felt252
`,
			target: storage.ErrInvalidMappingUsage,
		},
		{
			name: "unknown primitive",
			yaml: `
contract: bad
storage:
  - name: v
    type: u256
`,
			target: storage.ErrUnknownType,
		},
		{
			name: "enum as mapping key",
			yaml: `
contract: bad
storage:
  - name: m
    mapping:
      keys:
        - enum:
            - {name: a}
            - {name: b}
      value: felt252
`,
			target: storage.ErrInvalidKeyType,
		},
		{
			name: "both type and mapping",
			yaml: `
contract: bad
storage:
  - name: v
    type: felt252
    mapping:
      keys: [felt252]
      value: felt252
`,
			target: storage.ErrInvalidName,
		},
		{
			name: "neither type nor mapping",
			yaml: `
contract: bad
storage:
  - name: v
`,
			target: storage.ErrInvalidName,
		},
		{
			name: "duplicate names",
			yaml: `
contract: bad
storage:
  - name: v
    type: felt252
  - name: v
    type: u8
`,
			target: storage.ErrDuplicateVariable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.ParseSchemaFile([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("missing contract name", func(t *testing.T) {
		_, err := storage.ParseSchemaFile([]byte("storage:\n  - name: v\n    type: felt252\n"))
		assert.Error(t, err)
	})

	t.Run("empty storage", func(t *testing.T) {
		_, err := storage.ParseSchemaFile([]byte("contract: empty\n"))
		assert.Error(t, err)
	})

	t.Run("not yaml", func(t *testing.T) {
		_, err := storage.ParseSchemaFile([]byte("{{"))
		assert.Error(t, err)
	})
}
