package storage_test

import (
	"math/big"
	"testing"

	"github.com/NethermindEth/starkstore/core/crypto"
	"github.com/NethermindEth/starkstore/core/felt"
	"github.com/NethermindEth/starkstore/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addressBound(t *testing.T) *big.Int {
	t.Helper()
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 251), big.NewInt(256))
}

func TestBaseAddress(t *testing.T) {
	tests := map[string]string{
		"owner": "0x2016836a56b71f0d02689e69e326f4f4c1b9057164ef592671cf0d37c8040c0",
		"names": "0x968a09a4841848cf6a616f8edef20d474b416f4e8fa338d2c6ff1c1b7cda16",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := storage.BaseAddress(name)
			require.NoError(t, err)

			wantFelt, err := new(felt.Felt).SetString(want)
			require.NoError(t, err)
			assert.True(t, got.Equal(wantFelt), "got %s", got.String())
		})
	}
}

func TestVarAddressNoKeys(t *testing.T) {
	base, err := storage.BaseAddress("total_supply")
	require.NoError(t, err)

	resolved, err := storage.VarAddress("total_supply")
	require.NoError(t, err)
	assert.True(t, resolved.Equal(&base))
}

func TestVarAddressDeterminism(t *testing.T) {
	keys := []*felt.Felt{
		new(felt.Felt).SetUint64(0x123),
		new(felt.Felt).SetUint64(7),
	}

	first, err := storage.VarAddress("balances", keys...)
	require.NoError(t, err)
	second, err := storage.VarAddress("balances", keys...)
	require.NoError(t, err)
	assert.True(t, first.Equal(&second))
}

func TestVarAddressKeyOrder(t *testing.T) {
	k1 := new(felt.Felt).SetUint64(1)
	k2 := new(felt.Felt).SetUint64(2)

	forward, err := storage.VarAddress("allowances", k1, k2)
	require.NoError(t, err)
	backward, err := storage.VarAddress("allowances", k2, k1)
	require.NoError(t, err)
	assert.False(t, forward.Equal(&backward))
}

func TestVarAddressFold(t *testing.T) {
	// Single key: pedersen(sn_keccak("names"), 0x123) mod (2^251 - 256).
	base, err := storage.BaseAddress("names")
	require.NoError(t, err)

	key, err := new(felt.Felt).SetString("0x123")
	require.NoError(t, err)

	folded := crypto.Pedersen(&base, key)
	want := folded.BigInt(new(big.Int))
	want.Mod(want, addressBound(t))

	got, err := storage.VarAddress("names", key)
	require.NoError(t, err)
	assert.Equal(t, 0, got.BigInt(new(big.Int)).Cmp(want))
}

func TestVarAddressInRange(t *testing.T) {
	bound := addressBound(t)
	for i := uint64(0); i < 32; i++ {
		addr, err := storage.VarAddress("stress", new(felt.Felt).SetUint64(i))
		require.NoError(t, err)
		assert.Negative(t, addr.BigInt(new(big.Int)).Cmp(bound))
	}
}
