package crypto_test

import (
	"fmt"
	"testing"

	"github.com/NethermindEth/starkstore/core/crypto"
	"github.com/NethermindEth/starkstore/core/felt"
	"github.com/stretchr/testify/require"
)

func TestPedersen(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{
			"0x03d937c035c878245caf64531a5756109c53068da139362728feb561405371cb",
			"0x0208a0a10250e382e1e4bbe2880906c2791bf6275695e02fbbc6aeff9cd8b31a",
			"0x030e480bed5fe53fa909cc0f8c4d99b8f9f2c016be4c41e13a4848797979c662",
		},
		{
			"0x58f580910a6ca59b28927c08fe6c43e2e303ca384badc365795fc645d479d45",
			"0x78734f65a067be9bdb39de18434d71e79f7b6466a4b66bbd979ab9e7515fe0b",
			"0x68cc0b76cddd1dd4ed2301ada9b7c872b23875d5ff837b3a87993e0d9996b87",
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("TestHash %d", i), func(t *testing.T) {
			a, err := new(felt.Felt).SetString(tt.a)
			require.NoError(t, err)
			b, err := new(felt.Felt).SetString(tt.b)
			require.NoError(t, err)
			want, err := new(felt.Felt).SetString(tt.want)
			require.NoError(t, err)

			ans := crypto.Pedersen(a, b)
			if !ans.Equal(want) {
				t.Errorf("TestHash got %s, want %s", ans.String(), want.String())
			}

			// cached second lookup must agree
			require.True(t, crypto.Pedersen(a, b).Equal(want))
		})
	}
}

func TestPedersenDigest(t *testing.T) {
	elems := make([]*felt.Felt, 5)
	for i := range elems {
		elems[i] = new(felt.Felt).SetUint64(uint64(i + 1))
	}

	want := crypto.PedersenArray(elems...)

	digest := new(crypto.PedersenDigest)
	for _, e := range elems {
		digest.Update(e)
	}
	require.Equal(t, want, digest.Finish())
}
