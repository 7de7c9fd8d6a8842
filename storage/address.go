// Package storage maps named, typed, possibly keyed contract variables onto a
// flat felt-addressed slot space and moves structured values in and out of it.
//
// A variable's base address is the Starknet keccak of its ASCII name. Keyed
// variables fold each key felt into the base with the Pedersen hash, and the
// result is normalized into the valid storage range [0, 2^251 - 256). The
// layout of a composite value is fixed by its type: one slot per primitive
// leaf, assigned contiguously in declaration order.
package storage

import (
	"math/big"

	"github.com/NethermindEth/starkstore/core/crypto"
	"github.com/NethermindEth/starkstore/core/felt"
)

// addrBound is 2^251 - 256, the upper bound of the valid storage address
// range. Every resolved address is reduced modulo this bound.
var addrBound = new(big.Int).Sub(
	new(big.Int).Lsh(big.NewInt(1), 251),
	big.NewInt(256),
)

// BaseAddress returns sn_keccak(name), the storage address a variable's slots
// start at when it has no keys. The 250-bit hash output is always inside the
// valid address range.
func BaseAddress(name string) (felt.Felt, error) {
	h, err := crypto.StarknetKeccak([]byte(name))
	if err != nil {
		return felt.Zero, err
	}
	return *felt.NewFelt(h), nil
}

// VarAddress resolves the storage address for name under the given key felts:
// sn_keccak(name) with each key folded in by a Pedersen step, reduced into
// [0, 2^251 - 256). With no keys it is exactly BaseAddress(name).
func VarAddress(name string, keys ...*felt.Felt) (felt.Felt, error) {
	acc, err := BaseAddress(name)
	if err != nil {
		return felt.Zero, err
	}
	if len(keys) == 0 {
		return acc, nil
	}
	for _, k := range keys {
		acc = *crypto.Pedersen(&acc, k)
	}
	return normalizeAddress(&acc), nil
}

// foldAddress is VarAddress for an already-computed base.
func foldAddress(base *felt.Felt, keys []felt.Felt) felt.Felt {
	acc := *base
	if len(keys) == 0 {
		return acc
	}
	for i := range keys {
		acc = *crypto.Pedersen(&acc, &keys[i])
	}
	return normalizeAddress(&acc)
}

func normalizeAddress(f *felt.Felt) felt.Felt {
	v := f.BigInt(new(big.Int))
	if v.Cmp(addrBound) < 0 {
		return *f
	}
	var reduced felt.Felt
	reduced.SetBigInt(v.Mod(v, addrBound))
	return reduced
}

// inAddressRange reports whether f is a valid storage (or contract) address.
func inAddressRange(f *felt.Felt) bool {
	return f.BigInt(new(big.Int)).Cmp(addrBound) < 0
}

// slotAddress returns base + offset, the absolute address of one leaf slot.
func slotAddress(base *felt.Felt, offset int) felt.Felt {
	if offset == 0 {
		return *base
	}
	var off felt.Felt
	off.SetUint64(uint64(offset))
	var addr felt.Felt
	addr.Add(base, &off)
	return addr
}
