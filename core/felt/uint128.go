package felt

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Uint128 is a 128-bit unsigned integer, the widest fixed-width unsigned type
// that fits a single storage slot.
type Uint128 struct {
	hi uint64
	lo uint64
}

func NewUint128(hi, lo uint64) *Uint128 {
	return &Uint128{
		hi: hi,
		lo: lo,
	}
}

func (u *Uint128) Hi() uint64 {
	return u.hi
}

func (u *Uint128) Lo() uint64 {
	return u.lo
}

// Bytes returns the big-endian 16-byte representation.
func (u *Uint128) Bytes() []byte {
	hiBytes := make([]byte, 8)
	loBytes := make([]byte, 8)

	binary.BigEndian.PutUint64(hiBytes, u.hi)
	binary.BigEndian.PutUint64(loBytes, u.lo)

	return append(hiBytes, loBytes...)
}

// SetBytes interprets b as a big-endian unsigned integer of at most 16 bytes.
func (u *Uint128) SetBytes(b []byte) (*Uint128, error) {
	if len(b) > 16 {
		return nil, fmt.Errorf("uint128 overflow: %d bytes", len(b))
	}

	var buf [16]byte
	copy(buf[16-len(b):], b)

	u.hi = binary.BigEndian.Uint64(buf[:8])
	u.lo = binary.BigEndian.Uint64(buf[8:])
	return u, nil
}

// AsFelt returns the felt with the same integer value.
func (u *Uint128) AsFelt() *Felt {
	return new(Felt).SetBytes(u.Bytes())
}

func (u *Uint128) UnmarshalJSON(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case string:
		if v == "0x0" {
			u.hi, u.lo = 0, 0
			return nil
		}
		v = strings.TrimPrefix(v, "0x")

		// might need a leading zero
		if len(v)%2 != 0 {
			v = "0" + v
		}

		bytes, err := hex.DecodeString(v)
		if err != nil {
			return err
		}

		padSize := 16 - len(bytes)
		if padSize > 0 {
			padBytes := make([]byte, padSize)
			bytes = append(padBytes, bytes...)
		}

		u.hi = binary.BigEndian.Uint64(bytes[:8])
		u.lo = binary.BigEndian.Uint64(bytes[8:])
	default:
		return fmt.Errorf("unsupported type in JSON payload: %T", value)
	}

	return nil
}

func (u *Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + u.String())
}

func (u Uint128) Equal(o Uint128) bool {
	return u.hi == o.hi && u.lo == o.lo
}

func (u Uint128) IsZero() bool {
	return u.hi == 0 && u.lo == 0
}

func (u Uint128) String() string {
	return fmt.Sprintf("%016x%016x", u.hi, u.lo)
}
