package packing

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzClosestPackableAmount(f *testing.F) {
	f.Add([]byte{0})
	f.Add([]byte{0x08, 0x00, 0x00, 0x00, 0x00})
	f.Add([]byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})

	f.Fuzz(func(t *testing.T, raw []byte) {
		// Keep inputs within 256 bits.
		if len(raw) > 32 {
			raw = raw[:32]
		}
		v := new(big.Int).SetBytes(raw)

		closest := ClosestPackableAmount(v)
		require.LessOrEqual(t, closest.Cmp(v), 0, "closest packable must not exceed input")

		packed, err := PackAmount(closest)
		require.NoError(t, err, "closest packable value must pack")
		require.Equal(t, 0, UnpackAmount(packed).Cmp(closest))

		if IsPackableAmount(v) {
			require.Equal(t, 0, closest.Cmp(v))
		}
	})
}

func FuzzPackFeeRoundTrip(f *testing.F) {
	f.Add(uint64(0), uint8(0))
	f.Add(uint64(2047), uint8(31))
	f.Add(uint64(1000), uint8(3))

	f.Fuzz(func(t *testing.T, mantissa uint64, exponent uint8) {
		mantissa %= 2048
		exponent %= 32
		v := new(big.Int).Mul(new(big.Int).SetUint64(mantissa), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exponent)), nil))

		packed, err := PackFee(v)
		require.NoError(t, err)
		require.Equal(t, 0, UnpackFee(packed).Cmp(v))
		require.Equal(t, 0, ClosestPackableFee(v).Cmp(v))
	})
}
