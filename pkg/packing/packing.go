// Package packing implements the lossy decimal floating point formats used to
// carry amounts and fees inside L2 transaction messages.
//
// A packed value is mantissa*10^exponent laid out big-endian as
// mantissa<<ExponentBits | exponent. Packing is exact-or-reject: a value that
// cannot be reconstructed bit-for-bit is never silently rounded.
package packing

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ErrNotPackable is returned when a value has no exact packed representation
var ErrNotPackable = errors.New("value is not packable")

// Format describes one packed float layout
type Format struct {
	Name         string
	ExponentBits uint
	MantissaBits uint
}

var (
	// AmountFormat is the 5 byte packed transfer amount
	AmountFormat = Format{Name: "amount", ExponentBits: 5, MantissaBits: 35}
	// FeeFormat is the 2 byte packed transaction fee
	FeeFormat = Format{Name: "fee", ExponentBits: 5, MantissaBits: 11}
)

const (
	AmountPackedLen = 5
	FeePackedLen    = 2
)

var ten = uint256.NewInt(10)

// Len is the packed width in bytes
func (f Format) Len() int {
	return int((f.ExponentBits + f.MantissaBits) / 8)
}

// MaxExponent is the largest encodable power of ten
func (f Format) MaxExponent() uint64 {
	return (uint64(1) << f.ExponentBits) - 1
}

// MaxMantissa is the largest encodable mantissa
func (f Format) MaxMantissa() *uint256.Int {
	m := new(uint256.Int).Lsh(uint256.NewInt(1), f.MantissaBits)
	return m.SubUint64(m, 1)
}

// MaxValue is the largest packable value, MaxMantissa*10^MaxExponent
func (f Format) MaxValue() *big.Int {
	return new(uint256.Int).Mul(f.MaxMantissa(), pow10(f.MaxExponent())).ToBig()
}

func pow10(e uint64) *uint256.Int {
	return new(uint256.Int).Exp(ten, uint256.NewInt(e))
}

func toUint256(value *big.Int) (*uint256.Int, bool) {
	if value == nil || value.Sign() < 0 {
		return nil, false
	}
	v, overflow := uint256.FromBig(value)
	if overflow {
		return nil, false
	}
	return v, true
}

// split finds the smallest exponent whose mantissa range covers v and returns
// the floored mantissa together with the divisor 10^exponent.
func (f Format) split(v *uint256.Int) (mantissa *uint256.Int, exponent uint64, divisor *uint256.Int, ok bool) {
	maxMantissa := f.MaxMantissa()
	divisor = uint256.NewInt(1)
	for exponent = 0; exponent <= f.MaxExponent(); exponent++ {
		limit := new(uint256.Int).Mul(maxMantissa, divisor)
		if !v.Gt(limit) {
			return new(uint256.Int).Div(v, divisor), exponent, divisor, true
		}
		divisor = new(uint256.Int).Mul(divisor, ten)
	}
	return nil, 0, nil, false
}

// Pack encodes value into the format or fails with ErrNotPackable
func (f Format) Pack(value *big.Int) ([]byte, error) {
	v, ok := toUint256(value)
	if !ok {
		return nil, errors.Wrapf(ErrNotPackable, "%s %s is outside the representable range", f.Name, value)
	}
	mantissa, exponent, divisor, ok := f.split(v)
	if !ok {
		return nil, errors.Wrapf(ErrNotPackable, "%s %s exceeds maximum %s", f.Name, value, f.MaxValue())
	}
	if !new(uint256.Int).Mod(v, divisor).IsZero() {
		return nil, errors.Wrapf(ErrNotPackable, "%s %s loses precision at exponent %d", f.Name, value, exponent)
	}

	packed := new(uint256.Int).Lsh(mantissa, f.ExponentBits)
	packed.Or(packed, uint256.NewInt(exponent))

	full := packed.Bytes32()
	out := make([]byte, f.Len())
	copy(out, full[32-f.Len():])
	return out, nil
}

// Unpack decodes a packed value. It is the inverse of Pack.
func (f Format) Unpack(packed []byte) (*big.Int, error) {
	if len(packed) != f.Len() {
		return nil, fmt.Errorf("packed %s must be %d bytes, got %d", f.Name, f.Len(), len(packed))
	}
	raw := new(uint256.Int).SetBytes(packed)
	exponent := new(uint256.Int).And(raw, uint256.NewInt(f.MaxExponent())).Uint64()
	mantissa := new(uint256.Int).Rsh(raw, f.ExponentBits)
	return new(uint256.Int).Mul(mantissa, pow10(exponent)).ToBig(), nil
}

// IsPackable reports whether value survives a pack/unpack round trip
func (f Format) IsPackable(value *big.Int) bool {
	_, err := f.Pack(value)
	return err == nil
}

// ClosestPackable returns the greatest packable value that does not exceed
// value. Values above the format maximum are clamped to MaxValue.
func (f Format) ClosestPackable(value *big.Int) *big.Int {
	if value == nil || value.Sign() <= 0 {
		return new(big.Int)
	}
	v, ok := toUint256(value)
	if !ok {
		return f.MaxValue()
	}
	mantissa, exponent, divisor, ok := f.split(v)
	if !ok {
		return f.MaxValue()
	}
	best := new(uint256.Int).Mul(mantissa, divisor)
	if exponent > 0 {
		// a full mantissa one exponent lower can be closer than the floored value
		lower := new(uint256.Int).Div(divisor, ten)
		lower.Mul(lower, f.MaxMantissa())
		if lower.Gt(best) {
			best = lower
		}
	}
	return best.ToBig()
}

// PackAmount packs a transfer amount into 5 bytes
func PackAmount(value *big.Int) ([AmountPackedLen]byte, error) {
	var out [AmountPackedLen]byte
	packed, err := AmountFormat.Pack(value)
	if err != nil {
		return out, err
	}
	copy(out[:], packed)
	return out, nil
}

// PackFee packs a fee into 2 bytes
func PackFee(value *big.Int) ([FeePackedLen]byte, error) {
	var out [FeePackedLen]byte
	packed, err := FeeFormat.Pack(value)
	if err != nil {
		return out, err
	}
	copy(out[:], packed)
	return out, nil
}

func UnpackAmount(packed [AmountPackedLen]byte) *big.Int {
	v, _ := AmountFormat.Unpack(packed[:])
	return v
}

func UnpackFee(packed [FeePackedLen]byte) *big.Int {
	v, _ := FeeFormat.Unpack(packed[:])
	return v
}

func IsPackableAmount(value *big.Int) bool { return AmountFormat.IsPackable(value) }

func IsPackableFee(value *big.Int) bool { return FeeFormat.IsPackable(value) }

func ClosestPackableAmount(value *big.Int) *big.Int { return AmountFormat.ClosestPackable(value) }

func ClosestPackableFee(value *big.Int) *big.Int { return FeeFormat.ClosestPackable(value) }
