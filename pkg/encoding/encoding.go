// Package encoding holds the fixed width primitives L2 transaction messages are
// assembled from. Every integer is big-endian.
package encoding

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/Layr-Labs/zksync-signer-go/pkg/packing"
	"github.com/Layr-Labs/zksync-signer-go/pkg/types"
)

var (
	ErrOverflow       = errors.New("integer overflows field width")
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidHash    = errors.New("invalid hash")
)

const (
	AccountIdWidth  = 4
	TokenIdWidth    = 4
	NonceWidth      = 4
	TimestampWidth  = 8
	AmountWidth     = 16
	RatioPartWidth  = 15
	ContentHashSize = 32
)

// EncodeUint writes value into exactly width bytes
func EncodeUint(value *big.Int, width int) ([]byte, error) {
	if value == nil {
		return nil, errors.Wrap(ErrOverflow, "value is nil")
	}
	if value.Sign() < 0 {
		return nil, errors.Wrapf(ErrOverflow, "%s is negative", value)
	}
	if value.BitLen() > width*8 {
		return nil, errors.Wrapf(ErrOverflow, "%s does not fit in %d bytes", value, width)
	}
	return value.FillBytes(make([]byte, width)), nil
}

func EncodeUint32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

func EncodeUint64(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

func EncodeAccountId(id uint32) []byte { return EncodeUint32(id) }

func EncodeTokenId(id uint32) []byte { return EncodeUint32(id) }

func EncodeNonce(nonce uint32) []byte { return EncodeUint32(nonce) }

func EncodeTimestamp(ts uint64) []byte { return EncodeUint64(ts) }

// EncodeAmount carries an amount at full precision
func EncodeAmount(amount *big.Int) ([]byte, error) {
	return EncodeUint(amount, AmountWidth)
}

// EncodeAddress returns the 20 raw bytes of a 0x prefixed hex address
func EncodeAddress(addr string) ([]byte, error) {
	parsed, err := types.ParseAddress(addr)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidAddress, err.Error())
	}
	return parsed.Bytes(), nil
}

// EncodePubKeyHash returns the 20 raw bytes of a sync: prefixed key hash
func EncodePubKeyHash(hash string) ([]byte, error) {
	parsed, err := types.ParsePubKeyHash(hash)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidAddress, err.Error())
	}
	return parsed[:], nil
}

// EncodeHash decodes an optionally 0x prefixed hex string of expectedLen bytes
func EncodeHash(s string, expectedLen int) ([]byte, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(digits) != 2*expectedLen {
		return nil, errors.Wrapf(ErrInvalidHash, "%q must be %d bytes", s, expectedLen)
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidHash, "%q is not hex", s)
	}
	return raw, nil
}

// EncodeContentHash decodes a 32 byte NFT content hash
func EncodeContentHash(s string) ([]byte, error) {
	return EncodeHash(s, ContentHashSize)
}

// EncodeRatio writes numerator then denominator, 15 bytes each
func EncodeRatio(numerator, denominator *big.Int) ([]byte, error) {
	num, err := EncodeUint(numerator, RatioPartWidth)
	if err != nil {
		return nil, errors.Wrap(err, "ratio numerator")
	}
	den, err := EncodeUint(denominator, RatioPartWidth)
	if err != nil {
		return nil, errors.Wrap(err, "ratio denominator")
	}
	return append(num, den...), nil
}

func EncodePackedAmount(amount *big.Int) ([]byte, error) {
	packed, err := packing.PackAmount(amount)
	if err != nil {
		return nil, err
	}
	return packed[:], nil
}

func EncodePackedFee(fee *big.Int) ([]byte, error) {
	packed, err := packing.PackFee(fee)
	if err != nil {
		return nil, err
	}
	return packed[:], nil
}
