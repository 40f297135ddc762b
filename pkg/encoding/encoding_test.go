package encoding

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/zksync-signer-go/pkg/packing"
)

func Test_EncodeUint(t *testing.T) {
	out, err := EncodeUint(big.NewInt(0xe8d4a51000), 16)
	require.NoError(t, err)
	assert.Equal(t, "0000000000000000000000e8d4a51000", hex.EncodeToString(out))

	out, err = EncodeUint(big.NewInt(255), 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff}, out)

	_, err = EncodeUint(big.NewInt(256), 1)
	assert.True(t, errors.Is(err, ErrOverflow))
	_, err = EncodeUint(big.NewInt(-1), 4)
	assert.True(t, errors.Is(err, ErrOverflow))
	_, err = EncodeUint(nil, 4)
	assert.True(t, errors.Is(err, ErrOverflow))

	max128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	_, err = EncodeAmount(max128)
	require.NoError(t, err)
	_, err = EncodeAmount(new(big.Int).Add(max128, big.NewInt(1)))
	assert.True(t, errors.Is(err, ErrOverflow))
}

func Test_FixedWidthHelpers(t *testing.T) {
	assert.Equal(t, "0000002c", hex.EncodeToString(EncodeAccountId(44)))
	assert.Equal(t, "000186a0", hex.EncodeToString(EncodeTokenId(100000)))
	assert.Equal(t, "0000000c", hex.EncodeToString(EncodeNonce(12)))
	assert.Equal(t, "00000000ffffffff", hex.EncodeToString(EncodeTimestamp(4294967295)))
}

func Test_EncodeAddress(t *testing.T) {
	out, err := EncodeAddress("0xedE35562d3555e61120a151B3c8e8e91d83a378a")
	require.NoError(t, err)
	assert.Equal(t, "ede35562d3555e61120a151b3c8e8e91d83a378a", hex.EncodeToString(out))

	_, err = EncodeAddress("0x1234")
	assert.True(t, errors.Is(err, ErrInvalidAddress))
	_, err = EncodeAddress("edE35562d3555e61120a151B3c8e8e91d83a378a")
	assert.True(t, errors.Is(err, ErrInvalidAddress))
}

func Test_EncodePubKeyHash(t *testing.T) {
	out, err := EncodePubKeyHash("sync:18e8446d7748f2de52b28345bdbc76160e6b35eb")
	require.NoError(t, err)
	assert.Equal(t, "18e8446d7748f2de52b28345bdbc76160e6b35eb", hex.EncodeToString(out))

	_, err = EncodePubKeyHash("sync:xyz")
	assert.True(t, errors.Is(err, ErrInvalidAddress))
}

func Test_EncodeHash(t *testing.T) {
	hash := "0000000000000000000000000000000000000000000000000000000000000123"
	out, err := EncodeHash(hash, 32)
	require.NoError(t, err)
	assert.Len(t, out, 32)
	assert.Equal(t, byte(0x23), out[31])

	prefixed, err := EncodeContentHash("0x" + hash)
	require.NoError(t, err)
	assert.Equal(t, out, prefixed)

	_, err = EncodeHash("0x0123", 32)
	assert.True(t, errors.Is(err, ErrInvalidHash))
	_, err = EncodeHash("zz"+hash[2:], 32)
	assert.True(t, errors.Is(err, ErrInvalidHash))
}

func Test_EncodeRatio(t *testing.T) {
	out, err := EncodeRatio(big.NewInt(1), big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, "000000000000000000000000000001000000000000000000000000000002", hex.EncodeToString(out))
	assert.Len(t, out, 2*RatioPartWidth)

	maxPart := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 120), big.NewInt(1))
	out, err = EncodeRatio(maxPart, maxPart)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ff", 30), hex.EncodeToString(out))

	tooBig := new(big.Int).Lsh(big.NewInt(1), 120)
	_, err = EncodeRatio(tooBig, big.NewInt(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverflow))
	assert.Contains(t, err.Error(), "numerator")

	_, err = EncodeRatio(big.NewInt(1), tooBig)
	assert.Contains(t, err.Error(), "denominator")
}

func Test_EncodePacked(t *testing.T) {
	amount, err := EncodePackedAmount(big.NewInt(1000000000000))
	require.NoError(t, err)
	assert.Equal(t, "4a817c8002", hex.EncodeToString(amount))

	fee, err := EncodePackedFee(big.NewInt(1000000))
	require.NoError(t, err)
	assert.Equal(t, "7d03", hex.EncodeToString(fee))

	_, err = EncodePackedFee(big.NewInt(2049))
	assert.True(t, errors.Is(err, packing.ErrNotPackable))
}
