package types

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseAddress(t *testing.T) {
	addr, err := ParseAddress("0xedE35562d3555e61120a151B3c8e8e91d83a378a")
	require.NoError(t, err)
	assert.Equal(t, "0xede35562d3555e61120a151b3c8e8e91d83a378a", strings.ToLower(addr.Hex()))

	lower, err := ParseAddress("0xede35562d3555e61120a151b3c8e8e91d83a378a")
	require.NoError(t, err)
	assert.Equal(t, addr, lower)

	upperPrefix, err := ParseAddress("0XedE35562d3555e61120a151B3c8e8e91d83a378a")
	require.NoError(t, err)
	assert.Equal(t, addr, upperPrefix)

	invalid := []string{
		"ede35562d3555e61120a151b3c8e8e91d83a378a",
		"0xede35562d3555e61120a151b3c8e8e91d83a378",
		"0xede35562d3555e61120a151b3c8e8e91d83a378a00",
		"0xzde35562d3555e61120a151b3c8e8e91d83a378a",
		"",
	}
	for _, s := range invalid {
		_, err := ParseAddress(s)
		assert.Error(t, err, "expected %q to be rejected", s)
	}
}

func Test_ParsePubKeyHash(t *testing.T) {
	h, err := ParsePubKeyHash("sync:18e8446d7748f2de52b28345bdbc76160e6b35eb")
	require.NoError(t, err)
	assert.Equal(t, "sync:18e8446d7748f2de52b28345bdbc76160e6b35eb", h.String())

	h2, err := ParsePubKeyHash("0x18e8446d7748f2de52b28345bdbc76160e6b35eb")
	require.NoError(t, err)
	assert.Equal(t, h, h2)

	_, err = ParsePubKeyHash("18e8446d7748f2de52b28345bdbc76160e6b35eb")
	assert.Error(t, err)
	_, err = ParsePubKeyHash("sync:18e8")
	assert.Error(t, err)
}

func Test_NewRatio_Reduces(t *testing.T) {
	r, err := NewRatio(big.NewInt(2), big.NewInt(4))
	require.NoError(t, err)
	assert.Equal(t, "1/2", r.String())

	_, err = NewRatio(big.NewInt(0), big.NewInt(4))
	assert.Error(t, err)
	_, err = NewRatio(big.NewInt(1), nil)
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewRatio(1, -1) })
}

func Test_Token_Amounts(t *testing.T) {
	eth := Eth()
	assert.Equal(t, uint32(0), eth.Id)
	assert.Equal(t, "ETH(0)", eth.String())

	oneAndHalf, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, "1.5", eth.FormatAmount(oneAndHalf))
	assert.Equal(t, "0.000000000000000001", eth.FormatAmount(big.NewInt(1)))
	assert.Equal(t, "2.0", eth.FormatAmount(new(big.Int).Mul(big.NewInt(2), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))))

	parsed, err := eth.ParseAmount("1.5")
	require.NoError(t, err)
	assert.Equal(t, 0, parsed.Cmp(oneAndHalf))

	_, err = eth.ParseAmount("1.0000000000000000001")
	assert.Error(t, err)
	_, err = eth.ParseAmount("-1")
	assert.Error(t, err)
	_, err = eth.ParseAmount("abc")
	assert.Error(t, err)

	plain := Token{Id: 7}
	assert.Equal(t, "50", plain.FormatAmount(big.NewInt(50)))
	assert.Equal(t, "token(7)", plain.String())
}

func Test_TxTypeNames(t *testing.T) {
	for _, tt := range []TxType{TxType_Order, TxType_Swap, TxType_WithdrawNFT, TxType_MintNFT,
		TxType_ForcedExit, TxType_ChangePubKey, TxType_Transfer, TxType_Withdraw} {
		parsed, err := ParseTxType(tt.String())
		require.NoError(t, err)
		assert.Equal(t, tt, parsed)
	}
	assert.Equal(t, "TxType(0x01)", TxType(1).String())
	_, err := ParseTxType("Deposit")
	assert.Error(t, err)
}

func Test_TransactionJSON(t *testing.T) {
	sig := &TxSignature{}
	sig.PubKey[0] = 0x40
	sig.Signature[63] = 0x01
	order := &Order{
		AccountId:  6,
		Recipient:  "0x823b6a996cea19e0c41e250b20e2e804ea72ccdf",
		Nonce:      18,
		TokenSell:  Eth(),
		TokenBuy:   Token{Id: 2},
		Ratio:      MustNewRatio(1, 2),
		Amount:     big.NewInt(1000000),
		ValidUntil: DefaultValidUntil,
		Signature:  sig,
	}
	swap := &Swap{
		Orders:           [2]*Order{order, order},
		Nonce:            1,
		Amounts:          [2]*big.Int{big.NewInt(1000000), big.NewInt(2500000)},
		SubmitterId:      5,
		SubmitterAddress: "0xedE35562d3555e61120a151B3c8e8e91d83a378a",
		FeeToken:         Token{Id: 3},
		Fee:              big.NewInt(123),
	}

	data, err := MarshalTransaction(swap)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"Swap"`)

	decoded, err := UnmarshalTransaction(data)
	require.NoError(t, err)
	got, ok := decoded.(*Swap)
	require.True(t, ok)
	assert.Equal(t, swap.SubmitterAddress, got.SubmitterAddress)
	assert.Equal(t, 0, got.Amounts[1].Cmp(swap.Amounts[1]))
	assert.Equal(t, "1/2", got.Orders[0].Ratio.String())
	require.NotNil(t, got.Orders[1].Signature)
	assert.Equal(t, *sig, *got.Orders[1].Signature)

	_, err = UnmarshalTransaction([]byte(`{"type":"Deposit","tx":{}}`))
	assert.Error(t, err)
	_, err = UnmarshalTransaction([]byte(`{"type":"Transfer"}`))
	assert.Error(t, err)
	_, err = MarshalTransaction(nil)
	assert.Error(t, err)
}
