//go:build cgo && zkscrypto

package signer

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Layr-Labs/zksync-signer-go/pkg/config"
	"github.com/Layr-Labs/zksync-signer-go/pkg/types"
	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto/nativeZkCrypto"
)

func Test_NativeGoldenSignature(t *testing.T) {
	native, err := nativeZkCrypto.NewNativeZkCrypto(zap.NewNop())
	require.NoError(t, err)

	s, err := NewZkSignerFromEthereumKey(testEthKey, config.ChainId_Mainnet, native, zap.NewNop())
	require.NoError(t, err)
	pub := s.PublicKey()
	assert.Equal(t, "40771354dc314593e071eaf4d0f42ccb1fad6c7006c57464feeb7ab5872b7490", hex.EncodeToString(pub[:]))

	signed, err := s.SignTransaction(testTransfer())
	require.NoError(t, err)
	assert.Equal(t,
		"b3211c7e15d31d64619e0c7f65fce8c6e45637b5cfc8711478c5a151e6568d875ec7f48e040225fe3cc7f1e7294625cad6d98b4595d007d36ef62122de16ae01",
		signed.Signature.SignatureHex())

	ok, err := s.Verify(signed.Message, signed.Signature)
	require.NoError(t, err)
	assert.True(t, ok)
}

func Test_NativeSwapEncoding(t *testing.T) {
	native, err := nativeZkCrypto.NewNativeZkCrypto(zap.NewNop())
	require.NoError(t, err)
	s, err := NewZkSignerFromEthereumKey(testEthKey, config.ChainId_Mainnet, native, zap.NewNop())
	require.NoError(t, err)

	order := func(accountId, nonce, sell, buy uint32, ratio types.Ratio, amount int64, recipient string) *types.Order {
		return &types.Order{
			AccountId: accountId, Recipient: recipient, Nonce: nonce,
			TokenSell: types.Token{Id: sell}, TokenBuy: types.Token{Id: buy},
			Ratio: ratio, Amount: big.NewInt(amount), ValidUntil: types.DefaultValidUntil,
		}
	}
	msg, err := s.Encoder().Encode(&types.Swap{
		Orders: [2]*types.Order{
			order(6, 18, 1, 2, types.MustNewRatio(1, 2), 1000000, "0x823b6a996cea19e0c41e250b20e2e804ea72ccdf"),
			order(44, 101, 2, 1, types.MustNewRatio(3, 1), 2500000, "0x63adbb48d1bc2cf54562910ce54b7ca06b87f319"),
		},
		Nonce:            1,
		Amounts:          [2]*big.Int{big.NewInt(1000000), big.NewInt(2500000)},
		SubmitterId:      5,
		SubmitterAddress: "0xedE35562d3555e61120a151B3c8e8e91d83a378a",
		FeeToken:         types.Token{Id: 3},
		Fee:              big.NewInt(123),
	})
	require.NoError(t, err)
	assert.Equal(t,
		"f40100000005ede35562d3555e61120a151b3c8e8e91d83a378a000000017b1e76f6f124bae1917435a02cfbf5571d79ddb8380bc4bf4858c9e9969487000000030f600001e848000004c4b400",
		msg.Hex())
}
