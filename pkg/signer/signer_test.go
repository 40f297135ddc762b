package signer

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Layr-Labs/zksync-signer-go/pkg/config"
	"github.com/Layr-Labs/zksync-signer-go/pkg/encoder"
	"github.com/Layr-Labs/zksync-signer-go/pkg/logger"
	"github.com/Layr-Labs/zksync-signer-go/pkg/types"
	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto"
	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto/fakeZkCrypto"
)

// sequential bytes 0x00..0x1f
const testEthKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func testTransfer() *types.Transfer {
	return &types.Transfer{
		AccountId:  44,
		From:       "0xedE35562d3555e61120a151B3c8e8e91d83a378a",
		To:         "0x19aa2ed8712072e918632259780e587698ef58df",
		Token:      types.Eth(),
		Amount:     new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil),
		Fee:        big.NewInt(1000000),
		Nonce:      12,
		ValidUntil: types.DefaultValidUntil,
	}
}

func newTestSigner(t *testing.T, chainId config.ChainId) *ZkSigner {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)
	s, err := NewZkSignerFromEthereumKey(testEthKey, chainId, fakeZkCrypto.NewFakeZkCrypto(), l)
	require.NoError(t, err)
	return s
}

func Test_SeedMessage(t *testing.T) {
	assert.Equal(t, "Access zkSync account.\n\nOnly sign this message for a trusted client!", SeedMessage(config.ChainId_Mainnet))
	assert.Equal(t, "Access zkSync account.\n\nOnly sign this message for a trusted client!\nChain ID: 5.", SeedMessage(config.ChainId_Goerli))
	assert.True(t, strings.HasSuffix(SeedMessage(config.ChainId_Localhost), "\nChain ID: 9."))
}

func Test_DeriveSeed(t *testing.T) {
	ethKey, err := crypto.HexToECDSA(testEthKey)
	require.NoError(t, err)

	seed, err := DeriveSeed(ethKey, config.ChainId_Mainnet)
	require.NoError(t, err)
	require.Len(t, seed, 65)
	assert.Contains(t, []byte{27, 28}, seed[64])

	again, err := DeriveSeed(ethKey, config.ChainId_Mainnet)
	require.NoError(t, err)
	assert.Equal(t, seed, again, "signing is RFC6979 deterministic")

	// the seed is a recoverable personal_sign signature by the account
	sig := append([]byte{}, seed...)
	sig[64] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash([]byte(SeedMessage(config.ChainId_Mainnet))), sig)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(ethKey.PublicKey), crypto.PubkeyToAddress(*pub))

	goerli, err := DeriveSeed(ethKey, config.ChainId_Goerli)
	require.NoError(t, err)
	assert.NotEqual(t, seed, goerli)

	_, err = DeriveSeed(nil, config.ChainId_Mainnet)
	assert.Error(t, err)
}

func Test_PrivateKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 32)
	pk, err := PrivateKeyFromSeed(seed)
	require.NoError(t, err)
	require.Len(t, pk, zkCrypto.PrivateKeyLength)
	assert.Equal(t, -1, new(big.Int).SetBytes(pk).Cmp(subgroupOrder))

	again, err := PrivateKeyFromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, pk, again)

	other, err := PrivateKeyFromSeed(bytes.Repeat([]byte{0x43}, 32))
	require.NoError(t, err)
	assert.NotEqual(t, pk, other)

	_, err = PrivateKeyFromSeed(make([]byte, 31))
	assert.True(t, errors.Is(err, ErrSeedTooShort))
}

func Test_SubgroupOrder(t *testing.T) {
	expected, ok := new(big.Int).SetString("2736030358979909402780800718157159386076813972158567259200215660948447373041", 10)
	require.True(t, ok)
	assert.Equal(t, 0, expected.Cmp(subgroupOrder))
}

func Test_ChainSeparation(t *testing.T) {
	mainnet := newTestSigner(t, config.ChainId_Mainnet)
	goerli := newTestSigner(t, config.ChainId_Goerli)
	assert.NotEqual(t, mainnet.PublicKey(), goerli.PublicKey())

	// the chain never changes the signed bytes
	a, err := mainnet.SignTransaction(testTransfer())
	require.NoError(t, err)
	b, err := goerli.SignTransaction(testTransfer())
	require.NoError(t, err)
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, a.TxHash, b.TxHash)
	assert.NotEqual(t, a.Signature.Signature, b.Signature.Signature)
}

func Test_SignTransaction(t *testing.T) {
	s := newTestSigner(t, config.ChainId_Mainnet)

	signed, err := s.SignTransaction(testTransfer())
	require.NoError(t, err)

	expected, err := encoder.Encode(testTransfer())
	require.NoError(t, err)
	assert.Equal(t, expected, signed.Message)
	assert.Equal(t, encoder.TxHash(expected), signed.TxHash)
	assert.Equal(t, s.PublicKey(), signed.Signature.PubKey)
	assert.NotEqual(t, [zkCrypto.SignatureLength]byte{}, signed.Signature.Signature)

	ok, err := s.Verify(signed.Message, signed.Signature)
	require.NoError(t, err)
	assert.True(t, ok)

	tampered := append(types.EncodedMessage{}, signed.Message...)
	tampered[len(tampered)-1] ^= 0x01
	ok, err = s.Verify(tampered, signed.Signature)
	require.NoError(t, err)
	assert.False(t, ok)

	again, err := s.SignTransaction(testTransfer())
	require.NoError(t, err)
	assert.Equal(t, signed.Signature, again.Signature)
}

func Test_SignTransactionLogsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s, err := NewZkSignerFromEthereumKey(testEthKey, config.ChainId_Mainnet, fakeZkCrypto.NewFakeZkCrypto(), zap.New(core))
	require.NoError(t, err)

	signed, err := s.SignTransaction(testTransfer())
	require.NoError(t, err)

	entries := logs.FilterMessage("Signed transaction").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Transfer", fields["txType"])
	assert.Equal(t, signed.TxHash, fields["txHash"])
	for _, v := range fields {
		assert.NotContains(t, v, testEthKey)
	}
}

func Test_SignTransactionEncodeError(t *testing.T) {
	s := newTestSigner(t, config.ChainId_Mainnet)
	tx := testTransfer()
	tx.Fee = big.NewInt(2049)
	_, err := s.SignTransaction(tx)
	var fieldErr *encoder.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "fee", fieldErr.Field)
}

func Test_SignSwap(t *testing.T) {
	s := newTestSigner(t, config.ChainId_Mainnet)
	order := &types.Order{
		AccountId:  6,
		Recipient:  "0x823b6a996cea19e0c41e250b20e2e804ea72ccdf",
		Nonce:      18,
		TokenSell:  types.Token{Id: 1},
		TokenBuy:   types.Token{Id: 2},
		Ratio:      types.MustNewRatio(1, 2),
		Amount:     big.NewInt(1000000),
		ValidUntil: types.DefaultValidUntil,
	}
	signedOrder, err := s.SignOrder(order)
	require.NoError(t, err)
	require.NotNil(t, signedOrder.Signature)
	assert.Nil(t, order.Signature)

	counter := *order
	counter.AccountId = 44
	counter.TokenSell, counter.TokenBuy = order.TokenBuy, order.TokenSell

	signed, err := s.SignTransaction(&types.Swap{
		Orders:           [2]*types.Order{signedOrder, &counter},
		Nonce:            1,
		Amounts:          [2]*big.Int{big.NewInt(1000000), big.NewInt(2500000)},
		SubmitterId:      5,
		SubmitterAddress: "0xedE35562d3555e61120a151B3c8e8e91d83a378a",
		FeeToken:         types.Token{Id: 3},
		Fee:              big.NewInt(123),
	})
	require.NoError(t, err)
	assert.Equal(t, byte(types.TxType_Swap), signed.Message[0])
}

func Test_SignMessageRejectsEmpty(t *testing.T) {
	s := newTestSigner(t, config.ChainId_Mainnet)
	_, err := s.SignMessage(nil)
	assert.Error(t, err)
	_, err = s.Verify(types.EncodedMessage{0x01}, nil)
	assert.Error(t, err)
}

type zeroCrypto struct {
	*fakeZkCrypto.FakeZkCrypto
}

func (zeroCrypto) Sign([]byte, []byte) ([zkCrypto.SignatureLength]byte, error) {
	return [zkCrypto.SignatureLength]byte{}, nil
}

func Test_ZeroSignatureIsFailure(t *testing.T) {
	s, err := NewZkSigner(bytes.Repeat([]byte{0x01}, 32), zeroCrypto{fakeZkCrypto.NewFakeZkCrypto()}, nil)
	require.NoError(t, err)
	_, err = s.SignTransaction(testTransfer())
	assert.True(t, errors.Is(err, zkCrypto.ErrSigningUnavailable))
}

func Test_NewZkSignerErrors(t *testing.T) {
	fake := fakeZkCrypto.NewFakeZkCrypto()

	_, err := NewZkSigner(bytes.Repeat([]byte{0x01}, 32), nil, nil)
	assert.True(t, errors.Is(err, zkCrypto.ErrSigningUnavailable))

	_, err = NewZkSigner([]byte{0x01}, fake, nil)
	assert.True(t, errors.Is(err, zkCrypto.ErrSigningUnavailable))

	_, err = NewZkSignerFromEthereumKey("not-a-key", config.ChainId_Mainnet, fake, nil)
	assert.Error(t, err)

	_, err = NewZkSignerFromEthereumKey(testEthKey, config.ChainId(42), fake, nil)
	assert.Error(t, err)

	withPrefix, err := NewZkSignerFromEthereumKey("0x"+testEthKey, config.ChainId_Mainnet, fake, nil)
	require.NoError(t, err)
	plain, err := NewZkSignerFromEthereumKey(testEthKey, config.ChainId_Mainnet, fake, nil)
	require.NoError(t, err)
	assert.Equal(t, plain.PublicKey(), withPrefix.PublicKey())
	assert.True(t, strings.HasPrefix(plain.PubKeyHash().String(), types.PubKeyHashPrefix))
}

func Test_ConcurrentSigning(t *testing.T) {
	s := newTestSigner(t, config.ChainId_Mainnet)
	expected, err := s.SignTransaction(testTransfer())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.SignTransaction(testTransfer())
			if err != nil {
				errs <- err
				return
			}
			if hex.EncodeToString(got.Signature.Signature[:]) != expected.Signature.SignatureHex() {
				errs <- errors.New("signature mismatch")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
