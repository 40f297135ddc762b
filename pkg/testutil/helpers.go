package testutil

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/zksync-signer-go/pkg/config"
	"github.com/Layr-Labs/zksync-signer-go/pkg/logger"
	"github.com/Layr-Labs/zksync-signer-go/pkg/persistence"
	"github.com/Layr-Labs/zksync-signer-go/pkg/signer"
	"github.com/Layr-Labs/zksync-signer-go/pkg/types"
	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto/fakeZkCrypto"
)

// TestEthereumKey is the sequential 0x00..0x1f key the protocol vectors use
const TestEthereumKey = "0x000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

const (
	TestAccountAddress = "0xedE35562d3555e61120a151B3c8e8e91d83a378a"
	TestTargetAddress  = "0x19aa2ed8712072e918632259780e587698ef58df"
)

// NewTestSigner builds a mainnet signer on the fake crypto capability
func NewTestSigner(t *testing.T) *signer.ZkSigner {
	t.Helper()
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	require.NoError(t, err)
	s, err := signer.NewZkSignerFromEthereumKey(TestEthereumKey, config.ChainId_Mainnet, fakeZkCrypto.NewFakeZkCrypto(), l)
	require.NoError(t, err)
	return s
}

// CreateTestTransfer returns the vector Transfer with the given nonce
func CreateTestTransfer(nonce uint32) *types.Transfer {
	return &types.Transfer{
		AccountId:  44,
		From:       TestAccountAddress,
		To:         TestTargetAddress,
		Token:      types.Eth(),
		Amount:     new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil),
		Fee:        big.NewInt(1000000),
		Nonce:      nonce,
		ValidUntil: types.DefaultValidUntil,
	}
}

// CreateTestRecord signs a Transfer with the given nonce and wraps it for the outbox
func CreateTestRecord(t *testing.T, s *signer.ZkSigner, nonce uint32, createdAt time.Time) *persistence.SignedTxRecord {
	t.Helper()
	signed, err := s.SignTransaction(CreateTestTransfer(nonce))
	require.NoError(t, err)
	record, err := persistence.NewSignedTxRecord(signed.Tx, signed.Message, signed.Signature, signed.TxHash, createdAt)
	require.NoError(t, err)
	return record
}
