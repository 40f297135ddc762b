package signer

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/Layr-Labs/zksync-signer-go/pkg/config"
	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto"
)

// MinSeedLength is the shortest seed PrivateKeyFromSeed accepts
const MinSeedLength = 32

const seedMessage = "Access zkSync account.\n\nOnly sign this message for a trusted client!"

var ErrSeedTooShort = errors.New("seed is too short")

// subgroupOrder bounds valid L2 private keys
var subgroupOrder = func() *big.Int {
	params := twistededwards.GetEdwardsCurve()
	return new(big.Int).Set(&params.Order)
}()

// SeedMessage is the text an Ethereum key signs to derive its L2 key on chainId
func SeedMessage(chainId config.ChainId) string {
	if chainId == config.ChainId_Mainnet {
		return seedMessage
	}
	return fmt.Sprintf("%s\nChain ID: %d.", seedMessage, uint(chainId))
}

// DeriveSeed personal_signs the seed message and returns the 65 byte r||s||v
// signature, v being 27 or 28.
func DeriveSeed(ethKey *ecdsa.PrivateKey, chainId config.ChainId) ([]byte, error) {
	if ethKey == nil {
		return nil, fmt.Errorf("ethereum key is nil")
	}
	sig, err := crypto.Sign(accounts.TextHash([]byte(SeedMessage(chainId))), ethKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign seed message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// PrivateKeyFromSeed hashes the seed until the digest is a valid scalar
func PrivateKeyFromSeed(seed []byte) ([]byte, error) {
	if len(seed) < MinSeedLength {
		return nil, errors.Wrapf(ErrSeedTooShort, "got %d bytes, need at least %d", len(seed), MinSeedLength)
	}
	s := sha256.Sum256(seed)
	for {
		k := sha256.Sum256(s[:])
		if new(big.Int).SetBytes(k[:]).Cmp(subgroupOrder) < 0 {
			return k[:zkCrypto.PrivateKeyLength], nil
		}
		s = k
	}
}
