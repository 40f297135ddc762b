// Package signer derives L2 signing keys and signs canonical transaction
// messages through a zkCrypto capability.
package signer

import (
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Layr-Labs/zksync-signer-go/pkg/config"
	"github.com/Layr-Labs/zksync-signer-go/pkg/encoder"
	"github.com/Layr-Labs/zksync-signer-go/pkg/types"
	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto"
)

// SignedTransaction is the hand-off tuple for a submitter
type SignedTransaction struct {
	Tx        types.Transaction
	Message   types.EncodedMessage
	Signature *types.TxSignature
	TxHash    string
}

// ZkSigner is immutable after construction and safe for concurrent use
type ZkSigner struct {
	privateKey []byte
	publicKey  [zkCrypto.PublicKeyLength]byte
	pubKeyHash types.PubKeyHash
	crypto     zkCrypto.IZkCrypto
	encoder    *encoder.Encoder
	logger     *zap.Logger
}

func NewZkSigner(privateKey []byte, zc zkCrypto.IZkCrypto, logger *zap.Logger) (*ZkSigner, error) {
	if zc == nil {
		return nil, errors.Wrap(zkCrypto.ErrSigningUnavailable, "no crypto capability configured")
	}
	if err := zkCrypto.CheckPrivateKey(privateKey); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pub, err := zc.PublicKey(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive public key")
	}
	if pub == ([zkCrypto.PublicKeyLength]byte{}) {
		return nil, errors.Wrap(zkCrypto.ErrSigningUnavailable, "derived public key is zero")
	}
	hash, err := zc.PubKeyHash(pub)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash public key")
	}

	key := make([]byte, len(privateKey))
	copy(key, privateKey)
	s := &ZkSigner{
		privateKey: key,
		publicKey:  pub,
		pubKeyHash: types.PubKeyHash(hash),
		crypto:     zc,
		encoder:    encoder.NewEncoder(zc),
		logger:     logger,
	}
	logger.Sugar().Debugw("Created zk signer", "pubKeyHash", s.pubKeyHash.String())
	return s, nil
}

// NewZkSignerFromSeed derives the private key from seed first
func NewZkSignerFromSeed(seed []byte, zc zkCrypto.IZkCrypto, logger *zap.Logger) (*ZkSigner, error) {
	pk, err := PrivateKeyFromSeed(seed)
	if err != nil {
		return nil, err
	}
	return NewZkSigner(pk, zc, logger)
}

// NewZkSignerFromEthereumKey derives the L2 key an Ethereum account owns on chainId
func NewZkSignerFromEthereumKey(hexKey string, chainId config.ChainId, zc zkCrypto.IZkCrypto, logger *zap.Logger) (*ZkSigner, error) {
	if !chainId.IsSupported() {
		return nil, errors.Errorf("unsupported chain %s. Supported: %s", chainId, config.GetSupportedChainIDsString())
	}
	ethKey, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse ethereum private key")
	}
	seed, err := DeriveSeed(ethKey, chainId)
	if err != nil {
		return nil, err
	}
	return NewZkSignerFromSeed(seed, zc, logger)
}

func (s *ZkSigner) PublicKey() [zkCrypto.PublicKeyLength]byte {
	return s.publicKey
}

func (s *ZkSigner) PubKeyHash() types.PubKeyHash {
	return s.pubKeyHash
}

// Encoder returns the encoder this signer uses, which can encode swaps
func (s *ZkSigner) Encoder() *encoder.Encoder {
	return s.encoder
}

// SignMessage signs an already encoded message
func (s *ZkSigner) SignMessage(msg types.EncodedMessage) (*types.TxSignature, error) {
	if len(msg) == 0 {
		return nil, errors.New("cannot sign an empty message")
	}
	sig, err := s.crypto.Sign(s.privateKey, msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign message")
	}
	if sig == ([zkCrypto.SignatureLength]byte{}) {
		return nil, errors.Wrap(zkCrypto.ErrSigningUnavailable, "signature is zero")
	}
	return &types.TxSignature{PubKey: s.publicKey, Signature: sig}, nil
}

// SignTransaction encodes then signs tx
func (s *ZkSigner) SignTransaction(tx types.Transaction) (*SignedTransaction, error) {
	msg, err := s.encoder.Encode(tx)
	if err != nil {
		return nil, err
	}
	sig, err := s.SignMessage(msg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sign %s", tx.TxType())
	}
	txHash := encoder.TxHash(msg)
	s.logger.Debug("Signed transaction",
		zap.String("txType", tx.TxType().String()),
		zap.String("txHash", txHash),
	)
	return &SignedTransaction{Tx: tx, Message: msg, Signature: sig, TxHash: txHash}, nil
}

// SignOrder returns a copy of order carrying its signature, ready to be
// embedded in a Swap
func (s *ZkSigner) SignOrder(order *types.Order) (*types.Order, error) {
	signed, err := s.SignTransaction(order)
	if err != nil {
		return nil, err
	}
	out := *order
	out.Signature = signed.Signature
	return &out, nil
}

// Verify checks sig against msg with the capability this signer was built on
func (s *ZkSigner) Verify(msg types.EncodedMessage, sig *types.TxSignature) (bool, error) {
	if sig == nil {
		return false, errors.New("signature is nil")
	}
	return s.crypto.Verify(msg, sig.PubKey, sig.Signature)
}
