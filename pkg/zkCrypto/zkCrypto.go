// Package zkCrypto describes the curve capability the L2 signer borrows. The
// core never performs curve arithmetic itself; implementations bind to the
// zks-crypto library or fake it for tests.
package zkCrypto

import "github.com/pkg/errors"

const (
	PrivateKeyLength = 32
	PublicKeyLength  = 32
	PubKeyHashLength = 20
	SignatureLength  = 64
	OrdersHashLength = 31
)

// ErrSigningUnavailable is returned when the capability cannot be initialized
// or was handed malformed key material
var ErrSigningUnavailable = errors.New("signing capability unavailable")

type IZkCrypto interface {
	// PublicKey derives the packed 32 byte public key of a private key
	PublicKey(privateKey []byte) ([PublicKeyLength]byte, error)

	// PubKeyHash derives the 20 byte hash registered on L2 by ChangePubKey
	PubKeyHash(publicKey [PublicKeyLength]byte) ([PubKeyHashLength]byte, error)

	// Sign produces a deterministic musig signature over message
	Sign(privateKey []byte, message []byte) ([SignatureLength]byte, error)

	// Verify checks a signature produced by Sign
	Verify(message []byte, publicKey [PublicKeyLength]byte, signature [SignatureLength]byte) (bool, error)

	// HashOrders commits to the concatenated encodings of the two orders of a swap
	HashOrders(orders []byte) ([OrdersHashLength]byte, error)
}

// CheckPrivateKey rejects key material of the wrong size
func CheckPrivateKey(privateKey []byte) error {
	if len(privateKey) != PrivateKeyLength {
		return errors.Wrapf(ErrSigningUnavailable, "private key must be %d bytes, got %d", PrivateKeyLength, len(privateKey))
	}
	return nil
}
