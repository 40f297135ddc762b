package fakeZkCrypto

import (
	"hash"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto"
)

var pubKeyDomain = []byte("zks-fake-pubkey")

// FakeZkCrypto is a deterministic stand-in for the native library, built on
// keyed blake2b. Signatures are NOT secure: anyone holding the public key can
// produce them. It exists so encoding and signing flows can be tested without
// the native dependency.
type FakeZkCrypto struct{}

var _ zkCrypto.IZkCrypto = (*FakeZkCrypto)(nil)

func NewFakeZkCrypto() *FakeZkCrypto {
	return &FakeZkCrypto{}
}

func digest(h hash.Hash, err error, parts ...[]byte) ([]byte, error) {
	if err != nil {
		return nil, errors.Wrap(zkCrypto.ErrSigningUnavailable, err.Error())
	}
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil), nil
}

func (f *FakeZkCrypto) PublicKey(privateKey []byte) ([zkCrypto.PublicKeyLength]byte, error) {
	var out [zkCrypto.PublicKeyLength]byte
	if err := zkCrypto.CheckPrivateKey(privateKey); err != nil {
		return out, err
	}
	h, err := blake2b.New256(nil)
	sum, err := digest(h, err, pubKeyDomain, privateKey)
	if err != nil {
		return out, err
	}
	copy(out[:], sum)
	return out, nil
}

func (f *FakeZkCrypto) PubKeyHash(publicKey [zkCrypto.PublicKeyLength]byte) ([zkCrypto.PubKeyHashLength]byte, error) {
	var out [zkCrypto.PubKeyHashLength]byte
	h, err := blake2b.New(zkCrypto.PubKeyHashLength, nil)
	sum, err := digest(h, err, publicKey[:])
	if err != nil {
		return out, err
	}
	copy(out[:], sum)
	return out, nil
}

func (f *FakeZkCrypto) signWithPublicKey(publicKey [zkCrypto.PublicKeyLength]byte, message []byte) ([zkCrypto.SignatureLength]byte, error) {
	var out [zkCrypto.SignatureLength]byte
	h, err := blake2b.New512(publicKey[:])
	sum, err := digest(h, err, message)
	if err != nil {
		return out, err
	}
	copy(out[:], sum)
	return out, nil
}

func (f *FakeZkCrypto) Sign(privateKey []byte, message []byte) ([zkCrypto.SignatureLength]byte, error) {
	publicKey, err := f.PublicKey(privateKey)
	if err != nil {
		return [zkCrypto.SignatureLength]byte{}, err
	}
	return f.signWithPublicKey(publicKey, message)
}

func (f *FakeZkCrypto) Verify(message []byte, publicKey [zkCrypto.PublicKeyLength]byte, signature [zkCrypto.SignatureLength]byte) (bool, error) {
	expected, err := f.signWithPublicKey(publicKey, message)
	if err != nil {
		return false, err
	}
	return expected == signature, nil
}

func (f *FakeZkCrypto) HashOrders(orders []byte) ([zkCrypto.OrdersHashLength]byte, error) {
	var out [zkCrypto.OrdersHashLength]byte
	h, err := blake2b.New(zkCrypto.OrdersHashLength, nil)
	sum, err := digest(h, err, orders)
	if err != nil {
		return out, err
	}
	copy(out[:], sum)
	return out, nil
}
