//go:build cgo && zkscrypto

package nativeZkCrypto

/*
#cgo LDFLAGS: -lzks_crypto
#include <stddef.h>
#include <stdint.h>

typedef struct { uint8_t data[32]; } ZksPrivateKey;
typedef struct { uint8_t data[32]; } ZksPackedPublicKey;
typedef struct { uint8_t data[20]; } ZksPubkeyHash;
typedef struct { uint8_t data[64]; } ZksSignature;
typedef struct { uint8_t data[31]; } ZksResqueHash;

void zks_crypto_init(void);
int zks_crypto_private_key_to_public_key(const ZksPrivateKey *private_key, ZksPackedPublicKey *public_key);
int zks_crypto_public_key_to_pubkey_hash(const ZksPackedPublicKey *public_key, ZksPubkeyHash *pubkey_hash);
int zks_crypto_sign_musig(const ZksPrivateKey *private_key, const uint8_t *msg, size_t msg_len, ZksSignature *signature_output);
int zks_crypto_verify_musig(const uint8_t *msg, size_t msg_len, const ZksPackedPublicKey *public_key, const ZksSignature *signature);
void rescue_hash_orders(const uint8_t *msg, size_t msg_len, ZksResqueHash *hash);
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto"
)

// result codes shared by every zks_crypto_* call
const (
	resultOk = 0
)

var initOnce sync.Once

// NativeZkCrypto binds to the zks-crypto C library (musig over the JubJub
// curve with Rescue hashing). Build with -tags zkscrypto and the library on the
// linker path.
type NativeZkCrypto struct {
	logger *zap.Logger
}

// NewNativeZkCrypto initializes the library once per process
func NewNativeZkCrypto(logger *zap.Logger) (zkCrypto.IZkCrypto, error) {
	initOnce.Do(func() {
		C.zks_crypto_init()
	})
	logger.Sugar().Debugw("zks-crypto library initialized")
	return &NativeZkCrypto{logger: logger}, nil
}

func bytesPtr(b []byte) *C.uint8_t {
	if len(b) == 0 {
		return nil
	}
	return (*C.uint8_t)(unsafe.Pointer(&b[0]))
}

func toPrivateKey(privateKey []byte) (C.ZksPrivateKey, error) {
	var pk C.ZksPrivateKey
	if err := zkCrypto.CheckPrivateKey(privateKey); err != nil {
		return pk, err
	}
	for i, b := range privateKey {
		pk.data[i] = C.uint8_t(b)
	}
	return pk, nil
}

func toPublicKey(publicKey [zkCrypto.PublicKeyLength]byte) C.ZksPackedPublicKey {
	var pub C.ZksPackedPublicKey
	for i, b := range publicKey {
		pub.data[i] = C.uint8_t(b)
	}
	return pub
}

func (n *NativeZkCrypto) PublicKey(privateKey []byte) ([zkCrypto.PublicKeyLength]byte, error) {
	var out [zkCrypto.PublicKeyLength]byte
	pk, err := toPrivateKey(privateKey)
	if err != nil {
		return out, err
	}
	var pub C.ZksPackedPublicKey
	if res := C.zks_crypto_private_key_to_public_key(&pk, &pub); res != resultOk {
		return out, errors.Wrapf(zkCrypto.ErrSigningUnavailable, "zks_crypto_private_key_to_public_key returned %d", int(res))
	}
	copy(out[:], C.GoBytes(unsafe.Pointer(&pub.data[0]), zkCrypto.PublicKeyLength))
	return out, nil
}

func (n *NativeZkCrypto) PubKeyHash(publicKey [zkCrypto.PublicKeyLength]byte) ([zkCrypto.PubKeyHashLength]byte, error) {
	var out [zkCrypto.PubKeyHashLength]byte
	pub := toPublicKey(publicKey)
	var hash C.ZksPubkeyHash
	if res := C.zks_crypto_public_key_to_pubkey_hash(&pub, &hash); res != resultOk {
		return out, errors.Wrapf(zkCrypto.ErrSigningUnavailable, "zks_crypto_public_key_to_pubkey_hash returned %d", int(res))
	}
	copy(out[:], C.GoBytes(unsafe.Pointer(&hash.data[0]), zkCrypto.PubKeyHashLength))
	return out, nil
}

func (n *NativeZkCrypto) Sign(privateKey []byte, message []byte) ([zkCrypto.SignatureLength]byte, error) {
	var out [zkCrypto.SignatureLength]byte
	pk, err := toPrivateKey(privateKey)
	if err != nil {
		return out, err
	}
	var sig C.ZksSignature
	res := C.zks_crypto_sign_musig(&pk, bytesPtr(message), C.size_t(len(message)), &sig)
	if res != resultOk {
		return out, errors.Wrapf(zkCrypto.ErrSigningUnavailable, "zks_crypto_sign_musig returned %d", int(res))
	}
	copy(out[:], C.GoBytes(unsafe.Pointer(&sig.data[0]), zkCrypto.SignatureLength))
	return out, nil
}

func (n *NativeZkCrypto) Verify(message []byte, publicKey [zkCrypto.PublicKeyLength]byte, signature [zkCrypto.SignatureLength]byte) (bool, error) {
	pub := toPublicKey(publicKey)
	var sig C.ZksSignature
	for i, b := range signature {
		sig.data[i] = C.uint8_t(b)
	}
	res := C.zks_crypto_verify_musig(bytesPtr(message), C.size_t(len(message)), &pub, &sig)
	return res == resultOk, nil
}

func (n *NativeZkCrypto) HashOrders(orders []byte) ([zkCrypto.OrdersHashLength]byte, error) {
	var out [zkCrypto.OrdersHashLength]byte
	var hash C.ZksResqueHash
	C.rescue_hash_orders(bytesPtr(orders), C.size_t(len(orders)), &hash)
	copy(out[:], C.GoBytes(unsafe.Pointer(&hash.data[0]), zkCrypto.OrdersHashLength))
	return out, nil
}
