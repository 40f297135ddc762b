//go:build !cgo || !zkscrypto

package nativeZkCrypto

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto"
)

// NewNativeZkCrypto reports the library as unavailable when the binary was
// built without cgo or without the zkscrypto tag
func NewNativeZkCrypto(logger *zap.Logger) (zkCrypto.IZkCrypto, error) {
	logger.Sugar().Warnw("zks-crypto library not compiled in, rebuild with -tags zkscrypto")
	return nil, errors.Wrap(zkCrypto.ErrSigningUnavailable, "zks-crypto support not compiled in")
}
