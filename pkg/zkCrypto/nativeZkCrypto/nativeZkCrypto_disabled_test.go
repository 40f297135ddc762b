//go:build !cgo || !zkscrypto

package nativeZkCrypto

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto"
)

func Test_NewNativeZkCrypto_Unavailable(t *testing.T) {
	c, err := NewNativeZkCrypto(zap.NewNop())
	require.Nil(t, c)
	require.True(t, errors.Is(err, zkCrypto.ErrSigningUnavailable))
}
