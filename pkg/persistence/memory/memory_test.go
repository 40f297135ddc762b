package memory

import (
	"testing"

	"github.com/Layr-Labs/zksync-signer-go/pkg/persistence"
	"github.com/Layr-Labs/zksync-signer-go/pkg/testutil"
)

func TestMemoryStore(t *testing.T) {
	testutil.RunSignedTxStoreTests(t, func(t *testing.T) persistence.ISignedTxStore {
		return NewMemoryStore()
	})
}
