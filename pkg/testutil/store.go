package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/zksync-signer-go/pkg/persistence"
	"github.com/Layr-Labs/zksync-signer-go/pkg/types"
)

// RunSignedTxStoreTests checks the ISignedTxStore contract against a backend.
// newStore must return an empty, open store for every call.
func RunSignedTxStoreTests(t *testing.T, newStore func(t *testing.T) persistence.ISignedTxStore) {
	s := NewTestSigner(t)
	base := time.Unix(1700000000, 0)

	t.Run("SaveAndLoad", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		record := CreateTestRecord(t, s, 1, base)
		require.NoError(t, store.SaveSignedTx(record))

		loaded, err := store.LoadSignedTx(record.TxHash)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, record.TxHash, loaded.TxHash)
		assert.Equal(t, record.Message, loaded.Message)
		assert.Equal(t, record.Signature, loaded.Signature)
		assert.Equal(t, record.PubKey, loaded.PubKey)
		assert.Equal(t, record.CreatedAt, loaded.CreatedAt)
		assert.JSONEq(t, string(record.Tx), string(loaded.Tx))

		tx, err := loaded.Transaction()
		require.NoError(t, err)
		transfer, ok := tx.(*types.Transfer)
		require.True(t, ok)
		assert.Equal(t, uint32(1), transfer.Nonce)
	})

	t.Run("LoadMissing", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		loaded, err := store.LoadSignedTx("sync-tx:missing")
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		record := CreateTestRecord(t, s, 2, base)
		require.NoError(t, store.SaveSignedTx(record))
		record.CreatedAt = base.Add(time.Hour).Unix()
		require.NoError(t, store.SaveSignedTx(record))

		loaded, err := store.LoadSignedTx(record.TxHash)
		require.NoError(t, err)
		assert.Equal(t, record.CreatedAt, loaded.CreatedAt)

		all, err := store.ListSignedTxs()
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("SaveRejectsInvalid", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		assert.Error(t, store.SaveSignedTx(nil))
		assert.Error(t, store.SaveSignedTx(&persistence.SignedTxRecord{Tx: []byte(`{}`)}))
	})

	t.Run("ListSorted", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		empty, err := store.ListSignedTxs()
		require.NoError(t, err)
		assert.Empty(t, empty)

		// saved out of order
		for _, nonce := range []uint32{5, 3, 4} {
			require.NoError(t, store.SaveSignedTx(CreateTestRecord(t, s, nonce, base.Add(time.Duration(nonce)*time.Second))))
		}
		all, err := store.ListSignedTxs()
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].CreatedAt, all[i].CreatedAt)
		}
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		record := CreateTestRecord(t, s, 6, base)
		require.NoError(t, store.SaveSignedTx(record))
		require.NoError(t, store.DeleteSignedTx(record.TxHash))
		require.NoError(t, store.DeleteSignedTx(record.TxHash))

		loaded, err := store.LoadSignedTx(record.TxHash)
		require.NoError(t, err)
		assert.Nil(t, loaded)

		all, err := store.ListSignedTxs()
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("LoadedRecordIsACopy", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		record := CreateTestRecord(t, s, 7, base)
		require.NoError(t, store.SaveSignedTx(record))
		record.Signature = "mutated"

		loaded, err := store.LoadSignedTx(record.TxHash)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", loaded.Signature)
		loaded.Message = "mutated"

		again, err := store.LoadSignedTx(record.TxHash)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.Message)
	})

	t.Run("Concurrent", func(t *testing.T) {
		store := newStore(t)
		defer func() { _ = store.Close() }()

		records := make([]*persistence.SignedTxRecord, 10)
		for i := range records {
			records[i] = CreateTestRecord(t, s, uint32(100+i), base.Add(time.Duration(i)*time.Second))
		}

		var wg sync.WaitGroup
		errs := make(chan error, len(records)*2)
		for _, r := range records {
			wg.Add(1)
			go func(r *persistence.SignedTxRecord) {
				defer wg.Done()
				if err := store.SaveSignedTx(r); err != nil {
					errs <- err
					return
				}
				loaded, err := store.LoadSignedTx(r.TxHash)
				if err != nil {
					errs <- err
					return
				}
				if loaded == nil {
					errs <- fmt.Errorf("record %s not found after save", r.TxHash)
				}
			}(r)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		all, err := store.ListSignedTxs()
		require.NoError(t, err)
		assert.Len(t, all, len(records))
	})

	t.Run("CloseIsIdempotent", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.HealthCheck())
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())

		assert.Error(t, store.HealthCheck())
		assert.Error(t, store.SaveSignedTx(CreateTestRecord(t, s, 8, base)))
		_, err := store.LoadSignedTx("sync-tx:any")
		assert.Error(t, err)
		_, err = store.ListSignedTxs()
		assert.Error(t, err)
		assert.Error(t, store.DeleteSignedTx("sync-tx:any"))
	})
}
