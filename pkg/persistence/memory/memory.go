package memory

import (
	"fmt"
	"sync"

	"github.com/Layr-Labs/zksync-signer-go/pkg/persistence"
)

// MemoryStore is an in-memory ISignedTxStore. Records are lost when the
// process exits; use it for tests and one-shot CLI runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*persistence.SignedTxRecord
	closed  bool
}

var _ persistence.ISignedTxStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*persistence.SignedTxRecord),
	}
}

func (m *MemoryStore) SaveSignedTx(record *persistence.SignedTxRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("cannot save SignedTxRecord: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("persistence layer is closed")
	}

	// Copy to prevent external mutation
	m.records[record.TxHash] = copyRecord(record)
	return nil
}

func (m *MemoryStore) LoadSignedTx(txHash string) (*persistence.SignedTxRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("persistence layer is closed")
	}

	record, ok := m.records[txHash]
	if !ok {
		return nil, nil
	}
	return copyRecord(record), nil
}

func (m *MemoryStore) ListSignedTxs() ([]*persistence.SignedTxRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("persistence layer is closed")
	}

	records := make([]*persistence.SignedTxRecord, 0, len(m.records))
	for _, r := range m.records {
		records = append(records, copyRecord(r))
	}
	persistence.SortRecords(records)
	return records, nil
}

func (m *MemoryStore) DeleteSignedTx(txHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("persistence layer is closed")
	}

	delete(m.records, txHash)
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryStore) HealthCheck() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return fmt.Errorf("persistence layer is closed")
	}
	return nil
}

func copyRecord(r *persistence.SignedTxRecord) *persistence.SignedTxRecord {
	out := *r
	out.Tx = append([]byte(nil), r.Tx...)
	return &out
}
