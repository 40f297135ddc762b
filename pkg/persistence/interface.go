package persistence

// ISignedTxStore is the outbox signed transactions are parked in until an
// external submitter picks them up. Implementations must be safe for
// concurrent use.
type ISignedTxStore interface {
	// SaveSignedTx persists a record keyed by its tx hash.
	// Saving the same hash again overwrites the record.
	SaveSignedTx(record *SignedTxRecord) error

	// LoadSignedTx returns nil if the hash is unknown, error only on storage failure.
	LoadSignedTx(txHash string) (*SignedTxRecord, error)

	// ListSignedTxs returns every record sorted by CreatedAt, then TxHash.
	// Returns an empty slice if the outbox is empty.
	ListSignedTxs() ([]*SignedTxRecord, error)

	// DeleteSignedTx is idempotent
	DeleteSignedTx(txHash string) error

	// Close is idempotent. After Close, all other operations return errors.
	Close() error

	// HealthCheck returns nil if the store is operational
	HealthCheck() error
}
