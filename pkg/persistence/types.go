package persistence

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Layr-Labs/zksync-signer-go/pkg/types"
)

// SignedTxRecord is the (transaction, message, signature) tuple handed to a
// submitter. Byte fields are lowercase hex without a prefix.
type SignedTxRecord struct {
	// TxHash is the L2 identifier, "sync-tx:<sha256 of message>", and the primary key
	TxHash string `json:"txHash"`

	TxType string `json:"txType"`

	// Tx is the {"type", "tx"} envelope produced by types.MarshalTransaction
	Tx json.RawMessage `json:"tx"`

	Message   string `json:"message"`
	Signature string `json:"signature"`
	PubKey    string `json:"pubKey"`

	// CreatedAt is a unix timestamp in seconds
	CreatedAt int64 `json:"createdAt"`
}

// NewSignedTxRecord captures a signed transaction for the outbox
func NewSignedTxRecord(tx types.Transaction, msg types.EncodedMessage, sig *types.TxSignature, txHash string, createdAt time.Time) (*SignedTxRecord, error) {
	if sig == nil {
		return nil, fmt.Errorf("cannot record a transaction without a signature")
	}
	body, err := types.MarshalTransaction(tx)
	if err != nil {
		return nil, err
	}
	return &SignedTxRecord{
		TxHash:    txHash,
		TxType:    tx.TxType().String(),
		Tx:        body,
		Message:   msg.Hex(),
		Signature: sig.SignatureHex(),
		PubKey:    sig.PubKeyHex(),
		CreatedAt: createdAt.Unix(),
	}, nil
}

// Transaction decodes the stored envelope
func (r *SignedTxRecord) Transaction() (types.Transaction, error) {
	return types.UnmarshalTransaction(r.Tx)
}

// Validate checks the fields every backend relies on
func (r *SignedTxRecord) Validate() error {
	if r == nil {
		return fmt.Errorf("record is nil")
	}
	if r.TxHash == "" {
		return fmt.Errorf("record has no tx hash")
	}
	if len(r.Tx) == 0 {
		return fmt.Errorf("record %s has no transaction body", r.TxHash)
	}
	return nil
}

// SortRecords orders records by CreatedAt, then TxHash
func SortRecords(records []*SignedTxRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt < records[j].CreatedAt
		}
		return records[i].TxHash < records[j].TxHash
	})
}
