package persistence

import (
	"encoding/json"
	"fmt"
)

// MarshalSignedTxRecord serializes a record to JSON bytes
func MarshalSignedTxRecord(r *SignedTxRecord) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("cannot marshal nil SignedTxRecord")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal SignedTxRecord to JSON: %w", err)
	}

	return data, nil
}

func UnmarshalSignedTxRecord(data []byte) (*SignedTxRecord, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot unmarshal empty data")
	}

	var r SignedTxRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to SignedTxRecord: %w", err)
	}

	return &r, nil
}
