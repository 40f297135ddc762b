package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

type txSignatureJSON struct {
	PubKey    string `json:"pubKey"`
	Signature string `json:"signature"`
}

func (s TxSignature) MarshalJSON() ([]byte, error) {
	return json.Marshal(txSignatureJSON{PubKey: s.PubKeyHex(), Signature: s.SignatureHex()})
}

func (s *TxSignature) UnmarshalJSON(data []byte) error {
	var raw txSignatureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := decodeFixedHex(raw.PubKey, s.PubKey[:]); err != nil {
		return fmt.Errorf("invalid pubKey: %w", err)
	}
	if err := decodeFixedHex(raw.Signature, s.Signature[:]); err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}
	return nil
}

func decodeFixedHex(s string, dst []byte) error {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 2*len(dst) {
		return fmt.Errorf("expected %d hex digits, got %d", 2*len(dst), len(s))
	}
	_, err := hex.Decode(dst, []byte(s))
	return err
}

// transactionEnvelope tags a transaction with its variant name
type transactionEnvelope struct {
	Type string          `json:"type"`
	Tx   json.RawMessage `json:"tx"`
}

// MarshalTransaction renders tx as {"type": "<Variant>", "tx": {...}}
func MarshalTransaction(tx Transaction) ([]byte, error) {
	if tx == nil {
		return nil, fmt.Errorf("cannot marshal nil transaction")
	}
	body, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", tx.TxType(), err)
	}
	return json.Marshal(transactionEnvelope{Type: tx.TxType().String(), Tx: body})
}

// UnmarshalTransaction is the inverse of MarshalTransaction
func UnmarshalTransaction(data []byte) (Transaction, error) {
	var env transactionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction envelope: %w", err)
	}
	txType, err := ParseTxType(env.Type)
	if err != nil {
		return nil, err
	}
	if len(env.Tx) == 0 {
		return nil, fmt.Errorf("transaction envelope for %s has no body", txType)
	}

	var tx Transaction
	switch txType {
	case TxType_Transfer:
		tx = &Transfer{}
	case TxType_Withdraw:
		tx = &Withdraw{}
	case TxType_ForcedExit:
		tx = &ForcedExit{}
	case TxType_MintNFT:
		tx = &MintNFT{}
	case TxType_WithdrawNFT:
		tx = &WithdrawNFT{}
	case TxType_Order:
		tx = &Order{}
	case TxType_Swap:
		tx = &Swap{}
	case TxType_ChangePubKey:
		tx = &ChangePubKey{}
	default:
		return nil, fmt.Errorf("unsupported transaction type %s", txType)
	}
	if err := json.Unmarshal(env.Tx, tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", txType, err)
	}
	return tx, nil
}
