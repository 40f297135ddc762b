package types

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
)

// TxType is the leading opcode byte of an encoded transaction message
type TxType uint8

// Opcodes are fixed by the protocol
const (
	TxType_Order        TxType = 0x6f
	TxType_Swap         TxType = 0xf4
	TxType_WithdrawNFT  TxType = 0xf5
	TxType_MintNFT      TxType = 0xf6
	TxType_ForcedExit   TxType = 0xf7
	TxType_ChangePubKey TxType = 0xf8
	TxType_Transfer     TxType = 0xfa
	TxType_Withdraw     TxType = 0xfc
)

// TransactionVersion follows the opcode in every message
const TransactionVersion byte = 0x01

// DefaultValidUntil leaves a transaction valid for as long as timestamps fit in uint32
const DefaultValidUntil uint64 = math.MaxUint32

var txTypeNames = map[TxType]string{
	TxType_Order:        "Order",
	TxType_Swap:         "Swap",
	TxType_WithdrawNFT:  "WithdrawNFT",
	TxType_MintNFT:      "MintNFT",
	TxType_ForcedExit:   "ForcedExit",
	TxType_ChangePubKey: "ChangePubKey",
	TxType_Transfer:     "Transfer",
	TxType_Withdraw:     "Withdraw",
}

func (t TxType) String() string {
	if name, ok := txTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TxType(0x%02x)", uint8(t))
}

// ParseTxType maps a variant name back to its opcode
func ParseTxType(name string) (TxType, error) {
	for t, n := range txTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown transaction type %q", name)
}

// Transaction is the closed set of L2 transaction variants. The unexported
// method keeps implementations inside this package.
type Transaction interface {
	TxType() TxType
	isTransaction()
}

// Transfer moves a fungible token between two L2 accounts
type Transfer struct {
	AccountId  uint32   `json:"accountId"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	Token      Token    `json:"token"`
	Amount     *big.Int `json:"amount"`
	Fee        *big.Int `json:"fee"`
	Nonce      uint32   `json:"nonce"`
	ValidFrom  uint64   `json:"validFrom"`
	ValidUntil uint64   `json:"validUntil"`
}

// Withdraw exits a fungible token to L1. The amount is carried at full width.
type Withdraw struct {
	AccountId  uint32   `json:"accountId"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	Token      Token    `json:"token"`
	Amount     *big.Int `json:"amount"`
	Fee        *big.Int `json:"fee"`
	Nonce      uint32   `json:"nonce"`
	ValidFrom  uint64   `json:"validFrom"`
	ValidUntil uint64   `json:"validUntil"`
}

// ForcedExit withdraws the whole balance of a target account that has no
// signing key set
type ForcedExit struct {
	InitiatorAccountId uint32   `json:"initiatorAccountId"`
	Target             string   `json:"target"`
	Token              Token    `json:"token"`
	Fee                *big.Int `json:"fee"`
	Nonce              uint32   `json:"nonce"`
	ValidFrom          uint64   `json:"validFrom"`
	ValidUntil         uint64   `json:"validUntil"`
}

// MintNFT has no validity window in its signed payload
type MintNFT struct {
	CreatorId      uint32   `json:"creatorId"`
	CreatorAddress string   `json:"creatorAddress"`
	ContentHash    string   `json:"contentHash"`
	Recipient      string   `json:"recipient"`
	Fee            *big.Int `json:"fee"`
	FeeToken       Token    `json:"feeToken"`
	Nonce          uint32   `json:"nonce"`
}

type WithdrawNFT struct {
	AccountId  uint32   `json:"accountId"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	TokenId    uint32   `json:"tokenId"`
	FeeToken   Token    `json:"feeToken"`
	Fee        *big.Int `json:"fee"`
	Nonce      uint32   `json:"nonce"`
	ValidFrom  uint64   `json:"validFrom"`
	ValidUntil uint64   `json:"validUntil"`
}

// Order is one independently signed side of a Swap
type Order struct {
	AccountId  uint32       `json:"accountId"`
	Recipient  string       `json:"recipient"`
	Nonce      uint32       `json:"nonce"`
	TokenSell  Token        `json:"tokenSell"`
	TokenBuy   Token        `json:"tokenBuy"`
	Ratio      Ratio        `json:"ratio"`
	Amount     *big.Int     `json:"amount"`
	ValidFrom  uint64       `json:"validFrom"`
	ValidUntil uint64       `json:"validUntil"`
	Signature  *TxSignature `json:"signature,omitempty"`
}

// Swap settles two orders. Its message binds a commitment to the orders, not
// their raw bytes.
type Swap struct {
	Orders           [2]*Order   `json:"orders"`
	Nonce            uint32      `json:"nonce"`
	Amounts          [2]*big.Int `json:"amounts"`
	SubmitterId      uint32      `json:"submitterId"`
	SubmitterAddress string      `json:"submitterAddress"`
	FeeToken         Token       `json:"feeToken"`
	Fee              *big.Int    `json:"fee"`
}

// ChangePubKey sets the L2 signing key hash of an account
type ChangePubKey struct {
	AccountId  uint32   `json:"accountId"`
	Account    string   `json:"account"`
	NewPkHash  string   `json:"newPkHash"`
	FeeToken   Token    `json:"feeToken"`
	Fee        *big.Int `json:"fee"`
	Nonce      uint32   `json:"nonce"`
	ValidFrom  uint64   `json:"validFrom"`
	ValidUntil uint64   `json:"validUntil"`
}

func (*Transfer) TxType() TxType     { return TxType_Transfer }
func (*Withdraw) TxType() TxType     { return TxType_Withdraw }
func (*ForcedExit) TxType() TxType   { return TxType_ForcedExit }
func (*MintNFT) TxType() TxType      { return TxType_MintNFT }
func (*WithdrawNFT) TxType() TxType  { return TxType_WithdrawNFT }
func (*Order) TxType() TxType        { return TxType_Order }
func (*Swap) TxType() TxType         { return TxType_Swap }
func (*ChangePubKey) TxType() TxType { return TxType_ChangePubKey }

func (*Transfer) isTransaction()     {}
func (*Withdraw) isTransaction()     {}
func (*ForcedExit) isTransaction()   {}
func (*MintNFT) isTransaction()      {}
func (*WithdrawNFT) isTransaction()  {}
func (*Order) isTransaction()        {}
func (*Swap) isTransaction()         {}
func (*ChangePubKey) isTransaction() {}

// EncodedMessage is the canonical byte message of one transaction
type EncodedMessage []byte

// Hex renders the message as lowercase hex without a prefix
func (m EncodedMessage) Hex() string {
	return hex.EncodeToString(m)
}

func (m EncodedMessage) TxType() TxType {
	if len(m) == 0 {
		return 0
	}
	return TxType(m[0])
}

const (
	PublicKeyLength = 32
	SignatureLength = 64
)

// TxSignature pairs a musig signature with the packed public key that verifies it
type TxSignature struct {
	PubKey    [PublicKeyLength]byte
	Signature [SignatureLength]byte
}

func (s *TxSignature) PubKeyHex() string {
	return hex.EncodeToString(s.PubKey[:])
}

func (s *TxSignature) SignatureHex() string {
	return hex.EncodeToString(s.Signature[:])
}
