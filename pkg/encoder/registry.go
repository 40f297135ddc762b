package encoder

import (
	"math/big"

	"github.com/Layr-Labs/zksync-signer-go/pkg/encoding"
	"github.com/Layr-Labs/zksync-signer-go/pkg/types"
)

// field is one named entry of a variant schema
type field[T types.Transaction] struct {
	name   string
	encode func(e *Encoder, tx T) ([]byte, error)
}

type schema[T types.Transaction] []field[T]

func opcode[T types.Transaction](t types.TxType) field[T] {
	return field[T]{name: "type", encode: func(*Encoder, T) ([]byte, error) {
		return []byte{byte(t)}, nil
	}}
}

func version[T types.Transaction]() field[T] {
	return field[T]{name: "version", encode: func(*Encoder, T) ([]byte, error) {
		return []byte{types.TransactionVersion}, nil
	}}
}

func u32[T types.Transaction](name string, get func(T) uint32) field[T] {
	return field[T]{name: name, encode: func(_ *Encoder, tx T) ([]byte, error) {
		return encoding.EncodeUint32(get(tx)), nil
	}}
}

func timestamp[T types.Transaction](name string, get func(T) uint64) field[T] {
	return field[T]{name: name, encode: func(_ *Encoder, tx T) ([]byte, error) {
		return encoding.EncodeTimestamp(get(tx)), nil
	}}
}

func address[T types.Transaction](name string, get func(T) string) field[T] {
	return field[T]{name: name, encode: func(_ *Encoder, tx T) ([]byte, error) {
		return encoding.EncodeAddress(get(tx))
	}}
}

func pubKeyHash[T types.Transaction](name string, get func(T) string) field[T] {
	return field[T]{name: name, encode: func(_ *Encoder, tx T) ([]byte, error) {
		return encoding.EncodePubKeyHash(get(tx))
	}}
}

func contentHash[T types.Transaction](name string, get func(T) string) field[T] {
	return field[T]{name: name, encode: func(_ *Encoder, tx T) ([]byte, error) {
		return encoding.EncodeContentHash(get(tx))
	}}
}

func token[T types.Transaction](name string, get func(T) types.Token) field[T] {
	return field[T]{name: name, encode: func(_ *Encoder, tx T) ([]byte, error) {
		return encoding.EncodeTokenId(get(tx).Id), nil
	}}
}

func packedAmount[T types.Transaction](name string, get func(T) *big.Int) field[T] {
	return field[T]{name: name, encode: func(_ *Encoder, tx T) ([]byte, error) {
		return encoding.EncodePackedAmount(get(tx))
	}}
}

func packedFee[T types.Transaction](name string, get func(T) *big.Int) field[T] {
	return field[T]{name: name, encode: func(_ *Encoder, tx T) ([]byte, error) {
		return encoding.EncodePackedFee(get(tx))
	}}
}

func fullAmount[T types.Transaction](name string, get func(T) *big.Int) field[T] {
	return field[T]{name: name, encode: func(_ *Encoder, tx T) ([]byte, error) {
		return encoding.EncodeAmount(get(tx))
	}}
}

func ratio[T types.Transaction](name string, get func(T) types.Ratio) field[T] {
	return field[T]{name: name, encode: func(_ *Encoder, tx T) ([]byte, error) {
		r := get(tx)
		return encoding.EncodeRatio(r.Numerator, r.Denominator)
	}}
}

// Field order below is the wire format and must never change.

var transferSchema = schema[*types.Transfer]{
	opcode[*types.Transfer](types.TxType_Transfer),
	version[*types.Transfer](),
	u32("accountId", func(tx *types.Transfer) uint32 { return tx.AccountId }),
	address("from", func(tx *types.Transfer) string { return tx.From }),
	address("to", func(tx *types.Transfer) string { return tx.To }),
	token("token", func(tx *types.Transfer) types.Token { return tx.Token }),
	packedAmount("amount", func(tx *types.Transfer) *big.Int { return tx.Amount }),
	packedFee("fee", func(tx *types.Transfer) *big.Int { return tx.Fee }),
	u32("nonce", func(tx *types.Transfer) uint32 { return tx.Nonce }),
	timestamp("validFrom", func(tx *types.Transfer) uint64 { return tx.ValidFrom }),
	timestamp("validUntil", func(tx *types.Transfer) uint64 { return tx.ValidUntil }),
}

var withdrawSchema = schema[*types.Withdraw]{
	opcode[*types.Withdraw](types.TxType_Withdraw),
	version[*types.Withdraw](),
	u32("accountId", func(tx *types.Withdraw) uint32 { return tx.AccountId }),
	address("from", func(tx *types.Withdraw) string { return tx.From }),
	address("to", func(tx *types.Withdraw) string { return tx.To }),
	token("token", func(tx *types.Withdraw) types.Token { return tx.Token }),
	fullAmount("amount", func(tx *types.Withdraw) *big.Int { return tx.Amount }),
	packedFee("fee", func(tx *types.Withdraw) *big.Int { return tx.Fee }),
	u32("nonce", func(tx *types.Withdraw) uint32 { return tx.Nonce }),
	timestamp("validFrom", func(tx *types.Withdraw) uint64 { return tx.ValidFrom }),
	timestamp("validUntil", func(tx *types.Withdraw) uint64 { return tx.ValidUntil }),
}

var forcedExitSchema = schema[*types.ForcedExit]{
	opcode[*types.ForcedExit](types.TxType_ForcedExit),
	version[*types.ForcedExit](),
	u32("initiatorAccountId", func(tx *types.ForcedExit) uint32 { return tx.InitiatorAccountId }),
	address("target", func(tx *types.ForcedExit) string { return tx.Target }),
	token("token", func(tx *types.ForcedExit) types.Token { return tx.Token }),
	packedFee("fee", func(tx *types.ForcedExit) *big.Int { return tx.Fee }),
	u32("nonce", func(tx *types.ForcedExit) uint32 { return tx.Nonce }),
	timestamp("validFrom", func(tx *types.ForcedExit) uint64 { return tx.ValidFrom }),
	timestamp("validUntil", func(tx *types.ForcedExit) uint64 { return tx.ValidUntil }),
}

// MintNFT carries no validity window
var mintNFTSchema = schema[*types.MintNFT]{
	opcode[*types.MintNFT](types.TxType_MintNFT),
	version[*types.MintNFT](),
	u32("creatorId", func(tx *types.MintNFT) uint32 { return tx.CreatorId }),
	address("creatorAddress", func(tx *types.MintNFT) string { return tx.CreatorAddress }),
	contentHash("contentHash", func(tx *types.MintNFT) string { return tx.ContentHash }),
	address("recipient", func(tx *types.MintNFT) string { return tx.Recipient }),
	token("feeToken", func(tx *types.MintNFT) types.Token { return tx.FeeToken }),
	packedFee("fee", func(tx *types.MintNFT) *big.Int { return tx.Fee }),
	u32("nonce", func(tx *types.MintNFT) uint32 { return tx.Nonce }),
}

var withdrawNFTSchema = schema[*types.WithdrawNFT]{
	opcode[*types.WithdrawNFT](types.TxType_WithdrawNFT),
	version[*types.WithdrawNFT](),
	u32("accountId", func(tx *types.WithdrawNFT) uint32 { return tx.AccountId }),
	address("from", func(tx *types.WithdrawNFT) string { return tx.From }),
	address("to", func(tx *types.WithdrawNFT) string { return tx.To }),
	u32("tokenId", func(tx *types.WithdrawNFT) uint32 { return tx.TokenId }),
	token("feeToken", func(tx *types.WithdrawNFT) types.Token { return tx.FeeToken }),
	packedFee("fee", func(tx *types.WithdrawNFT) *big.Int { return tx.Fee }),
	u32("nonce", func(tx *types.WithdrawNFT) uint32 { return tx.Nonce }),
	timestamp("validFrom", func(tx *types.WithdrawNFT) uint64 { return tx.ValidFrom }),
	timestamp("validUntil", func(tx *types.WithdrawNFT) uint64 { return tx.ValidUntil }),
}

// the ratio sits between the token ids and the packed amount
var orderSchema = schema[*types.Order]{
	opcode[*types.Order](types.TxType_Order),
	version[*types.Order](),
	u32("accountId", func(tx *types.Order) uint32 { return tx.AccountId }),
	address("recipient", func(tx *types.Order) string { return tx.Recipient }),
	u32("nonce", func(tx *types.Order) uint32 { return tx.Nonce }),
	token("tokenSell", func(tx *types.Order) types.Token { return tx.TokenSell }),
	token("tokenBuy", func(tx *types.Order) types.Token { return tx.TokenBuy }),
	ratio("ratio", func(tx *types.Order) types.Ratio { return tx.Ratio }),
	packedAmount("amount", func(tx *types.Order) *big.Int { return tx.Amount }),
	timestamp("validFrom", func(tx *types.Order) uint64 { return tx.ValidFrom }),
	timestamp("validUntil", func(tx *types.Order) uint64 { return tx.ValidUntil }),
}

var swapSchema = schema[*types.Swap]{
	opcode[*types.Swap](types.TxType_Swap),
	version[*types.Swap](),
	u32("submitterId", func(tx *types.Swap) uint32 { return tx.SubmitterId }),
	address("submitterAddress", func(tx *types.Swap) string { return tx.SubmitterAddress }),
	u32("nonce", func(tx *types.Swap) uint32 { return tx.Nonce }),
	{name: "orders", encode: func(e *Encoder, tx *types.Swap) ([]byte, error) {
		return e.ordersCommitment(tx.Orders)
	}},
	token("feeToken", func(tx *types.Swap) types.Token { return tx.FeeToken }),
	packedFee("fee", func(tx *types.Swap) *big.Int { return tx.Fee }),
	packedAmount("amounts[0]", func(tx *types.Swap) *big.Int { return tx.Amounts[0] }),
	packedAmount("amounts[1]", func(tx *types.Swap) *big.Int { return tx.Amounts[1] }),
}

var changePubKeySchema = schema[*types.ChangePubKey]{
	opcode[*types.ChangePubKey](types.TxType_ChangePubKey),
	version[*types.ChangePubKey](),
	u32("accountId", func(tx *types.ChangePubKey) uint32 { return tx.AccountId }),
	address("account", func(tx *types.ChangePubKey) string { return tx.Account }),
	pubKeyHash("newPkHash", func(tx *types.ChangePubKey) string { return tx.NewPkHash }),
	token("feeToken", func(tx *types.ChangePubKey) types.Token { return tx.FeeToken }),
	packedFee("fee", func(tx *types.ChangePubKey) *big.Int { return tx.Fee }),
	u32("nonce", func(tx *types.ChangePubKey) uint32 { return tx.Nonce }),
	timestamp("validFrom", func(tx *types.ChangePubKey) uint64 { return tx.ValidFrom }),
	timestamp("validUntil", func(tx *types.ChangePubKey) uint64 { return tx.ValidUntil }),
}

// FieldNames lists the declared field order of a variant
func FieldNames(t types.TxType) []string {
	switch t {
	case types.TxType_Transfer:
		return transferSchema.names()
	case types.TxType_Withdraw:
		return withdrawSchema.names()
	case types.TxType_ForcedExit:
		return forcedExitSchema.names()
	case types.TxType_MintNFT:
		return mintNFTSchema.names()
	case types.TxType_WithdrawNFT:
		return withdrawNFTSchema.names()
	case types.TxType_Order:
		return orderSchema.names()
	case types.TxType_Swap:
		return swapSchema.names()
	case types.TxType_ChangePubKey:
		return changePubKeySchema.names()
	default:
		return nil
	}
}

func (s schema[T]) names() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.name
	}
	return out
}
