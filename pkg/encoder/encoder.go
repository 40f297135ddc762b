// Package encoder turns L2 transactions into the canonical byte messages that
// are hashed and signed.
package encoder

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/Layr-Labs/zksync-signer-go/pkg/types"
	"github.com/Layr-Labs/zksync-signer-go/pkg/zkCrypto"
)

const TxHashPrefix = "sync-tx:"

var (
	ErrUnknownTransaction     = errors.New("unknown transaction type")
	ErrOrderHasherUnavailable = errors.New("swap encoding requires an order hasher")
	ErrMissingOrder           = errors.New("swap is missing an order")
)

// OrderHasher commits to the concatenated encodings of a swap's two orders.
// zkCrypto.IZkCrypto satisfies it.
type OrderHasher interface {
	HashOrders(orders []byte) ([zkCrypto.OrdersHashLength]byte, error)
}

// FieldError reports which field of which variant failed to encode
type FieldError struct {
	Tx    types.TxType
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("encode %s.%s: %v", e.Tx, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type Encoder struct {
	hasher OrderHasher
}

// NewEncoder returns an encoder. hasher may be nil, in which case every
// variant except Swap can still be encoded.
func NewEncoder(hasher OrderHasher) *Encoder {
	return &Encoder{hasher: hasher}
}

var defaultEncoder = &Encoder{}

// Encode encodes any variant that needs no order commitment
func Encode(tx types.Transaction) (types.EncodedMessage, error) {
	return defaultEncoder.Encode(tx)
}

// Encode produces the canonical message of tx. The output is a pure function
// of the transaction fields.
func (e *Encoder) Encode(tx types.Transaction) (types.EncodedMessage, error) {
	if tx == nil || (reflect.ValueOf(tx).Kind() == reflect.Pointer && reflect.ValueOf(tx).IsNil()) {
		return nil, errors.Wrapf(ErrUnknownTransaction, "nil %T", tx)
	}
	switch t := tx.(type) {
	case *types.Transfer:
		return run(e, transferSchema, t)
	case *types.Withdraw:
		return run(e, withdrawSchema, t)
	case *types.ForcedExit:
		return run(e, forcedExitSchema, t)
	case *types.MintNFT:
		return run(e, mintNFTSchema, t)
	case *types.WithdrawNFT:
		return run(e, withdrawNFTSchema, t)
	case *types.Order:
		return run(e, orderSchema, t)
	case *types.Swap:
		return run(e, swapSchema, t)
	case *types.ChangePubKey:
		return run(e, changePubKeySchema, t)
	default:
		return nil, errors.Wrapf(ErrUnknownTransaction, "%T", tx)
	}
}

func run[T types.Transaction](e *Encoder, s schema[T], tx T) (types.EncodedMessage, error) {
	out := make([]byte, 0, 128)
	for _, f := range s {
		b, err := f.encode(e, tx)
		if err != nil {
			return nil, &FieldError{Tx: tx.TxType(), Field: f.name, Err: err}
		}
		out = append(out, b...)
	}
	return out, nil
}

// ordersCommitment hashes the concatenated encodings of both orders
func (e *Encoder) ordersCommitment(orders [2]*types.Order) ([]byte, error) {
	if e.hasher == nil {
		return nil, ErrOrderHasherUnavailable
	}
	var joined []byte
	for i, o := range orders {
		if o == nil {
			return nil, errors.Wrapf(ErrMissingOrder, "orders[%d]", i)
		}
		msg, err := run(e, orderSchema, o)
		if err != nil {
			return nil, errors.Wrapf(err, "orders[%d]", i)
		}
		joined = append(joined, msg...)
	}
	h, err := e.hasher.HashOrders(joined)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash orders")
	}
	return h[:], nil
}

// TxHash is the identifier the network reports for a submitted transaction
func TxHash(msg types.EncodedMessage) string {
	sum := sha256.Sum256(msg)
	return TxHashPrefix + hex.EncodeToString(sum[:])
}
