package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	AddressLength    = 20
	PubKeyHashLength = 20

	PubKeyHashPrefix = "sync:"
)

// ParseAddress decodes a 0x prefixed, 40 hex digit address. Checksums are not
// enforced; case is ignored.
func ParseAddress(s string) (common.Address, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return common.Address{}, fmt.Errorf("address %q must be 0x prefixed", s)
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("address %q must be %d hex encoded bytes", s, AddressLength)
	}
	return common.HexToAddress(s), nil
}

// PubKeyHash is the 20 byte digest of an L2 signing key
type PubKeyHash [PubKeyHashLength]byte

func (h PubKeyHash) String() string {
	return PubKeyHashPrefix + hex.EncodeToString(h[:])
}

// ParsePubKeyHash accepts "sync:" or "0x" prefixed 40 hex digit strings
func ParsePubKeyHash(s string) (PubKeyHash, error) {
	var h PubKeyHash
	var digits string
	switch {
	case strings.HasPrefix(s, PubKeyHashPrefix):
		digits = s[len(PubKeyHashPrefix):]
	case strings.HasPrefix(s, "0x"):
		digits = s[2:]
	default:
		return h, fmt.Errorf("pubkey hash %q must be prefixed with %q or 0x", s, PubKeyHashPrefix)
	}
	if len(digits) != 2*PubKeyHashLength {
		return h, fmt.Errorf("pubkey hash %q must have %d hex digits, got %d", s, 2*PubKeyHashLength, len(digits))
	}
	if _, err := hex.Decode(h[:], []byte(digits)); err != nil {
		return h, fmt.Errorf("pubkey hash %q is not hex: %w", s, err)
	}
	return h, nil
}
