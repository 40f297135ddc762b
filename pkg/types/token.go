package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Token identifies an L2 asset. Only Id is ever encoded; Symbol, Address and
// Decimals exist for display.
type Token struct {
	Id       uint32 `json:"id"`
	Symbol   string `json:"symbol,omitempty"`
	Address  string `json:"address,omitempty"`
	Decimals uint8  `json:"decimals,omitempty"`
}

const ZeroAddress = "0x0000000000000000000000000000000000000000"

// Eth is the native token, always id 0
func Eth() Token {
	return Token{Id: 0, Symbol: "ETH", Address: ZeroAddress, Decimals: 18}
}

func (t Token) String() string {
	if t.Symbol != "" {
		return fmt.Sprintf("%s(%d)", t.Symbol, t.Id)
	}
	return fmt.Sprintf("token(%d)", t.Id)
}

// FormatAmount renders a base unit amount using the token decimals, e.g.
// 1500000000000000000 wei as "1.5".
func (t Token) FormatAmount(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	if t.Decimals == 0 {
		return amount.String()
	}
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(t.Decimals)), nil)
	whole, frac := new(big.Int).QuoRem(new(big.Int).Abs(amount), unit, new(big.Int))

	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}
	fracStr := frac.String()
	fracStr = strings.Repeat("0", int(t.Decimals)-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		fracStr = "0"
	}
	return fmt.Sprintf("%s%s.%s", sign, whole.String(), fracStr)
}

// ParseAmount converts a decimal string like "1.5" into base units
func (t Token) ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && len(frac) > int(t.Decimals) {
		return nil, fmt.Errorf("amount %s has more than %d decimals for %s", s, t.Decimals, t)
	}
	digits := whole + frac + strings.Repeat("0", int(t.Decimals)-len(frac))
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		return nil, fmt.Errorf("amount %s must be unsigned", s)
	}
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal amount %s", s)
	}
	return v, nil
}
