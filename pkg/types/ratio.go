package types

import (
	"fmt"
	"math/big"
)

// Ratio is the sell/buy price of an Order. It is kept in lowest terms so two
// orders with the same price always encode identically.
type Ratio struct {
	Numerator   *big.Int `json:"numerator"`
	Denominator *big.Int `json:"denominator"`
}

// NewRatio reduces num/den. Both parts must be positive.
func NewRatio(num, den *big.Int) (Ratio, error) {
	if num == nil || den == nil || num.Sign() <= 0 || den.Sign() <= 0 {
		return Ratio{}, fmt.Errorf("ratio %v/%v must have positive parts", num, den)
	}
	r := new(big.Rat).SetFrac(num, den)
	return Ratio{Numerator: new(big.Int).Set(r.Num()), Denominator: new(big.Int).Set(r.Denom())}, nil
}

// MustNewRatio is NewRatio for literals
func MustNewRatio(num, den int64) Ratio {
	r, err := NewRatio(big.NewInt(num), big.NewInt(den))
	if err != nil {
		panic(err)
	}
	return r
}

func (r Ratio) String() string {
	return fmt.Sprintf("%v/%v", r.Numerator, r.Denominator)
}
