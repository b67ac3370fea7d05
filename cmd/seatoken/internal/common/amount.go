package common

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

var ErrInvalidAmount = errors.New("invalid amount")

var units = []struct {
	suffix string
	exp    int32
}{
	// longest suffixes first, "gwei" ends with "wei"
	{"ether", 18},
	{"gwei", 9},
	{"wei", 0},
}

// Amount is a native currency value in wei.
// Its text form is a decimal number with an optional unit: "0.001ether", "1e15", "1000000000gwei".
type Amount big.Int

var _ pflag.Value = (*Amount)(nil)

func NewAmount(wei *big.Int) *Amount {
	return (*Amount)(new(big.Int).Set(wei))
}

func ParseAmount(s string) (*Amount, error) {
	a := new(Amount)
	if err := a.Set(s); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Amount) Int() *big.Int {
	return new(big.Int).Set((*big.Int)(a))
}

// Ether returns the amount in ether.
func (a *Amount) Ether() decimal.Decimal {
	return decimal.NewFromBigInt((*big.Int)(a), -18)
}

func (a *Amount) String() string {
	if a == nil || (*big.Int)(a).Sign() == 0 {
		return "0"
	}
	return a.Ether().String() + "ether"
}

func (a *Amount) Set(s string) error {
	str := strings.ToLower(strings.TrimSpace(s))
	var exp int32
	for _, u := range units {
		if trimmed, ok := strings.CutSuffix(str, u.suffix); ok {
			str = strings.TrimSpace(trimmed)
			exp = u.exp
			break
		}
	}

	d, err := decimal.NewFromString(str)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidAmount, s, err)
	}
	d = d.Shift(exp)
	if !d.IsInteger() {
		return fmt.Errorf("%w %q: fractions of wei", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return fmt.Errorf("%w %q: negative", ErrInvalidAmount, s)
	}
	(*big.Int)(a).Set(d.BigInt())
	return nil
}

func (a *Amount) Type() string {
	return "amount"
}

func (a *Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	return a.Set(string(text))
}
