package seatoken

import (
	"fmt"
	"math/big"

	"github.com/NilFoundation/seatoken/internal/chain"
	"github.com/NilFoundation/seatoken/internal/ledger"
	"github.com/holiman/uint256"
)

func single[T any](res []any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if len(res) != 1 {
		return zero, fmt.Errorf("expected a single result, got %d", len(res))
	}
	v, ok := res[0].(T)
	if !ok {
		return zero, fmt.Errorf("unexpected result type %T", res[0])
	}
	return v, nil
}

func field[T any](e chain.Event, name string) (T, error) {
	v, ok := e.Fields[name].(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: field %s has unexpected type %T", e.Name, name, e.Fields[name])
	}
	return v, nil
}

// Cost returns the price of n tokens, failing if the contract's multiplication would overflow.
func Cost(n, price *big.Int) (*big.Int, error) {
	n256, overflow := uint256.FromBig(n)
	if overflow || n.Sign() < 0 {
		return nil, fmt.Errorf("%w: token count %s", ledger.ErrOverflow, n)
	}
	price256, overflow := uint256.FromBig(price)
	if overflow || price.Sign() < 0 {
		return nil, fmt.Errorf("%w: price %s", ledger.ErrOverflow, price)
	}
	res, err := ledger.Cost(n256, price256)
	if err != nil {
		return nil, err
	}
	return res.ToBig(), nil
}
