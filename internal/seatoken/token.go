package seatoken

import (
	"context"
	"math/big"

	"github.com/NilFoundation/seatoken/internal/chain"
	"github.com/ethereum/go-ethereum/common"
)

// Token is a deployed SeaToken.
type Token struct {
	*chain.Contract
}

// DeployToken deploys the token, minting supply to opts.From.
func DeployToken(
	ctx context.Context, sim *chain.Chain, artifacts *Artifacts, opts chain.TxOpts, supply *big.Int,
) (*Token, *chain.Receipt, error) {
	contract, receipt, err := sim.Deploy(ctx, opts, artifacts.token.abi, artifacts.token.code, supply)
	if err != nil {
		return nil, receipt, err
	}
	return &Token{Contract: contract}, receipt, nil
}

func (t *Token) Name(ctx context.Context) (string, error) {
	return single[string](t.Call(ctx, common.Address{}, "name"))
}

func (t *Token) Symbol(ctx context.Context) (string, error) {
	return single[string](t.Call(ctx, common.Address{}, "symbol"))
}

func (t *Token) Standard(ctx context.Context) (string, error) {
	return single[string](t.Call(ctx, common.Address{}, "standard"))
}

func (t *Token) TotalSupply(ctx context.Context) (*big.Int, error) {
	return single[*big.Int](t.Call(ctx, common.Address{}, "totalSupply"))
}

func (t *Token) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return single[*big.Int](t.Call(ctx, common.Address{}, "balanceOf", owner))
}

func (t *Token) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	return single[*big.Int](t.Call(ctx, common.Address{}, "allowance", owner, spender))
}

// TryTransfer evaluates a transfer from the given account without sending a transaction.
func (t *Token) TryTransfer(ctx context.Context, from, to common.Address, value *big.Int) (bool, error) {
	return single[bool](t.Call(ctx, from, "transfer", to, value))
}

func (t *Token) Transfer(ctx context.Context, opts chain.TxOpts, to common.Address, value *big.Int) (*chain.Receipt, error) {
	return t.Send(ctx, opts, "transfer", to, value)
}

// TryApprove evaluates an approval from the given account without sending a transaction.
func (t *Token) TryApprove(ctx context.Context, from, spender common.Address, value *big.Int) (bool, error) {
	return single[bool](t.Call(ctx, from, "approve", spender, value))
}

func (t *Token) Approve(ctx context.Context, opts chain.TxOpts, spender common.Address, value *big.Int) (*chain.Receipt, error) {
	return t.Send(ctx, opts, "approve", spender, value)
}

// TransferFrom moves tokens of from on behalf of opts.From.
func (t *Token) TransferFrom(
	ctx context.Context, opts chain.TxOpts, from, to common.Address, value *big.Int,
) (*chain.Receipt, error) {
	return t.Send(ctx, opts, "transferFrom", from, to, value)
}
