package seatoken

import (
	"context"
	"math/big"

	"github.com/NilFoundation/seatoken/internal/chain"
	"github.com/ethereum/go-ethereum/common"
)

// Sale is a deployed SeaTokenSale.
type Sale struct {
	*chain.Contract
}

// DeploySale deploys a sale of the given token; opts.From becomes the admin.
func DeploySale(
	ctx context.Context, sim *chain.Chain, artifacts *Artifacts, opts chain.TxOpts, token common.Address, price *big.Int,
) (*Sale, *chain.Receipt, error) {
	contract, receipt, err := sim.Deploy(ctx, opts, artifacts.sale.abi, artifacts.sale.code, token, price)
	if err != nil {
		return nil, receipt, err
	}
	return &Sale{Contract: contract}, receipt, nil
}

func (s *Sale) Admin(ctx context.Context) (common.Address, error) {
	return single[common.Address](s.Call(ctx, common.Address{}, "admin"))
}

func (s *Sale) TokenContract(ctx context.Context) (common.Address, error) {
	return single[common.Address](s.Call(ctx, common.Address{}, "tokenContract"))
}

func (s *Sale) TokenPrice(ctx context.Context) (*big.Int, error) {
	return single[*big.Int](s.Call(ctx, common.Address{}, "tokenPrice"))
}

func (s *Sale) TokensSold(ctx context.Context) (*big.Int, error) {
	return single[*big.Int](s.Call(ctx, common.Address{}, "tokensSold"))
}

func (s *Sale) Ended(ctx context.Context) (bool, error) {
	return single[bool](s.Call(ctx, common.Address{}, "saleEnded"))
}

// BuyTokens buys n tokens for buyer, paying value.
func (s *Sale) BuyTokens(ctx context.Context, buyer common.Address, n, value *big.Int) (*chain.Receipt, error) {
	return s.Send(ctx, chain.TxOpts{From: buyer, Value: value}, "buyTokens", n)
}

func (s *Sale) EndSale(ctx context.Context, from common.Address) (*chain.Receipt, error) {
	return s.Send(ctx, chain.TxOpts{From: from}, "endSale")
}
