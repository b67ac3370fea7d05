package seatoken

import (
	"math/big"

	"github.com/NilFoundation/seatoken/internal/chain"
	"github.com/ethereum/go-ethereum/common"
)

const (
	EventTransfer = "Transfer"
	EventApproval = "Approval"
	EventSell     = "Sell"
	EventEnd      = "End"
)

type TransferEvent struct {
	Contract common.Address
	From     common.Address
	To       common.Address
	Value    *big.Int
}

type ApprovalEvent struct {
	Contract common.Address
	Owner    common.Address
	Spender  common.Address
	Value    *big.Int
}

type SellEvent struct {
	Contract common.Address
	Buyer    common.Address
	Amount   *big.Int
}

type EndEvent struct {
	Contract        common.Address
	ContractBalance *big.Int
	AdminBalance    *big.Int
}

func TransferEvents(r *chain.Receipt) ([]TransferEvent, error) {
	return decodeEvents(r, EventTransfer, func(e chain.Event) (res TransferEvent, err error) {
		res.Contract = e.Address
		if res.From, err = field[common.Address](e, "_from"); err != nil {
			return
		}
		if res.To, err = field[common.Address](e, "_to"); err != nil {
			return
		}
		res.Value, err = field[*big.Int](e, "_value")
		return
	})
}

func ApprovalEvents(r *chain.Receipt) ([]ApprovalEvent, error) {
	return decodeEvents(r, EventApproval, func(e chain.Event) (res ApprovalEvent, err error) {
		res.Contract = e.Address
		if res.Owner, err = field[common.Address](e, "_owner"); err != nil {
			return
		}
		if res.Spender, err = field[common.Address](e, "_spender"); err != nil {
			return
		}
		res.Value, err = field[*big.Int](e, "_value")
		return
	})
}

func SellEvents(r *chain.Receipt) ([]SellEvent, error) {
	return decodeEvents(r, EventSell, func(e chain.Event) (res SellEvent, err error) {
		res.Contract = e.Address
		if res.Buyer, err = field[common.Address](e, "_buyer"); err != nil {
			return
		}
		res.Amount, err = field[*big.Int](e, "_amount")
		return
	})
}

func EndEvents(r *chain.Receipt) ([]EndEvent, error) {
	return decodeEvents(r, EventEnd, func(e chain.Event) (res EndEvent, err error) {
		res.Contract = e.Address
		if res.ContractBalance, err = field[*big.Int](e, "_contractBalance"); err != nil {
			return
		}
		res.AdminBalance, err = field[*big.Int](e, "_adminBalance")
		return
	})
}

func decodeEvents[T any](r *chain.Receipt, name string, decode func(chain.Event) (T, error)) ([]T, error) {
	var res []T
	for _, e := range r.EventsByName(name) {
		v, err := decode(e)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}
