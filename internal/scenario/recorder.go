package scenario

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/NilFoundation/seatoken/common/logging"
	"github.com/NilFoundation/seatoken/internal/chain"
	"github.com/NilFoundation/seatoken/internal/ledger"
	"github.com/NilFoundation/seatoken/internal/seatoken"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
)

// recorder runs actions against the chain, compares them with the model and records the steps.
type recorder struct {
	ctx       context.Context
	chain     *chain.Chain
	artifacts *seatoken.Artifacts
	cfg       *Config
	report    *Report
	logger    zerolog.Logger
}

func (r *recorder) record(step Step) {
	ev := r.logger.Debug()
	if step.Err != nil {
		ev = r.logger.Error().Err(step.Err)
	}
	ev.Uint64(logging.FieldGasUsed, step.GasUsed).Msg(step.Description)
	r.report.Steps = append(r.report.Steps, step)
}

// send records a transaction whose outcome the model predicted with modelErr.
func (r *recorder) send(desc string, modelErr error, f func() (*chain.Receipt, error)) *chain.Receipt {
	receipt, err := f()
	step := Step{Description: desc, Rejected: modelErr != nil}
	if receipt != nil {
		step.GasUsed = receipt.GasUsed
	}
	switch {
	case modelErr == nil && err != nil:
		step.Err = fmt.Errorf("expected success: %w", err)
	case modelErr != nil && err == nil:
		step.Err = fmt.Errorf("expected rejection (%w), but it succeeded", modelErr)
	}
	r.record(step)
	if err != nil {
		return nil
	}
	return receipt
}

// call records a read-only call that is expected to be rejected or not.
func (r *recorder) call(desc string, expectRejection bool, f func() error) {
	err := f()
	step := Step{Description: desc, Rejected: expectRejection}
	switch {
	case !expectRejection && err != nil:
		step.Err = err
	case expectRejection && err == nil:
		step.Err = errors.New("expected rejection, but the call succeeded")
	}
	r.record(step)
}

// check records a read or an assertion.
func (r *recorder) check(desc string, f func() error) bool {
	err := f()
	r.record(Step{Description: desc, Err: err})
	return err == nil
}

func (r *recorder) checkTransfer(receipt *chain.Receipt, from, to common.Address, value *uint256.Int) {
	if receipt == nil {
		return
	}
	r.check("Transfer event is emitted", func() error {
		events, err := seatoken.TransferEvents(receipt)
		if err != nil {
			return err
		}
		if err := expectEqual("number of Transfer events", 1, len(events)); err != nil {
			return err
		}
		if err := expectEqual("_from", from, events[0].From); err != nil {
			return err
		}
		if err := expectEqual("_to", to, events[0].To); err != nil {
			return err
		}
		return expectEq("_value", value, events[0].Value)
	})
}

func (r *recorder) deployToken() (*seatoken.Token, bool) {
	var token *seatoken.Token
	ok := r.check(fmt.Sprintf("deploy SeaToken with supply %s", r.cfg.Supply), func() (err error) {
		token, _, err = seatoken.DeployToken(r.ctx, r.chain, r.artifacts,
			chain.TxOpts{From: r.chain.Account(0), GasLimit: r.cfg.DeployGas}, r.cfg.Supply)
		return err
	})
	return token, ok
}

// checkBalances compares the given addresses and every holder known to the model with the chain.
func (r *recorder) checkBalances(token *seatoken.Token, model *ledger.Token, addrs ...common.Address) {
	r.check("balances match the model", func() error {
		for _, a := range slices.Concat(addrs, model.Holders()) {
			balance, err := token.BalanceOf(r.ctx, a)
			if err != nil {
				return err
			}
			if err := expectEq("balance of "+a.Hex(), model.BalanceOf(a), balance); err != nil {
				return err
			}
		}
		return model.CheckSupply()
	})
}

func expectEq(what string, expected *uint256.Int, actual *big.Int) error {
	if expected.ToBig().Cmp(actual) != 0 {
		return fmt.Errorf("%s is %s, expected %s", what, actual, expected.Dec())
	}
	return nil
}

func expectEqual[T comparable](what string, expected, actual T) error {
	if expected != actual {
		return fmt.Errorf("%s is %v, expected %v", what, actual, expected)
	}
	return nil
}

func toUint256(v *big.Int) *uint256.Int {
	res, _ := uint256.FromBig(v)
	return res
}
