package scenario

import (
	"fmt"
	"math/big"

	"github.com/NilFoundation/seatoken/internal/chain"
	"github.com/NilFoundation/seatoken/internal/ledger"
	"github.com/NilFoundation/seatoken/internal/seatoken"
	"github.com/holiman/uint256"
)

var hugeAmount, _ = new(big.Int).SetString("99999999999999999999999999", 10)

var TokenScenario = Scenario{
	Name: "token",
	run:  runToken,
}

func runToken(r *recorder) {
	a := r.chain.Accounts()
	model := ledger.NewToken(a[0], toUint256(r.cfg.Supply))
	token, ok := r.deployToken()
	if !ok {
		return
	}

	r.check("name, symbol and standard", func() error {
		for _, c := range []struct {
			what     string
			expected string
			get      func() (string, error)
		}{
			{"name", "Sea Token", func() (string, error) { return token.Name(r.ctx) }},
			{"symbol", "SEA", func() (string, error) { return token.Symbol(r.ctx) }},
			{"standard", "SEA Token v1.0", func() (string, error) { return token.Standard(r.ctx) }},
		} {
			actual, err := c.get()
			if err != nil {
				return err
			}
			if err := expectEqual(c.what, c.expected, actual); err != nil {
				return err
			}
		}
		return nil
	})
	r.check("total supply is allocated to the deployer", func() error {
		supply, err := token.TotalSupply(r.ctx)
		if err != nil {
			return err
		}
		if err := expectEq("total supply", model.TotalSupply(), supply); err != nil {
			return err
		}
		balance, err := token.BalanceOf(r.ctx, a[0])
		if err != nil {
			return err
		}
		return expectEq("deployer balance", model.BalanceOf(a[0]), balance)
	})

	r.call("read-only transfer of more than the balance", model.BalanceOf(a[0]).Lt(toUint256(hugeAmount)), func() error {
		_, err := token.TryTransfer(r.ctx, a[0], a[1], hugeAmount)
		return err
	})

	value := uint256.NewInt(1_000_000)
	receipt := r.send(fmt.Sprintf("transfer %s to accounts[1]", value.Dec()), model.Transfer(a[0], a[1], value),
		func() (*chain.Receipt, error) {
			return token.Transfer(r.ctx, chain.TxOpts{From: a[0]}, a[1], value.ToBig())
		})
	r.checkTransfer(receipt, a[0], a[1], value)

	r.call("read-only approve", false, func() error {
		_, err := token.TryApprove(r.ctx, a[0], a[1], value.ToBig())
		return err
	})
	model.Approve(a[0], a[1], value)
	receipt = r.send(fmt.Sprintf("approve accounts[1] for %s", value.Dec()), nil, func() (*chain.Receipt, error) {
		return token.Approve(r.ctx, chain.TxOpts{From: a[0]}, a[1], value.ToBig())
	})
	if receipt != nil {
		r.check("Approval event is emitted and allowance is set", func() error {
			events, err := seatoken.ApprovalEvents(receipt)
			if err != nil {
				return err
			}
			if err := expectEqual("number of Approval events", 1, len(events)); err != nil {
				return err
			}
			if err := expectEq("_value", value, events[0].Value); err != nil {
				return err
			}
			allowance, err := token.Allowance(r.ctx, a[0], a[1])
			if err != nil {
				return err
			}
			return expectEq("allowance", model.Allowance(a[0], a[1]), allowance)
		})
	}

	from, to, spender := a[2], a[3], a[4]
	r.send("fund accounts[2]", model.Transfer(a[0], from, value), func() (*chain.Receipt, error) {
		return token.Transfer(r.ctx, chain.TxOpts{From: a[0]}, from, value.ToBig())
	})
	allowance := uint256.NewInt(500_000)
	model.Approve(from, spender, allowance)
	r.send("accounts[2] approves accounts[4]", nil, func() (*chain.Receipt, error) {
		return token.Approve(r.ctx, chain.TxOpts{From: from}, spender, allowance.ToBig())
	})

	for _, v := range []uint64{2_000_000, 600_000, 500_000} {
		value := uint256.NewInt(v)
		receipt := r.send(fmt.Sprintf("accounts[4] moves %s from accounts[2] to accounts[3]", value.Dec()),
			model.TransferFrom(spender, from, to, value),
			func() (*chain.Receipt, error) {
				return token.TransferFrom(r.ctx, chain.TxOpts{From: spender}, from, to, value.ToBig())
			})
		r.checkTransfer(receipt, from, to, value)
	}
	r.check("allowance is spent", func() error {
		actual, err := token.Allowance(r.ctx, from, spender)
		if err != nil {
			return err
		}
		return expectEq("allowance", model.Allowance(from, spender), actual)
	})

	r.checkBalances(token, model, a[:5]...)
}
