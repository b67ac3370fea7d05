package scenario

import (
	"fmt"
	"math/big"

	"github.com/NilFoundation/seatoken/internal/chain"
	"github.com/NilFoundation/seatoken/internal/ledger"
	"github.com/NilFoundation/seatoken/internal/seatoken"
	"github.com/holiman/uint256"
)

var SaleScenario = Scenario{
	Name: "sale",
	run:  runSale,
}

func runSale(r *recorder) {
	a := r.chain.Accounts()
	admin, buyer, outsider := a[0], a[1], a[2]
	model := ledger.NewToken(admin, toUint256(r.cfg.Supply))
	token, ok := r.deployToken()
	if !ok {
		return
	}

	var sale *seatoken.Sale
	if !r.check(fmt.Sprintf("deploy SeaTokenSale with price %s wei", r.cfg.TokenPrice), func() (err error) {
		sale, _, err = seatoken.DeploySale(r.ctx, r.chain, r.artifacts,
			chain.TxOpts{From: admin, GasLimit: r.cfg.DeployGas}, token.Address, r.cfg.TokenPrice)
		return err
	}) {
		return
	}
	mSale := ledger.NewSale(sale.Address, admin, model, toUint256(r.cfg.TokenPrice))

	r.check("sale is bound to the token", func() error {
		tokenContract, err := sale.TokenContract(r.ctx)
		if err != nil {
			return err
		}
		if err := expectEqual("token contract", token.Address, tokenContract); err != nil {
			return err
		}
		price, err := sale.TokenPrice(r.ctx)
		if err != nil {
			return err
		}
		return expectEq("token price", mSale.Price, price)
	})

	n := toUint256(r.cfg.Purchase)
	cost, err := ledger.Cost(n, mSale.Price)
	if !r.check(fmt.Sprintf("cost of %s tokens", n.Dec()), func() error { return err }) {
		return
	}

	buy := func(desc string, value *uint256.Int) *chain.Receipt {
		return r.send(desc, mSale.Buy(buyer, n, value), func() (*chain.Receipt, error) {
			return sale.BuyTokens(r.ctx, buyer, n.ToBig(), value.ToBig())
		})
	}

	buy("buy without inventory", uint256.NewInt(1))

	provision := toUint256(r.cfg.Provision)
	receipt := r.send(fmt.Sprintf("provision the sale with %s tokens", provision.Dec()),
		model.Transfer(admin, sale.Address, provision),
		func() (*chain.Receipt, error) {
			return token.Transfer(r.ctx, chain.TxOpts{From: admin}, sale.Address, provision.ToBig())
		})
	r.checkTransfer(receipt, admin, sale.Address, provision)

	buy("buy paying 1 wei", uint256.NewInt(1))
	buy("buy paying 1 wei too little", new(uint256.Int).SubUint64(cost, 1))
	buy("buy paying 1 wei too much", new(uint256.Int).AddUint64(cost, 1))

	receipt = buy(fmt.Sprintf("buy %s tokens", n.Dec()), cost)
	if receipt != nil {
		r.check("Sell event is emitted", func() error {
			events, err := seatoken.SellEvents(receipt)
			if err != nil {
				return err
			}
			if err := expectEqual("number of Sell events", 1, len(events)); err != nil {
				return err
			}
			if err := expectEqual("_buyer", buyer, events[0].Buyer); err != nil {
				return err
			}
			return expectEq("_amount", n, events[0].Amount)
		})
	}
	r.check("tokens sold", func() error {
		sold, err := sale.TokensSold(r.ctx)
		if err != nil {
			return err
		}
		return expectEq("tokens sold", mSale.TokensSold(), sold)
	})
	r.checkBalances(token, model, admin, buyer, sale.Address)
	r.check("proceeds are held by the sale", func() error {
		balance, err := r.chain.BalanceAt(r.ctx, sale.Address)
		if err != nil {
			return err
		}
		return expectEq("sale balance", mSale.Proceeds(), balance)
	})

	_, modelErr := mSale.End(outsider)
	r.send("end the sale from a non-admin account", modelErr, func() (*chain.Receipt, error) {
		return sale.EndSale(r.ctx, outsider)
	})

	end, modelErr := mSale.End(admin)
	receipt = r.send("end the sale", modelErr, func() (*chain.Receipt, error) {
		return sale.EndSale(r.ctx, admin)
	})
	if receipt != nil && end != nil {
		r.check("End event reports the final balances", func() error {
			events, err := seatoken.EndEvents(receipt)
			if err != nil {
				return err
			}
			if err := expectEqual("number of End events", 1, len(events)); err != nil {
				return err
			}
			if err := expectEq("_contractBalance", end.ContractBalance, events[0].ContractBalance); err != nil {
				return err
			}
			return expectEq("_adminBalance", end.AdminBalance, events[0].AdminBalance)
		})
	}
	r.check("proceeds are forwarded to the admin", func() error {
		balance, err := r.chain.BalanceAt(r.ctx, sale.Address)
		if err != nil {
			return err
		}
		return expectEq("sale balance", mSale.Proceeds(), balance)
	})
	r.checkBalances(token, model, admin, buyer, sale.Address)

	buy("buy after the sale ended", cost)
	r.check("sale is closed", func() error {
		ended, err := sale.Ended(r.ctx)
		if err != nil {
			return err
		}
		return expectEqual("saleEnded", true, ended)
	})
}

// Cost returns the price of the purchase made by SaleScenario.
func Cost(cfg *Config) (*big.Int, error) {
	return seatoken.Cost(cfg.Purchase, cfg.TokenPrice)
}
