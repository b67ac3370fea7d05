package ledger

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Token models the balances and allowances of the token contract.
// Every operation either applies completely or leaves the state untouched, like a reverted transaction.
type Token struct {
	totalSupply uint256.Int
	balances    map[common.Address]*uint256.Int
	allowances  map[common.Address]map[common.Address]*uint256.Int
}

// NewToken mints the whole supply to the deployer.
func NewToken(deployer common.Address, supply *uint256.Int) *Token {
	t := &Token{
		balances:   make(map[common.Address]*uint256.Int),
		allowances: make(map[common.Address]map[common.Address]*uint256.Int),
	}
	t.totalSupply.Set(supply)
	t.balances[deployer] = supply.Clone()
	return t
}

func (t *Token) TotalSupply() *uint256.Int {
	return t.totalSupply.Clone()
}

func (t *Token) BalanceOf(addr common.Address) *uint256.Int {
	if b, ok := t.balances[addr]; ok {
		return b.Clone()
	}
	return new(uint256.Int)
}

func (t *Token) Allowance(owner, spender common.Address) *uint256.Int {
	if a, ok := t.allowances[owner][spender]; ok {
		return a.Clone()
	}
	return new(uint256.Int)
}

func (t *Token) Transfer(from, to common.Address, value *uint256.Int) error {
	if t.BalanceOf(from).Lt(value) {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, from, t.BalanceOf(from), value)
	}
	return t.move(from, to, value)
}

// Approve replaces the allowance of spender over the owner's tokens.
func (t *Token) Approve(owner, spender common.Address, value *uint256.Int) {
	if _, ok := t.allowances[owner]; !ok {
		t.allowances[owner] = make(map[common.Address]*uint256.Int)
	}
	t.allowances[owner][spender] = value.Clone()
}

// TransferFrom moves tokens of from on behalf of spender and spends the allowance.
// The balance is checked before the allowance.
func (t *Token) TransferFrom(spender, from, to common.Address, value *uint256.Int) error {
	if t.BalanceOf(from).Lt(value) {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, from, t.BalanceOf(from), value)
	}
	allowance := t.Allowance(from, spender)
	if allowance.Lt(value) {
		return fmt.Errorf("%w: %s may spend %s, needs %s", ErrInsufficientAllowance, spender, allowance, value)
	}
	if err := t.move(from, to, value); err != nil {
		return err
	}
	t.Approve(from, spender, allowance.Sub(allowance, value))
	return nil
}

func (t *Token) move(from, to common.Address, value *uint256.Int) error {
	fromBalance := t.BalanceOf(from)
	fromBalance.Sub(fromBalance, value)
	toBalance := t.BalanceOf(to)
	if from == to {
		toBalance = fromBalance
	}
	if _, overflow := toBalance.AddOverflow(toBalance, value); overflow {
		return fmt.Errorf("%w: balance of %s", ErrOverflow, to)
	}
	t.balances[from] = fromBalance
	t.balances[to] = toBalance
	return nil
}

// Holders returns the addresses with a non-zero balance in ascending order.
func (t *Token) Holders() []common.Address {
	res := make([]common.Address, 0, len(t.balances))
	for addr, b := range t.balances {
		if !b.IsZero() {
			res = append(res, addr)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i][:], res[j][:]) < 0
	})
	return res
}

// CheckSupply verifies that the balances add up to the total supply.
func (t *Token) CheckSupply() error {
	var sum uint256.Int
	for _, b := range t.balances {
		if _, overflow := sum.AddOverflow(&sum, b); overflow {
			return fmt.Errorf("%w: sum of balances", ErrOverflow)
		}
	}
	if !sum.Eq(&t.totalSupply) {
		return fmt.Errorf("balances sum up to %s, total supply is %s", &sum, &t.totalSupply)
	}
	return nil
}
