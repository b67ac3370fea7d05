package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Cost returns n * price, failing where the contract's checked multiplication would revert.
func Cost(n, price *uint256.Int) (*uint256.Int, error) {
	res, overflow := new(uint256.Int).MulOverflow(n, price)
	if overflow {
		return nil, fmt.Errorf("%w: %s * %s", ErrOverflow, n, price)
	}
	return res, nil
}

// Sale models the sale contract. Its token inventory is its balance in Token.
type Sale struct {
	Address common.Address
	Admin   common.Address
	Token   *Token
	Price   *uint256.Int

	tokensSold uint256.Int
	proceeds   uint256.Int
	ended      bool
}

func NewSale(addr, admin common.Address, token *Token, price *uint256.Int) *Sale {
	return &Sale{
		Address: addr,
		Admin:   admin,
		Token:   token,
		Price:   price.Clone(),
	}
}

func (s *Sale) TokensSold() *uint256.Int {
	return s.tokensSold.Clone()
}

// Proceeds is the native currency collected and not yet forwarded to the admin.
func (s *Sale) Proceeds() *uint256.Int {
	return s.proceeds.Clone()
}

func (s *Sale) Ended() bool {
	return s.ended
}

func (s *Sale) Inventory() *uint256.Int {
	return s.Token.BalanceOf(s.Address)
}

// Buy sells n tokens to buyer, who pays value.
func (s *Sale) Buy(buyer common.Address, n, value *uint256.Int) error {
	if s.ended {
		return ErrSaleEnded
	}
	cost, err := Cost(n, s.Price)
	if err != nil {
		return err
	}
	if !value.Eq(cost) {
		return fmt.Errorf("%w: paid %s, costs %s", ErrWrongPayment, value, cost)
	}
	if s.Inventory().Lt(n) {
		return fmt.Errorf("%w: has %s, requested %s", ErrInsufficientInventory, s.Inventory(), n)
	}
	if _, overflow := new(uint256.Int).AddOverflow(&s.tokensSold, n); overflow {
		return fmt.Errorf("%w: tokens sold", ErrOverflow)
	}
	if err := s.Token.Transfer(s.Address, buyer, n); err != nil {
		return err
	}
	s.tokensSold.Add(&s.tokensSold, n)
	s.proceeds.Add(&s.proceeds, value)
	return nil
}

// EndResult mirrors the End event plus the native currency forwarded to the admin.
type EndResult struct {
	ContractBalance *uint256.Int
	AdminBalance    *uint256.Int
	Forwarded       *uint256.Int
}

// End returns the unsold tokens and the proceeds to the admin and closes the sale.
func (s *Sale) End(caller common.Address) (*EndResult, error) {
	if caller != s.Admin {
		return nil, fmt.Errorf("%w: %s", ErrNotAdmin, caller)
	}
	if s.ended {
		return nil, ErrSaleEnded
	}
	if err := s.Token.Transfer(s.Address, s.Admin, s.Inventory()); err != nil {
		return nil, err
	}
	s.ended = true

	res := &EndResult{
		ContractBalance: s.Inventory(),
		AdminBalance:    s.Token.BalanceOf(s.Admin),
		Forwarded:       s.proceeds.Clone(),
	}
	s.proceeds.Clear()
	return res, nil
}
