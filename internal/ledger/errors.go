package ledger

import "errors"

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrWrongPayment          = errors.New("payment does not match the cost of the tokens")
	ErrInsufficientInventory = errors.New("sale does not hold enough tokens")
	ErrNotAdmin              = errors.New("caller is not the sale admin")
	ErrSaleEnded             = errors.New("sale has ended")
	ErrOverflow              = errors.New("arithmetic overflow")
)
