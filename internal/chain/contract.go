package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Contract is a deployed contract together with its ABI.
type Contract struct {
	Address common.Address
	ABI     abi.ABI

	chain *Chain
	bound *bind.BoundContract
}

// Call executes the method without creating a transaction and returns the unpacked outputs.
// A revert is reported as ErrRejected.
func (c *Contract) Call(ctx context.Context, from common.Address, method string, args ...any) ([]any, error) {
	input, err := c.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	output, err := c.chain.client.CallContract(ctx, ethereum.CallMsg{
		From: from,
		To:   &c.Address,
		Data: input,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: call %s: %w", ErrRejected, method, err)
	}

	res, err := c.ABI.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return res, nil
}

// Send executes the method in a transaction and waits for it to be mined.
// When the transaction is mined but fails, the receipt is returned together with ErrReverted.
func (c *Contract) Send(ctx context.Context, opts TxOpts, method string, args ...any) (*Receipt, error) {
	input, err := c.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	c.chain.mu.Lock()
	defer c.chain.mu.Unlock()

	auth, err := c.chain.transactor(ctx, opts)
	if err != nil {
		return nil, err
	}
	tx, err := c.bound.RawTransact(auth, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRejected, method, err)
	}
	return c.chain.mine(ctx, tx, method)
}
