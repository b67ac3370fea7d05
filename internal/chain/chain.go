package chain

import (
	"context"
	"crypto/ecdsa"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/NilFoundation/seatoken/common/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/rs/zerolog"
)

var (
	// ErrRejected means the chain refused the call or transaction before anything was mined.
	ErrRejected = errors.New("rejected by the chain")
	// ErrReverted means the transaction was mined but its execution failed.
	ErrReverted = errors.New("transaction reverted")

	ErrUnknownAccount = errors.New("unknown account")
)

type Account struct {
	Address common.Address
	Key     *ecdsa.PrivateKey
}

// TxOpts describes a state-changing transaction.
type TxOpts struct {
	From  common.Address
	Value *big.Int
	// GasLimit of zero means the limit is estimated.
	GasLimit uint64
}

// Chain is an in-process chain with a fixed set of funded accounts.
// Every transaction is mined in its own block.
type Chain struct {
	backend  *simulated.Backend
	client   simulated.Client
	chainId  *big.Int
	accounts []Account
	keys     map[common.Address]*ecdsa.PrivateKey

	// mu serialises transactions and guards contracts
	mu        sync.Mutex
	contracts map[common.Address]*Contract

	logger zerolog.Logger
}

func New(cfg *Config, logger zerolog.Logger) (*Chain, error) {
	c := cfg.withDefaults()

	accounts := make([]Account, 0, c.Accounts)
	keys := make(map[common.Address]*ecdsa.PrivateKey, c.Accounts)
	alloc := make(types.GenesisAlloc, c.Accounts)
	for i := range c.Accounts {
		key, err := deriveKey(c.Seed, i)
		if err != nil {
			return nil, err
		}
		addr := crypto.PubkeyToAddress(key.PublicKey)
		accounts = append(accounts, Account{Address: addr, Key: key})
		keys[addr] = key
		alloc[addr] = types.Account{Balance: new(big.Int).Set(c.Balance)}
	}

	backend := simulated.NewBackend(alloc, simulated.WithBlockGasLimit(c.GasLimit))
	client := backend.Client()
	chainId, err := client.ChainID(context.Background())
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}

	logger.Debug().
		Stringer(logging.FieldChainId, chainId).
		Int("accounts", len(accounts)).
		Msg("Simulated chain started")

	return &Chain{
		backend:   backend,
		client:    client,
		chainId:   chainId,
		accounts:  accounts,
		keys:      keys,
		contracts: make(map[common.Address]*Contract),
		logger:    logger,
	}, nil
}

// deriveKey returns keccak256(seed || index) as a private key.
func deriveKey(seed string, index int) (*ecdsa.PrivateKey, error) {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], uint64(index))
	key, err := crypto.ToECDSA(crypto.Keccak256([]byte(seed), idx[:]))
	if err != nil {
		return nil, fmt.Errorf("failed to derive key #%d: %w", index, err)
	}
	return key, nil
}

func (c *Chain) Close() error {
	return c.backend.Close()
}

// Accounts returns the addresses of the funded accounts, in generation order.
func (c *Chain) Accounts() []common.Address {
	res := make([]common.Address, len(c.accounts))
	for i, a := range c.accounts {
		res[i] = a.Address
	}
	return res
}

func (c *Chain) Account(i int) common.Address {
	return c.accounts[i].Address
}

// BalanceAt returns the native currency balance of the address at the latest block.
func (c *Chain) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	return c.client.BalanceAt(ctx, addr, nil)
}

func (c *Chain) BlockNumber(ctx context.Context) (uint64, error) {
	return c.client.BlockNumber(ctx)
}

func (c *Chain) transactor(ctx context.Context, opts TxOpts) (*bind.TransactOpts, error) {
	key, ok := c.keys[opts.From]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, opts.From)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(key, c.chainId)
	if err != nil {
		return nil, err
	}
	auth.Context = ctx
	auth.Value = opts.Value
	auth.GasLimit = opts.GasLimit
	return auth, nil
}

// Deploy sends a creation transaction with the given constructor arguments and waits for it to be mined.
func (c *Chain) Deploy(
	ctx context.Context, opts TxOpts, contractAbi abi.ABI, code []byte, args ...any,
) (*Contract, *Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	auth, err := c.transactor(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	addr, tx, bound, err := bind.DeployContract(auth, contractAbi, code, c.client, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: deploy: %w", ErrRejected, err)
	}

	contract := &Contract{
		Address: addr,
		ABI:     contractAbi,
		chain:   c,
		bound:   bound,
	}
	c.contracts[addr] = contract

	receipt, err := c.mine(ctx, tx, "constructor")
	if err != nil {
		delete(c.contracts, addr)
		return nil, receipt, err
	}
	return contract, receipt, nil
}

// mine commits the pending block and fetches the receipt of tx. Must be called with mu held.
func (c *Chain) mine(ctx context.Context, tx *types.Transaction, method string) (*Receipt, error) {
	c.backend.Commit()

	r, err := c.client.TransactionReceipt(ctx, tx.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt of %s: %w", tx.Hash(), err)
	}
	receipt := c.newReceipt(r)

	c.logger.Debug().
		Str(logging.FieldMethod, method).
		Stringer(logging.FieldTxHash, receipt.TxHash).
		Uint64(logging.FieldBlockNumber, receipt.BlockNumber).
		Uint64(logging.FieldGasUsed, receipt.GasUsed).
		Bool("success", receipt.Succeeded()).
		Msg("Transaction mined")

	if !receipt.Succeeded() {
		return receipt, fmt.Errorf("%w: %s (tx %s)", ErrReverted, method, receipt.TxHash)
	}
	return receipt, nil
}

func (c *Chain) newReceipt(r *types.Receipt) *Receipt {
	receipt := &Receipt{
		TxHash:          r.TxHash,
		Status:          r.Status,
		GasUsed:         r.GasUsed,
		ContractAddress: r.ContractAddress,
	}
	if r.BlockNumber != nil {
		receipt.BlockNumber = r.BlockNumber.Uint64()
	}

	for _, l := range r.Logs {
		event, err := c.decodeLog(l)
		if err != nil {
			c.logger.Debug().Err(err).Stringer(logging.FieldContractAddress, l.Address).Msg("Skipping undecodable log")
			continue
		}
		receipt.Events = append(receipt.Events, event)
	}
	return receipt
}

// decodeLog decodes the log with the ABI of the contract that emitted it.
func (c *Chain) decodeLog(l *types.Log) (Event, error) {
	contract, ok := c.contracts[l.Address]
	if !ok {
		return Event{}, fmt.Errorf("log of unknown contract %s", l.Address)
	}
	if len(l.Topics) == 0 {
		return Event{}, errors.New("anonymous log")
	}
	ev, err := contract.ABI.EventByID(l.Topics[0])
	if err != nil {
		return Event{}, err
	}
	fields := make(map[string]any)
	if err := contract.bound.UnpackLogIntoMap(fields, ev.Name, *l); err != nil {
		return Event{}, fmt.Errorf("failed to unpack %s: %w", ev.Name, err)
	}
	return Event{
		Name:    ev.Name,
		Address: l.Address,
		Fields:  fields,
	}, nil
}
