package seatoken

import (
	"context"
	"io"
	"math/big"

	"github.com/NilFoundation/seatoken/internal/chain"
	"github.com/NilFoundation/seatoken/internal/testaide"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

const (
	initialSupply = 7_000_000
	deployGas     = 3_000_000
)

// SuiteChain compiles the contracts once and starts a fresh chain for every test.
type SuiteChain struct {
	suite.Suite

	ctx       context.Context
	artifacts *Artifacts
	chain     *chain.Chain
	accounts  []common.Address
}

func (s *SuiteChain) SetupSuite() {
	s.ctx = context.Background()

	var err error
	s.artifacts, err = NewArtifacts(testaide.CompileContracts(s.T()))
	s.Require().NoError(err)
}

func (s *SuiteChain) SetupTest() {
	var err error
	s.chain, err = chain.New(chain.NewDefaultConfig(), zerolog.New(io.Discard))
	s.Require().NoError(err)
	s.accounts = s.chain.Accounts()
}

func (s *SuiteChain) TearDownTest() {
	s.Require().NoError(s.chain.Close())
}

func (s *SuiteChain) deployToken() *Token {
	s.T().Helper()

	token, receipt, err := DeployToken(s.ctx, s.chain, s.artifacts,
		chain.TxOpts{From: s.accounts[0], GasLimit: deployGas}, big.NewInt(initialSupply))
	s.Require().NoError(err)
	s.Require().True(receipt.Succeeded())
	return token
}

func (s *SuiteChain) requireBalance(token *Token, owner common.Address, expected int64) {
	s.T().Helper()

	balance, err := token.BalanceOf(s.ctx, owner)
	s.Require().NoError(err)
	s.Require().Zero(big.NewInt(expected).Cmp(balance), "balance of %s is %s, expected %d", owner, balance, expected)
}

func (s *SuiteChain) requireTransfer(receipt *chain.Receipt, from, to common.Address, value int64) {
	s.T().Helper()

	transfers, err := TransferEvents(receipt)
	s.Require().NoError(err)
	s.Require().Len(transfers, 1)
	s.Equal(from, transfers[0].From)
	s.Equal(to, transfers[0].To)
	s.Zero(big.NewInt(value).Cmp(transfers[0].Value))
}
