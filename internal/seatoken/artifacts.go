package seatoken

import (
	"fmt"

	"github.com/NilFoundation/seatoken/contracts"
	"github.com/NilFoundation/seatoken/internal/compiler"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

type contractCode struct {
	abi  abi.ABI
	code []byte
}

func newContractCode(a *compiler.Artifact) (*contractCode, error) {
	contractAbi, err := a.ABI()
	if err != nil {
		return nil, err
	}
	code, err := a.Bytecode()
	if err != nil {
		return nil, err
	}
	return &contractCode{abi: contractAbi, code: code}, nil
}

// Artifacts holds the decoded ABI and creation code of both contracts.
type Artifacts struct {
	token *contractCode
	sale  *contractCode
}

func NewArtifacts(as compiler.Artifacts) (*Artifacts, error) {
	res := &Artifacts{}
	for name, dst := range map[string]**contractCode{
		contracts.NameSeaToken:     &res.token,
		contracts.NameSeaTokenSale: &res.sale,
	} {
		a, err := as.Get(name)
		if err != nil {
			return nil, err
		}
		if *dst, err = newContractCode(a); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return res, nil
}

// LoadArtifacts reads both contracts from a build directory.
func LoadArtifacts(buildDir string) (*Artifacts, error) {
	as, err := compiler.LoadArtifacts(buildDir, contracts.NameSeaToken, contracts.NameSeaTokenSale)
	if err != nil {
		return nil, err
	}
	return NewArtifacts(as)
}
