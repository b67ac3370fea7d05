// Package testaide compiles the embedded contracts for the test suites that run them on a simulated chain.
//
// The compiler is looked up the same way `seatoken compile` does it: SEATOKEN_SOLC, then solc on PATH,
// then a version installed by solc-select. Tests never download a compiler unless SEATOKEN_SOLC_INSTALL=1
// is set; without any compiler the contract suites are skipped, so run
//
//	SEATOKEN_SOLC_INSTALL=1 go test ./...
//
// on a machine without solc to exercise them.
package testaide

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/NilFoundation/seatoken/common/logging"
	"github.com/NilFoundation/seatoken/contracts"
	"github.com/NilFoundation/seatoken/internal/compiler"
	"github.com/stretchr/testify/require"
)

const (
	// EnvSolc points tests at a specific compiler binary.
	EnvSolc = "SEATOKEN_SOLC"
	// EnvSolcInstall allows tests to download the default compiler version.
	EnvSolcInstall = "SEATOKEN_SOLC_INSTALL"

	compileTimeout = 2 * time.Minute
)

var (
	compileOnce sync.Once
	artifacts   compiler.Artifacts
	compileErr  error
)

// CompileContracts compiles the embedded contracts once per test binary.
// The test is skipped when no compiler can be found.
func CompileContracts(t *testing.T) compiler.Artifacts {
	t.Helper()

	compileOnce.Do(func() {
		artifacts, compileErr = compileContracts()
	})
	if errors.Is(compileErr, compiler.ErrCompilerNotFound) {
		t.Skipf("solc is not available (set %s or %s=1): %v", EnvSolc, EnvSolcInstall, compileErr)
	}
	require.NoError(t, compileErr)
	return artifacts
}

func compileContracts() (compiler.Artifacts, error) {
	ctx, cancel := context.WithTimeout(context.Background(), compileTimeout)
	defer cancel()

	sources, err := contracts.Sources()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger("testaide")
	resolver := compiler.NewResolver(os.Getenv(EnvSolc), compiler.DefaultSolcVersion, offline(), logger)
	solc, err := resolver.ResolveFor(ctx, sources)
	if err != nil {
		return nil, err
	}

	c, err := compiler.New(solc, logger)
	if err != nil {
		return nil, err
	}
	output, err := c.Compile(ctx, sources)
	if err != nil {
		return nil, err
	}
	return output.Artifacts(contracts.DefaultSources...)
}

// offline reports whether downloading the compiler is forbidden, which is the default.
func offline() bool {
	install, err := strconv.ParseBool(os.Getenv(EnvSolcInstall))
	return err != nil || !install
}
