package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/NilFoundation/seatoken/common/logging"
	"github.com/fabelx/go-solc-select/pkg/config"
	"github.com/fabelx/go-solc-select/pkg/installer"
	"github.com/fabelx/go-solc-select/pkg/versions"
	"github.com/rs/zerolog"
)

const DefaultSolcVersion = "0.8.26"

var ErrCompilerNotFound = errors.New("solc compiler not found")

// Resolver locates a solc binary able to compile the given sources.
// Lookup order: explicit Path, `solc` from PATH, then Version managed by solc-select.
type Resolver struct {
	Path    string
	Version string
	// Offline forbids downloading Version when solc-select does not have it installed.
	Offline bool

	logger zerolog.Logger
}

func NewResolver(path, version string, offline bool, logger zerolog.Logger) *Resolver {
	if version == "" {
		version = DefaultSolcVersion
	}
	return &Resolver{
		Path:    path,
		Version: version,
		Offline: offline,
		logger:  logger,
	}
}

// Resolve returns a runner for a compiler whose version satisfies every constraint.
func (r *Resolver) Resolve(ctx context.Context, constraints []*semver.Constraints) (*Solc, error) {
	if r.Path != "" {
		solc := NewSolc(r.Path)
		if err := r.checkVersion(ctx, solc, constraints); err != nil {
			return nil, err
		}
		return solc, nil
	}

	if path, err := exec.LookPath("solc"); err == nil {
		solc := NewSolc(path)
		checkErr := r.checkVersion(ctx, solc, constraints)
		if checkErr == nil {
			return solc, nil
		}
		r.logger.Debug().Err(checkErr).Str(logging.FieldSolcPath, path).Msg("Skipping solc from PATH")
	}

	path, err := r.findManaged()
	if err != nil {
		return nil, err
	}
	solc := NewSolc(path)
	if err := r.checkVersion(ctx, solc, constraints); err != nil {
		return nil, err
	}
	return solc, nil
}

// ResolveFor is Resolve with constraints taken from the pragmas of the sources.
func (r *Resolver) ResolveFor(ctx context.Context, sources map[string]string) (*Solc, error) {
	constraints, err := collectPragmas(sources)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, constraints)
}

func (r *Resolver) checkVersion(ctx context.Context, solc *Solc, constraints []*semver.Constraints) error {
	v, err := solc.Version(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompilerNotFound, err)
	}
	if !SatisfiesAll(v, constraints) {
		return fmt.Errorf("%w: %s is version %s which does not satisfy the source pragmas", ErrCompilerNotFound, solc.Path, v)
	}
	r.logger.Debug().
		Str(logging.FieldSolcPath, solc.Path).
		Stringer(logging.FieldSolcVersion, v).
		Msg("Using compiler")
	return nil
}

func (r *Resolver) findManaged() (string, error) {
	if _, ok := versions.GetInstalled()[r.Version]; !ok {
		if r.Offline {
			return "", fmt.Errorf("%w: version %s is not installed and offline mode is on", ErrCompilerNotFound, r.Version)
		}
		r.logger.Info().Str(logging.FieldSolcVersion, r.Version).Msg("Installing compiler...")
		if err := installer.InstallSolc(r.Version); err != nil {
			return "", fmt.Errorf("%w: failed to install compiler %s: %w", ErrCompilerNotFound, r.Version, err)
		}
	}

	solc, ok := versions.GetInstalled()[r.Version]
	if !ok {
		return "", fmt.Errorf("%w: failed to find compiler %s", ErrCompilerNotFound, r.Version)
	}
	solc = "solc-" + solc

	fileName := filepath.Join(config.SolcArtifacts, solc, solc)
	if _, err := os.Stat(fileName); err != nil {
		return "", fmt.Errorf("%w: failed to find compiler %s: %w", ErrCompilerNotFound, r.Version, err)
	}
	return fileName, nil
}
