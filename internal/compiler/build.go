package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/NilFoundation/seatoken/common/logging"
	"github.com/rs/zerolog"
)

var importRegexp = regexp.MustCompile(`import\s+(?:[^;"']*?\s+from\s+)?["']([^"']+)["'][^;]*;`)

var (
	ErrNoSources   = errors.New("no source files given")
	ErrNoContracts = errors.New("no contracts found in the sources")
)

// RunnerFactory picks a compiler able to build the given sources.
type RunnerFactory func(ctx context.Context, sources map[string]string) (Runner, error)

// RunnerFor is a RunnerFactory backed by the resolver.
func (r *Resolver) RunnerFor(ctx context.Context, sources map[string]string) (Runner, error) {
	return r.ResolveFor(ctx, sources)
}

type BuildConfig struct {
	// ContractsDir is the root that source unit names and imports are resolved against.
	ContractsDir string
	// Sources are the source units whose contracts end up in the build directory.
	Sources []string
	// BuildDir is removed and recreated on every build.
	BuildDir string
}

// Build compiles the configured sources and writes one <ContractName>.json per contract defined in them.
// The build directory is deleted before anything else, so a failed build never leaves stale artifacts.
// It returns the written file names.
func Build(ctx context.Context, cfg BuildConfig, newRunner RunnerFactory, logger zerolog.Logger) ([]string, error) {
	if err := os.RemoveAll(cfg.BuildDir); err != nil {
		return nil, fmt.Errorf("failed to clear build directory: %w", err)
	}
	if len(cfg.Sources) == 0 {
		return nil, ErrNoSources
	}

	sources, err := ReadSources(cfg.ContractsDir, cfg.Sources)
	if err != nil {
		return nil, err
	}

	runner, err := newRunner(ctx, sources)
	if err != nil {
		return nil, err
	}
	c, err := New(runner, logger)
	if err != nil {
		return nil, err
	}
	output, err := c.Compile(ctx, sources)
	if err != nil {
		return nil, err
	}

	units := make([]string, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		unit, err := sourceUnitName(s)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	artifacts, err := output.Artifacts(units...)
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, ErrNoContracts
	}

	written := make([]string, 0, len(artifacts))
	for _, name := range artifacts.Names() {
		fileName, err := artifacts[name].WriteFile(cfg.BuildDir)
		if err != nil {
			return written, err
		}
		logger.Info().
			Str(logging.FieldContract, name).
			Str(logging.FieldFile, fileName).
			Msg("Artifact written")
		written = append(written, fileName)
	}
	return written, nil
}

// ReadSources reads the given source units from contractsDir together with everything they import.
// The result is keyed by source unit name, which is the slash-separated path relative to contractsDir.
func ReadSources(contractsDir string, files []string) (map[string]string, error) {
	sources := make(map[string]string)
	queue := make([]string, 0, len(files))
	for _, f := range files {
		unit, err := sourceUnitName(f)
		if err != nil {
			return nil, err
		}
		queue = append(queue, unit)
	}

	for len(queue) > 0 {
		unit := queue[0]
		queue = queue[1:]
		if _, ok := sources[unit]; ok {
			continue
		}

		content, err := os.ReadFile(filepath.Join(contractsDir, filepath.FromSlash(unit)))
		if err != nil {
			return nil, fmt.Errorf("failed to read source %s: %w", unit, err)
		}
		sources[unit] = string(content)

		for _, imported := range ParseImports(string(content)) {
			dep, err := resolveImport(unit, imported)
			if err != nil {
				return nil, err
			}
			queue = append(queue, dep)
		}
	}
	return sources, nil
}

// ParseImports returns the paths of all import directives in the source.
func ParseImports(source string) []string {
	var res []string
	for _, m := range importRegexp.FindAllStringSubmatch(source, -1) {
		res = append(res, m[1])
	}
	return res
}

func resolveImport(importer, imported string) (string, error) {
	if strings.HasPrefix(imported, "./") || strings.HasPrefix(imported, "../") {
		imported = path.Join(path.Dir(importer), imported)
	}
	unit, err := sourceUnitName(imported)
	if err != nil {
		return "", fmt.Errorf("%s: bad import: %w", importer, err)
	}
	return unit, nil
}

func sourceUnitName(name string) (string, error) {
	unit := path.Clean(filepath.ToSlash(name))
	if unit == ".." || strings.HasPrefix(unit, "../") || path.IsAbs(unit) {
		return "", fmt.Errorf("source %q is outside of the contracts directory", name)
	}
	return unit, nil
}
