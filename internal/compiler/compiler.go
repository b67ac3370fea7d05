package compiler

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/NilFoundation/seatoken/common"
	"github.com/NilFoundation/seatoken/common/logging"
	lru "github.com/hashicorp/golang-lru/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

const outputCacheSize = 32

// Compiler wraps sources into a standard JSON envelope, runs the compiler and decodes its output.
// Successful outputs are cached by compiler version and input.
type Compiler struct {
	runner Runner
	cache  *lru.Cache[string, *Output]
	logger zerolog.Logger
}

func New(runner Runner, logger zerolog.Logger) (*Compiler, error) {
	cache, err := lru.New[string, *Output](outputCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create output cache: %w", err)
	}
	return &Compiler{
		runner: runner,
		cache:  cache,
		logger: logger,
	}, nil
}

// Compile compiles the given source units (file name -> content).
func (c *Compiler) Compile(ctx context.Context, sources map[string]string) (*Output, error) {
	return c.CompileInput(ctx, NewInput(sources))
}

func (c *Compiler) CompileInput(ctx context.Context, input *Input) (*Output, error) {
	data, err := jsonAPI.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal compiler input: %w", err)
	}

	version, err := c.runner.Version(ctx)
	if err != nil {
		return nil, err
	}
	key := cacheKey(version.String(), data)
	if output, ok := c.cache.Get(key); ok {
		c.logger.Debug().Msg("Compiler output taken from cache")
		return output, nil
	}

	c.logger.Info().Stringer(logging.FieldSolcVersion, version).Msgf("Compiling %d source unit(s)...", len(input.Sources))
	start := time.Now()

	raw, err := c.runner.Run(ctx, data)
	if err != nil {
		return nil, err
	}

	var output Output
	if err := jsonAPI.Unmarshal(raw, &output); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compiler output: %w", err)
	}
	for _, w := range output.Warnings() {
		c.logger.Warn().Msg(w.String())
	}
	if err := output.Err(); err != nil {
		return nil, err
	}

	c.logger.Info().Dur(logging.FieldDuration, time.Since(start)).Msg("Compilation finished")
	c.cache.Add(key, &output)
	return &output, nil
}

func cacheKey(version string, input []byte) string {
	return hex.EncodeToString(common.Keccak256([]byte(version), []byte{0}, input))
}
