package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// Runner executes a compiler in standard JSON mode.
type Runner interface {
	Run(ctx context.Context, input []byte) ([]byte, error)
	Version(ctx context.Context) (*semver.Version, error)
}

var versionRegexp = regexp.MustCompile(`Version:\s*(\d+\.\d+\.\d+)`)

var ErrUnknownVersion = errors.New("cannot determine compiler version")

// Solc runs a solc binary.
type Solc struct {
	Path string

	versionOnce sync.Once
	version     *semver.Version
	versionErr  error
}

var _ Runner = (*Solc)(nil)

func NewSolc(path string) *Solc {
	return &Solc{Path: path}
}

func (s *Solc) Run(ctx context.Context, input []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, s.Path, "--standard-json")
	cmd.Stdin = bytes.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute `%s`: %w: %s", cmd, err, strings.TrimSpace(stderr.String()))
	}
	return output, nil
}

// Version runs `solc --version` once and caches the answer.
func (s *Solc) Version(ctx context.Context) (*semver.Version, error) {
	s.versionOnce.Do(func() {
		output, err := exec.CommandContext(ctx, s.Path, "--version").Output()
		if err != nil {
			s.versionErr = fmt.Errorf("failed to execute `%s --version`: %w", s.Path, err)
			return
		}
		s.version, s.versionErr = ParseVersionOutput(string(output))
	})
	return s.version, s.versionErr
}

func (s *Solc) String() string {
	return s.Path
}

// ParseVersionOutput extracts the release version from `solc --version` output.
func ParseVersionOutput(output string) (*semver.Version, error) {
	m := versionRegexp.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, strings.TrimSpace(output))
	}
	return semver.NewVersion(m[1])
}
