package compiler

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var (
	ErrNoBytecode       = errors.New("contract has no bytecode")
	ErrUnlinkedBytecode = errors.New("bytecode has unresolved library references")
	ErrArtifactNotFound = errors.New("artifact not found")
)

// Artifact is the compiler output for a single contract, kept verbatim.
type Artifact struct {
	Name       string
	SourceFile string

	raw  json.RawMessage
	desc artifactDesc
}

type bytecodeDesc struct {
	Object    string `json:"object"`
	SourceMap string `json:"sourceMap,omitempty"`
}

type artifactDesc struct {
	Abi      json.RawMessage `json:"abi"`
	Metadata string          `json:"metadata"`
	Evm      struct {
		Bytecode bytecodeDesc `json:"bytecode"`
	} `json:"evm"`
}

func NewArtifact(name, sourceFile string, raw json.RawMessage) (*Artifact, error) {
	a := &Artifact{
		Name:       name,
		SourceFile: sourceFile,
		raw:        raw,
	}
	if err := json.Unmarshal(raw, &a.desc); err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s: %w", name, err)
	}
	return a, nil
}

// Raw returns the compiler output of the contract exactly as it was received.
func (a *Artifact) Raw() json.RawMessage {
	return a.raw
}

func (a *Artifact) ABI() (abi.ABI, error) {
	if len(a.desc.Abi) == 0 {
		return abi.ABI{}, fmt.Errorf("artifact %s has no abi", a.Name)
	}
	res, err := abi.JSON(bytes.NewReader(a.desc.Abi))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse abi of %s: %w", a.Name, err)
	}
	return res, nil
}

// Bytecode returns the creation bytecode (evm.bytecode.object).
func (a *Artifact) Bytecode() ([]byte, error) {
	return decodeBytecode(a.Name, a.desc.Evm.Bytecode.Object)
}

func decodeBytecode(name, object string) ([]byte, error) {
	object = strings.TrimPrefix(object, "0x")
	if object == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoBytecode, name)
	}
	if strings.Contains(object, "__$") {
		return nil, fmt.Errorf("%w: %s", ErrUnlinkedBytecode, name)
	}
	code, err := hex.DecodeString(object)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode of %s: %w", name, err)
	}
	return code, nil
}

// FileName is the artifact file name inside a build directory.
func (a *Artifact) FileName() string {
	return a.Name + ".json"
}

// WriteFile writes the artifact as <dir>/<Name>.json, creating dir if needed.
func (a *Artifact) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create build directory: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, a.raw); err != nil {
		return "", fmt.Errorf("failed to encode artifact %s: %w", a.Name, err)
	}
	buf.WriteByte('\n')

	fileName := filepath.Join(dir, a.FileName())
	if err := os.WriteFile(fileName, buf.Bytes(), 0o644); err != nil { //nolint:gosec
		return "", fmt.Errorf("failed to write artifact %s: %w", a.Name, err)
	}
	return fileName, nil
}

// LoadArtifact reads <dir>/<name>.json.
func LoadArtifact(dir, name string) (*Artifact, error) {
	fileName := filepath.Join(dir, name+".json")
	data, err := os.ReadFile(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, fileName)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", fileName, err)
	}
	return NewArtifact(name, "", data)
}

// Artifacts maps contract names to their artifacts.
type Artifacts map[string]*Artifact

func (as Artifacts) Get(name string) (*Artifact, error) {
	a, ok := as[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	}
	return a, nil
}

// Names returns the contract names in sorted order.
func (as Artifacts) Names() []string {
	res := make([]string, 0, len(as))
	for name := range as {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// LoadArtifacts reads the named artifacts from a build directory.
func LoadArtifacts(dir string, names ...string) (Artifacts, error) {
	res := make(Artifacts, len(names))
	for _, name := range names {
		a, err := LoadArtifact(dir, name)
		if err != nil {
			return nil, err
		}
		res[name] = a
	}
	return res, nil
}
