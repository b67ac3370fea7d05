package compiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const LanguageSolidity = "Solidity"

// Input is the solc standard JSON input envelope.
type Input struct {
	Language string            `json:"language"`
	Sources  map[string]Source `json:"sources"`
	Settings Settings          `json:"settings"`
}

type Source struct {
	Content string   `json:"content,omitempty"`
	Urls    []string `json:"urls,omitempty"`
}

type Settings struct {
	EvmVersion      string                         `json:"evmVersion,omitempty"`
	Optimizer       *Optimizer                     `json:"optimizer,omitempty"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

type Optimizer struct {
	Enabled bool   `json:"enabled"`
	Runs    uint64 `json:"runs"`
}

// FullOutputSelection requests every output for every contract of every source unit.
func FullOutputSelection() map[string]map[string][]string {
	return map[string]map[string][]string{
		"*": {
			"*": {"*"},
		},
	}
}

// NewInput wraps the given source units (file name -> content) into a standard JSON envelope
// requesting the full output selection.
func NewInput(sources map[string]string) *Input {
	input := &Input{
		Language: LanguageSolidity,
		Sources:  make(map[string]Source, len(sources)),
		Settings: Settings{
			OutputSelection: FullOutputSelection(),
		},
	}
	for name, content := range sources {
		input.Sources[name] = Source{Content: content}
	}
	return input
}

// Output is the part of the solc standard JSON output the harness relies on.
// Contract descriptions are kept verbatim so that artifacts are written exactly as the compiler produced them.
type Output struct {
	Errors    []OutputError                         `json:"errors,omitempty"`
	Sources   map[string]OutputSource               `json:"sources,omitempty"`
	Contracts map[string]map[string]json.RawMessage `json:"contracts,omitempty"`
}

type OutputSource struct {
	Id int `json:"id"`
}

type SourceLocation struct {
	File  string `json:"file"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type OutputError struct {
	Component        string          `json:"component,omitempty"`
	Severity         string          `json:"severity"`
	Type             string          `json:"type"`
	Message          string          `json:"message"`
	FormattedMessage string          `json:"formattedMessage,omitempty"`
	SourceLocation   *SourceLocation `json:"sourceLocation,omitempty"`
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

func (e *OutputError) String() string {
	if e.FormattedMessage != "" {
		return strings.TrimSpace(e.FormattedMessage)
	}
	if e.SourceLocation != nil {
		return fmt.Sprintf("%s:%d: %s: %s", e.SourceLocation.File, e.SourceLocation.Start, e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// CompilationError is returned when the compiler reports at least one diagnostic of error severity.
type CompilationError struct {
	Errors []OutputError
}

func (e *CompilationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for i := range e.Errors {
		msgs = append(msgs, e.Errors[i].String())
	}
	return "compilation failed: " + strings.Join(msgs, "; ")
}

// Err returns *CompilationError if the output carries error diagnostics.
func (o *Output) Err() error {
	var failed []OutputError
	for _, e := range o.Errors {
		if e.Severity == SeverityError {
			failed = append(failed, e)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &CompilationError{Errors: failed}
}

// Warnings returns the diagnostics that did not fail the compilation.
func (o *Output) Warnings() []OutputError {
	var res []OutputError
	for _, e := range o.Errors {
		if e.Severity != SeverityError {
			res = append(res, e)
		}
	}
	return res
}

var ErrDuplicateContract = errors.New("duplicate contract name")

// Artifacts collects the contracts defined in the given source units.
// With no files given, contracts of every source unit in the output are collected.
func (o *Output) Artifacts(files ...string) (Artifacts, error) {
	if len(files) == 0 {
		for file := range o.Contracts {
			files = append(files, file)
		}
	}

	res := make(Artifacts)
	for _, file := range files {
		contracts, ok := o.Contracts[file]
		if !ok {
			continue
		}
		for name, raw := range contracts {
			if prev, ok := res[name]; ok {
				return nil, fmt.Errorf("%w %q in %s and %s", ErrDuplicateContract, name, prev.SourceFile, file)
			}
			a, err := NewArtifact(name, file, raw)
			if err != nil {
				return nil, err
			}
			res[name] = a
		}
	}
	return res, nil
}
