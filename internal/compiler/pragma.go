package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var pragmaRegexp = regexp.MustCompile(`pragma\s+solidity\s+([^;]+);`)

var operatorRegexp = regexp.MustCompile(`^(\^|~|>=|<=|>|<|=)$`)

// ParsePragmas returns the compiler version constraints declared by `pragma solidity` in the source.
func ParsePragmas(source string) ([]*semver.Constraints, error) {
	var res []*semver.Constraints
	for _, m := range pragmaRegexp.FindAllStringSubmatch(source, -1) {
		c, err := parseSolidityConstraint(m[1])
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

// parseSolidityConstraint converts Solidity's npm-style ranges, where AND-ed terms are separated by spaces
// and an operator may be detached from its version, into the comma-separated form semver expects.
func parseSolidityConstraint(expr string) (*semver.Constraints, error) {
	alternatives := strings.Split(expr, "||")
	for i, alt := range alternatives {
		var terms []string
		pending := ""
		for _, field := range strings.Fields(alt) {
			if operatorRegexp.MatchString(field) {
				pending += field
				continue
			}
			terms = append(terms, pending+field)
			pending = ""
		}
		if pending != "" {
			return nil, fmt.Errorf("invalid pragma %q: dangling operator %q", expr, pending)
		}
		alternatives[i] = strings.Join(terms, ", ")
	}

	c, err := semver.NewConstraint(strings.Join(alternatives, " || "))
	if err != nil {
		return nil, fmt.Errorf("invalid pragma %q: %w", expr, err)
	}
	return c, nil
}

// SatisfiesAll reports whether the version meets every constraint.
func SatisfiesAll(v *semver.Version, constraints []*semver.Constraints) bool {
	for _, c := range constraints {
		if !c.Check(v) {
			return false
		}
	}
	return true
}

func collectPragmas(sources map[string]string) ([]*semver.Constraints, error) {
	var res []*semver.Constraints
	for name, content := range sources {
		cs, err := ParsePragmas(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		res = append(res, cs...)
	}
	return res, nil
}
