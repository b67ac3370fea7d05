package contracts

import (
	"io/fs"
	"path"
	"sort"
)

const (
	NameSeaToken     = "SeaToken"
	NameSeaTokenSale = "SeaTokenSale"

	FileSeaToken     = NameSeaToken + ".sol"
	FileSeaTokenSale = NameSeaTokenSale + ".sol"
)

// DefaultSources lists the source units compiled by default, in compilation order.
var DefaultSources = []string{FileSeaToken, FileSeaTokenSale}

// GetSource returns the content of an embedded source unit.
func GetSource(fileName string) (string, error) {
	data, err := Fs.ReadFile(path.Clean(fileName))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Sources returns all embedded source units keyed by file name.
func Sources() (map[string]string, error) {
	names, err := fs.Glob(Fs, "*.sol")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	res := make(map[string]string, len(names))
	for _, name := range names {
		content, err := GetSource(name)
		if err != nil {
			return nil, err
		}
		res[name] = content
	}
	return res, nil
}
