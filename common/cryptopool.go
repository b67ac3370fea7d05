package common

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

var cryptoPool = sync.Pool{
	New: func() any {
		return sha3.NewLegacyKeccak256()
	},
}

func GetLegacyKeccak256() hash.Hash {
	h := cryptoPool.Get().(hash.Hash)
	h.Reset()
	return h
}

func ReturnLegacyKeccak256(h hash.Hash) { cryptoPool.Put(h) }

// Keccak256 hashes the concatenation of the parts.
func Keccak256(parts ...[]byte) []byte {
	h := GetLegacyKeccak256()
	defer ReturnLegacyKeccak256(h)
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}
