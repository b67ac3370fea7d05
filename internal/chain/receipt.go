package chain

import (
	"github.com/ethereum/go-ethereum/common"
)

// Event is a decoded log. Fields holds both indexed and non-indexed arguments by name.
type Event struct {
	Name    string
	Address common.Address
	Fields  map[string]any
}

type Receipt struct {
	TxHash          common.Hash
	Status          uint64
	GasUsed         uint64
	BlockNumber     uint64
	ContractAddress common.Address
	Events          []Event
}

func (r *Receipt) Succeeded() bool {
	return r.Status == 1
}

// EventsByName returns the events with the given name in log order.
func (r *Receipt) EventsByName(name string) []Event {
	var res []Event
	for _, e := range r.Events {
		if e.Name == name {
			res = append(res, e)
		}
	}
	return res
}
