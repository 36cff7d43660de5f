package backend

import (
	"math/big"

	"designmarket/ledger"
	"designmarket/txdata"

	. "designmarket/common/types"
)

// Receipt result of a submitted transaction
type Receipt struct {
	TxHash  Hash    `json:"tx_hash"`
	TokenID *uint64 `json:"token_id,omitempty"` //set for registrations
}

// Apply decodes submitted calldata and executes it on the ledger as from.
// Dispatch is by target contract address; the attached value is only accepted
// by the marketplace buy function.
func Apply(l *ledger.Ledger, from, to Address, value *big.Int, data Data) (*Receipt, error) {
	call, err := txdata.Decode(data)
	if err != nil {
		return nil, err
	}
	if value == nil {
		value = new(big.Int)
	}

	switch c := call.(type) {
	case *txdata.RegisterDesign:
		if to != l.RegistryAddr() {
			return nil, wrongContract(to)
		}
		if value.Sign() != 0 {
			return nil, notPayable()
		}
		id, ev := l.Register(from, c.TokenURI, c.CreatorName, c.Description)
		return &Receipt{TxHash: ev.TxHash, TokenID: &id}, nil

	case *txdata.Approve:
		if to != l.RegistryAddr() {
			return nil, wrongContract(to)
		}
		if value.Sign() != 0 {
			return nil, notPayable()
		}
		ev, err := l.Approve(from, c.Operator, c.TokenID)
		if err != nil {
			return nil, err
		}
		return &Receipt{TxHash: ev.TxHash}, nil

	case *txdata.Transfer:
		if to != l.RegistryAddr() {
			return nil, wrongContract(to)
		}
		if value.Sign() != 0 {
			return nil, notPayable()
		}
		ev, err := l.Transfer(from, c.To, c.TokenID)
		if err != nil {
			return nil, err
		}
		return &Receipt{TxHash: ev.TxHash}, nil

	case *txdata.ListDesign:
		if to != l.MarketAddr() {
			return nil, wrongContract(to)
		}
		if value.Sign() != 0 {
			return nil, notPayable()
		}
		ev, err := l.List(from, c.Registry, c.TokenID, c.Price)
		if err != nil {
			return nil, err
		}
		return &Receipt{TxHash: ev.TxHash}, nil

	case *txdata.BuyDesign:
		if to != l.MarketAddr() {
			return nil, wrongContract(to)
		}
		ev, err := l.Buy(from, c.Registry, c.TokenID, value)
		if err != nil {
			return nil, err
		}
		return &Receipt{TxHash: ev.TxHash}, nil
	}
	return nil, wrongContract(to)
}

func wrongContract(to Address) error {
	return &ledger.Error{Kind: ledger.PreconditionFailed, Reason: "No such function on contract " + string(to)}
}

func notPayable() error {
	return &ledger.Error{Kind: ledger.InvalidArgument, Reason: "Function is not payable"}
}
