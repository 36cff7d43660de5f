package ledger

import (
	"encoding/binary"

	. "designmarket/common/types"
	"designmarket/common/utils"
)

// event types emitted by the registry and marketplace, consumed by the index
const (
	EventTransfer  = int32(1) //ownership assignment, From is the zero address on mint
	EventListed    = int32(2) //listing created or overwritten
	EventPurchased = int32(3) //purchase completed, listing cleared
	EventApproved  = int32(4) //operator approval set, From is the owner, To the operator
)

// ZeroAddress previous owner recorded on mint events
const ZeroAddress = Address("0x0000000000000000000000000000000000000000")

// Event is one committed state transition, stamped by the ledger with a
// monotonic sequence number, timestamp and derived transaction hash.
type Event struct {
	Seq       uint64  `json:"seq"`
	TxHash    Hash    `json:"tx_hash"`
	Type      int32   `json:"type"`
	Registry  Address `json:"registry"`
	TokenID   uint64  `json:"token_id"`
	From      Address `json:"from,omitempty"`   //EventTransfer
	To        Address `json:"to,omitempty"`     //EventTransfer
	Seller    Address `json:"seller,omitempty"` //EventListed
	Buyer     Address `json:"buyer,omitempty"`  //EventPurchased
	Price     BigInt  `json:"price,omitempty"`  //EventListed and EventPurchased, unit wei
	Timestamp int64   `json:"timestamp"`

	// creation record, set on mint events only so indexers need no callback
	// into the ledger
	TokenURI    string `json:"token_uri,omitempty"`
	CreatorName string `json:"creator_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// EventSink receives every committed event in sequence order.
type EventSink func(Event)

// txHash derives a pseudo transaction hash from the commit sequence number.
func txHash(seq uint64) Hash {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], seq)
	return utils.Keccak256Hash(b[:])
}
