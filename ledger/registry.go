package ledger

import (
	"time"

	. "designmarket/common/types"
)

// Metadata immutable creation record of a design token
type Metadata struct {
	CreatorName string `json:"creatorName"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"createdAt"` //creation unix timestamp
}

// Registry is the design token ledger: dense token ids from 0, one owner and
// one immutable metadata record per id, single-operator approvals.
//
// Registry methods are not synchronized; all calls reach it through the Ledger,
// which serializes every operation (or through a single test goroutine).
type Registry struct {
	Addr Address //simulated contract address

	owners    map[uint64]Address
	approvals map[uint64]Address
	tokenURIs map[uint64]string
	metadata  map[uint64]Metadata
	next      uint64

	emit EventSink
	now  func() int64
}

// NewRegistry creates an empty registry. sink may be nil.
func NewRegistry(addr Address, sink EventSink) *Registry {
	if sink == nil {
		sink = func(Event) {}
	}
	return &Registry{
		Addr:      addr,
		owners:    map[uint64]Address{},
		approvals: map[uint64]Address{},
		tokenURIs: map[uint64]string{},
		metadata:  map[uint64]Metadata{},
		emit:      sink,
		now:       func() int64 { return time.Now().Unix() },
	}
}

// Register mints the next token id to caller and stores the creation metadata.
// Ids are dense and strictly increasing from 0, never reused.
func (r *Registry) Register(caller Address, tokenURI, creatorName, description string) uint64 {
	id := r.next
	r.next++
	r.owners[id] = caller
	r.tokenURIs[id] = tokenURI
	r.metadata[id] = Metadata{
		CreatorName: creatorName,
		Description: description,
		CreatedAt:   r.now(),
	}
	r.emit(Event{
		Type:        EventTransfer,
		Registry:    r.Addr,
		TokenID:     id,
		From:        ZeroAddress,
		To:          caller,
		TokenURI:    tokenURI,
		CreatorName: creatorName,
		Description: description,
	})
	return id
}

// Approve sets operator as the single address allowed to transfer id on the
// owner's behalf, replacing any prior approval.
func (r *Registry) Approve(caller, operator Address, id uint64) error {
	owner, ok := r.owners[id]
	if !ok {
		return errNotFound("Token does not exist")
	}
	if owner != caller {
		return errUnauthorized("Not the token owner")
	}
	r.approvals[id] = operator
	r.emit(Event{
		Type:     EventApproved,
		Registry: r.Addr,
		TokenID:  id,
		From:     owner,
		To:       operator,
	})
	return nil
}

// GetApproved returns the approved operator for id, empty if none.
func (r *Registry) GetApproved(id uint64) (Address, error) {
	if _, ok := r.owners[id]; !ok {
		return "", errNotFound("Token does not exist")
	}
	return r.approvals[id], nil
}

// Transfer moves id to the new owner; the caller must be the current owner or
// the approved operator. Any approval is reset.
func (r *Registry) Transfer(caller, to Address, id uint64) error {
	owner, ok := r.owners[id]
	if !ok {
		return errNotFound("Token does not exist")
	}
	if caller != owner && caller != r.approvals[id] {
		return errUnauthorized("Not authorized to transfer")
	}
	r.owners[id] = to
	delete(r.approvals, id)
	r.emit(Event{
		Type:     EventTransfer,
		Registry: r.Addr,
		TokenID:  id,
		From:     owner,
		To:       to,
	})
	return nil
}

func (r *Registry) OwnerOf(id uint64) (Address, error) {
	owner, ok := r.owners[id]
	if !ok {
		return "", errNotFound("Token does not exist")
	}
	return owner, nil
}

func (r *Registry) TokenURI(id uint64) (string, error) {
	if _, ok := r.owners[id]; !ok {
		return "", errNotFound("Token does not exist")
	}
	return r.tokenURIs[id], nil
}

func (r *Registry) GetMetadata(id uint64) (Metadata, error) {
	meta, ok := r.metadata[id]
	if !ok {
		return Metadata{}, errNotFound("Token does not exist")
	}
	return meta, nil
}

// NextID the next token id to be assigned
func (r *Registry) NextID() uint64 {
	return r.next
}
