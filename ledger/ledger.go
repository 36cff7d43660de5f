// Package ledger simulates the host chain's serialized execution of the design
// registry and marketplace contracts: one mutex is the ordering authority, every
// call applies as a whole or not at all, and committed transitions stream out as
// events for the off-chain index.
package ledger

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	. "designmarket/common/types"
)

// Ledger owns the registry, the marketplace and the account balances. All
// exported methods serialize under one mutex, giving the same total order the
// host network's block ordering would.
type Ledger struct {
	mu sync.Mutex

	registry *Registry
	market   *Marketplace
	balances map[Address]*big.Int

	seq  uint64
	sink EventSink
	last Event
}

// NewLedger creates the ledger with its registry and marketplace deployed at
// the given addresses. sink, if non-nil, receives every committed event in
// order and must not call back into the ledger.
func NewLedger(registryAddr, marketAddr Address, sink EventSink) *Ledger {
	l := &Ledger{balances: map[Address]*big.Int{}, sink: sink}
	l.registry = NewRegistry(registryAddr, l.emit)
	l.market = NewMarketplace(marketAddr, func(addr Address) TokenRegistry {
		if addr == registryAddr {
			return l.registry
		}
		return nil
	}, (*payments)(l), l.emit)
	return l
}

// emit stamps and delivers an event; called by components mid-operation, with
// the ledger mutex already held.
func (l *Ledger) emit(ev Event) {
	ev.Seq = l.seq
	l.seq++
	ev.TxHash = txHash(ev.Seq)
	ev.Timestamp = time.Now().Unix()
	l.last = ev
	if l.sink != nil {
		l.sink(ev)
	}
}

// Register mints a new design token to caller and returns its id and the mint event.
func (l *Ledger) Register(caller Address, tokenURI, creatorName, description string) (uint64, Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.registry.Register(caller, tokenURI, creatorName, description)
	return id, l.last
}

func (l *Ledger) Approve(caller, operator Address, id uint64) (Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.registry.Approve(caller, operator, id); err != nil {
		return Event{}, err
	}
	return l.last, nil
}

func (l *Ledger) Transfer(caller, to Address, id uint64) (Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.registry.Transfer(caller, to, id); err != nil {
		return Event{}, err
	}
	return l.last, nil
}

func (l *Ledger) List(caller, registry Address, id uint64, price *big.Int) (Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.market.List(caller, registry, id, price); err != nil {
		return Event{}, err
	}
	return l.last, nil
}

func (l *Ledger) Buy(buyer, registry Address, id uint64, payment *big.Int) (Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.market.Buy(buyer, registry, id, payment); err != nil {
		return Event{}, err
	}
	return l.last, nil
}

func (l *Ledger) OwnerOf(id uint64) (Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.OwnerOf(id)
}

func (l *Ledger) TokenURI(id uint64) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.TokenURI(id)
}

func (l *Ledger) GetMetadata(id uint64) (Metadata, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.GetMetadata(id)
}

func (l *Ledger) GetApproved(id uint64) (Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.GetApproved(id)
}

func (l *Ledger) NextID() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.NextID()
}

func (l *Ledger) Listing(registry Address, id uint64) Listing {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.market.Listing(registry, id)
}

// RegistryAddr the simulated registry contract address
func (l *Ledger) RegistryAddr() Address {
	return l.registry.Addr
}

// MarketAddr the simulated marketplace contract address
func (l *Ledger) MarketAddr() Address {
	return l.market.Addr
}

// Fund credits an account, the simulation's stand-in for funds arriving from
// outside (faucet or bridged deposit).
func (l *Ledger) Fund(addr Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return errInvalidArgument("Amount must be greater than zero")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(addr, amount)
	return nil
}

func (l *Ledger) BalanceOf(addr Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return (*payments)(l).Balance(addr)
}

func (l *Ledger) credit(addr Address, amount *big.Int) {
	if b := l.balances[addr]; b != nil {
		b.Add(b, amount)
	} else {
		l.balances[addr] = new(big.Int).Set(amount)
	}
}

// payments exposes the balance map to the marketplace under the ledger's own
// serialization, without exporting mutation on Ledger itself.
type payments Ledger

func (p *payments) Balance(addr Address) *big.Int {
	if b := p.balances[addr]; b != nil {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

func (p *payments) Move(from, to Address, amount *big.Int) error {
	b := p.balances[from]
	if b == nil || b.Cmp(amount) < 0 {
		return fmt.Errorf("insufficient balance")
	}
	b.Sub(b, amount)
	(*Ledger)(p).credit(to, amount)
	return nil
}
