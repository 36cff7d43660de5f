package ledger

import (
	"math/big"
	"sync"
	"testing"

	. "designmarket/common/types"
)

func newTestLedger(sink EventSink) *Ledger {
	return NewLedger(registryAddr, marketAddr, sink)
}

// Full sale flow: seller registers id 0, approves the marketplace, lists at
// price P; buyer pays exactly P. Ownership, listing and balances all move in
// one transition.
func TestSaleEndToEnd(t *testing.T) {
	l := newTestLedger(nil)
	price := big.NewInt(2000000000000000000) // 2 ether in wei
	if err := l.Fund(bob, big.NewInt(3000000000000000000)); err != nil {
		t.Fatal(err)
	}

	id, ev := l.Register(alice, "/design/file/lamp.stl", "Alice", "a lamp")
	if id != 0 || ev.TxHash == "" {
		t.Fatalf("register: got id %v, event %+v", id, ev)
	}
	if _, err := l.Approve(alice, marketAddr, id); err != nil {
		t.Fatal(err)
	}
	if _, err := l.List(alice, registryAddr, id, price); err != nil {
		t.Fatal(err)
	}

	sellerBefore := l.BalanceOf(alice)
	if _, err := l.Buy(bob, registryAddr, id, price); err != nil {
		t.Fatalf("buy: %v", err)
	}

	if owner, _ := l.OwnerOf(id); owner != bob {
		t.Errorf("owner after sale: got %v", owner)
	}
	if listing := l.Listing(registryAddr, id); listing.Price != "0" {
		t.Errorf("listing after sale: got %+v", listing)
	}
	delta := new(big.Int).Sub(l.BalanceOf(alice), sellerBefore)
	if delta.Cmp(price) != 0 {
		t.Errorf("seller balance delta: got %v", delta)
	}
	if l.BalanceOf(bob).Cmp(big.NewInt(1000000000000000000)) != 0 {
		t.Errorf("buyer balance after sale: got %v", l.BalanceOf(bob))
	}
}

// Out-of-band transfer after listing: the buy fails at the cross-contract
// transfer and the stale listing stays behind.
func TestStaleListingAfterDirectTransfer(t *testing.T) {
	l := newTestLedger(nil)
	price := big.NewInt(2000000000000000000)
	l.Fund(carol, price)

	id, _ := l.Register(alice, "/a", "Alice", "a design")
	l.Approve(alice, marketAddr, id)
	if _, err := l.List(alice, registryAddr, id, price); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Transfer(alice, bob, id); err != nil {
		t.Fatal(err)
	}

	_, err := l.Buy(carol, registryAddr, id, price)
	if KindOf(err) != ExternalCallFailure {
		t.Errorf("buy of stale listing: got %v", err)
	}
	if owner, _ := l.OwnerOf(id); owner != bob {
		t.Errorf("owner after failed buy: got %v", owner)
	}
	if listing := l.Listing(registryAddr, id); listing.Price == "0" {
		t.Error("stale listing was cleared")
	}
	if l.BalanceOf(carol).Cmp(price) != 0 {
		t.Errorf("buyer charged on failed buy: got %v", l.BalanceOf(carol))
	}
}

// Concurrent registrations settle into some total order with distinct
// sequential ids and no collision.
func TestConcurrentRegistration(t *testing.T) {
	l := newTestLedger(nil)
	const n = 64
	ids := make(chan uint64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		caller := alice
		if i%2 == 1 {
			caller = bob
		}
		go func(caller Address) {
			defer wg.Done()
			id, _ := l.Register(caller, "/a", "c", "d")
			ids <- id
		}(caller)
	}
	wg.Wait()
	close(ids)

	seen := map[uint64]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %v assigned twice", id)
		}
		seen[id] = true
	}
	for i := uint64(0); i < n; i++ {
		if !seen[i] {
			t.Errorf("id %v never assigned", i)
		}
	}
	if l.NextID() != n {
		t.Errorf("NextID: got %v", l.NextID())
	}
}

func TestEventsStampedInCommitOrder(t *testing.T) {
	var events []Event
	l := newTestLedger(func(ev Event) { events = append(events, ev) })
	l.Fund(bob, big.NewInt(100))

	id, _ := l.Register(alice, "/a", "Alice", "d")
	l.Approve(alice, marketAddr, id)
	l.List(alice, registryAddr, id, big.NewInt(100))
	l.Buy(bob, registryAddr, id, big.NewInt(100))

	// mint, approval, listing, then the buy's transfer and purchase
	wantTypes := []int32{EventTransfer, EventApproved, EventListed, EventTransfer, EventPurchased}
	if len(events) != len(wantTypes) {
		t.Fatalf("got %v events: %+v", len(events), events)
	}
	hashes := map[Hash]bool{}
	for i, ev := range events {
		if ev.Type != wantTypes[i] {
			t.Errorf("event %v: got type %v, want %v", i, ev.Type, wantTypes[i])
		}
		if ev.Seq != uint64(i) {
			t.Errorf("event %v: got seq %v", i, ev.Seq)
		}
		if ev.TxHash == "" || hashes[ev.TxHash] {
			t.Errorf("event %v: bad or duplicate hash %v", i, ev.TxHash)
		}
		hashes[ev.TxHash] = true
	}
}

func TestFundValidation(t *testing.T) {
	l := newTestLedger(nil)
	if err := l.Fund(alice, big.NewInt(0)); KindOf(err) != InvalidArgument {
		t.Errorf("zero fund: got %v", err)
	}
	if err := l.Fund(alice, nil); KindOf(err) != InvalidArgument {
		t.Errorf("nil fund: got %v", err)
	}
	if got := l.BalanceOf(alice).Sign(); got != 0 {
		t.Errorf("balance after rejected funds: got %v", got)
	}
}
