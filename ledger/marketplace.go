package ledger

import (
	"math/big"

	. "designmarket/common/types"
)

// TokenRegistry is the slice of the registry the marketplace depends on.
// The marketplace is handed this capability instead of a concrete registry so
// the two components can be tested independently.
type TokenRegistry interface {
	OwnerOf(id uint64) (Address, error)
	GetApproved(id uint64) (Address, error)
	Transfer(caller, to Address, id uint64) error
}

// RegistryResolver maps a registry contract address to its TokenRegistry.
// Unknown addresses return nil.
type RegistryResolver func(addr Address) TokenRegistry

// PaymentLedger moves funds between accounts at purchase time. The marketplace
// itself never holds a balance.
type PaymentLedger interface {
	Balance(addr Address) *big.Int
	Move(from, to Address, amount *big.Int) error
}

// Listing is an offer to sell one token at a fixed price. Price 0 means no
// active listing.
type Listing struct {
	Seller Address `json:"seller"`
	Price  BigInt  `json:"price"` //unit wei, "0" if not listed
}

type listingKey struct {
	registry Address
	tokenID  uint64
}

// Marketplace holds escrow-free listing state keyed by (registry, token id).
// Like Registry it is unsynchronized; the Ledger serializes all access.
type Marketplace struct {
	Addr Address //simulated contract address, the operator sellers approve

	resolve  RegistryResolver
	payments PaymentLedger
	listings map[listingKey]*big.Int //price
	sellers  map[listingKey]Address

	emit EventSink
}

// NewMarketplace creates an empty marketplace. sink may be nil.
func NewMarketplace(addr Address, resolve RegistryResolver, payments PaymentLedger, sink EventSink) *Marketplace {
	if sink == nil {
		sink = func(Event) {}
	}
	return &Marketplace{
		Addr:     addr,
		resolve:  resolve,
		payments: payments,
		listings: map[listingKey]*big.Int{},
		sellers:  map[listingKey]Address{},
		emit:     sink,
	}
}

// List advertises token id of the given registry at price. The caller must own
// the token and must have approved this marketplace as its operator. Calling
// List again before a sale overwrites the previous listing; there is no
// separate delist primitive.
func (m *Marketplace) List(caller, registry Address, id uint64, price *big.Int) error {
	if price == nil || price.Sign() <= 0 {
		return errInvalidArgument("Price must be greater than zero")
	}
	reg := m.resolve(registry)
	if reg == nil {
		return errPrecondition("Unknown registry contract")
	}
	owner, err := reg.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != caller {
		return errUnauthorized("You must own the NFT to list it")
	}
	approved, err := reg.GetApproved(id)
	if err != nil {
		return err
	}
	if approved != m.Addr {
		return errPrecondition("Marketplace must be approved")
	}

	key := listingKey{registry, id}
	m.listings[key] = new(big.Int).Set(price)
	m.sellers[key] = caller
	m.emit(Event{
		Type:     EventListed,
		Registry: registry,
		TokenID:  id,
		Seller:   caller,
		Price:    BigInt(price.Text(10)),
	})
	return nil
}

// Buy purchases the listed token with exact payment. Ownership transfer,
// listing removal and payment forwarding commit as one transition; any failure
// leaves all three untouched.
func (m *Marketplace) Buy(buyer, registry Address, id uint64, payment *big.Int) error {
	key := listingKey{registry, id}
	price := m.listings[key]
	if price == nil || price.Sign() == 0 {
		return errPrecondition("This design is not listed for sale")
	}
	if payment == nil || payment.Cmp(price) != 0 {
		return errPrecondition("Incorrect payment amount")
	}
	if m.payments.Balance(buyer).Cmp(price) < 0 {
		return errPrecondition("Insufficient balance for purchase")
	}
	reg := m.resolve(registry)
	if reg == nil {
		return errPrecondition("Unknown registry contract")
	}
	seller := m.sellers[key]

	// A listing goes stale when the token moves out-of-band after listing;
	// the registry is re-checked so a stale sale can never strip the new owner.
	owner, err := reg.OwnerOf(id)
	if err != nil {
		return errExternalCall("Transfer failed: "+err.Error(), err)
	}
	if owner != seller {
		return errExternalCall("Transfer failed: seller no longer owns the token", nil)
	}
	if err := reg.Transfer(m.Addr, buyer, id); err != nil {
		return errExternalCall("Transfer failed: "+err.Error(), err)
	}

	delete(m.listings, key)
	delete(m.sellers, key)
	// cannot fail: the buyer balance was checked before the transfer
	if err := m.payments.Move(buyer, seller, price); err != nil {
		return errExternalCall("Payment failed: "+err.Error(), err)
	}
	m.emit(Event{
		Type:     EventPurchased,
		Registry: registry,
		TokenID:  id,
		Seller:   seller,
		Buyer:    buyer,
		Price:    BigInt(price.Text(10)),
	})
	return nil
}

// Listing returns the active listing for (registry, id); a zero-price listing
// means none.
func (m *Marketplace) Listing(registry Address, id uint64) Listing {
	key := listingKey{registry, id}
	price := m.listings[key]
	if price == nil {
		return Listing{Price: "0"}
	}
	return Listing{Seller: m.sellers[key], Price: BigInt(price.Text(10))}
}
