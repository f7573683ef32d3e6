// Package order sequences a single ordering session through its states:
// browsing the menu, entering payment data, and the final receipt. The
// Flow is the only authority over the cart and the stored submission, so
// every mutation path goes through one place.
package order

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Reissam/cardapio-virtual/internal/cart"
	"github.com/Reissam/cardapio-virtual/internal/payment"
)

var (
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrIllegalTransition marks a transition the state machine does not
	// define, a caller bug rather than bad user input.
	ErrIllegalTransition = errors.New("illegal order flow transition")
)

// State of the ordering session
type State string

const (
	StateBrowsing State = "browsing"
	StatePayment  State = "payment"
	StateReceipt  State = "receipt"
)

func (s State) String() string {
	return string(s)
}

// Order is the finalized result of a session: the cart snapshot taken at
// payment submission, the validated submission, and the total at that
// instant.
type Order struct {
	Number     string
	Entries    []cart.Entry
	Submission payment.Submission
	Total      decimal.Decimal
	PlacedAt   time.Time
}

// Change returns the change owed for a cash order
func (o *Order) Change() decimal.Decimal {
	return o.Submission.Change(o.Total)
}

// Flow is the order state machine. Safe for concurrent use; all
// operations are serialized behind one mutex.
type Flow struct {
	mu     sync.Mutex
	logger zerolog.Logger
	state  State
	cart   *cart.Cart
	order  *Order

	now func() time.Time
}

func NewFlow(logger zerolog.Logger) *Flow {
	return &Flow{
		logger: logger,
		state:  StateBrowsing,
		cart:   cart.New(),
		now:    time.Now,
	}
}

// State returns the current state
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// AddItem merges a menu selection into the cart. Only allowed while browsing.
func (f *Flow) AddItem(candidate cart.Candidate) (cart.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateBrowsing {
		return cart.Entry{}, fmt.Errorf("%w: add item in state %s", ErrIllegalTransition, f.state)
	}

	entry := f.cart.Add(candidate)
	f.logger.Debug().
		Str("entry_id", entry.ID).
		Str("name", entry.Name).
		Int("quantity", entry.Quantity).
		Msg("item added to cart")
	return entry, nil
}

// SetQuantity sets an entry's quantity to exactly the given value; zero
// removes the entry. Only allowed while browsing.
func (f *Flow) SetQuantity(id string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateBrowsing {
		return fmt.Errorf("%w: set quantity in state %s", ErrIllegalTransition, f.state)
	}
	return f.cart.SetQuantity(id, quantity)
}

// Entries returns the current cart entries in insertion order
func (f *Flow) Entries() []cart.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cart.Entries()
}

// Total returns the current cart total, recomputed on every call
func (f *Flow) Total() decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cart.Total()
}

// ItemCount returns the number of distinct cart entries
func (f *Flow) ItemCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cart.ItemCount()
}

// RequestCheckout moves browsing to payment. Refused with ErrEmptyCart
// when the cart has no entries; the state does not change.
func (f *Flow) RequestCheckout() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateBrowsing {
		return fmt.Errorf("%w: checkout in state %s", ErrIllegalTransition, f.state)
	}
	if f.cart.ItemCount() == 0 {
		return ErrEmptyCart
	}

	f.state = StatePayment
	f.logger.Info().
		Int("items", f.cart.ItemCount()).
		Str("total", f.cart.Total().StringFixed(2)).
		Msg("checkout started")
	return nil
}

// Back returns from payment to browsing. The cart is untouched.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StatePayment {
		return fmt.Errorf("%w: back in state %s", ErrIllegalTransition, f.state)
	}

	f.state = StateBrowsing
	f.logger.Debug().Msg("returned to browsing")
	return nil
}

// SubmitPayment validates the draft against the current total and, on
// success, finalizes the order: the cart is snapshotted, the submission
// stored, and the flow moves to receipt. On a validation failure the
// state stays at payment and the failure is returned as-is.
func (f *Flow) SubmitPayment(draft payment.Draft) (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StatePayment {
		return nil, fmt.Errorf("%w: submit payment in state %s", ErrIllegalTransition, f.state)
	}

	total := f.cart.Total()
	sub, err := payment.Validate(draft, total)
	if err != nil {
		f.logger.Warn().Err(err).Msg("payment submission rejected")
		return nil, err
	}

	placedAt := f.now()
	f.order = &Order{
		Number:     orderNumber(placedAt),
		Entries:    f.cart.Entries(),
		Submission: sub,
		Total:      total,
		PlacedAt:   placedAt,
	}
	f.state = StateReceipt

	f.logger.Info().
		Str("order", f.order.Number).
		Str("method", sub.Method.String()).
		Str("total", total.StringFixed(2)).
		Msg("order placed")
	return f.snapshotOrder(), nil
}

// Receipt returns the finalized order. Only defined in the receipt state.
func (f *Flow) Receipt() (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateReceipt {
		return nil, fmt.Errorf("%w: receipt in state %s", ErrIllegalTransition, f.state)
	}
	return f.snapshotOrder(), nil
}

// NewOrder discards the finished order and starts over with an empty
// cart. Only defined in the receipt state.
func (f *Flow) NewOrder() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateReceipt {
		return fmt.Errorf("%w: new order in state %s", ErrIllegalTransition, f.state)
	}

	f.cart.Clear()
	f.order = nil
	f.state = StateBrowsing
	f.logger.Debug().Msg("session reset for a new order")
	return nil
}

// snapshotOrder copies the stored order so callers cannot mutate it
func (f *Flow) snapshotOrder() *Order {
	o := *f.order
	o.Entries = make([]cart.Entry, len(f.order.Entries))
	for i, e := range f.order.Entries {
		e.Flavors = append([]string(nil), e.Flavors...)
		o.Entries[i] = e
	}
	return &o
}

// orderNumber derives the human-facing order number from the placement
// time, an SB prefix plus the last six digits of the unix milliseconds.
func orderNumber(t time.Time) string {
	ms := t.UnixMilli()
	return fmt.Sprintf("SB%06d", ms%1000000)
}
