package order

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reissam/cardapio-virtual/internal/cart"
	"github.com/Reissam/cardapio-virtual/internal/payment"
)

func newTestFlow() *Flow {
	return NewFlow(zerolog.Nop())
}

func drinkCandidate() cart.Candidate {
	return cart.Candidate{
		Category:  cart.CategoryDrink,
		Name:      "Coca-Cola Lata",
		Size:      "350ml",
		UnitPrice: decimal.NewFromFloat(4.50),
	}
}

func pizzaCandidate() cart.Candidate {
	return cart.Candidate{
		Category:  cart.CategoryPizza,
		Name:      "Pizza Média",
		Size:      "M",
		Flavors:   []string{"Calabresa", "Catupiry"},
		UnitPrice: decimal.NewFromFloat(35.90),
	}
}

func cashDraft(changeFor float64) payment.Draft {
	return payment.Draft{
		Method:    payment.MethodCash,
		ChangeFor: decimal.NewFromFloat(changeFor),
		Address:   "Rua das Flores, 123",
		Phone:     "(11) 99999-9999",
	}
}

// fills the cart with 2x drink + 1x pizza, total 44.90
func fillCart(t *testing.T, f *Flow) {
	t.Helper()
	entry, err := f.AddItem(drinkCandidate())
	require.NoError(t, err)
	require.NoError(t, f.SetQuantity(entry.ID, 2))
	_, err = f.AddItem(pizzaCandidate())
	require.NoError(t, err)
}

func TestFlow_StartsBrowsingWithEmptyCart(t *testing.T) {
	f := newTestFlow()

	assert.Equal(t, StateBrowsing, f.State())
	assert.Equal(t, 0, f.ItemCount())
	assert.True(t, f.Total().IsZero())
}

func TestRequestCheckout_EmptyCart(t *testing.T) {
	f := newTestFlow()

	err := f.RequestCheckout()
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateBrowsing, f.State())
}

func TestRequestCheckout_Success(t *testing.T) {
	f := newTestFlow()
	fillCart(t, f)

	require.NoError(t, f.RequestCheckout())
	assert.Equal(t, StatePayment, f.State())
}

func TestBack_KeepsCart(t *testing.T) {
	f := newTestFlow()
	fillCart(t, f)
	require.NoError(t, f.RequestCheckout())

	require.NoError(t, f.Back())

	assert.Equal(t, StateBrowsing, f.State())
	assert.Equal(t, 2, f.ItemCount())
	assert.Equal(t, "44.90", f.Total().StringFixed(2))
}

func TestSubmitPayment_CashScenario(t *testing.T) {
	f := newTestFlow()
	fillCart(t, f)
	require.NoError(t, f.RequestCheckout())

	order, err := f.SubmitPayment(cashDraft(50.00))
	require.NoError(t, err)

	assert.Equal(t, StateReceipt, f.State())
	assert.Equal(t, "44.90", order.Total.StringFixed(2))
	assert.Equal(t, "5.10", order.Change().StringFixed(2))
	assert.Len(t, order.Entries, 2)
	assert.Regexp(t, `^SB\d{6}$`, order.Number)
}

func TestSubmitPayment_InsufficientChange(t *testing.T) {
	f := newTestFlow()
	fillCart(t, f)
	require.NoError(t, f.RequestCheckout())

	_, err := f.SubmitPayment(cashDraft(44.89))
	assert.ErrorIs(t, err, payment.ErrInsufficientChange)
	assert.Equal(t, StatePayment, f.State())
}

func TestSubmitPayment_ChangeEqualToTotalSucceeds(t *testing.T) {
	f := newTestFlow()
	fillCart(t, f)
	require.NoError(t, f.RequestCheckout())

	order, err := f.SubmitPayment(cashDraft(44.90))
	require.NoError(t, err)
	assert.True(t, order.Change().IsZero())
}

func TestSubmitPayment_ValidationFailureKeepsState(t *testing.T) {
	f := newTestFlow()
	fillCart(t, f)
	require.NoError(t, f.RequestCheckout())

	draft := cashDraft(50.00)
	draft.Address = "  "
	_, err := f.SubmitPayment(draft)
	assert.ErrorIs(t, err, payment.ErrMissingAddress)
	assert.Equal(t, StatePayment, f.State())

	// Correcting the input lets the same session finish
	_, err = f.SubmitPayment(cashDraft(50.00))
	require.NoError(t, err)
	assert.Equal(t, StateReceipt, f.State())
}

func TestSubmitPayment_SnapshotIsImmutable(t *testing.T) {
	f := newTestFlow()
	fillCart(t, f)
	require.NoError(t, f.RequestCheckout())

	order, err := f.SubmitPayment(cashDraft(50.00))
	require.NoError(t, err)

	order.Entries[0].Quantity = 99

	stored, err := f.Receipt()
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Entries[0].Quantity)
}

func TestReceipt_OnlyDefinedAfterSubmission(t *testing.T) {
	f := newTestFlow()

	_, err := f.Receipt()
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestNewOrder_ResetsEverything(t *testing.T) {
	f := newTestFlow()
	fillCart(t, f)
	require.NoError(t, f.RequestCheckout())
	_, err := f.SubmitPayment(cashDraft(50.00))
	require.NoError(t, err)

	require.NoError(t, f.NewOrder())

	assert.Equal(t, StateBrowsing, f.State())
	assert.Equal(t, 0, f.ItemCount())

	// No residual payment data retrievable
	_, err = f.Receipt()
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestUndefinedTransitionsFailLoudly(t *testing.T) {
	t.Run("submit while browsing", func(t *testing.T) {
		f := newTestFlow()
		_, err := f.SubmitPayment(cashDraft(50.00))
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("back while browsing", func(t *testing.T) {
		f := newTestFlow()
		assert.ErrorIs(t, f.Back(), ErrIllegalTransition)
	})

	t.Run("new order while browsing", func(t *testing.T) {
		f := newTestFlow()
		assert.ErrorIs(t, f.NewOrder(), ErrIllegalTransition)
	})

	t.Run("checkout while in payment", func(t *testing.T) {
		f := newTestFlow()
		fillCart(t, f)
		require.NoError(t, f.RequestCheckout())
		assert.ErrorIs(t, f.RequestCheckout(), ErrIllegalTransition)
	})

	t.Run("cart mutation outside browsing", func(t *testing.T) {
		f := newTestFlow()
		entry, err := f.AddItem(drinkCandidate())
		require.NoError(t, err)
		require.NoError(t, f.RequestCheckout())

		_, err = f.AddItem(drinkCandidate())
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.ErrorIs(t, f.SetQuantity(entry.ID, 3), ErrIllegalTransition)
	})
}

func TestOrderNumber_DerivedFromPlacementTime(t *testing.T) {
	f := newTestFlow()
	f.now = func() time.Time { return time.UnixMilli(1756723456789) }
	fillCart(t, f)
	require.NoError(t, f.RequestCheckout())

	order, err := f.SubmitPayment(cashDraft(50.00))
	require.NoError(t, err)
	assert.Equal(t, "SB456789", order.Number)
}
