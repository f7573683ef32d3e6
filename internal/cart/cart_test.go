package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pizzaCandidate(flavors ...string) Candidate {
	return Candidate{
		Category:  CategoryPizza,
		Name:      "Pizza Média",
		Size:      "M",
		Flavors:   flavors,
		UnitPrice: decimal.NewFromFloat(35.90),
	}
}

func drinkCandidate() Candidate {
	return Candidate{
		Category:  CategoryDrink,
		Name:      "Coca-Cola Lata",
		Size:      "350ml",
		UnitPrice: decimal.NewFromFloat(4.50),
	}
}

func TestAdd_EquivalentCandidatesMerge(t *testing.T) {
	c := New()

	first := c.Add(pizzaCandidate("Calabresa", "Catupiry"))
	second := c.Add(pizzaCandidate("Calabresa", "Catupiry"))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Quantity)
	assert.Equal(t, 1, c.ItemCount())
}

func TestAdd_FlavorOrderIsSignificant(t *testing.T) {
	c := New()

	c.Add(pizzaCandidate("Calabresa", "Catupiry"))
	c.Add(pizzaCandidate("Catupiry", "Calabresa"))

	assert.Equal(t, 2, c.ItemCount())
}

func TestAdd_DifferentSizesStayDistinct(t *testing.T) {
	c := New()

	small := pizzaCandidate("Margherita")
	small.Name = "Pizza Pequena"
	small.Size = "P"
	small.UnitPrice = decimal.NewFromFloat(25.90)

	c.Add(pizzaCandidate("Margherita"))
	c.Add(small)

	assert.Equal(t, 2, c.ItemCount())
}

func TestAdd_NewEntryGetsUniqueID(t *testing.T) {
	c := New()

	pizza := c.Add(pizzaCandidate("Pepperoni"))
	drink := c.Add(drinkCandidate())

	assert.NotEmpty(t, pizza.ID)
	assert.NotEmpty(t, drink.ID)
	assert.NotEqual(t, pizza.ID, drink.ID)
}

func TestSetQuantity_OverwritesAbsolutely(t *testing.T) {
	c := New()
	entry := c.Add(drinkCandidate())
	c.Add(drinkCandidate()) // quantity now 2

	require.NoError(t, c.SetQuantity(entry.ID, 5))

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Quantity)
}

func TestSetQuantity_ZeroRemovesEntry(t *testing.T) {
	c := New()
	entry := c.Add(drinkCandidate())
	c.Add(pizzaCandidate("Bacon"))
	require.Equal(t, 2, c.ItemCount())

	require.NoError(t, c.SetQuantity(entry.ID, 0))

	assert.Equal(t, 1, c.ItemCount())
	// Removing frees the equivalence slot, the next add starts fresh
	readded := c.Add(drinkCandidate())
	assert.Equal(t, 1, readded.Quantity)
	assert.NotEqual(t, entry.ID, readded.ID)
}

func TestSetQuantity_ZeroOnAbsentIDIsNoop(t *testing.T) {
	c := New()
	c.Add(drinkCandidate())

	require.NoError(t, c.SetQuantity("missing", 0))
	assert.Equal(t, 1, c.ItemCount())
}

func TestSetQuantity_UnknownEntry(t *testing.T) {
	c := New()

	err := c.SetQuantity("missing", 3)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestSetQuantity_NegativeRejected(t *testing.T) {
	c := New()
	entry := c.Add(drinkCandidate())

	err := c.SetQuantity(entry.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Quantity)
}

func TestTotal(t *testing.T) {
	c := New()
	drink := c.Add(drinkCandidate())
	require.NoError(t, c.SetQuantity(drink.ID, 2))
	c.Add(pizzaCandidate("Calabresa"))

	// 2 * 4.50 + 1 * 35.90
	assert.True(t, c.Total().Equal(decimal.NewFromFloat(44.90)),
		"got %s", c.Total())

	// Repeated reads without mutation return the same value
	assert.True(t, c.Total().Equal(c.Total()))
}

func TestTotal_StableUnderInsertionOrder(t *testing.T) {
	a := New()
	a.Add(drinkCandidate())
	a.Add(pizzaCandidate("Atum"))

	b := New()
	b.Add(pizzaCandidate("Atum"))
	b.Add(drinkCandidate())

	assert.True(t, a.Total().Equal(b.Total()))
}

func TestTotal_EmptyCartIsZero(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero())
}

func TestEntries_ReturnsCopies(t *testing.T) {
	c := New()
	c.Add(pizzaCandidate("Calabresa", "Catupiry"))

	entries := c.Entries()
	entries[0].Quantity = 99
	entries[0].Flavors[0] = "mutated"

	fresh := c.Entries()
	assert.Equal(t, 1, fresh[0].Quantity)
	assert.Equal(t, "Calabresa", fresh[0].Flavors[0])
}

func TestEntries_PreserveInsertionOrder(t *testing.T) {
	c := New()
	c.Add(drinkCandidate())
	c.Add(pizzaCandidate("Portuguesa"))

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, CategoryDrink, entries[0].Category)
	assert.Equal(t, CategoryPizza, entries[1].Category)
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(drinkCandidate())
	c.Add(pizzaCandidate("Toscana"))

	c.Clear()

	assert.Equal(t, 0, c.ItemCount())
	assert.True(t, c.Total().IsZero())

	// Equivalence slots are gone too
	entry := c.Add(drinkCandidate())
	assert.Equal(t, 1, entry.Quantity)
}

func TestLineTotal(t *testing.T) {
	e := Entry{UnitPrice: decimal.NewFromFloat(35.90), Quantity: 2}
	assert.Equal(t, "71.80", e.LineTotal().StringFixed(2))
}
