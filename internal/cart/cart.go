package cart

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common errors returned by the cart
var (
	ErrEntryNotFound   = errors.New("cart entry not found")
	ErrInvalidQuantity = errors.New("quantity must be zero or positive")
)

// Category identifies which menu an entry came from
type Category string

const (
	CategoryPizza     Category = "pizza"
	CategoryHamburger Category = "hamburger"
	CategoryDrink     Category = "drink"
)

func (c Category) String() string {
	return string(c)
}

// Candidate is an item the customer picked from the menu, before it is
// merged into the cart. Size and Flavors are set only for categories
// that have them.
type Candidate struct {
	Category  Category
	Name      string
	Size      string
	Flavors   []string
	UnitPrice decimal.Decimal
}

// Entry is one line item in the cart
type Entry struct {
	ID        string
	Category  Category
	Name      string
	Size      string
	Flavors   []string
	UnitPrice decimal.Decimal
	Quantity  int
}

// LineTotal returns UnitPrice multiplied by Quantity
func (e Entry) LineTotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

func (e *Entry) clone() Entry {
	out := *e
	out.Flavors = append([]string(nil), e.Flavors...)
	return out
}

// mergeKey is the derived equivalence key: two candidates with the same
// name, size and flavor sequence (order-sensitive) collapse into one entry.
func mergeKey(name, size string, flavors []string) string {
	return name + "\x1f" + size + "\x1f" + strings.Join(flavors, "\x1f")
}

// Cart holds the ordered collection of entries. It is not safe for
// concurrent use; the flow controller serializes access to it.
type Cart struct {
	entries []*Entry
	byKey   map[string]*Entry
}

func New() *Cart {
	return &Cart{
		byKey: make(map[string]*Entry),
	}
}

// Add merges the candidate into the cart. An entry equivalent to the
// candidate gets its quantity incremented; otherwise a new entry with
// quantity 1 is appended. Returns the affected entry.
func (c *Cart) Add(candidate Candidate) Entry {
	key := mergeKey(candidate.Name, candidate.Size, candidate.Flavors)
	if existing, ok := c.byKey[key]; ok {
		existing.Quantity++
		return existing.clone()
	}

	entry := &Entry{
		ID:        uuid.New().String(),
		Category:  candidate.Category,
		Name:      candidate.Name,
		Size:      candidate.Size,
		Flavors:   append([]string(nil), candidate.Flavors...),
		UnitPrice: candidate.UnitPrice,
		Quantity:  1,
	}
	c.entries = append(c.entries, entry)
	c.byKey[key] = entry
	return entry.clone()
}

// SetQuantity sets the quantity of the entry with the given id to exactly
// the given value. Zero removes the entry (no-op when the id is absent).
func (c *Cart) SetQuantity(id string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		c.remove(id)
		return nil
	}
	for _, entry := range c.entries {
		if entry.ID == id {
			entry.Quantity = quantity
			return nil
		}
	}
	return ErrEntryNotFound
}

func (c *Cart) remove(id string) {
	for i, entry := range c.entries {
		if entry.ID == id {
			delete(c.byKey, mergeKey(entry.Name, entry.Size, entry.Flavors))
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// Total returns the sum of unit price times quantity over all entries.
// It is always recomputed from the entries, never cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.NewFromInt(0)
	for _, entry := range c.entries {
		total = total.Add(entry.LineTotal())
	}
	return total
}

// ItemCount returns the number of distinct entries, not the summed quantity
func (c *Cart) ItemCount() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in insertion order
func (c *Cart) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry.clone())
	}
	return out
}

// Clear removes every entry
func (c *Cart) Clear() {
	c.entries = nil
	c.byKey = make(map[string]*Entry)
}
