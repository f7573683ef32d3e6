// Package catalog holds the static menu: pizza sizes and flavors,
// hamburgers and drinks. It builds cart candidates from customer
// selections so prices always come from here, never from the client.
package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Reissam/cardapio-virtual/internal/cart"
)

var (
	ErrUnknownSize     = errors.New("unknown pizza size")
	ErrUnknownFlavor   = errors.New("unknown pizza flavor")
	ErrUnknownItem     = errors.New("item not on the menu")
	ErrFlavorCount     = errors.New("flavor count not allowed for this size")
	ErrDuplicateFlavor = errors.New("flavor selected more than once")
)

// PizzaSize is one selectable size. MaxFlavors is 2 for the large sizes,
// which can be split in half.
type PizzaSize struct {
	Code       string
	Name       string
	Price      decimal.Decimal
	MaxFlavors int
}

// Hamburger is one item from the hamburger menu
type Hamburger struct {
	Name  string
	Price decimal.Decimal
}

// Drink is one item from the drink menu. Size is the volume label.
type Drink struct {
	Name  string
	Size  string
	Price decimal.Decimal
}

var pizzaSizes = []PizzaSize{
	{Code: "P", Name: "Pequena", Price: decimal.NewFromFloat(25.90), MaxFlavors: 1},
	{Code: "M", Name: "Média", Price: decimal.NewFromFloat(35.90), MaxFlavors: 1},
	{Code: "G", Name: "Grande", Price: decimal.NewFromFloat(45.90), MaxFlavors: 2},
	{Code: "F", Name: "Família", Price: decimal.NewFromFloat(55.90), MaxFlavors: 2},
}

var pizzaFlavors = []string{
	"Margherita", "Pepperoni", "Calabresa", "Frango Catupiry", "Portuguesa",
	"Quatro Queijos", "Bacon", "Vegetariana", "Napolitana", "Toscana",
	"Camarão", "Chocolate", "Banana Canela", "Palmito", "Atum",
}

var hamburgers = []Hamburger{
	{Name: "X-Burger", Price: decimal.NewFromFloat(18.90)},
	{Name: "X-Salada", Price: decimal.NewFromFloat(21.90)},
	{Name: "X-Egg", Price: decimal.NewFromFloat(22.90)},
	{Name: "X-Bacon", Price: decimal.NewFromFloat(24.90)},
	{Name: "X-Frango", Price: decimal.NewFromFloat(23.90)},
	{Name: "X-Tudo", Price: decimal.NewFromFloat(28.90)},
	{Name: "Hambúrguer Artesanal", Price: decimal.NewFromFloat(32.90)},
	{Name: "Hambúrguer Vegetariano", Price: decimal.NewFromFloat(26.90)},
}

var drinks = []Drink{
	{Name: "Coca-Cola Lata", Size: "350ml", Price: decimal.NewFromFloat(4.50)},
	{Name: "Coca-Cola 1,5L", Size: "1,5L", Price: decimal.NewFromFloat(8.90)},
	{Name: "Coca-Cola 2L", Size: "2L", Price: decimal.NewFromFloat(10.90)},
	{Name: "Fanta Laranja Lata", Size: "350ml", Price: decimal.NewFromFloat(4.50)},
	{Name: "Fanta Laranja 2L", Size: "2L", Price: decimal.NewFromFloat(9.90)},
	{Name: "Guaraná Antarctica Lata", Size: "350ml", Price: decimal.NewFromFloat(4.50)},
	{Name: "Guaraná Antarctica 2L", Size: "2L", Price: decimal.NewFromFloat(9.90)},
	{Name: "Sprite Lata", Size: "350ml", Price: decimal.NewFromFloat(4.50)},
	{Name: "Sprite 2L", Size: "2L", Price: decimal.NewFromFloat(9.90)},
	{Name: "Água Mineral", Size: "500ml", Price: decimal.NewFromFloat(3.00)},
	{Name: "Suco Natural Laranja", Size: "300ml", Price: decimal.NewFromFloat(6.90)},
	{Name: "Suco Natural Limão", Size: "300ml", Price: decimal.NewFromFloat(6.90)},
	{Name: "Cerveja Skol Lata", Size: "350ml", Price: decimal.NewFromFloat(4.90)},
	{Name: "Cerveja Brahma Lata", Size: "350ml", Price: decimal.NewFromFloat(4.90)},
	{Name: "Suco de Uva Integral", Size: "300ml", Price: decimal.NewFromFloat(7.90)},
}

// PizzaSizes returns all selectable sizes
func PizzaSizes() []PizzaSize {
	return append([]PizzaSize(nil), pizzaSizes...)
}

// PizzaFlavors returns all selectable flavors
func PizzaFlavors() []string {
	return append([]string(nil), pizzaFlavors...)
}

// Hamburgers returns the hamburger menu
func Hamburgers() []Hamburger {
	return append([]Hamburger(nil), hamburgers...)
}

// Drinks returns the drink menu
func Drinks() []Drink {
	return append([]Drink(nil), drinks...)
}

func sizeByCode(code string) (PizzaSize, bool) {
	for _, s := range pizzaSizes {
		if s.Code == code {
			return s, true
		}
	}
	return PizzaSize{}, false
}

func isFlavor(name string) bool {
	for _, f := range pizzaFlavors {
		if f == name {
			return true
		}
	}
	return false
}

// BuildPizza validates a size code plus flavor selection and returns the
// cart candidate. Small and medium pizzas take exactly one flavor, large
// and family sizes take one or two distinct flavors. Flavor order is kept
// as selected.
func BuildPizza(sizeCode string, flavors []string) (cart.Candidate, error) {
	size, ok := sizeByCode(sizeCode)
	if !ok {
		return cart.Candidate{}, fmt.Errorf("%w: %q", ErrUnknownSize, sizeCode)
	}
	if len(flavors) < 1 || len(flavors) > size.MaxFlavors {
		return cart.Candidate{}, fmt.Errorf("%w: size %s takes 1 to %d, got %d",
			ErrFlavorCount, size.Code, size.MaxFlavors, len(flavors))
	}
	seen := make(map[string]bool, len(flavors))
	for _, f := range flavors {
		if !isFlavor(f) {
			return cart.Candidate{}, fmt.Errorf("%w: %q", ErrUnknownFlavor, f)
		}
		if seen[f] {
			return cart.Candidate{}, fmt.Errorf("%w: %q", ErrDuplicateFlavor, f)
		}
		seen[f] = true
	}

	return cart.Candidate{
		Category:  cart.CategoryPizza,
		Name:      "Pizza " + size.Name,
		Size:      size.Code,
		Flavors:   append([]string(nil), flavors...),
		UnitPrice: size.Price,
	}, nil
}

// BuildHamburger looks up a hamburger by name and returns the cart candidate
func BuildHamburger(name string) (cart.Candidate, error) {
	for _, h := range hamburgers {
		if h.Name == name {
			return cart.Candidate{
				Category:  cart.CategoryHamburger,
				Name:      h.Name,
				UnitPrice: h.Price,
			}, nil
		}
	}
	return cart.Candidate{}, fmt.Errorf("%w: %q", ErrUnknownItem, name)
}

// BuildDrink looks up a drink by name. The volume goes into the size
// field so distinct bottlings of the same drink stay distinct entries.
func BuildDrink(name string) (cart.Candidate, error) {
	for _, d := range drinks {
		if d.Name == name {
			return cart.Candidate{
				Category:  cart.CategoryDrink,
				Name:      d.Name,
				Size:      d.Size,
				UnitPrice: d.Price,
			}, nil
		}
	}
	return cart.Candidate{}, fmt.Errorf("%w: %q", ErrUnknownItem, name)
}
