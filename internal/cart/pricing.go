package cart

import (
	"cardapio/internal/menu"

	"github.com/shopspring/decimal"
)

// CalculateUnitPrice adds the selected complement prices to the dish base
// price. Groups or complements no longer on the dish, and prices that do
// not parse, contribute nothing.
func CalculateUnitPrice(dish *menu.MenuItem, sel Selection) decimal.Decimal {
	price, err := menu.ParsePrice(dish.Price)
	if err != nil {
		price = decimal.Zero
	}

	for group, names := range sel.Normalize() {
		g, ok := dish.Group(group)
		if !ok {
			continue
		}
		for _, name := range names {
			c, ok := g.Complement(name)
			if !ok || c.Price == "" {
				continue
			}
			if p, err := menu.ParsePrice(c.Price); err == nil {
				price = price.Add(p)
			}
		}
	}

	return price
}

// AreItemsIdentical compares dish name and selections, independent of ids.
func AreItemsIdentical(a, b *CartItem) bool {
	if a.Dish == nil || b.Dish == nil {
		return false
	}
	return a.Dish.Name == b.Dish.Name && a.SelectedComplements.Equal(b.SelectedComplements)
}
