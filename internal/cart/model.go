package cart

import (
	"errors"

	"cardapio/internal/menu"

	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound         = errors.New("cart item not found")
	ErrNoRestaurant         = errors.New("no restaurant bound to cart")
	ErrConfirmationRequired = errors.New("another restaurant's cart has items")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
)

// CartItem is one line of a restaurant cart.
type CartItem struct {
	ID                  string
	Dish                *menu.MenuItem
	SelectedComplements Selection
	Quantity            int
	UnitPrice           decimal.Decimal
	TotalPrice          decimal.Decimal
}

func (i *CartItem) reprice() {
	i.TotalPrice = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i *CartItem) clone() *CartItem {
	cp := *i
	cp.SelectedComplements = i.SelectedComplements.Normalize()
	return &cp
}

// RestaurantCart holds one restaurant's lines. Totals are recomputed from
// the lines after every mutation.
type RestaurantCart struct {
	RestaurantID string
	Items        []*CartItem
	TotalItems   int
	TotalPrice   decimal.Decimal
}

func newRestaurantCart(restaurantID string) *RestaurantCart {
	return &RestaurantCart{
		RestaurantID: restaurantID,
		Items:        []*CartItem{},
		TotalPrice:   decimal.Zero,
	}
}

func (c *RestaurantCart) recalc() {
	c.TotalItems = 0
	c.TotalPrice = decimal.Zero
	for _, item := range c.Items {
		c.TotalItems += item.Quantity
		c.TotalPrice = c.TotalPrice.Add(item.TotalPrice)
	}
}

func (c *RestaurantCart) find(itemID string) (int, *CartItem) {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i, item
		}
	}
	return -1, nil
}

func (c *RestaurantCart) clone() *RestaurantCart {
	cp := &RestaurantCart{
		RestaurantID: c.RestaurantID,
		Items:        make([]*CartItem, 0, len(c.Items)),
		TotalItems:   c.TotalItems,
		TotalPrice:   c.TotalPrice,
	}
	for _, item := range c.Items {
		cp.Items = append(cp.Items, item.clone())
	}
	return cp
}
