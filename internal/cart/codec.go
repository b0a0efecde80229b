package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"cardapio/internal/menu"
)

// StorageKey is the key the cart map is persisted under.
const StorageKey = "digital-menu-carts"

// complementPair is one [groupTitle, [names...]] entry of a stored item.
type complementPair struct {
	Group string
	Names []string
}

func (p complementPair) MarshalJSON() ([]byte, error) {
	names := p.Names
	if names == nil {
		names = []string{}
	}
	return json.Marshal([]any{p.Group, names})
}

func (p *complementPair) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("complement pair has %d elements, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Group); err != nil {
		return fmt.Errorf("complement group: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Names); err != nil {
		return fmt.Errorf("complement names: %w", err)
	}
	return nil
}

type storedItem struct {
	ID                  string           `json:"id"`
	Dish                *menu.MenuItem   `json:"dish"`
	SelectedComplements []complementPair `json:"selectedComplements"`
	Quantity            int              `json:"quantity"`
	UnitPrice           float64          `json:"unitPrice"`
	TotalPrice          float64          `json:"totalPrice"`
}

type storedCart struct {
	Items []json.RawMessage `json:"items"`
}

// Encode serializes every restaurant cart into the storage format.
func Encode(carts map[string]*RestaurantCart) ([]byte, error) {
	out := make(map[string]map[string][]storedItem, len(carts))

	for restaurantID, c := range carts {
		items := make([]storedItem, 0, len(c.Items))
		for _, item := range c.Items {
			sel := item.SelectedComplements.Normalize()

			pairs := make([]complementPair, 0, len(sel))
			for _, group := range sel.Groups() {
				pairs = append(pairs, complementPair{Group: group, Names: sel[group]})
			}

			items = append(items, storedItem{
				ID:                  item.ID,
				Dish:                item.Dish,
				SelectedComplements: pairs,
				Quantity:            item.Quantity,
				UnitPrice:           item.UnitPrice.InexactFloat64(),
				TotalPrice:          item.TotalPrice.InexactFloat64(),
			})
		}
		out[restaurantID] = map[string][]storedItem{"items": items}
	}

	return json.Marshal(out)
}

func decodeItem(raw json.RawMessage) (*CartItem, error) {
	var s storedItem
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s.Dish == nil || s.Dish.Name == "" {
		return nil, errors.New("missing dish")
	}
	if s.Quantity <= 0 {
		return nil, fmt.Errorf("quantity %d", s.Quantity)
	}

	sel := make(Selection, len(s.SelectedComplements))
	for _, p := range s.SelectedComplements {
		sel[p.Group] = append(sel[p.Group], p.Names...)
	}
	sel = sel.Normalize()

	item := &CartItem{
		ID:                  s.ID,
		Dish:                s.Dish,
		SelectedComplements: sel,
		Quantity:            s.Quantity,
		UnitPrice:           CalculateUnitPrice(s.Dish, sel),
	}
	if item.ID == "" {
		item.ID = GenerateItemID(s.Dish, sel)
	}
	item.reprice()

	return item, nil
}

// Decode parses the storage format one item at a time. Malformed items are
// skipped and reported in the returned error while the rest still load.
// Prices are recomputed from the stored dish.
func Decode(data []byte) (map[string]*RestaurantCart, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return map[string]*RestaurantCart{}, fmt.Errorf("decode carts: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	carts := make(map[string]*RestaurantCart, len(raw))
	var errs []error

	for _, restaurantID := range ids {
		var sc storedCart
		if err := json.Unmarshal(raw[restaurantID], &sc); err != nil {
			errs = append(errs, fmt.Errorf("restaurant %s: %w", restaurantID, err))
			continue
		}

		c := newRestaurantCart(restaurantID)
		for i, rawItem := range sc.Items {
			item, err := decodeItem(rawItem)
			if err != nil {
				errs = append(errs, fmt.Errorf("restaurant %s item %d: %w", restaurantID, i, err))
				continue
			}
			c.Items = append(c.Items, item)
		}
		c.recalc()
		carts[restaurantID] = c
	}

	return carts, errors.Join(errs...)
}
