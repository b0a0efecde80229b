package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_StorageFormat(t *testing.T) {
	s, _ := newTestStore(nil)
	_, _ = s.AddItem(context.Background(), burger(), Selection{"Size": {"Large"}, "Extras": {"Egg", "Bacon"}})

	data, err := Encode(s.Carts())
	require.NoError(t, err)

	var doc map[string]struct {
		Items []struct {
			ID                  string              `json:"id"`
			Dish                map[string]any      `json:"dish"`
			SelectedComplements [][]json.RawMessage `json:"selectedComplements"`
			Quantity            int                 `json:"quantity"`
			UnitPrice           float64             `json:"unitPrice"`
			TotalPrice          float64             `json:"totalPrice"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	items := doc["casa-do-burger"].Items
	require.Len(t, items, 1)
	assert.Equal(t, "Burger", items[0].Dish["name"])
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 31.5, items[0].UnitPrice)
	assert.Equal(t, 31.5, items[0].TotalPrice)

	require.Len(t, items[0].SelectedComplements, 2)
	assert.JSONEq(t, `"Extras"`, string(items[0].SelectedComplements[0][0]))
	assert.JSONEq(t, `["Bacon","Egg"]`, string(items[0].SelectedComplements[0][1]))
	assert.JSONEq(t, `"Size"`, string(items[0].SelectedComplements[1][0]))
}

func TestDecode_SkipsMalformedItems(t *testing.T) {
	data := []byte(`{
		"casa-do-burger": {"items": [
			{"id": "ok", "dish": {"name": "Soda", "price": "6,00"}, "selectedComplements": [], "quantity": 2, "unitPrice": 1, "totalPrice": 1},
			{"id": "no-dish", "selectedComplements": [], "quantity": 1},
			{"id": "bad-pair", "dish": {"name": "Soda", "price": "6,00"}, "selectedComplements": [["Size"]], "quantity": 1},
			{"id": "zero", "dish": {"name": "Soda", "price": "6,00"}, "selectedComplements": [], "quantity": 0},
			"not an object"
		]},
		"pizzaria": 42,
		"bar": {"items": [
			{"id": "b", "dish": {"name": "Chopp", "price": "12,00"}, "selectedComplements": null, "quantity": 1}
		]}
	}`)

	carts, err := Decode(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restaurant casa-do-burger item 1")
	assert.Contains(t, err.Error(), "restaurant casa-do-burger item 2")
	assert.Contains(t, err.Error(), "restaurant casa-do-burger item 3")
	assert.Contains(t, err.Error(), "restaurant casa-do-burger item 4")
	assert.Contains(t, err.Error(), "restaurant pizzaria")

	require.Contains(t, carts, "casa-do-burger")
	c := carts["casa-do-burger"]
	require.Len(t, c.Items, 1)
	assert.Equal(t, "ok", c.Items[0].ID)

	// stored prices are ignored in favour of the dish
	assert.Equal(t, "6.00", c.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "12.00", c.TotalPrice.StringFixed(2))

	assert.NotContains(t, carts, "pizzaria")
	assert.Equal(t, 1, carts["bar"].TotalItems)
}

func TestDecode_NotAnObject(t *testing.T) {
	carts, err := Decode([]byte(`[]`))
	assert.Error(t, err)
	assert.Empty(t, carts)
}

func TestDecode_MissingIDIsRegenerated(t *testing.T) {
	carts, err := Decode([]byte(`{"r1":{"items":[{"dish":{"name":"Soda","price":"6,00"},"quantity":1}]}}`))
	require.NoError(t, err)
	assert.Equal(t, "Soda-", carts["r1"].Items[0].ID)
}

func TestStore_LoadKeepsValidItems(t *testing.T) {
	p := &memPersister{data: []byte(`{"r1":{"items":[
		{"id":"x","dish":{"name":"Soda","price":"6,00"},"selectedComplements":[],"quantity":1},
		{"id":"y","quantity":3}
	]}}`)}

	s := NewStore(StoreConfig{Persister: p})
	err := s.Load(context.Background())
	assert.Error(t, err)

	s.SetCurrentRestaurant("r1")
	assert.Len(t, s.Cart().Items, 1)
}

func TestEncode_OmitsUnsetCreatedAt(t *testing.T) {
	s, _ := newTestStore(nil)
	_, err := s.AddItem(context.Background(), soda(), nil)
	require.NoError(t, err)

	data, err := Encode(s.Carts())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "created_at")
	assert.NotContains(t, string(data), "0001-01-01")
}
