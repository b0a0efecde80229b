package cart

import (
	"context"
	"testing"

	"cardapio/internal/menu"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateItemID_SetSemantics(t *testing.T) {
	dish := burger()

	a := GenerateItemID(dish, Selection{"Size": {"Large"}, "Extras": {"Cheese", "Bacon"}})
	b := GenerateItemID(dish, Selection{"Extras": {"Bacon", "Cheese", "Bacon"}, "Size": {"Large"}})

	assert.Equal(t, a, b)
	assert.Equal(t, "Burger-ExtrasBaconCheeseSizeLarge", a)
}

func TestGenerateItemID_IgnoresEmptyGroups(t *testing.T) {
	dish := burger()

	assert.Equal(t,
		GenerateItemID(dish, Selection{"Size": {"Large"}}),
		GenerateItemID(dish, Selection{"Size": {"Large"}, "Extras": {}}),
	)
}

func TestGenerateItemID_StripsUnsafeRunes(t *testing.T) {
	dish := &menu.MenuItem{Name: "Pão de Queijo (6 un.)"}
	assert.Equal(t, "Pode_Queijo6un-", GenerateItemID(&menu.MenuItem{Name: "Pão de_Queijo (6 un.)"}, nil))
	assert.Regexp(t, `^[a-zA-Z0-9\-_]*$`, GenerateItemID(dish, Selection{"Molho": {"Alho & Óleo"}}))
}

func TestGenerateItemID_NameCollision(t *testing.T) {
	a := &menu.MenuItem{ID: "1", Name: "Combo", Price: "10,00"}
	b := &menu.MenuItem{ID: "2", Name: "Combo", Price: "30,00"}

	assert.Equal(t, GenerateItemID(a, nil), GenerateItemID(b, nil))
	assert.NotEqual(t, StableItemID(a, nil), StableItemID(b, nil))
}

func TestStableItemID(t *testing.T) {
	dish := burger()

	id := StableItemID(dish, Selection{"Size": {"Large"}})
	assert.Regexp(t, `^b1-[0-9a-f]{16}$`, id)
	assert.Equal(t, id, StableItemID(dish, Selection{"Size": {"Large", "Large"}, "Extras": nil}))
	assert.NotEqual(t, id, StableItemID(dish, Selection{"Size": {"Small"}}))

	noID := burger()
	noID.ID = ""
	assert.Equal(t, GenerateItemID(noID, Selection{"Size": {"Large"}}), StableItemID(noID, Selection{"Size": {"Large"}}))
}

func TestCalculateUnitPrice(t *testing.T) {
	dish := burger()

	cases := []struct {
		name string
		sel  Selection
		want string
	}{
		{"base only", nil, "20"},
		{"size", Selection{"Size": {"Large"}}, "25"},
		{"extras", Selection{"Size": {"Small"}, "Extras": {"Bacon", "Cheese"}}, "27.5"},
		{"missing group ignored", Selection{"Sauce": {"Garlic"}}, "20"},
		{"missing complement ignored", Selection{"Size": {"Huge"}}, "20"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateUnitPrice(dish, tc.sel)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestCalculateUnitPrice_UnparsablePrices(t *testing.T) {
	dish := burger()
	dish.Price = "consulte"
	dish.ComplementGroups[0].Complements[1].Price = "??"

	assert.True(t, CalculateUnitPrice(dish, Selection{"Size": {"Large"}}).IsZero())
}

func TestAreItemsIdentical(t *testing.T) {
	a := &CartItem{Dish: burger(), SelectedComplements: Selection{"Extras": {"Egg", "Bacon"}}}
	b := &CartItem{Dish: burger(), SelectedComplements: Selection{"Extras": {"Bacon", "Egg"}}}
	c := &CartItem{Dish: burger(), SelectedComplements: Selection{"Extras": {"Bacon"}}}
	d := &CartItem{Dish: soda(), SelectedComplements: Selection{"Extras": {"Bacon", "Egg"}}}

	assert.True(t, AreItemsIdentical(a, b))
	assert.False(t, AreItemsIdentical(a, c))
	assert.False(t, AreItemsIdentical(a, d))
	assert.False(t, AreItemsIdentical(a, &CartItem{}))
}

func TestValidateSelection(t *testing.T) {
	dish := burger()

	assert.NoError(t, ValidateSelection(dish, Selection{"Size": {"Small"}}))
	assert.NoError(t, ValidateSelection(dish, Selection{"Size": {"Small"}, "Extras": {"Bacon", "Egg"}}))

	cases := []struct {
		name  string
		sel   Selection
		group string
		code  ValidationCode
	}{
		{"required", Selection{}, "Size", CodeRequired},
		{"required empty set", Selection{"Size": {}}, "Size", CodeRequired},
		{"too many", Selection{"Size": {"Small", "Large"}}, "Size", CodeTooMany},
		{"too many extras", Selection{"Size": {"Small"}, "Extras": {"Bacon", "Egg", "Cheese"}}, "Extras", CodeTooMany},
		{"unknown group", Selection{"Size": {"Small"}, "Sauce": {"Garlic"}}, "Sauce", CodeUnknownGroup},
		{"unknown complement", Selection{"Size": {"Huge"}}, "Size", CodeUnknownComplement},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSelection(dish, tc.sel)
			var verr *ValidationError
			if assert.ErrorAs(t, err, &verr) {
				assert.Equal(t, tc.group, verr.Group)
				assert.Equal(t, tc.code, verr.Code)
				assert.NotEmpty(t, verr.Error())
			}
		})
	}

	assert.False(t, CanAddToCart(dish, nil))
	assert.True(t, CanAddToCart(soda(), nil))
}

func TestStableItemID_SeparatorsInNames(t *testing.T) {
	pizza := &menu.MenuItem{
		ID:    "p1",
		Name:  "Pizza",
		Price: "30,00",
		ComplementGroups: []menu.ComplementGroup{
			{
				Title:         "Sabores",
				MaxSelections: 2,
				Complements: []menu.Complement{
					{Name: "Calabresa", Price: "0,00"},
					{Name: "Queijo", Price: "0,00"},
					{Name: "Calabresa,Queijo", Price: "12,00"},
				},
			},
		},
	}
	combined := Selection{"Sabores": {"Calabresa,Queijo"}}
	split := Selection{"Sabores": {"Calabresa", "Queijo"}}

	assert.False(t, combined.Equal(split))
	assert.NotEqual(t, StableItemID(pizza, combined), StableItemID(pizza, split))
	assert.NotEqual(t,
		StableItemID(pizza, Selection{"a:b": {"c"}}),
		StableItemID(pizza, Selection{"a": {"b:c"}}),
	)

	s := NewStore(StoreConfig{Identity: StableItemID})
	s.SetCurrentRestaurant("pizzaria")
	ctx := context.Background()

	_, err := s.AddItem(ctx, pizza, combined)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, pizza, split)
	require.NoError(t, err)

	c := s.Cart()
	require.Len(t, c.Items, 2)
	assert.Equal(t, "72.00", c.TotalPrice.StringFixed(2))
}
