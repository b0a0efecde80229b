package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRestaurant(t *testing.T) {
	s := NewStore(StoreConfig{})
	ctx := context.Background()

	g := s.CheckRestaurant("casa-do-burger")
	assert.False(t, g.NeedsConfirmation, "nothing bound yet")

	s.SetCurrentRestaurant("casa-do-burger")
	assert.False(t, s.CheckRestaurant("pizzaria").NeedsConfirmation, "bound cart is empty")

	_, _ = s.AddItem(ctx, soda(), nil)

	assert.False(t, s.CheckRestaurant("casa-do-burger").NeedsConfirmation)

	g = s.CheckRestaurant("pizzaria")
	assert.True(t, g.NeedsConfirmation)
	assert.Equal(t, "casa-do-burger", g.BoundRestaurant)
	assert.Equal(t, "pizzaria", g.Requested)
	assert.Equal(t, 1, g.ItemCount)
}

func TestSwitchRestaurant(t *testing.T) {
	s := NewStore(StoreConfig{})
	ctx := context.Background()

	_, err := s.SwitchRestaurant(ctx, "casa-do-burger", false)
	require.NoError(t, err)
	_, _ = s.AddItem(ctx, soda(), nil)

	g, err := s.SwitchRestaurant(ctx, "pizzaria", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.True(t, g.NeedsConfirmation)
	assert.Equal(t, "casa-do-burger", s.CurrentRestaurant(), "stale cart stays bound")
	assert.Len(t, s.Cart().Items, 1)

	_, err = s.SwitchRestaurant(ctx, "pizzaria", true)
	require.NoError(t, err)
	assert.Equal(t, "pizzaria", s.CurrentRestaurant())
	assert.Empty(t, s.Carts()["casa-do-burger"].Items)
}
