package cart

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"cardapio/internal/analytics"
	"cardapio/internal/core"
	"cardapio/internal/customer"
	"cardapio/internal/menu"
	"cardapio/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

// Catalog resolves dishes by restaurant slug and item id.
type Catalog interface {
	GetItem(ctx context.Context, slug string, itemID string) (*menu.MenuItem, error)
}

// Customers supplies the saved profile for a session.
type Customers interface {
	Get(ctx context.Context, sessionID string) customer.Data
}

type Handler struct {
	carts       *Manager
	catalog     Catalog
	restaurants core.RestaurantReader
	customers   Customers
	tracker     analytics.Tracker
}

func NewHandler(
	carts *Manager,
	catalog Catalog,
	restaurants core.RestaurantReader,
	customers Customers,
	tracker analytics.Tracker,
) *Handler {
	if tracker == nil {
		tracker = analytics.Nop()
	}
	return &Handler{
		carts:       carts,
		catalog:     catalog,
		restaurants: restaurants,
		customers:   customers,
		tracker:     tracker,
	}
}

type itemView struct {
	ID                  string         `json:"id"`
	Dish                *menu.MenuItem `json:"dish"`
	SelectedComplements Selection      `json:"selected_complements"`
	Quantity            int            `json:"quantity"`
	UnitPrice           string         `json:"unit_price"`
	TotalPrice          string         `json:"total_price"`
}

type cartView struct {
	Restaurant string     `json:"restaurant"`
	Items      []itemView `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice string     `json:"total_price"`
}

func newItemView(item *CartItem) itemView {
	return itemView{
		ID:                  item.ID,
		Dish:                item.Dish,
		SelectedComplements: item.SelectedComplements,
		Quantity:            item.Quantity,
		UnitPrice:           item.UnitPrice.StringFixed(2),
		TotalPrice:          item.TotalPrice.StringFixed(2),
	}
}

func newCartView(c *RestaurantCart) cartView {
	v := cartView{
		Restaurant: c.RestaurantID,
		Items:      make([]itemView, 0, len(c.Items)),
		TotalItems: c.TotalItems,
		TotalPrice: c.TotalPrice.StringFixed(2),
	}
	for _, item := range c.Items {
		v.Items = append(v.Items, newItemView(item))
	}
	return v
}

func (h *Handler) store(c *gin.Context) *Store {
	return h.carts.Store(c.Request.Context(), c.GetString("sessionID"))
}

func writeError(c *gin.Context, err error) {
	var verr *ValidationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": verr.Error(),
			"group": verr.Group,
			"code":  verr.Code,
		})
	case errors.Is(err, ErrNoRestaurant):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrItemNotFound),
		errors.Is(err, menu.ErrItemNotFound),
		errors.Is(err, core.ErrRestaurantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, whatsapp.ErrEmptyOrder),
		errors.Is(err, whatsapp.ErrMissingAddress),
		errors.Is(err, whatsapp.ErrMissingTable),
		errors.Is(err, whatsapp.ErrUnknownOrderType),
		errors.Is(err, whatsapp.ErrInvalidNumber):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// --------------------------------------------------
// GET /cart
// --------------------------------------------------
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, newCartView(h.store(c).Cart()))
}

// --------------------------------------------------
// GET /carts
// --------------------------------------------------
func (h *Handler) ListCarts(c *gin.Context) {
	carts := h.store(c).Carts()

	ids := make([]string, 0, len(carts))
	for id := range carts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]cartView, 0, len(ids))
	for _, id := range ids {
		out = append(out, newCartView(carts[id]))
	}

	c.JSON(http.StatusOK, gin.H{"carts": out})
}

type selectionRequest struct {
	ItemID     string    `json:"item_id" binding:"required"`
	Selections Selection `json:"selections"`
}

func (h *Handler) resolveDish(c *gin.Context, s *Store, itemID string) (*menu.MenuItem, error) {
	slug := s.CurrentRestaurant()
	if slug == "" {
		return nil, ErrNoRestaurant
	}
	return h.catalog.GetItem(c.Request.Context(), slug, itemID)
}

// --------------------------------------------------
// POST /cart/items/validate
// --------------------------------------------------
func (h *Handler) ValidateItem(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}

	s := h.store(c)
	dish, err := h.resolveDish(c, s, req.ItemID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{
		"can_add":    true,
		"unit_price": CalculateUnitPrice(dish, req.Selections).StringFixed(2),
	}

	var verr *ValidationError
	if err := ValidateSelection(dish, req.Selections); errors.As(err, &verr) {
		resp["can_add"] = false
		resp["error"] = verr.Error()
		resp["group"] = verr.Group
	}

	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// POST /cart/items
// --------------------------------------------------
func (h *Handler) AddItem(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}

	s := h.store(c)
	dish, err := h.resolveDish(c, s, req.ItemID)
	if err != nil {
		writeError(c, err)
		return
	}

	item, err := s.AddItem(c.Request.Context(), dish, req.Selections)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item": newItemView(item),
		"cart": newCartView(s.Cart()),
	})
}

// --------------------------------------------------
// PATCH /cart/items/:id
// --------------------------------------------------
func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	s := h.store(c)
	item, err := s.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"cart": newCartView(s.Cart())}
	if item != nil {
		resp["item"] = newItemView(item)
	}
	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// DELETE /cart/items/:id
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	s := h.store(c)
	if err := s.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": newCartView(s.Cart())})
}

// --------------------------------------------------
// DELETE /cart
// --------------------------------------------------
func (h *Handler) ClearCart(c *gin.Context) {
	s := h.store(c)
	if err := s.ClearCart(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": newCartView(s.Cart())})
}

// --------------------------------------------------
// GET /cart/guard?restaurant=
// --------------------------------------------------
func (h *Handler) Guard(c *gin.Context) {
	slug := c.Query("restaurant")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant is required"})
		return
	}

	c.JSON(http.StatusOK, h.store(c).CheckRestaurant(slug))
}

// --------------------------------------------------
// PUT /cart/restaurant
// --------------------------------------------------
func (h *Handler) SetRestaurant(c *gin.Context) {
	var req struct {
		Restaurant     string `json:"restaurant" binding:"required"`
		ConfirmDiscard bool   `json:"confirm_discard"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant is required"})
		return
	}

	if _, err := h.restaurants.GetBySlug(c.Request.Context(), req.Restaurant); err != nil {
		writeError(c, err)
		return
	}

	s := h.store(c)
	guard, err := s.SwitchRestaurant(c.Request.Context(), req.Restaurant, req.ConfirmDiscard)
	if errors.Is(err, ErrConfirmationRequired) {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
			"guard": guard,
		})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guard": guard,
		"cart":  newCartView(s.Cart()),
	})
}

// --------------------------------------------------
// POST /cart/checkout/whatsapp
// --------------------------------------------------
func (h *Handler) CheckoutWhatsApp(c *gin.Context) {
	var req struct {
		Type     whatsapp.OrderType `json:"type"`
		Table    int                `json:"table"`
		Notes    string             `json:"notes"`
		Customer *customer.Data     `json:"customer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Type == "" {
		req.Type = whatsapp.OrderDelivery
	}

	ctx := c.Request.Context()
	sessionID := c.GetString("sessionID")
	s := h.store(c)

	slug := s.CurrentRestaurant()
	if slug == "" {
		writeError(c, ErrNoRestaurant)
		return
	}

	info, err := h.restaurants.GetBySlug(ctx, slug)
	if err != nil {
		writeError(c, err)
		return
	}

	profile := h.customers.Get(ctx, sessionID)
	if req.Customer != nil {
		profile = *req.Customer
	}

	cart := s.Cart()
	order := BuildOrder(info.Name, cart, req.Type, req.Table, profile.Customer(), req.Notes)
	if err := order.Validate(); err != nil {
		writeError(c, err)
		return
	}

	message := whatsapp.BuildOrderMessage(order)
	link, err := whatsapp.DeepLink(info.WhatsApp, message)
	if err != nil {
		writeError(c, err)
		return
	}

	h.tracker.Track(ctx, analytics.Event{
		Name:         analytics.EventCheckout,
		SessionID:    sessionID,
		RestaurantID: slug,
		ItemCount:    cart.TotalItems,
		Total:        cart.TotalPrice,
	})

	c.JSON(http.StatusOK, gin.H{
		"link":       link,
		"message":    message,
		"order_code": order.Code,
	})
}

// BuildOrder turns a cart into the order printed on the WhatsApp message.
// Complement groups follow the dish's own group order.
func BuildOrder(
	restaurantName string,
	c *RestaurantCart,
	orderType whatsapp.OrderType,
	table int,
	cust whatsapp.Customer,
	notes string,
) whatsapp.Order {

	order := whatsapp.Order{
		Code:           whatsapp.NewOrderCode(),
		RestaurantName: restaurantName,
		Type:           orderType,
		Table:          table,
		Total:          c.TotalPrice,
		Customer:       cust,
		Notes:          notes,
	}

	for _, item := range c.Items {
		line := whatsapp.OrderLine{
			Name:     item.Dish.Name,
			Quantity: item.Quantity,
			Total:    item.TotalPrice,
		}

		sel := item.SelectedComplements.Normalize()
		seen := make(map[string]bool, len(sel))
		for _, g := range item.Dish.ComplementGroups {
			if names, ok := sel[g.Title]; ok {
				line.Complements = append(line.Complements, whatsapp.ComplementLine{Group: g.Title, Names: names})
				seen[g.Title] = true
			}
		}
		for _, group := range sel.Groups() {
			if !seen[group] {
				line.Complements = append(line.Complements, whatsapp.ComplementLine{Group: group, Names: sel[group]})
			}
		}

		order.Lines = append(order.Lines, line)
	}

	return order
}
