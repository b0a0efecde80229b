package restaurant

import (
	"errors"
	"net/http"

	"cardapio/internal/core"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRestaurant):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrRestaurantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// --------------------------------------------------
// Create restaurant
// --------------------------------------------------
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	restaurant, err := h.service.CreateRestaurant(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, restaurant)
}

// --------------------------------------------------
// List restaurants owned by user
// --------------------------------------------------
func (h *Handler) ListMyRestaurants(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	restaurants, err := h.service.ListMyRestaurants(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch restaurants"})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// --------------------------------------------------
// GET /restaurants/:slug (public)
// --------------------------------------------------
func (h *Handler) GetRestaurant(c *gin.Context) {
	info, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// --------------------------------------------------
// PUT /restaurants/:slug (owner)
// --------------------------------------------------
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	var req Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	restaurant, err := h.service.UpdateRestaurant(
		c.Request.Context(),
		c.Param("slug"),
		c.GetString("userID"),
		req,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurant)
}
