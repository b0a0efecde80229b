package menu

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
	case errors.Is(err, core.ErrRestaurantNotFound), errors.Is(err, ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, ErrInvalidItem), errors.Is(err, ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// --------------------------------------------------
// GET /restaurants/:slug/menu
// --------------------------------------------------
func (h *Handler) GetMenu(c *gin.Context) {
	menu, err := h.service.ListMenu(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, menu)
}

// --------------------------------------------------
// GET /restaurants/:slug/menu/search?q=
// --------------------------------------------------
func (h *Handler) Search(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Param("slug"), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query": c.Query("q"),
		"items": items,
	})
}

// --------------------------------------------------
// GET /restaurants/:slug/menu/items/:item_id
// --------------------------------------------------
func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.service.GetItem(c.Request.Context(), c.Param("slug"), c.Param("item_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// --------------------------------------------------
// POST /restaurants/:slug/menu/items (staff)
// --------------------------------------------------
func (h *Handler) CreateItem(c *gin.Context) {
	var item MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	created, err := h.service.AddItem(
		c.Request.Context(),
		c.Param("slug"),
		c.GetString("userID"),
		&item,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// --------------------------------------------------
// POST /restaurants/:slug/menu/items/:item_id/image (staff)
// --------------------------------------------------
func (h *Handler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()

	url, err := h.service.AttachImage(
		c.Request.Context(),
		c.Param("slug"),
		c.GetString("userID"),
		c.Param("item_id"),
		file,
		header.Filename,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_id": c.Param("item_id"),
		"image":   url,
	})
}
