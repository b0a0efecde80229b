package waiter

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
	case errors.Is(err, core.ErrRestaurantNotFound), errors.Is(err, ErrCallNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, ErrInvalidTable), errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// --------------------------------------------------
// POST /restaurants/:slug/waiter-calls
// --------------------------------------------------
func (h *Handler) CallWaiter(c *gin.Context) {
	var req struct {
		Table int `json:"table" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "table is required"})
		return
	}

	call, created, err := h.service.Call(
		c.Request.Context(),
		c.Param("slug"),
		req.Table,
		c.GetString("sessionID"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, call)
}

// --------------------------------------------------
// GET /restaurants/:slug/waiter-calls?status= (staff)
// --------------------------------------------------
func (h *Handler) ListCalls(c *gin.Context) {
	calls, err := h.service.List(
		c.Request.Context(),
		c.Param("slug"),
		c.GetString("userID"),
		c.Query("status"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"calls": calls})
}

// --------------------------------------------------
// POST /waiter-calls/:id/ack (staff)
// --------------------------------------------------
func (h *Handler) Acknowledge(c *gin.Context) {
	call, err := h.service.Acknowledge(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, call)
}
