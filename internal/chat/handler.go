package chat

import (
	"context"
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

// --------------------------------------------------
// POST /chat
// --------------------------------------------------
func (h *Handler) Chat(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Reply{Error: "invalid request"})
		return
	}

	reply, err := h.service.Ask(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, reply)
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrNoRestaurant):
		c.JSON(http.StatusBadRequest, Reply{Error: err.Error()})
	case errors.Is(err, core.ErrRestaurantNotFound):
		c.JSON(http.StatusNotFound, Reply{Error: err.Error()})
	case errors.Is(err, context.Canceled):
		c.Status(499)
	default:
		c.JSON(http.StatusBadGateway, Reply{Error: ErrAssistantFails.Error()})
	}
}
