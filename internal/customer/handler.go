package customer

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /customer
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Get(c.Request.Context(), c.GetString("sessionID")))
}

// --------------------------------------------------
// PUT /customer
// --------------------------------------------------
func (h *Handler) Put(c *gin.Context) {
	var req Data
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	saved, err := h.service.Save(c.Request.Context(), c.GetString("sessionID"), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save customer data"})
		return
	}

	c.JSON(http.StatusOK, saved)
}
