package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionHeader = "X-Session-ID"

// Session identifies the anonymous customer behind a request. Clients keep
// the id they are handed and send it back on every call.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set("sessionID", id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}
