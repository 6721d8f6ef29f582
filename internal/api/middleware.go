package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const userIDKey = "userID"

// AuthRequired validates the bearer token and stores the caller's user
// id in the gin context. It never touches the stores.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			writeMsg(c, http.StatusUnauthorized, "No token, authorization denied")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeMsg(c, http.StatusUnauthorized, "Token is not valid")
			c.Abort()
			return
		}

		userID, err := h.auth.VerifyToken(strings.TrimSpace(parts[1]))
		if err != nil {
			writeMsg(c, http.StatusUnauthorized, "Token is not valid")
			c.Abort()
			return
		}

		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			writeMsg(c, http.StatusUnauthorized, "Token is not valid")
			c.Abort()
			return
		}

		c.Set(userIDKey, oid)
		c.Next()
	}
}

// callerID returns the user id placed in the context by AuthRequired.
func callerID(c *gin.Context) primitive.ObjectID {
	value, _ := c.Get(userIDKey)
	id, _ := value.(primitive.ObjectID)
	return id
}
