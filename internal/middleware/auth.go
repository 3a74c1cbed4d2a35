package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/openboards/forum-backend/internal/common"
	"github.com/openboards/forum-backend/internal/domain"
	"github.com/openboards/forum-backend/pkg/authtoken"
)

// ActorAuth extracts the authenticated actor from a bearer token issued
// upstream. The forum core never verifies credentials; the token is only
// an identity envelope.
func ActorAuth(manager *authtoken.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header", nil)
			c.Abort()
			return
		}

		// 2. Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		// 3. Verify token
		claims, err := manager.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, authtoken.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid token", err)
			}
			c.Abort()
			return
		}

		// 4. Store actor in context
		c.Set("actorID", claims.ActorID)
		c.Set("actorName", claims.ActorName)

		c.Next()
	}
}

// GetActor extracts the actor identity from context
func GetActor(c *gin.Context) (domain.Actor, bool) {
	id, exists := c.Get("actorID")
	if !exists {
		return domain.Actor{}, false
	}
	actorID, ok := id.(uint64)
	if !ok {
		return domain.Actor{}, false
	}
	name, _ := c.Get("actorName")
	actorName, _ := name.(string)
	return domain.Actor{ID: actorID, Name: actorName}, true
}

// GetActorID extracts the actor id from context, 0 when unauthenticated
func GetActorID(c *gin.Context) uint64 {
	actor, ok := GetActor(c)
	if !ok {
		return 0
	}
	return actor.ID
}
