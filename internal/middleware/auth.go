package middleware

import (
	"net/http"
	"strings"

	"castlink_backend/internal/auth"
	"castlink_backend/internal/logger"
	"castlink_backend/internal/models"
	"castlink_backend/internal/policy"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware - middleware проверки JWT. Кладет субъекта запроса в
// контекст gin и его ID в контекст запроса для корреляции логов.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		actor := policy.Actor{
			ID:   claims.UserID,
			Role: models.UserRole(claims.Role),
		}
		c.Set(actorKey, actor)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRoles ограничивает маршрут перечисленными ролями.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		if !roleSet[actor.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient role"})
			return
		}

		c.Next()
	}
}

// CurrentActor извлекает субъекта запроса, положенного AuthMiddleware.
func CurrentActor(c *gin.Context) (policy.Actor, bool) {
	val, exists := c.Get(actorKey)
	if !exists {
		return policy.Actor{}, false
	}

	actor, ok := val.(policy.Actor)
	return actor, ok
}
