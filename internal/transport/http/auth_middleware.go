package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/orders-api/internal/auth"
)

const bearerPrefix = "Bearer "

// usernameContextKey — ключ, под которым middleware кладёт имя
// пользователя в контекст gin.
const usernameContextKey = "auth.username"

// RequireAuth пропускает запрос дальше только с валидным bearer-токеном.
// Отказ Auth Guard превращается в 401 до вызова обработчика.
func RequireAuth(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		username, err := guard.Authenticate(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(usernameContextKey, username)
		c.Next()
	}
}
