package middleware

import (
	"context"
	"net/http"
	"strings"

	"studio-site-backend/internal/delivery/http/response"
	"studio-site-backend/internal/domain"
	"studio-site-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and attaches the resolved user
// identity to the request context. The isAdmin flag is read from the
// database, not the token, so a demoted admin loses access at the next
// request rather than at token expiry.
func AuthMiddleware(tokens *token.Manager, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Требуется авторизация", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" || tokenString == authHeader {
			response.Error(c, http.StatusUnauthorized, "Требуется авторизация", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Недействительный токен", nil)
			c.Abort()
			return
		}

		user, err := authUC.GetCurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Пользователь не найден", nil)
			c.Abort()
			return
		}

		// The identity travels on the request context so usecases receive
		// it explicitly rather than reaching back into the gin context.
		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, user.ID)
		ctx = context.WithValue(ctx, domain.KeyIsAdmin, user.IsAdmin)
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyIsAdmin), user.IsAdmin)

		c.Next()
	}
}

// AdminRequired gates admin-only routes. It must run after AuthMiddleware;
// a valid non-admin identity gets Forbidden.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(string(domain.KeyIsAdmin)) {
			response.Error(c, http.StatusForbidden, "Доступ только для администратора", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
