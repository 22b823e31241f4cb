package middleware

import (
	"net/http"
	"strings"

	"kitchen-inventory-service/models"
	"kitchen-inventory-service/services"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session_token"

const claimsContextKey = "session_claims"

// RequireAuth verifies the session token from the cookie or an
// Authorization bearer header and stores the claims on the context.
func RequireAuth(jwtService services.JWTService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := tokenFromRequest(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := jwtService.ParseToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		ctx.Set(claimsContextKey, claims)
		ctx.Next()
	}
}

// RequireAdmin rejects non-admin sessions. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := ClaimsFromContext(ctx)
		if !ok || claims.Role != models.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		ctx.Next()
	}
}

// ClaimsFromContext returns the session claims set by RequireAuth.
func ClaimsFromContext(ctx *gin.Context) (*services.SessionClaims, bool) {
	value, exists := ctx.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.SessionClaims)
	return claims, ok
}

func tokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := ctx.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
