package middlewares

import (
	"net/http"
	"strings"

	"ctfpractice/config"
	"ctfpractice/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the identity middlewares.
const (
	CtxUserID        = "user_id"
	CtxUserRole      = "user_role"
	CtxClaims        = "claims"
	CtxTrustedCaller = "trusted_caller"
)

// ServiceKeyHeader carries the shared secret of trusted callers.
const ServiceKeyHeader = "X-Service-Key"

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.Request.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// JWTAuthMiddleware requires a valid session token and stores the caller's
// external id, role and claims on the context.
func JWTAuthMiddleware(tm *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims, err := tm.ParseToken(token)
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// JWTTryAuthMiddleware resolves the caller when a valid token is present
// and lets anonymous requests through.
func JWTTryAuthMiddleware(tm *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := tm.ParseToken(token); err == nil {
				c.Set(CtxUserID, claims.Subject)
				c.Set(CtxUserRole, claims.Role)
				c.Set(CtxClaims, claims)
			}
		}
		c.Next()
	}
}

// TrustedCallerMiddleware admits only callers holding the service key. The
// user id is then taken from the request itself by the handler.
func TrustedCallerMiddleware(keys *utils.ServiceKeyVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !keys.Check(c.GetHeader(ServiceKeyHeader)) {
			utils.AbortError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set(CtxTrustedCaller, true)
		c.Next()
	}
}

// TrustedCallerTryMiddleware marks the request trusted when the service key
// is valid and otherwise passes it on anonymously.
func TrustedCallerTryMiddleware(keys *utils.ServiceKeyVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(ServiceKeyHeader); key != "" && keys.Check(key) {
			c.Set(CtxTrustedCaller, true)
		}
		c.Next()
	}
}

// IdentityMiddleware enforces the configured trust model.
func IdentityMiddleware(cfg config.AuthConfig, tm *utils.TokenManager, keys *utils.ServiceKeyVerifier) gin.HandlerFunc {
	if cfg.TrustModel == config.TrustModelTrusted {
		return TrustedCallerMiddleware(keys)
	}
	return JWTAuthMiddleware(tm)
}

// OptionalIdentityMiddleware resolves the caller when possible without
// rejecting anonymous requests.
func OptionalIdentityMiddleware(cfg config.AuthConfig, tm *utils.TokenManager, keys *utils.ServiceKeyVerifier) gin.HandlerFunc {
	if cfg.TrustModel == config.TrustModelTrusted {
		return TrustedCallerTryMiddleware(keys)
	}
	return JWTTryAuthMiddleware(tm)
}

// RoleAuthMiddleware requires one of the given roles from the session token.
func RoleAuthMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxUserRole)
		if role == "" {
			utils.AbortError(c, http.StatusForbidden, "Forbidden")
			return
		}
		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}
		utils.AbortError(c, http.StatusForbidden, "Forbidden")
	}
}
