package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminVerifier answers whether an admin principal exists.
type AdminVerifier interface {
	AdminExists(ctx context.Context, id int) (bool, error)
}

// ManagerGate is the subset of a gym manager record the auth layer needs:
// the account flag and the subscription status consulted at request time.
type ManagerGate struct {
	ID                 int
	IsActive           bool
	SubscriptionStatus string
}

// ManagerVerifier resolves a gym manager principal; returns nil when the
// account does not exist.
type ManagerVerifier interface {
	ManagerGate(ctx context.Context, id int) (*ManagerGate, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}

// AdminAuth resolves a bearer token into a platform-admin principal.
func AdminAuth(secret string, admins AdminVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "Authorization token required")
			return
		}

		claims, err := ValidateToken(tokenString, secret)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				abortUnauthorized(c, "Token expired")
				return
			}
			abortUnauthorized(c, "Invalid or malformed token")
			return
		}

		if claims.Role != RoleAdmin {
			abortUnauthorized(c, "Admin token required")
			return
		}

		exists, err := admins.AdminExists(c.Request.Context(), claims.UserID)
		if err != nil || !exists {
			abortUnauthorized(c, "Unauthorized")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Set(ctxUserRole, RoleAdmin)

		c.Next()
	}
}

// GymAuth resolves a bearer token into a gym-manager principal. A
// deactivated account fails authentication; an account whose platform
// subscription is not active authenticates but is refused with the current
// status echoed back, so the dashboard can prompt for renewal.
func GymAuth(secret string, managers ManagerVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "Authorization token required")
			return
		}

		claims, err := ValidateToken(tokenString, secret)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				abortUnauthorized(c, "Token expired")
				return
			}
			abortUnauthorized(c, "Invalid or malformed token")
			return
		}

		if claims.Role != RoleGymManager {
			abortUnauthorized(c, "Gym manager token required")
			return
		}

		gate, err := managers.ManagerGate(c.Request.Context(), claims.UserID)
		if err != nil || gate == nil || !gate.IsActive {
			abortUnauthorized(c, "Unauthorized")
			return
		}

		if gate.SubscriptionStatus != "active" {
			c.JSON(http.StatusForbidden, gin.H{
				"error":               "Subscription is not active. Please renew your subscription",
				"subscription_status": gate.SubscriptionStatus,
			})
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Set(ctxUserRole, RoleGymManager)

		c.Next()
	}
}

// RequireRole rejects requests whose attached principal type does not match.
// Must run after AdminAuth or GymAuth.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok || role != requiredRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// TenantIsolation records the gym-manager principal's id as the active
// tenant id for the rest of the request. Every tenant-scoped repository
// method takes this id as an explicit filter parameter.
func TenantIsolation() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, ok := GetRole(c); ok && role == RoleGymManager {
			if id, ok := GetUserID(c); ok {
				c.Set(ctxTenantID, id)
			}
		}
		c.Next()
	}
}
