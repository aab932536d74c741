package auth

import "github.com/gin-gonic/gin"

const (
	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
	ctxUserRole  = "user_role"
	ctxTenantID  = "tenant_id"
)

func GetUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}

func GetRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(ctxUserRole)
	if !exists {
		return "", false
	}

	r, ok := role.(string)
	if !ok {
		return "", false
	}

	return r, true
}

// GetTenantID returns the gym manager id every tenant-scoped query in the
// current request must filter on. Set by TenantIsolation.
func GetTenantID(c *gin.Context) (int, bool) {
	tenantID, exists := c.Get(ctxTenantID)
	if !exists {
		return 0, false
	}

	id, ok := tenantID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}
