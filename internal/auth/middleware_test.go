package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

type fakeAdmins struct {
	exists bool
	err    error
}

func (f fakeAdmins) AdminExists(ctx context.Context, id int) (bool, error) {
	return f.exists, f.err
}

type fakeManagers struct {
	gate *ManagerGate
	err  error
}

func (f fakeManagers) ManagerGate(ctx context.Context, id int) (*ManagerGate, error) {
	return f.gate, f.err
}

func adminRouter(admins AdminVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminAuth(testSecret, admins), func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r
}

func gymRouter(managers ManagerVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/gym", GymAuth(testSecret, managers), TenantIsolation(), func(c *gin.Context) {
		tenantID, _ := GetTenantID(c)
		c.JSON(http.StatusOK, gin.H{"tenant_id": tenantID})
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthMissingToken(t *testing.T) {
	w := doRequest(adminRouter(fakeAdmins{exists: true}), "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthBadToken(t *testing.T) {
	w := doRequest(adminRouter(fakeAdmins{exists: true}), "/admin", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthPrincipalMissing(t *testing.T) {
	token, err := GenerateToken(7, "gone@gymdesk.test", RoleAdmin, testSecret)
	require.NoError(t, err)

	w := doRequest(adminRouter(fakeAdmins{exists: false}), "/admin", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthRejectsManagerToken(t *testing.T) {
	token, err := GenerateToken(7, "owner@gym.test", RoleGymManager, testSecret)
	require.NoError(t, err)

	w := doRequest(adminRouter(fakeAdmins{exists: true}), "/admin", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthSuccess(t *testing.T) {
	token, err := GenerateToken(7, "admin@gymdesk.test", RoleAdmin, testSecret)
	require.NoError(t, err)

	w := doRequest(adminRouter(fakeAdmins{exists: true}), "/admin", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGymAuthInactiveAccount(t *testing.T) {
	token, err := GenerateToken(3, "owner@gym.test", RoleGymManager, testSecret)
	require.NoError(t, err)

	managers := fakeManagers{gate: &ManagerGate{ID: 3, IsActive: false, SubscriptionStatus: "active"}}
	w := doRequest(gymRouter(managers), "/gym", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGymAuthInactiveSubscriptionIsForbidden(t *testing.T) {
	token, err := GenerateToken(3, "owner@gym.test", RoleGymManager, testSecret)
	require.NoError(t, err)

	managers := fakeManagers{gate: &ManagerGate{ID: 3, IsActive: true, SubscriptionStatus: "expired"}}
	w := doRequest(gymRouter(managers), "/gym", token)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "expired", body["subscription_status"])
}

func TestGymAuthSetsTenantID(t *testing.T) {
	token, err := GenerateToken(3, "owner@gym.test", RoleGymManager, testSecret)
	require.NoError(t, err)

	managers := fakeManagers{gate: &ManagerGate{ID: 3, IsActive: true, SubscriptionStatus: "active"}}
	w := doRequest(gymRouter(managers), "/gym", token)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["tenant_id"])
}

func TestRequireRoleMismatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Set("user_role", RoleGymManager)
	}, RequireRole(RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doRequest(r, "/x", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleNoPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequireRole(RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doRequest(r, "/x", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
