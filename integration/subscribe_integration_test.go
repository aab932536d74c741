package gymdesk_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/manager"
	"gymdesk/internal/payment"
	"gymdesk/internal/plan"
	"gymdesk/internal/subscription"
)

const testJWTSecret = "integration-test-secret"

func createTestPlan(t *testing.T, db *sqlx.DB, name string, priceCents int64) int {
	var id int
	err := db.QueryRow(`
		INSERT INTO subscription_plans (name, price_cents, duration, duration_unit)
		VALUES ($1, $2, 1, 'months')
		RETURNING id
	`, name, priceCents).Scan(&id)

	require.NoError(t, err)
	return id
}

func subscribeRouter(db *sqlx.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	service := subscription.NewService(
		subscription.NewRepository(db),
		plan.NewRepository(db),
		manager.NewRepository(db),
		payment.NewRepository(db),
		nil,
		testJWTSecret,
	)
	handler := subscription.NewHandler(service)

	router.POST("/subscribe", handler.Subscribe)
	return router
}

func TestPublicSubscribe_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)
	planID := createTestPlan(t, db, "Pro", 150000)

	router := subscribeRouter(db)

	reqBody := map[string]interface{}{
		"name":     "New Owner",
		"email":    "newowner@example.com",
		"password": "password123",
		"gym_name": "Iron Temple",
		"plan_id":  planID,
	}
	bodyBytes, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/subscribe", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Success      bool                      `json:"success"`
		Token        string                    `json:"token"`
		Subscription subscription.Subscription `json:"subscription"`
		Manager      manager.Manager           `json:"gym_manager"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Success)
	require.NotEmpty(t, response.Token)
	require.Equal(t, subscription.StatusActive, response.Subscription.Status)
	require.Equal(t, manager.StatusActive, response.Manager.SubscriptionStatus)

	// Provisioning records a completed platform payment
	var count int
	err := db.Get(&count, `
		SELECT COUNT(*) FROM payments
		WHERE gym_manager_id = $1 AND type = 'gym_manager_subscription' AND status = 'completed'
	`, response.Manager.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// The manager row mirrors the subscription
	var currentSubID int
	err = db.Get(&currentSubID, "SELECT current_subscription_id FROM gym_managers WHERE id = $1", response.Manager.ID)
	require.NoError(t, err)
	require.Equal(t, response.Subscription.ID, currentSubID)
}

func TestPublicSubscribe_WrongPasswordForExistingAccount_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)
	planID := createTestPlan(t, db, "Pro", 150000)

	router := subscribeRouter(db)

	reqBody := map[string]interface{}{
		"name":     "New Owner",
		"email":    "returning@example.com",
		"password": "password123",
		"gym_name": "Iron Temple",
		"plan_id":  planID,
	}
	bodyBytes, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/subscribe", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same email, wrong password: must not take over the account
	reqBody["password"] = "wrong-password"
	bodyBytes, _ = json.Marshal(reqBody)
	req, _ = http.NewRequest("POST", "/subscribe", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicSubscribe_RetiredPlan_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)
	planID := createTestPlan(t, db, "Legacy", 90000)
	_, err := db.Exec("UPDATE subscription_plans SET is_active = false WHERE id = $1", planID)
	require.NoError(t, err)

	router := subscribeRouter(db)

	reqBody := map[string]interface{}{
		"name":     "New Owner",
		"email":    "newowner@example.com",
		"password": "password123",
		"gym_name": "Iron Temple",
		"plan_id":  planID,
	}
	bodyBytes, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/subscribe", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
