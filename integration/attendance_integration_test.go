package gymdesk_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/attendance"
	"gymdesk/internal/member"
	"gymdesk/internal/membersub"
)

func createActiveMembership(t *testing.T, db *sqlx.DB, managerID, memberID int) {
	_, err := db.Exec(`
		INSERT INTO member_subscriptions (gym_manager_id, member_id, plan_name, price_cents, start_date, end_date, status)
		VALUES ($1, $2, 'Monthly', 50000, NOW(), NOW() + INTERVAL '30 days', 'active')
	`, managerID, memberID)
	require.NoError(t, err)
}

func attendanceRouter(db *sqlx.DB, managerID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(asTenant(managerID))

	memberRepo := member.NewRepository(db)
	subRepo := membersub.NewRepository(db)
	service := attendance.NewService(attendance.NewRepository(db), memberRepo, subRepo)
	handler := attendance.NewHandler(service)

	router.POST("/attendance/checkin", handler.CheckIn)
	router.PUT("/attendance/:id/checkout", handler.CheckOut)
	router.GET("/attendance", handler.List)
	return router
}

func TestCheckInCheckOut_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)
	managerID := createTestManager(t, db, "owner@example.com")
	memberID := createTestMember(t, db, managerID, "Ahmed Hassan")
	createActiveMembership(t, db, managerID, memberID)

	router := attendanceRouter(db, managerID)

	// Check in
	bodyBytes, _ := json.Marshal(map[string]int{"member_id": memberID})
	req, _ := http.NewRequest("POST", "/attendance/checkin", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var checkInResp struct {
		Attendance attendance.Record `json:"attendance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkInResp))
	require.Equal(t, memberID, checkInResp.Attendance.MemberID)
	require.Nil(t, checkInResp.Attendance.CheckOut)

	// Check out
	req, _ = http.NewRequest("PUT", fmt.Sprintf("/attendance/%d/checkout", checkInResp.Attendance.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var checkOutResp struct {
		Attendance attendance.Record `json:"attendance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkOutResp))
	require.NotNil(t, checkOutResp.Attendance.CheckOut)

	// A second checkout on the same record must fail
	req, _ = http.NewRequest("PUT", fmt.Sprintf("/attendance/%d/checkout", checkInResp.Attendance.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckIn_NoActiveSubscription_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)
	managerID := createTestManager(t, db, "owner@example.com")
	memberID := createTestMember(t, db, managerID, "No Subscription")

	router := attendanceRouter(db, managerID)

	bodyBytes, _ := json.Marshal(map[string]int{"member_id": memberID})
	req, _ := http.NewRequest("POST", "/attendance/checkin", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Member has no active subscription", response["error"])
}

func TestCheckIn_ExpiredSubscription_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)
	managerID := createTestManager(t, db, "owner@example.com")
	memberID := createTestMember(t, db, managerID, "Lapsed Member")

	// Active status but the end date already passed
	_, err := db.Exec(`
		INSERT INTO member_subscriptions (gym_manager_id, member_id, plan_name, price_cents, start_date, end_date, status)
		VALUES ($1, $2, 'Monthly', 50000, NOW() - INTERVAL '60 days', NOW() - INTERVAL '30 days', 'active')
	`, managerID, memberID)
	require.NoError(t, err)

	router := attendanceRouter(db, managerID)

	bodyBytes, _ := json.Marshal(map[string]int{"member_id": memberID})
	req, _ := http.NewRequest("POST", "/attendance/checkin", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}
