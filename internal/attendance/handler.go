package attendance

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CheckIn godoc
// @Summary      Check a member in
// @Description  Requires an active membership that has not passed its end
// @Description  date; otherwise 403.
// @Tags         gym-attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CheckInRequest  true  "Check-in data"
// @Success      201  {object}  gin.H
// @Router       /api/gym/attendance/checkin [post]
func (h *Handler) CheckIn(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.service.CheckIn(c.Request.Context(), tenantID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, ErrNoActiveSubscription):
			c.JSON(http.StatusForbidden, gin.H{"error": "Member has no active subscription"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check in"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Checked in successfully", "attendance": rec})
}

// CheckOut godoc
// @Summary      Check a member out
// @Tags         gym-attendance
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Attendance record id"
// @Success      200  {object}  gin.H
// @Router       /api/gym/attendance/{id}/checkout [put]
func (h *Handler) CheckOut(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	rec, err := h.service.CheckOut(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Open attendance record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checked out successfully", "attendance": rec})
}

// List godoc
// @Summary      List attendance records
// @Tags         gym-attendance
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "Page"
// @Param        limit      query  int     false  "Page size"
// @Param        member_id  query  int     false  "Filter by member"
// @Param        date       query  string  false  "Filter by day (YYYY-MM-DD)"
// @Success      200  {object}  gin.H
// @Router       /api/gym/attendance [get]
func (h *Handler) List(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	memberID, _ := strconv.Atoi(c.Query("member_id"))

	records, total, err := h.service.List(c.Request.Context(), tenantID, ListFilter{
		MemberID: memberID,
		Date:     c.Query("date"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance": records,
		"pagination": api.NewPagination(page, limit, total),
	})
}

// MemberHistory godoc
// @Summary      Attendance history for one member
// @Tags         gym-attendance
// @Produce      json
// @Security     BearerAuth
// @Param        memberId  path   int  true   "Member id"
// @Param        page      query  int  false  "Page"
// @Param        limit     query  int  false  "Page size"
// @Success      200  {object}  gin.H
// @Router       /api/gym/attendance/member/{memberId} [get]
func (h *Handler) MemberHistory(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	records, total, err := h.service.MemberHistory(c.Request.Context(), tenantID, memberID, page, limit)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance": records,
		"pagination": api.NewPagination(page, limit, total),
	})
}
