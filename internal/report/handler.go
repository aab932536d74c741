package report

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const listLimit = 50

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

func NewHandlerWithRepo(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// period reads the requested window, defaulting to the last 30 days.
func period(c *gin.Context) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if v := c.Query("period_start"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, fmt.Errorf("invalid period_start: %w", err)
		}
		start = parsed
	}
	if v := c.Query("period_end"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, fmt.Errorf("invalid period_end: %w", err)
		}
		// Include the whole closing day.
		end = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}

	return start, end, nil
}

// GenerateRevenue godoc
// @Summary      Generate revenue report
// @Description  Aggregates completed member payments over the window and
// @Description  stores the result as an immutable snapshot.
// @Tags         gym-reports
// @Produce      json
// @Security     BearerAuth
// @Param        period_start  query  string  false  "Window start (YYYY-MM-DD)"
// @Param        period_end    query  string  false  "Window end (YYYY-MM-DD)"
// @Success      201  {object}  gin.H
// @Router       /api/gym/reports/revenue [post]
func (h *Handler) GenerateRevenue(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	start, end, err := period(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := h.repo.RevenueData(c.Request.Context(), tenantID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate revenue"})
		return
	}

	title := fmt.Sprintf("Revenue %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	rep, err := h.repo.Insert(c.Request.Context(), tenantID, TypeRevenue, title, data, &start, &end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	metrics.RecordReport(TypeRevenue)
	c.JSON(http.StatusCreated, gin.H{"report": rep, "data": data})
}

// GenerateMembers godoc
// @Summary      Generate members report
// @Tags         gym-reports
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  gin.H
// @Router       /api/gym/reports/members [post]
func (h *Handler) GenerateMembers(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	data, err := h.repo.MembersData(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate members"})
		return
	}

	title := "Members snapshot " + time.Now().Format("2006-01-02")
	rep, err := h.repo.Insert(c.Request.Context(), tenantID, TypeMembers, title, data, nil, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	metrics.RecordReport(TypeMembers)
	c.JSON(http.StatusCreated, gin.H{"report": rep, "data": data})
}

// GenerateAttendance godoc
// @Summary      Generate attendance report
// @Tags         gym-reports
// @Produce      json
// @Security     BearerAuth
// @Param        period_start  query  string  false  "Window start (YYYY-MM-DD)"
// @Param        period_end    query  string  false  "Window end (YYYY-MM-DD)"
// @Success      201  {object}  gin.H
// @Router       /api/gym/reports/attendance [post]
func (h *Handler) GenerateAttendance(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	start, end, err := period(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := h.repo.AttendanceData(c.Request.Context(), tenantID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate attendance"})
		return
	}

	title := fmt.Sprintf("Attendance %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	rep, err := h.repo.Insert(c.Request.Context(), tenantID, TypeAttendance, title, data, &start, &end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	metrics.RecordReport(TypeAttendance)
	c.JSON(http.StatusCreated, gin.H{"report": rep, "data": data})
}

// List godoc
// @Summary      List saved reports
// @Tags         gym-reports
// @Produce      json
// @Security     BearerAuth
// @Param        type  query  string  false  "Filter by report type"
// @Success      200  {object}  gin.H
// @Router       /api/gym/reports [get]
func (h *Handler) List(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reports, err := h.repo.List(c.Request.Context(), tenantID, c.Query("type"), listLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Get godoc
// @Summary      Get saved report by id
// @Tags         gym-reports
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Report id"
// @Success      200  {object}  Report
// @Router       /api/gym/reports/{id} [get]
func (h *Handler) Get(c *gin.Context) {
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

	rep, err := h.repo.FindByID(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
		return
	}

	c.JSON(http.StatusOK, rep)
}
