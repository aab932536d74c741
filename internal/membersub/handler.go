package membersub

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

// Create godoc
// @Summary      Sell a membership
// @Description  With plan_id the gym's catalog entry supplies the terms.
// @Description  Without it plan_name, price_cents and duration (months) are
// @Description  required.
// @Tags         gym-subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreateRequest  true  "Membership data"
// @Success      201  {object}  gin.H
// @Router       /api/gym/subscriptions [post]
func (h *Handler) Create(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member plan not found"})
		case errors.Is(err, ErrManualFieldsRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Subscription created successfully", "subscription": sub})
}

// List godoc
// @Summary      List memberships
// @Tags         gym-subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "Page"
// @Param        limit      query  int     false  "Page size"
// @Param        status     query  string  false  "Filter by status"
// @Param        member_id  query  int     false  "Filter by member"
// @Success      200  {object}  gin.H
// @Router       /api/gym/subscriptions [get]
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

	subs, total, err := h.service.List(c.Request.Context(), tenantID, ListFilter{
		MemberID: memberID,
		Status:   c.Query("status"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscriptions": subs,
		"pagination":    api.NewPagination(page, limit, total),
	})
}

// Get godoc
// @Summary      Get membership by id
// @Tags         gym-subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Subscription id"
// @Success      200  {object}  Subscription
// @Router       /api/gym/subscriptions/{id} [get]
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

	sub, err := h.service.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Update godoc
// @Summary      Update membership
// @Tags         gym-subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int            true  "Subscription id"
// @Param        request  body  UpdateRequest  true  "Fields to update"
// @Success      200  {object}  gin.H
// @Router       /api/gym/subscriptions/{id} [put]
func (h *Handler) Update(c *gin.Context) {
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

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.service.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription updated successfully", "subscription": sub})
}

// Cancel godoc
// @Summary      Cancel membership
// @Tags         gym-subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Subscription id"
// @Success      200  {object}  gin.H
// @Router       /api/gym/subscriptions/{id}/cancel [put]
func (h *Handler) Cancel(c *gin.Context) {
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

	sub, err := h.service.Cancel(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled successfully", "subscription": sub})
}
