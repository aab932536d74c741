package subscription

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Create platform subscription (admin)
// @Description  Activates a plan for a gym manager, mirrors the status onto
// @Description  the account and records a completed payment.
// @Tags         admin-subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreateRequest  true  "Subscription data"
// @Success      201  {object}  gin.H
// @Router       /api/admin/subscriptions [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrManagerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Gym manager not found"})
		case errors.Is(err, ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Subscription created successfully", "subscription": sub})
}

// List godoc
// @Summary      List platform subscriptions (admin)
// @Tags         admin-subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        page            query  int     false  "Page"
// @Param        limit           query  int     false  "Page size"
// @Param        status          query  string  false  "Filter by status"
// @Param        gym_manager_id  query  int     false  "Filter by tenant"
// @Success      200  {object}  gin.H
// @Router       /api/admin/subscriptions [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	managerID, _ := strconv.Atoi(c.Query("gym_manager_id"))

	subs, total, err := h.service.List(c.Request.Context(), ListFilter{
		Status:       c.Query("status"),
		GymManagerID: managerID,
		Page:         page,
		Limit:        limit,
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
// @Summary      Get platform subscription by id (admin)
// @Tags         admin-subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Subscription id"
// @Success      200  {object}  Subscription
// @Router       /api/admin/subscriptions/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	sub, err := h.service.Get(c.Request.Context(), id)
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
// @Summary      Update platform subscription (admin)
// @Tags         admin-subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int            true  "Subscription id"
// @Param        request  body  UpdateRequest  true  "Fields to update"
// @Success      200  {object}  gin.H
// @Router       /api/admin/subscriptions/{id} [put]
func (h *Handler) Update(c *gin.Context) {
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

	sub, err := h.service.Update(c.Request.Context(), id, req)
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
// @Summary      Cancel platform subscription (admin)
// @Tags         admin-subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Subscription id"
// @Success      200  {object}  gin.H
// @Router       /api/admin/subscriptions/{id}/cancel [put]
func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	sub, err := h.service.Cancel(c.Request.Context(), id)
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

// Subscribe godoc
// @Summary      Purchase a plan (public)
// @Description  Registers the gym (or signs it in) and activates the chosen
// @Description  plan in one call.
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        request  body  SubscribeRequest  true  "Purchase data"
// @Success      201  {object}  gin.H
// @Router       /api/public/subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.service.Subscribe(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Plan not found"})
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to process subscription"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Subscription activated successfully",
		"token":        result.Token,
		"subscription": result.Subscription,
		"gym_manager":  result.Manager,
	})
}
