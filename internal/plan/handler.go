package plan

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

func NewHandlerWithRepo(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Repo exposes the repository for cross-package wiring.
func (h *Handler) Repo() Repository {
	return h.repo
}

// List godoc
// @Summary      List subscription plans (admin)
// @Tags         admin-plans
// @Produce      json
// @Security     BearerAuth
// @Param        is_active  query  bool  false  "Only active plans"
// @Success      200  {object}  gin.H
// @Router       /api/admin/plans [get]
func (h *Handler) List(c *gin.Context) {
	activeOnly := c.Query("is_active") == "true"

	plans, err := h.repo.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// Get godoc
// @Summary      Get subscription plan by id (admin)
// @Tags         admin-plans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Plan id"
// @Success      200  {object}  Plan
// @Router       /api/admin/plans/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	p, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Create godoc
// @Summary      Create subscription plan (admin)
// @Tags         admin-plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreateRequest  true  "Plan data"
// @Success      201  {object}  gin.H
// @Router       /api/admin/plans [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Plan created successfully", "plan": p})
}

// Update godoc
// @Summary      Update subscription plan (admin)
// @Tags         admin-plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int            true  "Plan id"
// @Param        request  body  UpdateRequest  true  "Fields to update"
// @Success      200  {object}  gin.H
// @Router       /api/admin/plans/{id} [put]
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

	p, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan updated successfully", "plan": p})
}

// Delete godoc
// @Summary      Delete subscription plan (admin)
// @Tags         admin-plans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Plan id"
// @Success      200  {object}  api.MessageResponse
// @Router       /api/admin/plans/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Plan deleted successfully"})
}

// PublicList godoc
// @Summary      List purchasable plans
// @Description  Unauthenticated storefront listing. Only active plans appear.
// @Tags         public
// @Produce      json
// @Success      200  {object}  gin.H
// @Router       /api/public/plans [get]
func (h *Handler) PublicList(c *gin.Context) {
	plans, err := h.repo.List(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": plans})
}

// PublicGet godoc
// @Summary      Get a purchasable plan
// @Tags         public
// @Produce      json
// @Param        id  path  int  true  "Plan id"
// @Success      200  {object}  gin.H
// @Router       /api/public/plans/{id} [get]
func (h *Handler) PublicGet(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}

	p, err := h.repo.FindActiveByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}
