package memberplan

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"

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
// @Summary      List member plans
// @Tags         gym-member-plans
// @Produce      json
// @Security     BearerAuth
// @Param        is_active  query  bool  false  "Only active plans"
// @Success      200  {object}  gin.H
// @Router       /api/gym/member-plans [get]
func (h *Handler) List(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plans, err := h.repo.List(c.Request.Context(), tenantID, c.Query("is_active") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load member plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"member_plans": plans})
}

// Get godoc
// @Summary      Get member plan by id
// @Tags         gym-member-plans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Plan id"
// @Success      200  {object}  MemberPlan
// @Router       /api/gym/member-plans/{id} [get]
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

	p, err := h.repo.FindByID(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load member plan"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Create godoc
// @Summary      Create member plan
// @Tags         gym-member-plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreateRequest  true  "Plan data"
// @Success      201  {object}  gin.H
// @Router       /api/gym/member-plans [post]
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

	p, err := h.repo.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Member plan created successfully", "member_plan": p})
}

// Update godoc
// @Summary      Update member plan
// @Tags         gym-member-plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int            true  "Plan id"
// @Param        request  body  UpdateRequest  true  "Fields to update"
// @Success      200  {object}  gin.H
// @Router       /api/gym/member-plans/{id} [put]
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

	p, err := h.repo.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member plan updated successfully", "member_plan": p})
}

// Delete godoc
// @Summary      Delete member plan
// @Tags         gym-member-plans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Plan id"
// @Success      200  {object}  api.MessageResponse
// @Router       /api/gym/member-plans/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
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

	if err := h.repo.Delete(c.Request.Context(), tenantID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member plan"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Member plan deleted successfully"})
}
