package member

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

// Create godoc
// @Summary      Register a gym member
// @Tags         gym-members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreateRequest  true  "Member data"
// @Success      201  {object}  gin.H
// @Router       /api/gym/members [post]
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

	m, err := h.repo.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Member created successfully", "member": m})
}

// List godoc
// @Summary      List gym members
// @Tags         gym-members
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "Page"
// @Param        limit      query  int     false  "Page size"
// @Param        search     query  string  false  "Search by name, email or phone"
// @Param        is_active  query  bool    false  "Filter by active flag"
// @Success      200  {object}  gin.H
// @Router       /api/gym/members [get]
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

	filter := ListFilter{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	members, total, err := h.repo.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members":    members,
		"pagination": api.NewPagination(page, limit, total),
	})
}

// Get godoc
// @Summary      Get gym member by id
// @Tags         gym-members
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Member id"
// @Success      200  {object}  Member
// @Router       /api/gym/members/{id} [get]
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

	m, err := h.repo.FindByID(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load member"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// Update godoc
// @Summary      Update gym member
// @Tags         gym-members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int            true  "Member id"
// @Param        request  body  UpdateRequest  true  "Fields to update"
// @Success      200  {object}  gin.H
// @Router       /api/gym/members/{id} [put]
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

	m, err := h.repo.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member updated successfully", "member": m})
}

// Delete godoc
// @Summary      Delete gym member
// @Tags         gym-members
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Member id"
// @Success      200  {object}  api.MessageResponse
// @Router       /api/gym/members/{id} [delete]
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
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Member deleted successfully"})
}
