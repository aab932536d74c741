package manager

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/logger"
	"gymdesk/internal/notification"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo      Repository
	jwtSecret string
	notifier  *notification.Service
}

func NewHandler(db *sqlx.DB, jwtSecret string, notifier *notification.Service) *Handler {
	return &Handler{
		repo:      NewRepository(db),
		jwtSecret: jwtSecret,
		notifier:  notifier,
	}
}

func NewHandlerWithRepo(repo Repository, jwtSecret string, notifier *notification.Service) *Handler {
	return &Handler{repo: repo, jwtSecret: jwtSecret, notifier: notifier}
}

// Repo exposes the repository for auth middleware wiring.
func (h *Handler) Repo() Repository {
	return h.repo
}

// Register godoc
// @Summary      Register gym manager account
// @Description  Creates a tenant account. The subscription status starts as
// @Description  "expired" until a platform subscription is purchased.
// @Tags         gym-auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Registration data"
// @Success      201      {object}  AuthResponse
// @Router       /api/gym/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := h.repo.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	m, err := h.repo.Create(c.Request.Context(), req, passwordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := auth.GenerateToken(m.ID, m.Email, auth.RoleGymManager, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	if h.notifier != nil {
		if err := h.notifier.SendWelcome(c.Request.Context(), m.Email, m.Name, m.GymName); err != nil {
			logger.Errorf("Failed to queue welcome email for %s: %v", m.Email, err)
		}
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Message: "Account created successfully",
		Token:   token,
		Manager: *m,
	})
}

// Login godoc
// @Summary      Gym manager login
// @Description  Authenticates a tenant. Token issuance succeeds even when the
// @Description  platform subscription is not active; protected routes then
// @Description  answer 403 with the current status.
// @Tags         gym-auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  AuthResponse
// @Router       /api/gym/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !m.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is disabled"})
		return
	}

	if !auth.CheckPassword(m.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(m.ID, m.Email, auth.RoleGymManager, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Message: "Logged in successfully",
		Token:   token,
		Manager: *m,
	})
}

// Profile godoc
// @Summary      Current gym manager profile
// @Tags         gym-auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Manager
// @Router       /api/gym/auth/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	id, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gym manager not found"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// List godoc
// @Summary      List gym managers (admin)
// @Tags         admin-gym-managers
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Param        search  query  string  false  "Search by name, email or gym name"
// @Param        status  query  string  false  "Filter by subscription status"
// @Success      200  {object}  gin.H
// @Router       /api/admin/gym-managers [get]
func (h *Handler) List(c *gin.Context) {
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
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}

	managers, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load gym managers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gym_managers": managers,
		"pagination":   api.NewPagination(page, limit, total),
	})
}

// Get godoc
// @Summary      Get gym manager by id (admin)
// @Tags         admin-gym-managers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Gym manager id"
// @Success      200  {object}  Manager
// @Router       /api/admin/gym-managers/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	m, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gym manager not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load gym manager"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// Update godoc
// @Summary      Update gym manager (admin)
// @Tags         admin-gym-managers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int            true  "Gym manager id"
// @Param        request  body  UpdateRequest  true  "Fields to update"
// @Success      200  {object}  gin.H
// @Router       /api/admin/gym-managers/{id} [put]
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

	m, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gym manager not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update gym manager"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Updated successfully", "gym_manager": m})
}

// Delete godoc
// @Summary      Delete gym manager (admin)
// @Tags         admin-gym-managers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Gym manager id"
// @Success      200  {object}  api.MessageResponse
// @Router       /api/admin/gym-managers/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gym manager not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete gym manager"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Deleted successfully"})
}
