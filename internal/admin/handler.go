package admin

import (
	"net/http"

	"gymdesk/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo      Repository
	jwtSecret string
}

func NewHandler(db *sqlx.DB, jwtSecret string) *Handler {
	return &Handler{
		repo:      NewRepository(db),
		jwtSecret: jwtSecret,
	}
}

func NewHandlerWithRepo(repo Repository, jwtSecret string) *Handler {
	return &Handler{repo: repo, jwtSecret: jwtSecret}
}

// Repo exposes the repository for auth middleware wiring.
func (h *Handler) Repo() Repository {
	return h.repo
}

// Register godoc
// @Summary      Register platform admin
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Admin registration data"
// @Success      201      {object}  AuthResponse
// @Router       /api/admin/auth/register [post]
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
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin already registered"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	admin, err := h.repo.Create(c.Request.Context(), req.Name, req.Email, passwordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin"})
		return
	}

	token, err := auth.GenerateToken(admin.ID, admin.Email, auth.RoleAdmin, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Message: "Account created successfully",
		Token:   token,
		Admin:   *admin,
	})
}

// Login godoc
// @Summary      Admin login
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Admin credentials"
// @Success      200      {object}  AuthResponse
// @Router       /api/admin/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(admin.ID, admin.Email, auth.RoleAdmin, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Message: "Logged in successfully",
		Token:   token,
		Admin:   *admin,
	})
}

// Profile godoc
// @Summary      Current admin profile
// @Tags         admin-auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Admin
// @Router       /api/admin/auth/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	id, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	admin, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	c.JSON(http.StatusOK, admin)
}
