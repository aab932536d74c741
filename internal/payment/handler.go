package payment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo     Repository
	gateways map[Method]Gateway
}

func NewHandler(db *sqlx.DB, gateways ...Gateway) *Handler {
	return NewHandlerWithRepo(NewRepository(db), gateways...)
}

func NewHandlerWithRepo(repo Repository, gateways ...Gateway) *Handler {
	byMethod := make(map[Method]Gateway, len(gateways))
	for _, g := range gateways {
		byMethod[g.Name()] = g
	}
	return &Handler{repo: repo, gateways: byMethod}
}

// Repo exposes the repository for cross-package wiring.
func (h *Handler) Repo() Repository {
	return h.repo
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// AdminList godoc
// @Summary      List all payments (admin)
// @Description  Includes the platform revenue total: completed gym manager
// @Description  subscription payments only.
// @Tags         admin-payments
// @Produce      json
// @Security     BearerAuth
// @Param        page            query  int     false  "Page"
// @Param        limit           query  int     false  "Page size"
// @Param        type            query  string  false  "Payment type"
// @Param        status          query  string  false  "Payment status"
// @Param        method          query  string  false  "Payment method"
// @Param        gym_manager_id  query  int     false  "Filter by tenant"
// @Success      200  {object}  gin.H
// @Router       /api/admin/payments [get]
func (h *Handler) AdminList(c *gin.Context) {
	page, limit := parsePagination(c)
	managerID, _ := strconv.Atoi(c.Query("gym_manager_id"))

	filter := ListFilter{
		Type:         c.Query("type"),
		Status:       c.Query("status"),
		Method:       c.Query("method"),
		GymManagerID: managerID,
		Page:         page,
		Limit:        limit,
	}

	payments, total, err := h.repo.ListAll(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	revenue, err := h.repo.PlatformRevenue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load revenue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":            payments,
		"total_revenue_cents": revenue,
		"pagination":          api.NewPagination(page, limit, total),
	})
}

// AdminGet godoc
// @Summary      Get payment by id (admin)
// @Tags         admin-payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Payment id"
// @Success      200  {object}  Payment
// @Router       /api/admin/payments/{id} [get]
func (h *Handler) AdminGet(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	p, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// AdminRevenueStats godoc
// @Summary      Platform revenue breakdown
// @Description  Totals over completed gym manager subscription payments
// @Description  only; member payments never count toward platform revenue.
// @Tags         admin-payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  RevenueStats
// @Router       /api/admin/payments/stats [get]
func (h *Handler) AdminRevenueStats(c *gin.Context) {
	stats, err := h.repo.PlatformRevenueStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load revenue stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GymList godoc
// @Summary      List member payments
// @Description  Only member subscription payments for the calling gym. The
// @Description  revenue total excludes the gym's own platform subscription
// @Description  payments.
// @Tags         gym-payments
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Param        status  query  string  false  "Payment status"
// @Param        method  query  string  false  "Payment method"
// @Success      200  {object}  gin.H
// @Router       /api/gym/payments [get]
func (h *Handler) GymList(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)
	filter := ListFilter{
		Status: c.Query("status"),
		Method: c.Query("method"),
		Page:   page,
		Limit:  limit,
	}

	payments, total, err := h.repo.ListTenant(c.Request.Context(), tenantID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	revenue, err := h.repo.TenantRevenue(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load revenue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":            payments,
		"total_revenue_cents": revenue,
		"pagination":          api.NewPagination(page, limit, total),
	})
}

// GymGet godoc
// @Summary      Get member payment by id
// @Tags         gym-payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Payment id"
// @Success      200  {object}  Payment
// @Router       /api/gym/payments/{id} [get]
func (h *Handler) GymGet(c *gin.Context) {
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

	p, err := h.repo.FindTenantByID(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GymRevenueStats godoc
// @Summary      Member revenue breakdown
// @Tags         gym-payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  RevenueStats
// @Router       /api/gym/payments/stats [get]
func (h *Handler) GymRevenueStats(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.repo.TenantRevenueStats(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load revenue stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

type CreatePaymentRequest struct {
	RelatedID        int     `json:"related_id" binding:"required"`
	AmountCents      int64   `json:"amount_cents" binding:"required,min=1"`
	Currency         string  `json:"currency"`
	PaymentMethod    Method  `json:"payment_method" binding:"omitempty,oneof=cash card stripe paypal local"`
	PaymentGatewayID *string `json:"payment_gateway_id,omitempty"`
	Status           Status  `json:"status" binding:"omitempty,oneof=pending completed failed refunded"`
	Description      string  `json:"description"`
}

type UpdatePaymentRequest struct {
	Status           Status  `json:"status" binding:"required,oneof=pending completed failed refunded"`
	PaymentGatewayID *string `json:"payment_gateway_id,omitempty"`
}

// GymCreate godoc
// @Summary      Record a manual member payment
// @Description  Records a payment against one of the gym's member
// @Description  subscriptions, e.g. a cash settlement taken at the desk.
// @Tags         gym-payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreatePaymentRequest  true  "Payment data"
// @Success      201  {object}  gin.H
// @Router       /api/gym/payments [post]
func (h *Handler) GymCreate(c *gin.Context) {
	tenantID, ok := auth.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owned, err := h.repo.OwnsMemberSubscription(c.Request.Context(), tenantID, req.RelatedID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	method := req.PaymentMethod
	if method == "" {
		method = MethodCash
	}

	in := CreateInput{
		GymManagerID:     tenantID,
		Type:             TypeTenant,
		RelatedID:        req.RelatedID,
		AmountCents:      req.AmountCents,
		Currency:         req.Currency,
		PaymentMethod:    method,
		PaymentGatewayID: req.PaymentGatewayID,
		Status:           req.Status,
		Description:      req.Description,
	}
	if req.Status == StatusCompleted {
		now := time.Now()
		in.PaidAt = &now
	}

	p, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	metrics.RecordPayment(string(p.Type), string(p.PaymentMethod))
	c.JSON(http.StatusCreated, gin.H{"message": "Payment recorded successfully", "payment": p})
}

// GymUpdate godoc
// @Summary      Update a member payment's status
// @Tags         gym-payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                   true  "Payment id"
// @Param        request  body  UpdatePaymentRequest  true  "New status"
// @Success      200  {object}  gin.H
// @Router       /api/gym/payments/{id} [put]
func (h *Handler) GymUpdate(c *gin.Context) {
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

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.repo.UpdateTenantStatus(c.Request.Context(), tenantID, id, req.Status, req.PaymentGatewayID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment updated successfully", "payment": p})
}

type ChargeRequest struct {
	Method      Method `json:"method" binding:"required,oneof=stripe paypal local"`
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type ConfirmRequest struct {
	Method    Method `json:"method" binding:"required,oneof=stripe paypal local"`
	GatewayID string `json:"gateway_id" binding:"required"`
}

// CreateCharge godoc
// @Summary      Create a gateway charge
// @Description  Opens a charge with the selected processor. The returned
// @Description  gateway id is later attached to a subscription purchase.
// @Tags         admin-payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  ChargeRequest  true  "Charge data"
// @Success      201  {object}  Charge
// @Router       /api/admin/payments/charge [post]
func (h *Handler) CreateCharge(c *gin.Context) {
	var req ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gateway, ok := h.gateways[req.Method]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported payment method"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "EGP"
	}

	charge, err := gateway.CreateCharge(c.Request.Context(), req.AmountCents, currency, req.Description)
	if err != nil {
		if errors.Is(err, ErrGatewayNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway error"})
		return
	}

	c.JSON(http.StatusCreated, charge)
}

// ConfirmCharge godoc
// @Summary      Confirm a gateway charge
// @Tags         admin-payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  ConfirmRequest  true  "Charge reference"
// @Success      200  {object}  Charge
// @Router       /api/admin/payments/charge/confirm [post]
func (h *Handler) ConfirmCharge(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gateway, ok := h.gateways[req.Method]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported payment method"})
		return
	}

	charge, err := gateway.ConfirmCharge(c.Request.Context(), req.GatewayID)
	if err != nil {
		if errors.Is(err, ErrGatewayNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway error"})
		return
	}

	c.JSON(http.StatusOK, charge)
}
