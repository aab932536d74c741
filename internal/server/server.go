package server

import (
	"context"
	"net/http"

	"gymdesk/internal/admin"
	"gymdesk/internal/attendance"
	"gymdesk/internal/auth"
	"gymdesk/internal/config"
	"gymdesk/internal/manager"
	"gymdesk/internal/member"
	"gymdesk/internal/memberplan"
	"gymdesk/internal/membersub"
	"gymdesk/internal/notification"
	"gymdesk/internal/payment"
	"gymdesk/internal/plan"
	"gymdesk/internal/report"
	"gymdesk/internal/subscription"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router   *gin.Engine
	http     *http.Server
	db       *sqlx.DB
	config   *config.Config
	notifier *notification.Service
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notification.Service) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware(cfg.CORSOrigin))
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(TimeoutMiddleware(cfg.RequestTimeout))

	adminHandler := admin.NewHandler(db, cfg.JWTSecret)
	managerHandler := manager.NewHandler(db, cfg.JWTSecret, notifier)
	planHandler := plan.NewHandler(db)
	memberHandler := member.NewHandler(db)
	memberPlanHandler := memberplan.NewHandler(db)
	reportHandler := report.NewHandler(db)

	paypalGateway, err := payment.NewPayPalGateway(cfg.PayPalClientID, cfg.PayPalClientSecret, cfg.PayPalMode)
	if err != nil {
		return nil, err
	}
	paymentRepo := payment.NewRepository(db)
	paymentHandler := payment.NewHandlerWithRepo(paymentRepo,
		payment.NewStripeGateway(cfg.StripeSecretKey),
		paypalGateway,
		payment.NewLocalGateway(),
	)

	subscriptionService := subscription.NewService(
		subscription.NewRepository(db),
		planHandler.Repo(),
		managerHandler.Repo(),
		paymentRepo,
		notifier,
		cfg.JWTSecret,
	)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	memberSubRepo := membersub.NewRepository(db)
	memberSubHandler := membersub.NewHandler(membersub.NewService(
		memberSubRepo,
		memberHandler.Repo(),
		memberPlanHandler.Repo(),
		paymentRepo,
	))

	attendanceHandler := attendance.NewHandler(attendance.NewService(
		attendance.NewRepository(db),
		memberHandler.Repo(),
		memberSubRepo,
	))

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	public := router.Group("/api/public")
	{
		public.GET("/plans", planHandler.PublicList)
		public.GET("/plans/:id", planHandler.PublicGet)
		public.POST("/subscribe", subscriptionHandler.Subscribe)
	}

	adminAuth := auth.AdminAuth(cfg.JWTSecret, adminHandler.Repo())

	adminAuthRoutes := router.Group("/api/admin/auth")
	{
		adminAuthRoutes.POST("/register", adminHandler.Register)
		adminAuthRoutes.POST("/login", adminHandler.Login)
		adminAuthRoutes.GET("/profile", adminAuth, adminHandler.Profile)
	}

	adminRoutes := router.Group("/api/admin")
	adminRoutes.Use(adminAuth)
	{
		adminRoutes.GET("/gym-managers", managerHandler.List)
		adminRoutes.GET("/gym-managers/:id", managerHandler.Get)
		adminRoutes.PUT("/gym-managers/:id", managerHandler.Update)
		adminRoutes.DELETE("/gym-managers/:id", managerHandler.Delete)

		adminRoutes.GET("/plans", planHandler.List)
		adminRoutes.POST("/plans", planHandler.Create)
		adminRoutes.GET("/plans/:id", planHandler.Get)
		adminRoutes.PUT("/plans/:id", planHandler.Update)
		adminRoutes.DELETE("/plans/:id", planHandler.Delete)

		adminRoutes.GET("/subscriptions", subscriptionHandler.List)
		adminRoutes.POST("/subscriptions", subscriptionHandler.Create)
		adminRoutes.GET("/subscriptions/:id", subscriptionHandler.Get)
		adminRoutes.PUT("/subscriptions/:id", subscriptionHandler.Update)
		adminRoutes.PUT("/subscriptions/:id/cancel", subscriptionHandler.Cancel)

		adminRoutes.GET("/payments", paymentHandler.AdminList)
		adminRoutes.GET("/payments/stats", paymentHandler.AdminRevenueStats)
		adminRoutes.GET("/payments/:id", paymentHandler.AdminGet)
		adminRoutes.POST("/payments/charge", paymentHandler.CreateCharge)
		adminRoutes.POST("/payments/charge/confirm", paymentHandler.ConfirmCharge)
	}

	gymAuth := auth.GymAuth(cfg.JWTSecret, managerHandler.Repo())

	gymAuthRoutes := router.Group("/api/gym/auth")
	{
		gymAuthRoutes.POST("/register", managerHandler.Register)
		gymAuthRoutes.POST("/login", managerHandler.Login)
		gymAuthRoutes.GET("/profile", gymAuth, managerHandler.Profile)
	}

	gymRoutes := router.Group("/api/gym")
	gymRoutes.Use(gymAuth, auth.TenantIsolation())
	{
		gymRoutes.GET("/members", memberHandler.List)
		gymRoutes.POST("/members", memberHandler.Create)
		gymRoutes.GET("/members/:id", memberHandler.Get)
		gymRoutes.PUT("/members/:id", memberHandler.Update)
		gymRoutes.DELETE("/members/:id", memberHandler.Delete)

		gymRoutes.GET("/member-plans", memberPlanHandler.List)
		gymRoutes.POST("/member-plans", memberPlanHandler.Create)
		gymRoutes.GET("/member-plans/:id", memberPlanHandler.Get)
		gymRoutes.PUT("/member-plans/:id", memberPlanHandler.Update)
		gymRoutes.DELETE("/member-plans/:id", memberPlanHandler.Delete)

		gymRoutes.GET("/subscriptions", memberSubHandler.List)
		gymRoutes.POST("/subscriptions", memberSubHandler.Create)
		gymRoutes.GET("/subscriptions/:id", memberSubHandler.Get)
		gymRoutes.PUT("/subscriptions/:id", memberSubHandler.Update)
		gymRoutes.PUT("/subscriptions/:id/cancel", memberSubHandler.Cancel)

		gymRoutes.GET("/payments", paymentHandler.GymList)
		gymRoutes.POST("/payments", paymentHandler.GymCreate)
		gymRoutes.GET("/payments/stats", paymentHandler.GymRevenueStats)
		gymRoutes.GET("/payments/:id", paymentHandler.GymGet)
		gymRoutes.PUT("/payments/:id", paymentHandler.GymUpdate)

		gymRoutes.GET("/attendance", attendanceHandler.List)
		gymRoutes.POST("/attendance/checkin", attendanceHandler.CheckIn)
		gymRoutes.PUT("/attendance/:id/checkout", attendanceHandler.CheckOut)
		gymRoutes.GET("/attendance/member/:memberId", attendanceHandler.MemberHistory)

		gymRoutes.GET("/reports", reportHandler.List)
		gymRoutes.GET("/reports/:id", reportHandler.Get)
		gymRoutes.POST("/reports/revenue", reportHandler.GenerateRevenue)
		gymRoutes.POST("/reports/members", reportHandler.GenerateMembers)
		gymRoutes.POST("/reports/attendance", reportHandler.GenerateAttendance)
	}

	return &Server{
		router:   router,
		db:       db,
		config:   cfg,
		notifier: notifier,
	}, nil
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
