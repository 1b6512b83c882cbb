package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rink-radar/api-go/config"
	"github.com/rink-radar/api-go/controllers"
	"github.com/rink-radar/api-go/middleware"
	"github.com/rink-radar/api-go/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	cfg := config.LoadCheckinConfig()

	// Services
	checkinService := services.NewCheckinService(db, cfg, logger)
	visitLedger := services.NewVisitLedger(db, logger)
	gateService := services.NewGateService(db, cfg, logger)
	reviewService := services.NewReviewService(db, gateService, logger)
	eventService := services.NewEventService(db, gateService, logger)

	// Controllers
	authController := controllers.NewAuthController(db)
	rinkController := controllers.NewRinkController(db, checkinService, gateService)
	checkinController := controllers.NewCheckinController(checkinService)
	visitController := controllers.NewVisitController(visitLedger)
	reviewController := controllers.NewReviewController(reviewService)
	eventController := controllers.NewEventController(eventService)
	uploadController := controllers.NewUploadController()

	// Public routes
	public := r.Group("/api")
	public.Use(middleware.RateLimit(rdb))
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/refresh-token", authController.RefreshToken)

		public.GET("/rinks", rinkController.GetRinks)
		public.GET("/rinks/:id", rinkController.GetRink)
		public.GET("/rinks/:id/checkins", rinkController.GetRinkCheckins)
		public.GET("/rinks/:id/reviews", reviewController.GetRinkReviews)
		public.GET("/rinks/:id/events", eventController.GetRinkEvents)
		public.GET("/events/:id", eventController.GetEvent)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.RateLimit(rdb))
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.GET("/profile", authController.GetProfile)

		protected.GET("/rinks/:id/eligibility", rinkController.GetRinkEligibility)

		SetupCheckinRoutes(protected, checkinController, visitController, reviewController)
		SetupEventRoutes(protected, eventController)
		SetupReviewRoutes(protected, reviewController)
		SetupUploadRoutes(protected, uploadController)
	}
}
