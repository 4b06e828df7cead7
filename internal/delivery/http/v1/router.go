package v1

import (
	"net/http"
	"time"

	"studio-site-backend/config"
	"studio-site-backend/internal/delivery/http/middleware"
	"studio-site-backend/internal/delivery/http/response"
	"studio-site-backend/internal/domain"
	"studio-site-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ContentUC     domain.ContentUsecase
	ApplicationUC domain.ApplicationUsecase
	Tokens        *token.Manager
	UploadDir     string
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.Env == "production")) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	// Uploaded images are served from a fixed public path
	r.Static("/uploads", deps.UploadDir)

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	authLimiter := middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig(deps.Config.RateLimitAuthThreshold, window))
	uploadLimiter := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(deps.Config.RateLimitUploadThreshold, window))

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Auth endpoints take the stricter limiter on their public routes
	public := api.Group("")
	publicAuth := api.Group("")
	publicAuth.Use(authLimiter)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))

	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC), middleware.AdminRequired())

	NewAuthHandler(publicAuth, protected, admin, deps.AuthUC, deps.Config)
	NewContentHandler(public, admin, uploadLimiter, deps.ContentUC)
	NewApplicationHandler(public, admin, deps.ApplicationUC)

	return r
}
