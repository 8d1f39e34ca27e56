package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"legacyestates/internal/config"
	"legacyestates/internal/lead"
	"legacyestates/internal/metrics"
	"legacyestates/internal/middleware"
	"legacyestates/internal/services"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Inquiry     *InquiryHandler
	Contact     *ContactHandler
	Property    *PropertyHandler
	Blog        *BlogHandler
	Testimonial *TestimonialHandler
	Auth        *AuthHandler
	Health      *services.HealthService
}

// NewHandlers wires services into handlers
func NewHandlers(registry *lead.Registry, otp *services.OTPService, contact *services.ContactService, property *services.PropertyService, blog *services.BlogService, testimonial *services.TestimonialService, auth *services.AuthService, health *services.HealthService) *Handlers {
	return &Handlers{
		Inquiry:     NewInquiryHandler(registry, otp),
		Contact:     NewContactHandler(contact),
		Property:    NewPropertyHandler(property),
		Blog:        NewBlogHandler(blog),
		Testimonial: NewTestimonialHandler(testimonial),
		Auth:        NewAuthHandler(auth),
		Health:      health,
	}
}

// NewRouter builds the gin engine with middleware and all routes mounted
func NewRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())
	r.Use(middleware.SecurityHeaders(cfg.App.Debug))
	r.Use(metrics.GinMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, h.Health.Check(c.Request.Context()))
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// Public lead-capture flow. Sessions carry no credentials; the
	// session id is the only handle.
	inquiry := api.Group("/inquiry")
	{
		inquiry.POST("/sessions", h.Inquiry.StartSession)
		inquiry.GET("/sessions/:id", h.Inquiry.GetSession)
		inquiry.PATCH("/sessions/:id/fields", h.Inquiry.UpdateField)
		inquiry.POST("/sessions/:id/validate", h.Inquiry.Validate)
		inquiry.POST("/sessions/:id/verify-phone", h.Inquiry.RequestVerification)
		inquiry.POST("/sessions/:id/submit-code", h.Inquiry.SubmitCode)
		inquiry.POST("/sessions/:id/cancel-verification", h.Inquiry.CancelVerification)
		inquiry.POST("/sessions/:id/submit", h.Inquiry.Submit)
		inquiry.GET("/verification-status", h.Inquiry.CheckVerification)
	}

	// Public reads
	api.GET("/properties", h.Property.List)
	api.GET("/properties/:id", h.Property.Get)
	api.GET("/blog", h.Blog.List)
	api.GET("/blog/:slug", h.Blog.GetBySlug)
	api.GET("/testimonials", h.Testimonial.List)

	api.POST("/auth/login", h.Auth.Login)

	// Staff back office
	staff := api.Group("/admin")
	staff.Use(middleware.RequireAuth(), middleware.RequireStaff())
	{
		staff.GET("/me", h.Auth.Me)

		staff.GET("/contact-submissions", h.Contact.List)
		staff.GET("/contact-submissions/:id", h.Contact.Get)
		staff.PATCH("/contact-submissions/:id/status", h.Contact.UpdateStatus)
		staff.DELETE("/contact-submissions/:id", h.Contact.Delete)

		staff.POST("/properties", h.Property.Create)
		staff.PUT("/properties/:id", h.Property.Update)
		staff.DELETE("/properties/:id", h.Property.Delete)

		staff.POST("/blog", h.Blog.Create)
		staff.GET("/blog/:id", h.Blog.Get)
		staff.PUT("/blog/:id", h.Blog.Update)
		staff.DELETE("/blog/:id", h.Blog.Delete)

		staff.POST("/testimonials", h.Testimonial.Create)
		staff.GET("/testimonials/:id", h.Testimonial.Get)
		staff.PUT("/testimonials/:id", h.Testimonial.Update)
		staff.DELETE("/testimonials/:id", h.Testimonial.Delete)
	}

	// Admin-only user management
	admin := api.Group("/admin/users")
	admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.POST("", h.Auth.CreateUser)
		admin.GET("", h.Auth.ListUsers)
		admin.GET("/:id", h.Auth.GetUser)
		admin.PUT("/:id", h.Auth.UpdateUser)
		admin.DELETE("/:id", h.Auth.DeleteUser)
	}

	return r
}
