// Package server assembles the gin engine: middleware, handlers and routes.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bizinteltz/api/fixtures"
	"bizinteltz/api/handlers"
	"bizinteltz/api/middleware"
	"bizinteltz/api/store"
	"bizinteltz/api/utils"
	"bizinteltz/api/validation"
)

type Deps struct {
	Directory *store.DirectoryStore
	Analytics *store.AnalyticsStore
	Users     handlers.UserLookup
	Fixtures  *fixtures.Generator
	Tokens    *utils.TokenIssuer
	Revoked   *utils.RevocationList
	Logger    *zap.Logger

	FrontendOrigins []string
	// APIKey, when non-empty, is accepted in X-API-KEY on protected routes.
	APIKey       string
	SecureCookie bool
}

func New(d Deps) *gin.Engine {
	validation.UseJSONFieldNames()

	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	businessHandlers := handlers.NewBusinessHandlers(d.Directory, d.Fixtures, log)
	verificationHandlers := handlers.NewVerificationHandlers(d.Directory, log)
	engagementHandlers := handlers.NewEngagementHandlers(d.Directory, log)
	adminHandlers := handlers.NewAdminHandlers(d.Directory, d.Fixtures)
	analyticsHandlers := handlers.NewAnalyticsHandlers(d.Analytics, log)
	authHandlers := handlers.NewAuthHandlers(d.Users, d.Tokens, d.Revoked, d.SecureCookie, log)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log.Named("http")),
		middleware.Metrics(),
		middleware.CORSMiddleware(d.FrontendOrigins),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Authentication
	r.POST("/token", authHandlers.Login)
	r.POST("/logout", authHandlers.Logout)

	// Directory
	r.GET("/search", businessHandlers.Search)
	r.POST("/business", businessHandlers.Create)
	r.GET("/profile/:id", businessHandlers.Profile)
	r.PUT("/business/:id", businessHandlers.Update)
	r.DELETE("/business/:id", businessHandlers.Delete)
	r.POST("/scrape", businessHandlers.Scrape)
	r.GET("/export", businessHandlers.Export)

	r.GET("/verify-bi/:bi_id", verificationHandlers.VerifyBI)
	r.POST("/request-verification", verificationHandlers.RequestVerification)

	r.POST("/claim", engagementHandlers.SubmitClaim)
	r.POST("/review", engagementHandlers.AddReview)
	r.GET("/reviews/:biz_id", engagementHandlers.Reviews)
	r.POST("/lead", engagementHandlers.AddLead)
	r.POST("/upload-media", engagementHandlers.UploadMedia)
	r.GET("/media/:biz_id", engagementHandlers.Media)

	r.POST("/track", analyticsHandlers.TrackEvent)
	r.GET("/analytics", analyticsHandlers.Counts)

	r.GET("/rankings/leaderboard", adminHandlers.Leaderboard)

	protected := r.Group("/")
	protected.Use(middleware.AuthRequired(d.Tokens, d.Revoked, d.APIKey, log.Named("auth")))
	{
		protected.GET("/claims", engagementHandlers.ListClaims)
		protected.POST("/claims/approve/:id", engagementHandlers.ApproveClaim)
		protected.GET("/leads", engagementHandlers.Leads)
		protected.GET("/admin", adminHandlers.Stats)
		protected.POST("/admin/feature", businessHandlers.Feature)
	}

	return r
}
