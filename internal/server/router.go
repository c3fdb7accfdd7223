package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/octa-services/plant-tracker/internal/handler"
	"github.com/octa-services/plant-tracker/internal/middleware"
	"github.com/octa-services/plant-tracker/internal/service"
	"github.com/octa-services/plant-tracker/pkg/logger"
	corsmiddleware "github.com/octa-services/plant-tracker/pkg/middleware/cors"
	reqidmiddleware "github.com/octa-services/plant-tracker/pkg/middleware/requestid"
)

// Options carries everything the router needs.
type Options struct {
	APIPrefix      string
	Sites          []string
	AllowedOrigins []string
	EnableDocs     bool
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	// Auth is nil when staff login is disabled.
	Auth *service.AuthService

	Problems  *handler.ProblemHandler
	Dashboard *handler.DashboardHandler
	Drafts    *handler.DraftHandler
	SiteList  *handler.SiteHandler
	Login     *handler.AuthHandler
	Ops       *handler.MetricsHandler
}

// NewRouter assembles the HTTP surface.
func NewRouter(opts Options) *gin.Engine {
	logr := opts.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", opts.Ops.Health)
	r.GET("/ready", opts.Ops.Ready)
	r.GET("/metrics", opts.Ops.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	if opts.Auth != nil && opts.Login != nil {
		api.POST("/auth/login", opts.Login.Login)
	}
	api.GET("/sites", opts.SiteList.List)

	site := api.Group("/sites/:site")
	site.Use(middleware.Site(opts.Sites))
	if opts.Auth != nil {
		site.Use(middleware.JWT(opts.Auth))
	}

	site.GET("/dashboard", opts.Dashboard.Dashboard)
	site.GET("/history", opts.Dashboard.History)
	site.GET("/history/export", opts.Dashboard.ExportHistory)

	site.POST("/problems", opts.Problems.Submit)
	site.GET("/problems", opts.Problems.List)
	site.GET("/problems/open", opts.Problems.OpenSelector)
	site.GET("/problems/:id", opts.Problems.Get)
	site.PATCH("/problems/:id/status", opts.Problems.UpdateStatus)

	site.POST("/drafts", opts.Drafts.Create)
	site.GET("/drafts/:draftId", opts.Drafts.Get)
	site.DELETE("/drafts/:draftId", opts.Drafts.Cancel)
	site.POST("/drafts/:draftId/spare-parts", opts.Drafts.AddSparePart)
	site.POST("/drafts/:draftId/steps", opts.Drafts.AddStep)

	return r
}
