package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cms-backend/controllers"
	"cms-backend/metrics"
	"cms-backend/middleware"
)

// Handlers bundles every controller the router mounts.
type Handlers struct {
	Resources *controllers.ResourceController
	Reset     *controllers.ResetController
	Translate *controllers.TranslateController
	Analytics *controllers.AnalyticsController
	Forms     *controllers.FormController
	Settings  *controllers.SettingsController
	Auth      *controllers.AuthController
	Media     *controllers.MediaController
}

type Options struct {
	CORSOrigins []string
	Tokens      middleware.TokenParser
	Log         *zap.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// SetupRouter mounts the public site API and the admin console API.
func SetupRouter(h Handlers, opts Options) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log, opts.Metrics))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if h.Media != nil {
		r.Static(h.Media.URLPrefix, h.Media.Store.Root())
	}
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		api.POST("/request-reset", h.Reset.RequestReset)
		api.POST("/auth/login", h.Auth.Login)

		api.GET("/content/:resource", h.Resources.PublicList)
		api.GET("/settings/site", h.Settings.GetSiteSettings)

		api.GET("/captcha", h.Forms.Captcha)
		api.POST("/contact", h.Forms.Contact)
		api.GET("/careers", h.Forms.Careers)
		api.POST("/careers/:id/apply", h.Forms.Apply)

		api.POST("/visits", h.Analytics.RecordVisit)
	}

	admin := api.Group("/admin", middleware.RequireAdmin(opts.Tokens))
	{
		admin.GET("/me", h.Auth.Me)

		admin.GET("/resources", h.Resources.Resources)
		res := admin.Group("/resources/:resource")
		{
			res.GET("", h.Resources.List)
			res.POST("", h.Resources.Create)
			res.DELETE("", h.Resources.Clear)
			res.GET("/:id", h.Resources.Get)
			res.PUT("/:id", h.Resources.Update)
			res.PATCH("/:id", h.Resources.Update)
			res.DELETE("/:id", h.Resources.Delete)
		}

		admin.POST("/translate", h.Translate.Translate)

		admin.GET("/analytics", h.Analytics.Dashboard)
		admin.DELETE("/analytics", h.Analytics.Clear)

		admin.PUT("/settings/site", h.Settings.UpdateSiteSettings)

		if h.Media != nil {
			admin.POST("/uploads", h.Media.Upload)
		}
	}

	return r
}
