package web

import (
	"html/template"
	"net/http"
	"strings"
	"time"
	"travelworld/auth"
	"travelworld/config"
	"travelworld/handlers"
	"travelworld/models"
	"travelworld/storage"
	"travelworld/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "travel_session"
	limiterCleanup    = time.Minute
)

var templateFuncs = template.FuncMap{
	"media": storage.PublicURL,
	"thumb": func(path string) string {
		if path == "" {
			return ""
		}
		return storage.PublicURL(storage.ThumbPath(path))
	},
	// Descriptions are sanitized with bluemonday before they are stored
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
	"join": strings.Join,
}

// SessionOptions keeps the session cookie away from scripts and cross-site form posts
func SessionOptions() sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   config.SESSION_MAX_AGE,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewRouter wires middleware, templates and every route. The stop channel ends background work.
func NewRouter(store sessions.Store, stop <-chan struct{}) *gin.Engine {
	store.Options(SessionOptions())
	router := gin.New()
	_ = router.SetTrustedProxies(nil)
	router.Use(utils.RequestLogMiddleware, utils.RecoveryMiddleware)
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.CorsOrigins(),
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// HTML templates
	router.SetFuncMap(templateFuncs)
	router.LoadHTMLGlob(config.TEMPLATES_GLOB)

	router.Use(sessions.Sessions(sessionCookieName, store))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/static"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that

	// Uploaded media when stored on disk
	static := router.Group("/static")
	static.Use((&utils.CacheRouter{CacheTime: utils.CacheStatic}).Handler())
	static.Static("/", config.STATIC_DIR)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public
	limiter := utils.NewRateLimiter(config.AUTH_RATE_PER_MINUTE)
	limiter.StartCleanup(limiterCleanup, stop)
	router.GET("/", handlers.Home)
	router.POST("/register", limiter.Handler(), handlers.UserRegister)
	router.POST("/login", limiter.Handler(), handlers.UserLogin)
	router.GET("/logout", handlers.UserLogout)

	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// Logged in users
	authRouter.GET("/dashboard", handlers.Dashboard)
	authRouter.POST("/complete", handlers.CompletedAdd)
	authRouter.GET("/national", handlers.RegionList)
	authRouter.GET("/state/:id", handlers.RegionDetails)
	// Admin only
	authRouter.POST("/create-state", handlers.RegionCreate, models.RoleAdmin)
	authRouter.POST("/delete-state/:id", handlers.RegionDelete, models.RoleAdmin)
	authRouter.POST("/add-place/:state_id", handlers.PlaceAdd, models.RoleAdmin)
	authRouter.POST("/delete-place/:place_id/:state_id", handlers.PlaceDelete, models.RoleAdmin)

	return router
}
