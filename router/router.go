package router

import (
	"net/http"
	"strings"
	"time"

	"gallery/auth"
	"gallery/config"
	"gallery/handlers"
	"gallery/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionCookieName = "session"

// New assembles the gin engine: middleware, session store and all
// routes. Mutating routes go through the auth.Router wrapper.
func New() *gin.Engine {
	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.CORS_ORIGINS, ","),
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := cookie.NewStore([]byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   auth.SessionMaxAge,
		HttpOnly: true,
		Secure:   !config.DEBUG_MODE,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default

	authRouter := &auth.Router{Base: router}
	// Auth
	router.POST("/auth/login", handlers.Login)
	authRouter.POST("/auth/logout", handlers.Logout)
	router.GET("/auth/me", handlers.Me)
	// Albums
	router.GET("/albums", handlers.AlbumList)
	router.GET("/albums/:id", handlers.AlbumGet)
	authRouter.POST("/albums", handlers.AlbumCreate)
	authRouter.PUT("/albums/:id", handlers.AlbumUpdate)
	authRouter.DELETE("/albums/:id", handlers.AlbumDelete)
	// Photos
	router.GET("/photos", handlers.PhotoList)
	router.GET("/photos/:id", handlers.PhotoGet)
	authRouter.POST("/photos", handlers.PhotoCreate)
	authRouter.PUT("/photos/:id", handlers.PhotoUpdate)
	authRouter.DELETE("/photos/:id", handlers.PhotoDelete)
	authRouter.POST("/photos/move", handlers.PhotoMove)
	// Upload pipeline
	authRouter.POST("/upload", handlers.Upload)

	// With the disk backend the assets are served by us
	if config.STORAGE_TYPE == "disk" {
		router.Static(strings.TrimSuffix(config.PUBLIC_BASE_URL, "/"), config.DISK_PATH)
	}

	return router
}
