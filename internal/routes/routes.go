package routes

import (
	"fmt"
	"net/http"
	"time"

	"lms-portal/internal/auth"
	"lms-portal/internal/cache"
	"lms-portal/internal/catalog"
	"lms-portal/internal/handlers"
	"lms-portal/internal/middleware"
	"lms-portal/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserStore is everything the HTTP layer needs from the credential store.
type UserStore interface {
	handlers.Accounts
	middleware.UserFinder
}

// Options carries the dependencies built at startup.
type Options struct {
	Catalog            *catalog.Catalog
	Users              UserStore
	Sessions           *auth.SessionManager
	Identities         *cache.IdentityCache
	RegistrationOpen   bool
	CORSAllowedOrigins []string
	Logger             zerolog.Logger
}

func SetupRoutes(opts Options) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	h := handlers.New(handlers.Options{
		Catalog:          opts.Catalog,
		Accounts:         opts.Users,
		Sessions:         opts.Sessions,
		Identities:       opts.Identities,
		RegistrationOpen: opts.RegistrationOpen,
		Logger:           opts.Logger,
	})

	ginRouter := gin.New()
	ginRouter.Use(middleware.RequestLogger(opts.Logger), gin.Recovery())

	// CORS is only needed when another origin embeds the site
	if len(opts.CORSAllowedOrigins) > 0 {
		ginRouter.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	ginRouter.SetHTMLTemplate(tmpl)

	// Health check endpoint
	ginRouter.GET("/health", h.Health)

	loadIdentity := middleware.LoadIdentity(opts.Sessions, opts.Users, opts.Identities, opts.Logger)

	site := ginRouter.Group("/", loadIdentity)
	{
		site.GET("/", h.Index)

		site.GET("/login", h.LoginForm)
		site.POST("/login", h.Login)
		site.GET("/register", h.RegisterForm)
		site.POST("/register", h.Register)
	}

	// Protected routes (authentication required)
	protected := site.Group("", middleware.RequireLogin())
	{
		protected.GET("/logout", h.Logout)
	}

	// Unknown slugs are a 404 for everyone, known ones need a login
	site.GET("/course/:slug", h.CourseExists(), middleware.RequireLogin(), h.ShowCourse)

	ginRouter.NoRoute(loadIdentity, h.NotFound)

	return ginRouter, nil
}
