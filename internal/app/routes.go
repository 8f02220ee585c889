package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	"megawarez/internal/auth"
	"megawarez/internal/cache"
	"megawarez/internal/config"
	"megawarez/internal/dto"
	"megawarez/internal/handlers"
	"megawarez/internal/logging"
	"megawarez/internal/middleware"
	"megawarez/internal/repo"
	"megawarez/internal/service"
)

// Deps are the process-wide collaborators the routes are built from.
type Deps struct {
	Store repo.Store
	Cache *cache.CatalogCache // nil disables caching
	Log   logging.Logger
	Ping  func(context.Context) error
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, d Deps) {
	r.Use(middleware.RequestID(d.Log))

	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg, d.Ping))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")
	api.GET("", func(c *gin.Context) { c.Redirect(http.StatusFound, "/api/v1/users") })

	sessions := auth.NewSessionStore(d.Store)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	userSvc := service.NewUserService(d.Store, sessions, hasher, auth.NewTokenIssuer(), d.Log)
	catalog := service.NewCatalog(d.Store, d.Cache, d.Log)
	downloadSvc := service.NewDownloadService(d.Store, sessions, d.Log)

	var limiter *middleware.RateLimiter
	if cfg.Auth.LoginRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.Auth.LoginRPS, cfg.Auth.LoginBurst)
	}
	requireSession := auth.RequireSession(sessions)

	registerUserRoutes(api, handlers.NewUserHandler(userSvc), limiter)
	registerAuthRoutes(api, handlers.NewAuthHandler(userSvc), limiter)
	registerCategoryRoutes(api, handlers.NewCategoryHandler(catalog.Categories), requireSession)
	registerSubcategoryRoutes(api, handlers.NewSubcategoryHandler(catalog.Subcategories), requireSession)
	registerProductRoutes(api, handlers.NewProductHandler(catalog.Products), requireSession)
	registerDownloadRoutes(api, handlers.NewDownloadHandler(downloadSvc), requireSession)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "megawarez API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"openapi": "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config, ping func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "env": cfg.App.Env, "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env, "storage": cfg.Storage.Driver})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Fail(err.Error()))
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerUserRoutes(api *gin.RouterGroup, h *handlers.UserHandler, limiter *middleware.RateLimiter) {
	api.POST("/user", limiter.Middleware(), h.Register)
	api.GET("/users", h.List)
	api.GET("/user/:id", h.Get)
	api.PATCH("/user/:id/username", h.UpdateUsername)
	api.PATCH("/user/:id/password", h.UpdatePassword)
	api.DELETE("/user/:id", h.Delete)
	api.GET("/user/:id/sessions", h.Sessions)
	api.DELETE("/session/:id", h.RevokeSession)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler, limiter *middleware.RateLimiter) {
	api.POST("/login", limiter.Middleware(), h.Login)
	api.POST("/logout", h.Logout)
	api.GET("/token", h.Token)
}

func registerCategoryRoutes(api *gin.RouterGroup, h *handlers.CategoryHandler, requireSession gin.HandlerFunc) {
	api.GET("/categories", h.List)
	api.GET("/categories/orderby/:field/:order", h.ListOrdered)
	api.GET("/category/:id", h.Get)
	api.GET("/search/category", h.Search)
	api.GET("/search/category/:term", h.Search)
	api.POST("/category", requireSession, h.Create)
	api.PATCH("/category/:id/name", requireSession, h.Rename)
	api.DELETE("/category/:id", requireSession, h.Delete)
}

func registerSubcategoryRoutes(api *gin.RouterGroup, h *handlers.SubcategoryHandler, requireSession gin.HandlerFunc) {
	api.GET("/subcategories", h.List)
	api.GET("/subcategories/orderby/:field/:order", h.ListOrdered)
	api.GET("/category/:id/subcategories", h.ListByCategory)
	api.GET("/subcategory/:id", h.Get)
	api.GET("/search/subcategory", h.Search)
	api.GET("/search/subcategory/:term", h.Search)
	api.POST("/subcategory", requireSession, h.Create)
	api.PATCH("/subcategory/:id/name", requireSession, h.Rename)
	api.DELETE("/subcategory/:id", requireSession, h.Delete)
}

func registerProductRoutes(api *gin.RouterGroup, h *handlers.ProductHandler, requireSession gin.HandlerFunc) {
	api.GET("/products", h.List)
	api.GET("/products/orderby/:field/:order", h.ListOrdered)
	api.GET("/subcategory/:id/products", h.ListBySubcategory)
	api.GET("/product/:id", h.Get)
	api.GET("/search/product", h.Search)
	api.GET("/search/product/:term", h.Search)
	api.POST("/product", requireSession, h.Create)
	api.PATCH("/product/:id/name", requireSession, h.Rename)
	api.PATCH("/product/:id/subcategory", requireSession, h.Move)
	api.DELETE("/product/:id", requireSession, h.Delete)
}

func registerDownloadRoutes(api *gin.RouterGroup, h *handlers.DownloadHandler, requireSession gin.HandlerFunc) {
	api.GET("/downloads", requireSession, h.List)
	api.GET("/download/:id", requireSession, h.Get)
	api.GET("/user/:id/downloads", h.ListByUser)
	api.POST("/download", h.Create)
}
