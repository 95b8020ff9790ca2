package server

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pantrychef/internal/auth"
	"pantrychef/internal/common"
	"pantrychef/internal/export"
	"pantrychef/internal/receipt"
	"pantrychef/internal/recipe"
	"pantrychef/internal/repository"
)

// Server bundles the HTTP handlers and their dependencies.
type Server struct {
	cfg       *common.Config
	authSvc   *auth.Service
	issuer    *auth.TokenIssuer
	pipeline  *receipt.Pipeline
	recipes   *recipe.Service
	exports   *export.Service
	users     repository.UserRepository
	inventory repository.InventoryRepository
	log       *slog.Logger
}

func New(
	cfg *common.Config,
	authSvc *auth.Service,
	issuer *auth.TokenIssuer,
	pipeline *receipt.Pipeline,
	recipes *recipe.Service,
	exports *export.Service,
	users repository.UserRepository,
	inventory repository.InventoryRepository,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		authSvc:   authSvc,
		issuer:    issuer,
		pipeline:  pipeline,
		recipes:   recipes,
		exports:   exports,
		users:     users,
		inventory: inventory,
		log:       logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = s.cfg.Server.MaxUploadBytes

	corsCfg := cors.DefaultConfig()
	if s.cfg.Server.CORSOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(s.cfg.Server.CORSOrigins, ",")
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/register", s.handleRegister)
		api.POST("/login", s.handleLogin)
	}

	authed := api.Group("")
	authed.Use(AuthMiddleware(s.issuer))
	{
		authed.POST("/receipts/analyze", s.handleAnalyzeReceipt)
		authed.POST("/receipts/confirm", s.handleConfirmReceipt)

		authed.GET("/inventory", s.handleListInventory)
		authed.POST("/inventory", s.handleAddInventoryItem)
		authed.DELETE("/inventory/:id", s.handleDeleteInventoryItem)
		authed.DELETE("/inventory", s.handleDeleteAllInventory)
		authed.GET("/inventory/export", s.handleExportInventory)

		authed.GET("/recipes/suggestions", s.handleSuggestions)
		authed.POST("/recipes/refresh", s.handleRefreshRecipe)
		authed.POST("/recipes/rate", s.handleRateRecipe)

		authed.POST("/chat", s.handleChat)

		authed.GET("/preferences", s.handleGetPreferences)
		authed.PUT("/preferences", s.handleUpdatePreferences)
	}

	return r
}
