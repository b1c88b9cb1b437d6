// Package server wires the HTTP API: authentication, report execution
// and the export endpoint that streams rendered artifacts.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/avenir-oabms/relatorios-unificados/core/config"
	"github.com/avenir-oabms/relatorios-unificados/core/db"
	"github.com/avenir-oabms/relatorios-unificados/internal/auth"
	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
	"github.com/avenir-oabms/relatorios-unificados/internal/mural"
)

// Dependencies carries everything the handlers need. Tests inject
// fakes; Run wires the real stores.
type Dependencies struct {
	Config   *config.Config
	Auth     *db.AuthStore
	Registry *db.RegistryStore
	MySQL    *db.Store
	MSSQL    *db.Store
	Mural    mural.Repository
	Logo     []byte
}

// Server holds the router and its dependencies.
type Server struct {
	deps   Dependencies
	router *gin.Engine
}

// New builds the router with CORS, middleware and every route mounted.
func New(deps Dependencies) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition", "X-Report-Degraded"},
		MaxAge:        12 * time.Hour,
	}
	if len(deps.Config.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = deps.Config.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	s := &Server{deps: deps, router: router}
	s.mountRoutes()
	return s
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API until the listener fails.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.deps.Config.HTTPPort)
	logger.Info("API disponível em http://localhost%s", addr)
	return s.router.Run(addr)
}

func (s *Server) mountRoutes() {
	secret := s.deps.Config.JWTSecret

	api := s.router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", s.handleLogin)

		logged := authGroup.Group("", auth.RequireAuth(secret))
		logged.GET("/me", s.handleMe)
		logged.POST("/change_password", s.handleChangePassword)

		admin := authGroup.Group("", auth.RequireAuth(secret), auth.RequireAdmin())
		admin.POST("/register", s.handleRegister)
		admin.GET("/users", s.handleListUsers)
		admin.PATCH("/users/:id", s.handleUpdateUser)
		admin.POST("/users/:id/reset_password", s.handleResetPassword)
	}

	reports := api.Group("/reports", auth.RequireAuth(secret))
	{
		reports.GET("/list", s.handleReportList)
		reports.POST("/run/:report_key", s.handleReportRun)
		reports.GET("/subsecoes", s.handleSubsecoes)
		reports.GET("/health/db", s.handleDBHealth)
		reports.GET("/lista_simples", s.handleListaSimples)
	}

	muralGroup := api.Group("/mural", auth.RequireAuth(secret))
	{
		muralGroup.GET("", s.handleMuralList)

		admin := muralGroup.Group("", auth.RequireAdmin())
		admin.POST("", s.handleMuralCreate)
		admin.PUT("/:id", s.handleMuralUpdate)
		admin.DELETE("/:id", s.handleMuralDelete)
	}
}
