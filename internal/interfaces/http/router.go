// Package http wires the gin engine, middleware and route groups.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fakturio-inc/fakturio/internal/infrastructure/config"
	"github.com/fakturio-inc/fakturio/internal/interfaces/http/handlers"
	"github.com/fakturio-inc/fakturio/internal/interfaces/http/middleware"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

type Router struct {
	engine         *gin.Engine
	cfg            *config.Config
	authMW         *middleware.AuthMiddleware
	accessHandler  *handlers.AccessHandler
	billingHandler *handlers.BillingHandler
	logger         logger.Interface
}

func NewRouter(
	cfg *config.Config,
	authMW *middleware.AuthMiddleware,
	accessHandler *handlers.AccessHandler,
	billingHandler *handlers.BillingHandler,
	logger logger.Interface,
) *Router {
	return &Router{
		engine:         gin.New(),
		cfg:            cfg,
		authMW:         authMW,
		accessHandler:  accessHandler,
		billingHandler: billingHandler,
		logger:         logger,
	}
}

func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMW.RequireAuth())

	access := v1.Group("/access")
	{
		access.GET("/features/:feature", r.accessHandler.CheckFeature)
		access.GET("/modules/:module", r.accessHandler.CheckModule)
		access.GET("/quotas/:quota", r.accessHandler.CheckQuota)
	}

	billing := v1.Group("/billing")
	{
		billing.POST("/plan", r.billingHandler.ChangePlan)
		billing.POST("/cancel", r.billingHandler.CancelSubscription)
		billing.POST("/reactivate", r.billingHandler.ReactivateSubscription)
		billing.POST("/sync", r.billingHandler.SyncSubscription)
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
