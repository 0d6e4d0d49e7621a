package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/auth"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/config"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/metrics"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/permission"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/scheduler"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/middleware"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/routes"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases, handlers,
// and the escalation scheduler. It wires everything together and provides Shutdown()
// for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware *middleware.AuthMiddleware

	jwtSvc   *auth.JWTService
	enforcer *permission.Enforcer
	notifier escalation.Notifier
	callLock escalation.CallLock
	metrics  *metrics.EscalationMetrics

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a new Container with all dependencies wired together.
// The scheduler is built and its jobs registered, but it is not started.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Auth, Telephony
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Escalation - UseCases, Scheduler Jobs
	if err := c.initEscalation(); err != nil {
		c.closeRedis()
		return nil, err
	}

	// Section 3: Issue - UseCases
	c.initIssue()

	// Section 4: Handlers
	if err := c.initHandlers(); err != nil {
		c.closeRedis()
		return nil, err
	}

	return c, nil
}

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.RequestLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	routes.SetupSystemRoutes(c.engine, &routes.SystemRouteConfig{
		SystemHandler:  c.hdlrs.systemHandler,
		MetricsHandler: c.metrics.Handler(),
	})
	routes.SetupIssueRoutes(c.engine, &routes.IssueRouteConfig{
		IssueHandler:   c.hdlrs.issueHandler,
		AuthMiddleware: c.authMiddleware,
		Authorizer:     c.enforcer,
	})
	routes.SetupEscalationRoutes(c.engine, &routes.EscalationRouteConfig{
		EscalationHandler: c.hdlrs.escalationHandler,
		AuthMiddleware:    c.authMiddleware,
		Authorizer:        c.enforcer,
	})
}

// Engine returns the Gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// SchedulerManager returns the escalation scheduler for the server to start and stop.
func (c *Container) SchedulerManager() *scheduler.SchedulerManager {
	return c.schedulerManager
}

// Enforcer returns the casbin-backed admin authorizer.
func (c *Container) Enforcer() *permission.Enforcer {
	return c.enforcer
}

// JWTService returns the token service.
func (c *Container) JWTService() *auth.JWTService {
	return c.jwtSvc
}

// Shutdown stops the scheduler, waiting for an in-flight cycle, and releases Redis.
// The database is owned by the caller.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil && c.schedulerManager.IsStarted() {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}
	c.closeRedis()
}

func (c *Container) closeRedis() {
	if c.redis == nil {
		return
	}
	if err := c.redis.Close(); err != nil {
		c.log.Warnw("failed to close redis client", "error", err)
	}
	c.redis = nil
}
