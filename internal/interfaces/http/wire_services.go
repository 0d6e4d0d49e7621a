package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	escalationUsecases "github.com/nxtrohith/Micro-Task-sub000/internal/application/escalation/usecases"
	issueUsecases "github.com/nxtrohith/Micro-Task-sub000/internal/application/issue/usecases"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/auth"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/cache"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/config"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/metrics"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/permission"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/scheduler"
	"github.com/nxtrohith/Micro-Task-sub000/internal/infrastructure/telephony"
	escalationHandlers "github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/handlers/escalation"
	issueHandlers "github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/handlers/issue"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/handlers/system"
	"github.com/nxtrohith/Micro-Task-sub000/internal/interfaces/http/middleware"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/db"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/services/markdown"
)

const redisPingTimeout = 5 * time.Second

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
		c.callLock = cache.NewRedisCallLock(client)
	} else {
		log.Infow("redis disabled, using in-process call lock")
		c.callLock = cache.NewMemoryCallLock()
	}

	c.repos = newRepositories(c.db)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		c.closeRedis()
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.SeedDefaultPolicies(); err != nil {
		c.closeRedis()
		return fmt.Errorf("failed to seed permission policies: %w", err)
	}
	c.enforcer = enforcer

	c.notifier = telephony.NewNotifier(cfg.Telephony, log)
	c.metrics = metrics.NewEscalationMetrics()
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

func (c *Container) initEscalation() error {
	cfg := c.cfg.Escalation
	log := c.log
	repos := c.repos

	processUC := escalationUsecases.NewProcessEscalationsUseCase(
		repos.issueRepo,
		repos.escalationLogRepo,
		c.notifier,
		c.callLock,
		db.NewTransactionManager(c.db),
		escalation.NewPolicy(cfg.DwellTime),
		escalation.NewFixedIntervalRetry(cfg.Interval),
		escalationUsecases.ProcessEscalationsConfig{
			CallTimeout:  cfg.CallTimeout,
			Concurrency:  cfg.Concurrency,
			BatchLimit:   cfg.BatchLimit,
			LogRetention: time.Duration(cfg.LogRetentionDays) * 24 * time.Hour,
		},
		log,
	)
	processUC.SetMetrics(c.metrics)

	c.ucs = &allUseCases{
		processEscalationsUC:   processUC,
		markViewedUC:           escalationUsecases.NewMarkViewedUseCase(repos.issueRepo, c.enforcer, log),
		resetEscalationUC:      escalationUsecases.NewResetEscalationUseCase(repos.issueRepo, c.enforcer, log),
		getEscalationHistoryUC: escalationUsecases.NewGetEscalationHistoryUseCase(repos.issueRepo, repos.escalationLogRepo, c.enforcer, log),
		getDashboardSummaryUC:  escalationUsecases.NewGetDashboardSummaryUseCase(repos.issueRepo, repos.escalationLogRepo, c.enforcer, log),
	}

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := manager.RegisterEscalationJobs(processUC, cfg.Interval, cfg.CycleTimeout); err != nil {
		return fmt.Errorf("failed to register escalation jobs: %w", err)
	}
	if err := manager.RegisterLogRetentionJobs(repos.escalationLogRepo); err != nil {
		return fmt.Errorf("failed to register log retention jobs: %w", err)
	}
	c.schedulerManager = manager
	return nil
}

func (c *Container) initIssue() {
	text := markdown.NewService()
	c.ucs.createIssueUC = issueUsecases.NewCreateIssueUseCase(c.repos.issueRepo, text, c.log)
	c.ucs.getIssueUC = issueUsecases.NewGetIssueUseCase(c.repos.issueRepo, text, c.log)
	c.ucs.listIssuesUC = issueUsecases.NewListIssuesUseCase(c.repos.issueRepo, c.log)
	c.ucs.changeIssueStatusUC = issueUsecases.NewChangeIssueStatusUseCase(c.repos.issueRepo, c.enforcer, c.log)
}

func (c *Container) initHandlers() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	c.hdlrs = &allHandlers{
		issueHandler: issueHandlers.NewHandler(
			c.ucs.createIssueUC,
			c.ucs.getIssueUC,
			c.ucs.listIssuesUC,
			c.ucs.changeIssueStatusUC,
			c.log,
		),
		escalationHandler: escalationHandlers.NewHandler(
			c.ucs.markViewedUC,
			c.ucs.resetEscalationUC,
			c.ucs.getEscalationHistoryUC,
			c.ucs.getDashboardSummaryUC,
			c.schedulerManager,
			c.enforcer,
			c.log,
		),
		systemHandler: system.NewHandler(sqlDB, c.schedulerManager, c.log),
	}
	return nil
}

// RunEscalationCycle runs one scan cycle without starting the scheduler.
func (c *Container) RunEscalationCycle(ctx context.Context) (*escalationUsecases.ProcessEscalationsResult, error) {
	return c.schedulerManager.RunEscalationNow(ctx)
}
