package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/approval-hub/approval-hub/internal/api/http"
	"github.com/approval-hub/approval-hub/internal/application/audit"
	"github.com/approval-hub/approval-hub/internal/application/delegation"
	"github.com/approval-hub/approval-hub/internal/application/escalation"
	"github.com/approval-hub/approval-hub/internal/application/notification"
	"github.com/approval-hub/approval-hub/internal/application/rule"
	"github.com/approval-hub/approval-hub/internal/application/workflow"
	"github.com/approval-hub/approval-hub/internal/config"
	"github.com/approval-hub/approval-hub/internal/infrastructure/gateway"
	"github.com/approval-hub/approval-hub/internal/infrastructure/postgres"
	"github.com/approval-hub/approval-hub/internal/infrastructure/sse"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// repositories
	workflowRepo := postgres.NewWorkflowRepository(pool)
	ruleRepo := postgres.NewRuleRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	delegationRepo := postgres.NewDelegationRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)

	// infrastructure
	sseHub := sse.NewHub()
	emailGateway := gateway.NewEmailGateway(cfg.EmailGatewayURL, cfg.EmailGatewayKey, logger)
	smsGateway := gateway.NewSMSGateway(cfg.SMSGatewayURL, cfg.SMSGatewayKey, logger)

	// services
	auditSvc := audit.NewService(auditRepo, []byte(cfg.AuditSignKey), logger)
	ruleSvc := rule.NewService(ruleRepo, roleRepo, userRepo, logger)
	delegationSvc := delegation.NewService(delegationRepo, userRepo, logger)
	notificationSvc := notification.NewService(notificationRepo, workflowRepo, userRepo, emailGateway, smsGateway, sseHub, logger)
	workflowSvc := workflow.NewService(workflowRepo, invoiceRepo, userRepo, ruleSvc, delegationSvc, notificationSvc, auditSvc, cfg.BypassRoles, logger)
	escalationSvc := escalation.NewService(workflowRepo, workflowSvc, cfg.SweepBatchSize, logger)

	// API server
	apiServer := httpapi.NewServer(workflowSvc, ruleSvc, delegationSvc, notificationSvc, auditSvc, sseHub)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// background sweeps
	go func() {
		ticker := time.NewTicker(cfg.EscalationInterval)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := escalationSvc.ProcessExpired(context.Background()); err != nil {
				logger.Error().Err(err).Msg("escalation sweep failed")
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.ReminderInterval)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := notificationSvc.ProcessOverdueReminders(context.Background(), cfg.ReminderHorizon, cfg.SweepBatchSize); err != nil {
				logger.Error().Err(err).Msg("reminder sweep failed")
			}
			if _, err := notificationSvc.RetryFailed(context.Background(), cfg.SweepBatchSize); err != nil {
				logger.Error().Err(err).Msg("notification retry sweep failed")
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := delegationSvc.CleanupExpired(context.Background()); err != nil {
				logger.Error().Err(err).Msg("delegation cleanup failed")
			}
			if _, err := workflowSvc.CleanupStale(context.Background(), cfg.StaleThreshold, cfg.SweepBatchSize); err != nil {
				logger.Error().Err(err).Msg("stale workflow cleanup failed")
			}
			if _, err := workflowSvc.RepairInconsistent(context.Background(), cfg.SweepBatchSize); err != nil {
				logger.Error().Err(err).Msg("workflow repair failed")
			}
			if _, err := workflowSvc.FindOrphaned(context.Background(), cfg.SweepBatchSize); err != nil {
				logger.Error().Err(err).Msg("orphan scan failed")
			}
		}
	}()

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
	sseHub.Stop()
}
