// Package container wires the application together: configuration, logger,
// database, repositories, dispatcher, services and the HTTP server.
package container

import (
	"context"

	"go.uber.org/zap"

	"github.com/mkulanga/cdf-workflow/internal/application/dispatcher"
	"github.com/mkulanga/cdf-workflow/internal/application/service"
	"github.com/mkulanga/cdf-workflow/internal/config"
	"github.com/mkulanga/cdf-workflow/internal/domain/event"
	"github.com/mkulanga/cdf-workflow/internal/infrastructure/persistence/repository"
	httpapi "github.com/mkulanga/cdf-workflow/internal/interfaces/http"
	"github.com/mkulanga/cdf-workflow/pkg/database"
	"github.com/mkulanga/cdf-workflow/pkg/utils"
)

// Container holds all wired application components
type Container struct {
	config     *config.Config
	logger     *zap.Logger
	db         *database.DB
	dispatcher dispatcher.Dispatcher
	server     *httpapi.Server
}

// New builds the full dependency graph from configuration
func New(cfg *config.Config) (*Container, error) {
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return nil, err
	}

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		db.Close()
		return nil, err
	}

	kvLogger := &zapKVAdapter{logger: logger}

	projectRepo := repository.NewProjectRepository(db.DB, logger)
	paymentRepo := repository.NewPaymentRepository(db.DB, logger)
	auditRepo := repository.NewAuditLogRepository(db.DB, logger)

	disp := dispatcher.NewDispatcher(dispatcher.WithLogger(kvLogger))
	disp.Subscribe(event.TypeTransitionApplied, "notification", service.NewNotificationHandler(kvLogger))
	disp.Subscribe(event.TypeAuditAppendFailed, "audit_gap", service.NewAuditGapHandler(kvLogger))

	registryService := service.NewRegistryService(projectRepo, paymentRepo, kvLogger)
	workflowService := service.NewWorkflowService(projectRepo, paymentRepo, auditRepo, kvLogger,
		service.WithDispatcher(disp))
	historyService := service.NewHistoryService(auditRepo, kvLogger)
	reportService := service.NewReportService(historyService, kvLogger)

	server := httpapi.NewServer(
		httpapi.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		registryService,
		workflowService,
		historyService,
		reportService,
		kvLogger,
	)

	return &Container{
		config:     cfg,
		logger:     logger,
		db:         db,
		dispatcher: disp,
		server:     server,
	}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled
func (c *Container) Run(ctx context.Context) error {
	return c.server.Start(ctx)
}

// Shutdown releases resources in reverse dependency order
func (c *Container) Shutdown() {
	if err := c.dispatcher.Close(); err != nil {
		c.logger.Error("Dispatcher shutdown error", zap.Error(err))
	}
	if err := c.db.Close(); err != nil {
		c.logger.Error("Database close error", zap.Error(err))
	}
	_ = c.logger.Sync()
}

// Logger returns the container's logger
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// zapKVAdapter bridges zap to the keysAndValues logger interfaces used by the
// service, dispatcher and HTTP layers
type zapKVAdapter struct {
	logger *zap.Logger
}

func (a *zapKVAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, toZapFields(keysAndValues...)...)
}

func (a *zapKVAdapter) Warn(msg string, keysAndValues ...interface{}) {
	a.logger.Warn(msg, toZapFields(keysAndValues...)...)
}

func (a *zapKVAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, toZapFields(keysAndValues...)...)
}

func toZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
