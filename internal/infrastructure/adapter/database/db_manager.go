package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/domain/port/persistence"
)

// Manager manages the database connection. It prefers the hosted
// Postgres backend and, when that is unconfigured or unreachable and
// the fallback is enabled, drops to a local sqlite file so the shop
// keeps working offline with the same repositories.
type Manager struct {
	config            *Config
	db                *gorm.DB
	logger            coreport.Logger
	timeProvider      coreport.TimeProvider
	connectionMonitor *ConnectionPoolMonitor
	offline           bool
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Connect establishes the database connection
func (m *Manager) Connect() (*gorm.DB, error) {
	if m.config.Driver == "sqlite" {
		return m.connectSQLite("sqlite driver selected")
	}

	if !m.config.HostedConfigured() {
		if m.config.FallbackSQLite {
			return m.connectSQLite("postgres connection not configured")
		}
		return nil, fmt.Errorf("postgres connection not configured and sqlite fallback disabled")
	}

	db, err := m.connectPostgres()
	if err != nil {
		if m.config.FallbackSQLite {
			m.logger.Warn("Postgres unreachable, falling back to local sqlite", map[string]any{
				"error": err.Error(),
			})
			return m.connectSQLite("postgres unreachable")
		}
		return nil, err
	}
	return db, nil
}

func (m *Manager) connectPostgres() (*gorm.DB, error) {
	m.logger.Info("Connecting to database", map[string]any{
		"driver": "postgres",
		"host":   m.config.Host,
		"port":   m.config.Port,
		"name":   m.config.Database,
	})

	var err error
	var gormDB *gorm.DB

	for attempt := 0; attempt < m.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			m.logger.Warn("Retrying database connection", map[string]any{
				"attempt": attempt + 1,
				"of":      m.config.RetryAttempts,
				"delay":   fmt.Sprintf("%ds", m.config.RetryDelay),
			})
			time.Sleep(time.Duration(m.config.RetryDelay) * time.Second)
		}

		gormDB, err = gorm.Open(postgres.Open(m.config.PostgresDSN()), m.gormConfig())
		if err == nil {
			break
		}

		m.logger.Error("Failed to connect to database", map[string]any{
			"error":   err.Error(),
			"attempt": attempt + 1,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", m.config.RetryAttempts, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	// The ping can hit transient network errors the driver does not
	// retry on its own
	err = RetryOnTransientError(context.Background(), DefaultRetryConfig(), m.logger, func() error {
		ctx, cancel := m.WithTimeout(context.Background())
		defer cancel()
		return sqlDB.PingContext(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	m.logger.Info("Successfully connected to database", map[string]any{
		"driver":         "postgres",
		"host":           m.config.Host,
		"name":           m.config.Database,
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
	})

	m.db = gormDB
	m.offline = false
	m.startMonitor()
	return m.db, nil
}

func (m *Manager) connectSQLite(reason string) (*gorm.DB, error) {
	m.logger.Warn("Running in local mode against sqlite", map[string]any{
		"path":   m.config.SQLitePath,
		"reason": reason,
	})

	gormDB, err := gorm.Open(sqlite.Open(m.config.SQLitePath), m.gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// sqlite allows a single writer; cap the pool accordingly
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	m.db = gormDB
	m.offline = true
	return m.db, nil
}

func (m *Manager) gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: NewDatabaseLogger(m.logger, m.config.LogLevel),
		NowFunc: func() time.Time {
			return m.timeProvider.Now()
		},
	}
}

func (m *Manager) startMonitor() {
	m.connectionMonitor = NewConnectionPoolMonitor(m, m.logger)
	if err := m.connectionMonitor.Start(30 * time.Second); err != nil {
		m.logger.Warn("Failed to start connection pool monitoring", map[string]any{
			"error": err.Error(),
		})
	}
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Offline reports whether the manager fell back to the local sqlite file
func (m *Manager) Offline() bool {
	return m.offline
}

// Close closes the database connection
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.connectionMonitor != nil {
		m.connectionMonitor.Stop()
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// WithTimeout returns a context with timeout for database operations
func (m *Manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.config.QueryTimeout)
}

// CreateUnitOfWork creates a new UnitOfWork instance
func (m *Manager) CreateUnitOfWork() persistence.UnitOfWork {
	return NewUnitOfWork(m.db, m.logger, m.timeProvider)
}
