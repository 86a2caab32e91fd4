package app

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/suplidoraindustrial6s-lab/caritas-app/config"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/repository"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/database"
	applogger "github.com/suplidoraindustrial6s-lab/caritas-app/pkg/logger"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/redis"
)

// App process-wide dependencies shared by the server and the CLI
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	DB      *gorm.DB
	Redis   *redis.Client // nil when redis.addr is empty or unreachable
	Service *service.Service
}

// Open loads configuration, connects storage, applies migrations and wires
// the services.
func Open(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		sqlDB.Close()
		return nil, err
	}

	a := &App{Config: cfg, Logger: logger, DB: db}

	// Redis is optional, close-day then relies on the unique constraint alone
	var locker service.Locker
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, close-day lock and rate limiting disabled", zap.Error(err))
		} else {
			a.Redis = rdb
			locker = rdb
		}
	}

	svc, err := service.NewService(cfg, repository.NewRepository(db), locker, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Service = svc

	return a, nil
}

// Close releases connections and flushes the logger.
func (a *App) Close() {
	if sqlDB, _ := a.DB.DB(); sqlDB != nil {
		sqlDB.Close()
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	_ = a.Logger.Sync()
}
