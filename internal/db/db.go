package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/lifeweeks-backend/internal/pkg/logger"
	"github.com/yungbote/lifeweeks-backend/internal/utils"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewService opens the database selected by DB_DRIVER. The default is a
// local sqlite file; postgres is available for deployments that want it.
func NewService(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "sqlite", logg))

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gormCfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	}

	var gdb *gorm.DB
	var err error
	switch driver {
	case "postgres":
		gdb, err = openPostgres(logg, gormCfg)
	case "sqlite":
		gdb, err = openSQLite(logg, gormCfg)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (want sqlite or postgres)", driver)
	}
	if err != nil {
		return nil, err
	}

	serviceLog.Info("Database connected", "driver", driver)
	return &Service{db: gdb, log: serviceLog}, nil
}

func openSQLite(logg *logger.Logger, cfg *gorm.Config) (*gorm.DB, error) {
	path := utils.GetEnv("SQLITE_PATH", "lifeweeks.db", logg)
	gdb, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite at %s: %w", path, err)
	}
	return gdb, nil
}

func openPostgres(logg *logger.Logger, cfg *gorm.Config) (*gorm.DB, error) {
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", logg)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", logg)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", logg)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", logg)
	postgresName := utils.GetEnv("POSTGRES_NAME", "lifeweeks", logg)

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser,
		postgresPassword,
		postgresHost,
		postgresPort,
		postgresName,
	)

	gdb, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return gdb, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureNoteIndexes(s.db); err != nil {
		s.log.Error("Note index migration failed", "error", err)
		return err
	}
	return nil
}
