package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blogger/config"
	"blogger/models"
)

type DB struct {
	*gorm.DB
}

// New opens the database selected by cfg.DBDriver and migrates the schema.
func New(cfg *config.Config) (*DB, error) {
	var (
		db  *DB
		err error
	)
	switch cfg.DBDriver {
	case "postgres":
		db, err = NewPostgres(cfg.PostgresDSN())
	default:
		db, err = NewSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}
	return db, nil
}

// NewPostgres opens a lib/pq connection pool and hands it to GORM.
func NewPostgres(dsn string) (*DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logrus.Info("Connected to PostgreSQL")
	return &DB{gormDB}, nil
}

// NewSQLite opens a SQLite database at path with foreign keys enforced.
func NewSQLite(path string) (*DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(path+sqliteParams(path)), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}

	logrus.WithField("path", path).Info("Opened SQLite database")
	return &DB{gormDB}, nil
}

func (d *DB) Migrate() error {
	if err := models.Migrate(d.DB); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}

func sqliteParams(path string) string {
	if strings.Contains(path, "?") {
		return "&_foreign_keys=on"
	}
	return "?_foreign_keys=on"
}
