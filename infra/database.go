package infra

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirasaad/ledger/infra/repository"
	"github.com/amirasaad/ledger/pkg/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialect names supported by NewDBConnection.
const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectSQLite   = "sqlite"
)

// ParseDatabaseURL returns the dialect and driver DSN for a DATABASE_URL.
// postgres:// URLs are handed to the driver untouched, mysql:// and sqlite://
// prefixes are stripped since those drivers take a bare DSN.
func ParseDatabaseURL(url string) (dialect, dsn string, err error) {
	switch {
	case url == "":
		return "", "", errors.New("DATABASE_URL is not set")
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres, url, nil
	case strings.HasPrefix(url, "mysql://"):
		return DialectMySQL, strings.TrimPrefix(url, "mysql://"), nil
	case strings.HasPrefix(url, "sqlite://"):
		return DialectSQLite, strings.TrimPrefix(url, "sqlite://"), nil
	case strings.HasPrefix(url, "file:"):
		return DialectSQLite, url, nil
	default:
		return "", "", fmt.Errorf("unsupported DATABASE_URL scheme: %q", url)
	}
}

func dialector(dialect, dsn string) gorm.Dialector {
	switch dialect {
	case DialectPostgres:
		return postgres.Open(dsn)
	case DialectMySQL:
		return mysql.Open(dsn)
	default:
		return sqlite.Open(dsn)
	}
}

// NewDBConnection opens the database named by cnf.Url, applies the pool
// settings and, when enabled, brings the schema up to date.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	dialect, dsn, err := ParseDatabaseURL(cnf.Url)
	if err != nil {
		return nil, err
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(dialector(dialect, dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if dialect == DialectSQLite {
		// sqlite serialises writers; a single connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cnf.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cnf.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cnf.ConnMaxLifetime)

	if cnf.AutoMigrate {
		if err := Migrate(connection, dialect); err != nil {
			return nil, err
		}
	}
	return connection, nil
}

// Migrate brings the schema up to date. Postgres runs the versioned SQL
// migrations, the other dialects fall back to gorm's AutoMigrate.
func Migrate(db *gorm.DB, dialect string) error {
	if dialect == DialectPostgres {
		return RunMigrations(db)
	}
	return db.AutoMigrate(repository.Models()...)
}
