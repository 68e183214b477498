// Package database contains the logic for establishing connections to the
// relational store.
//
// It handles:
//   - building a DSN for the configured driver (mysql, postgres, sqlite)
//   - sizing the database/sql pool from config
//   - wiring query tracing/logging for pgx in the local env
//   - leasing one connection per request and releasing it on every exit path
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/deppfellow/frases/internal/config"
	loggerConfig "github.com/deppfellow/frases/internal/logger"
)

// DatabasePingTimeout is how long New waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

// Database wraps the sqlx pool and a logger.
type Database struct {
	DB *sqlx.DB

	driver             string
	slowQueryThreshold time.Duration
	log                *zerolog.Logger
}

// ConnectionError is returned when a connection cannot be leased from the
// pool, either because the parameters are wrong or the store is unreachable.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("acquire %s connection: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// New opens the pool and pings it, so startup fails fast if the store is down.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	db, err := Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		_ = db.DB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to the database")

	return db, nil
}

// Open builds the pool for cfg.Database.Driver without touching the network.
func Open(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.Database.Driver {
	case config.DriverMySQL:
		db, err = sqlx.Open("mysql", MySQLConfig(cfg.Database).FormatDSN())
	case config.DriverPostgres:
		db, err = openPostgres(cfg, logger)
	case config.DriverSQLite:
		db, err = sqlx.Open("sqlite", SQLiteDSN(cfg.Database.Name))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}

	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	}
	if cfg.Database.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)
	}

	return &Database{
		DB:                 db,
		driver:             cfg.Database.Driver,
		slowQueryThreshold: cfg.Logging.SlowQueryThreshold,
		log:                logger,
	}, nil
}

// NewFromDB wraps an already opened pool. driver must be one of the
// config.Driver* names.
func NewFromDB(db *sqlx.DB, driver string, logger *zerolog.Logger) *Database {
	return &Database{DB: db, driver: driver, log: logger}
}

// MySQLConfig maps the database config onto the go-sql-driver config.
func MySQLConfig(cfg config.DatabaseConfig) *mysql.Config {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.User
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.PortOrDefault()))
	mysqlCfg.DBName = cfg.Name

	switch cfg.SSLMode {
	case "", "disable":
	case "skip-verify", "preferred":
		mysqlCfg.TLSConfig = cfg.SSLMode
	default:
		mysqlCfg.TLSConfig = "true"
	}

	return mysqlCfg
}

// PostgresDSN builds the postgres URL, escaping the password so characters
// like ':' or '@' do not break it.
func PostgresDSN(cfg config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.PortOrDefault()))

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
		sslMode,
	)
}

// SQLiteDSN enables foreign keys and a busy timeout on every connection.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func openPostgres(cfg *config.Config, logger *zerolog.Logger) (*sqlx.DB, error) {
	connConfig, err := pgx.ParseConfig(PostgresDSN(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx config: %w", err)
	}

	// SQL tracing is very noisy, which is why it is only on in local.
	if cfg.IsLocal() {
		globalLevel := logger.GetLevel()
		connConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(*logger)),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		}
	}

	// "pgx" is the driver name stdlib registers, so sqlx rebinds to $N.
	return sqlx.NewDb(stdlib.OpenDB(*connConfig), "pgx"), nil
}

// Driver reports the configured driver name.
func (db *Database) Driver() string {
	return db.driver
}

// WithConn leases one connection for the duration of fn.
//
// The connection is returned to the pool on every exit path, including a
// panic inside fn. A lease failure is reported as *ConnectionError.
func (db *Database) WithConn(ctx context.Context, fn func(ctx context.Context, conn *sqlx.Conn) error) error {
	start := time.Now()

	conn, err := db.DB.Connx(ctx)
	if err != nil {
		return &ConnectionError{Driver: db.driver, Err: err}
	}
	defer func() {
		if err := conn.Close(); err != nil {
			db.log.Warn().Err(err).Msg("failed to release database connection")
		}

		if elapsed := time.Since(start); db.slowQueryThreshold > 0 && elapsed > db.slowQueryThreshold {
			db.loggerFor(ctx).Warn().
				Dur("duration", elapsed).
				Dur("threshold", db.slowQueryThreshold).
				Msg("slow store call")
		}
	}()

	return fn(ctx, conn)
}

// loggerFor prefers the request scoped logger carried by ctx.
func (db *Database) loggerFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return db.log
}

// RunInTx runs fn within a transaction on conn.
// If fn returns an error or panics, the transaction is rolled back; otherwise,
// it is committed. When the rollback itself fails, both errors stay matchable.
func RunInTx(ctx context.Context, conn *sqlx.Conn, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		done = true
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback transaction: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	done = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Ping verifies a connection can be leased and answers.
func (db *Database) Ping(ctx context.Context) error {
	return db.WithConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.PingContext(ctx)
	})
}

// Close closes the pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	return db.DB.Close()
}
