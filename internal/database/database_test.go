package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/frases/internal/config"
)

func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	logger := zerolog.Nop()
	return NewFromDB(sqlx.NewDb(mockDB, "sqlmock"), config.DriverMySQL, &logger), mock
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.DatabaseConfig
		wantDriver string
	}{
		{
			name: "mysql",
			cfg: config.DatabaseConfig{
				Driver:       config.DriverMySQL,
				Host:         "localhost",
				User:         "root",
				Name:         "simpsons",
				MaxOpenConns: 25,
				MaxIdleConns: 5,
			},
			wantDriver: "mysql",
		},
		{
			name: "postgres",
			cfg: config.DatabaseConfig{
				Driver: config.DriverPostgres,
				Host:   "localhost",
				User:   "postgres",
				Name:   "simpsons",
			},
			wantDriver: "pgx",
		},
		{
			name: "sqlite",
			cfg: config.DatabaseConfig{
				Driver: config.DriverSQLite,
				Name:   filepath.Join(t.TempDir(), "frases.db"),
			},
			wantDriver: "sqlite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Database = tt.cfg
			logger := zerolog.Nop()

			got, err := Open(cfg, &logger)
			require.NoError(t, err)
			defer got.Close()

			assert.Equal(t, tt.wantDriver, got.DB.DriverName())
			assert.Equal(t, tt.cfg.Driver, got.Driver())
		})
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = "oracle"
	logger := zerolog.Nop()

	_, err := Open(cfg, &logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestMySQLConfig(t *testing.T) {
	got := MySQLConfig(config.DatabaseConfig{
		Driver:   config.DriverMySQL,
		Host:     "db.example.com",
		Port:     3307,
		User:     "simpson",
		Password: "p@ss:word",
		Name:     "springfield",
	})

	assert.Equal(t, "tcp", got.Net)
	assert.Equal(t, "db.example.com:3307", got.Addr)
	assert.Equal(t, "simpson", got.User)
	assert.Equal(t, "p@ss:word", got.Passwd)
	assert.Equal(t, "springfield", got.DBName)
	assert.Empty(t, got.TLSConfig)
}

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "default port and ssl mode",
			cfg: config.DatabaseConfig{
				Driver: config.DriverPostgres,
				Host:   "localhost",
				User:   "postgres",
				Name:   "simpsons",
			},
			want: "postgres://postgres:@localhost:5432/simpsons?sslmode=disable",
		},
		{
			name: "escapes the password",
			cfg: config.DatabaseConfig{
				Driver:   config.DriverPostgres,
				Host:     "db",
				Port:     6543,
				User:     "app",
				Password: "p@ss:word",
				Name:     "frases",
				SSLMode:  "require",
			},
			want: "postgres://app:p%40ss%3Aword@db:6543/frases?sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostgresDSN(tt.cfg))
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "frases.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", SQLiteDSN("frases.db"))
	assert.Equal(t, "file:x.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", SQLiteDSN("file:x.db?mode=rwc"))
}

func TestWithConn(t *testing.T) {
	db, mock := newMockDatabase(t)

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	var got int
	err := db.WithConn(context.Background(), func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &got, "SELECT 1")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.NoError(t, mock.ExpectationsWereMet())

	// The lease was returned, so the pool has no connection in use.
	assert.Equal(t, 0, db.DB.Stats().InUse)
}

func TestWithConn_ReleasesOnError(t *testing.T) {
	db, _ := newMockDatabase(t)

	wantErr := errors.New("boom")
	err := db.WithConn(context.Background(), func(ctx context.Context, conn *sqlx.Conn) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, db.DB.Stats().InUse)
}

func TestWithConn_ReleasesOnPanic(t *testing.T) {
	db, _ := newMockDatabase(t)

	assert.Panics(t, func() {
		_ = db.WithConn(context.Background(), func(ctx context.Context, conn *sqlx.Conn) error {
			panic("boom")
		})
	})
	assert.Equal(t, 0, db.DB.Stats().InUse)
}

func TestWithConn_AcquireFailure(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectClose()
	require.NoError(t, db.DB.Close())

	err := db.WithConn(context.Background(), func(ctx context.Context, conn *sqlx.Conn) error {
		t.Fatal("fn must not run without a connection")
		return nil
	})

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, config.DriverMySQL, connErr.Driver)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithConn_SlowCallUsesRequestLogger(t *testing.T) {
	db, _ := newMockDatabase(t)
	db.slowQueryThreshold = time.Nanosecond

	var buf bytes.Buffer
	requestLogger := zerolog.New(&buf).With().Str("request_id", "req-1").Logger()
	ctx := requestLogger.WithContext(context.Background())

	err := db.WithConn(ctx, func(ctx context.Context, conn *sqlx.Conn) error {
		time.Sleep(time.Millisecond)
		return nil
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "slow store call")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
}

func TestRunInTx(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(ctx context.Context, tx *sqlx.Tx) error
		setupMock func(mock sqlmock.Sqlmock)
		errMsg    string
	}{
		{
			name: "commits on success",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back on error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return fmt.Errorf("something failed")
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			errMsg: "something failed",
		},
		{
			name: "begin failure",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(fmt.Errorf("begin failed"))
			},
			errMsg: "begin transaction",
		},
		{
			name: "commit failure",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(fmt.Errorf("commit failed"))
			},
			errMsg: "commit transaction",
		},
		{
			name: "rollback failure",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return fmt.Errorf("something failed")
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback().WillReturnError(fmt.Errorf("rollback failed"))
			},
			errMsg: "rollback transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDatabase(t)
			tt.setupMock(mock)

			err := db.WithConn(context.Background(), func(ctx context.Context, conn *sqlx.Conn) error {
				return RunInTx(ctx, conn, tt.fn)
			})
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTx_RollsBackOnPanic(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = db.WithConn(context.Background(), func(ctx context.Context, conn *sqlx.Conn) error {
			return RunInTx(ctx, conn, func(ctx context.Context, tx *sqlx.Tx) error {
				panic("boom")
			})
		})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, db.DB.Stats().InUse)
}

func TestRunInTx_RollbackFailureKeepsCause(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectBegin()
	rollbackErr := errors.New("rollback failed")
	mock.ExpectRollback().WillReturnError(rollbackErr)

	cause := errors.New("phrase not found")
	err := db.WithConn(context.Background(), func(ctx context.Context, conn *sqlx.Conn) error {
		return RunInTx(ctx, conn, func(ctx context.Context, tx *sqlx.Tx) error {
			return cause
		})
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, rollbackErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	db, mock := newMockDatabase(t)

	mock.ExpectPing()
	require.NoError(t, db.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("gone"))
	assert.Error(t, db.Ping(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
