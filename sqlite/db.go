// Package sqlite implements todo.TaskRepo on a single sqlite file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/benjamonnguyen/todo"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// noCopy is flagged by go vet's copylocks check when a Store is copied.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Store owns the one connection to the database file. It is not safe for
// concurrent use and must not be copied.
type Store struct {
	noCopy noCopy

	conn     *sql.DB
	tx       transactor.Transactor
	dbGetter txStdLib.DBGetter
	cleanup  runtime.Cleanup
	l        todo.Logger
}

var (
	_ todo.TaskRepo = (*Store)(nil)
	_ todo.Database = (*Store)(nil)
)

// Open creates the file if needed. When it cannot be opened the error is
// logged and the returned Store is closed.
func Open(url string, logger todo.Logger) *Store {
	conn, err := openConn(url)
	if err != nil {
		logger.Error("failed database open", "url", url, "error", err)
		return &Store{l: logger}
	}
	logger.Debug("opened database", "url", url)
	return newStore(conn, logger)
}

func openConn(url string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("provide database url")
	}
	if url != ":memory:" && !strings.HasPrefix(url, "file:") {
		if err := os.MkdirAll(filepath.Dir(url), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func newStore(conn *sql.DB, logger todo.Logger) *Store {
	tx, dbGetter := txStdLib.NewTransactor(conn, txStdLib.NestedTransactionsSavepoints)
	s := &Store{
		conn:     conn,
		tx:       tx,
		dbGetter: dbGetter,
		l:        logger,
	}
	s.cleanup = runtime.AddCleanup(s, func(conn *sql.DB) {
		_ = conn.Close()
	}, conn)
	return s
}

func (s *Store) IsOpen() bool {
	return s.conn != nil
}

// Initialize creates the todos table and its indexes when absent. It is safe
// to call on every start.
func (s *Store) Initialize(ctx context.Context) error {
	if !s.IsOpen() {
		return todo.ErrClosed
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	d, err := migratesqlite.WithInstance(s.conn, &migratesqlite.Config{})
	if err != nil {
		s.l.Error("failed migration driver", "error", err)
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", d)
	if err != nil {
		s.l.Error("failed migration setup", "error", err)
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.l.Error("failed migration", "error", err)
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	s.l.Debug("initialized schema")
	return nil
}

// Close is idempotent.
func (s *Store) Close() error {
	if !s.IsOpen() {
		return nil
	}
	s.cleanup.Stop()
	err := s.conn.Close()
	s.conn = nil
	s.tx = nil
	s.dbGetter = nil
	if err != nil {
		s.l.Error("failed database close", "error", err)
	}
	return err
}
