package tablemodel

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"time"

	"github.com/go-dbal/tablemodel/internal/stmt_store"
)

// PreparedStmtDB a connection pool caching one prepared statement per SQL text
type PreparedStmtDB struct {
	Stmts stmt_store.Store
	Mux   *sync.RWMutex
	ConnPool
}

// NewPreparedStmtDB wraps connPool, it must implement PrepareContext for statements to be cached
func NewPreparedStmtDB(connPool ConnPool, maxSize int, ttl time.Duration) *PreparedStmtDB {
	return &PreparedStmtDB{
		ConnPool: connPool,
		Stmts:    stmt_store.New(maxSize, ttl),
		Mux:      &sync.RWMutex{},
	}
}

// Close closes all cached statements, then the underlying pool when it owns its connections
func (db *PreparedStmtDB) Close() error {
	db.Mux.Lock()
	for _, key := range db.Stmts.Keys() {
		if stmt, ok := db.Stmts.Get(key); ok {
			_ = stmt.Close()
		}
	}
	db.Stmts.Purge()
	db.Mux.Unlock()

	if closer, ok := db.ConnPool.(Closer); ok {
		return closer.Close()
	}
	return nil
}

func (db *PreparedStmtDB) prepare(ctx context.Context, conn stmt_store.ConnPool, query string) (*stmt_store.Stmt, error) {
	db.Mux.RLock()
	if stmt, ok := db.Stmts.Get(query); ok {
		db.Mux.RUnlock()
		return stmt, stmt.Error()
	}
	db.Mux.RUnlock()

	// retry
	db.Mux.Lock()
	if stmt, ok := db.Stmts.Get(query); ok {
		db.Mux.Unlock()
		return stmt, stmt.Error()
	}

	return db.Stmts.New(ctx, query, conn, db.Mux)
}

func (db *PreparedStmtDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	conn, ok := db.ConnPool.(stmt_store.ConnPool)
	if !ok {
		return db.ConnPool.ExecContext(ctx, query, args...)
	}

	stmt, err := db.prepare(ctx, conn, query)
	if err != nil {
		return nil, err
	}

	result, err := stmt.ExecContext(ctx, args...)
	if errors.Is(err, driver.ErrBadConn) {
		db.Mux.Lock()
		db.Stmts.Delete(query)
		db.Mux.Unlock()
	}
	return result, err
}

func (db *PreparedStmtDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	conn, ok := db.ConnPool.(stmt_store.ConnPool)
	if !ok {
		return db.ConnPool.QueryContext(ctx, query, args...)
	}

	stmt, err := db.prepare(ctx, conn, query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, args...)
	if errors.Is(err, driver.ErrBadConn) {
		db.Mux.Lock()
		db.Stmts.Delete(query)
		db.Mux.Unlock()
	}
	return rows, err
}

func (db *PreparedStmtDB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	conn, ok := db.ConnPool.(stmt_store.ConnPool)
	if !ok {
		return db.ConnPool.QueryRowContext(ctx, query, args...)
	}

	stmt, err := db.prepare(ctx, conn, query)
	if err != nil {
		// the unprepared query reports the same error through Row.Scan
		return db.ConnPool.QueryRowContext(ctx, query, args...)
	}
	return stmt.QueryRowContext(ctx, args...)
}
