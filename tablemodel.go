// Package tablemodel is a schema-aware data-access layer. A Model is bound to one
// table, validates every column reference against the table's introspected
// columns and runs parameterized create, read, update, delete and copy queries
// built from flat filter, order and limit specifications.
package tablemodel

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-dbal/tablemodel/clause"
	"github.com/go-dbal/tablemodel/internal/lru"
	"github.com/go-dbal/tablemodel/logger"
)

const defaultModelCacheSize = 128

// Config tablemodel config
type Config struct {
	// Logger every executed statement is traced through it
	Logger logger.Interface
	// BlockGlobalUpdate rejects Update and Delete without filters
	BlockGlobalUpdate bool
	// TranslateError wraps driver constraint errors with ErrDuplicatedKey or ErrForeignKeyViolated
	TranslateError bool
	// ModelCacheSize bounds the number of models kept by DB.Model, 0 uses the default
	ModelCacheSize int
	// ModelCacheTTL expires cached models so they are introspected again, 0 keeps them until evicted
	ModelCacheTTL time.Duration
	// PrepareStmt executes every statement as a cached prepared statement
	PrepareStmt bool
	// PrepareStmtMaxSize bounds the prepared statement cache, 0 uses the default
	PrepareStmtMaxSize int
	// PrepareStmtTTL closes a prepared statement that long after it was prepared, 0 uses the default
	PrepareStmtTTL time.Duration
	// ClauseBuilders clause builder, registered by dialects that render a clause differently
	ClauseBuilders map[string]clause.ClauseBuilder
	// ConnPool db conn pool
	ConnPool ConnPool
	// Dialector database dialector
	Dialector
}

// DB a connection together with its dialect and model registry
type DB struct {
	*Config

	models *lru.LRU[string, *Model]
}

// Open initialize db session based on dialector
func Open(dialector Dialector, config *Config) (db *DB, err error) {
	if config == nil {
		config = &Config{}
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}

	if config.ModelCacheSize <= 0 {
		config.ModelCacheSize = defaultModelCacheSize
	}

	if config.ClauseBuilders == nil {
		config.ClauseBuilders = map[string]clause.ClauseBuilder{}
	}

	if dialector != nil {
		config.Dialector = dialector
	}

	db = &DB{Config: config}
	db.models = lru.NewLRU[string, *Model](config.ModelCacheSize, nil, config.ModelCacheTTL)

	if config.Dialector != nil {
		err = config.Dialector.Initialize(db)
	}

	if err == nil && db.ConnPool == nil {
		err = ErrInvalidDB
	}

	if err == nil && config.PrepareStmt {
		db.ConnPool = NewPreparedStmtDB(db.ConnPool, config.PrepareStmtMaxSize, config.PrepareStmtTTL)
	}

	if err != nil {
		if closer, ok := db.ConnPool.(Closer); ok {
			_ = closer.Close()
		}
		return nil, err
	}

	return db, nil
}

// Model returns the model of table, introspecting it the first time it is requested.
// Failed lookups are not cached.
func (db *DB) Model(ctx context.Context, table string) (*Model, error) {
	if model, ok := db.models.Get(table); ok {
		return model, nil
	}

	model, err := NewModel(ctx, table, db)
	if err != nil {
		return nil, err
	}

	db.models.Add(table, model)
	return model, nil
}

// Forget drops the cached model of table, the next Model call introspects it again
func (db *DB) Forget(table string) {
	db.models.Remove(table)
}

// Migrator returns the dialect introspector
func (db *DB) Migrator() Migrator {
	return db.Dialector.Migrator(db)
}

// Close closes the connection pool when it owns its connections
func (db *DB) Close() error {
	db.models.Purge()
	if closer, ok := db.ConnPool.(Closer); ok {
		return closer.Close()
	}
	return nil
}

// Exec runs a statement that returns no rows, traced like every model statement
func (db *DB) Exec(ctx context.Context, sql string, vars ...interface{}) (sql.Result, error) {
	begin := time.Now()
	result, err := db.ConnPool.ExecContext(ctx, sql, vars...)

	rows := int64(-1)
	if err == nil {
		if affected, affectedErr := result.RowsAffected(); affectedErr == nil {
			rows = affected
		}
	}
	db.trace(ctx, begin, sql, vars, rows, err)
	return result, db.translateError(err)
}

// Query runs a statement returning rows, scan is called once per row
func (db *DB) Query(ctx context.Context, sql string, vars []interface{}, scan func(*sql.Rows) error) error {
	begin := time.Now()
	count, err := db.query(ctx, sql, vars, scan)
	db.trace(ctx, begin, sql, vars, count, err)
	return db.translateError(err)
}

func (db *DB) query(ctx context.Context, sql string, vars []interface{}, scan func(*sql.Rows) error) (int64, error) {
	rows, err := db.ConnPool.QueryContext(ctx, sql, vars...)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		if err := scan(rows); err != nil {
			return count, err
		}
		count++
	}
	return count, rows.Err()
}

func (db *DB) translateError(err error) error {
	if err != nil && db.TranslateError {
		if translator, ok := db.Dialector.(ErrorTranslator); ok {
			return translator.Translate(err)
		}
	}
	return err
}

func (db *DB) trace(ctx context.Context, begin time.Time, sql string, vars []interface{}, rows int64, err error) {
	db.Logger.Trace(ctx, begin, func() (string, int64) {
		if filter, ok := db.Logger.(logger.ParamsFilter); ok {
			sql, vars = filter.ParamsFilter(ctx, sql, vars...)
		}
		return db.Dialector.Explain(sql, vars...), rows
	}, err)
}
