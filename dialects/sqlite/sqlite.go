// Package sqlite is the SQLite dialect, backed by github.com/mattn/go-sqlite3
package sqlite

import (
	"database/sql"
	"strings"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/clause"
	"github.com/go-dbal/tablemodel/logger"
	"github.com/go-dbal/tablemodel/migrator"
	// import sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// DriverName the database/sql driver registered by go-sqlite3
const DriverName = "sqlite3"

// Config sqlite dialect config
type Config struct {
	DriverName string
	DSN        string
	Conn       tablemodel.ConnPool
}

// Dialector sqlite dialector
type Dialector struct {
	*Config
}

// Open returns a dialector connecting to dsn, e.g. file::memory:?cache=shared
func Open(dsn string) tablemodel.Dialector {
	return &Dialector{Config: &Config{DSN: dsn}}
}

// New returns a dialector from config, Conn is used as is when set
func New(config Config) tablemodel.Dialector {
	return &Dialector{Config: &config}
}

func (dialector Dialector) Name() string {
	return "sqlite"
}

func (dialector Dialector) Initialize(db *tablemodel.DB) (err error) {
	if dialector.DriverName == "" {
		dialector.DriverName = DriverName
	}

	if dialector.Conn != nil {
		db.ConnPool = dialector.Conn
	} else {
		db.ConnPool, err = sql.Open(dialector.DriverName, dialector.DSN)
	}
	return
}

func (dialector Dialector) Migrator(db *tablemodel.DB) tablemodel.Migrator {
	return Migrator{migrator.Migrator{Config: migrator.Config{
		DB:        db,
		Dialector: dialector,
	}}}
}

func (dialector Dialector) BindVarTo(writer clause.Writer, stmt *tablemodel.Statement, v interface{}) {
	writer.WriteByte('?')
}

func (dialector Dialector) QuoteTo(writer clause.Writer, str string) {
	writer.WriteByte('`')
	writer.WriteString(strings.ReplaceAll(str, "`", "``"))
	writer.WriteByte('`')
}

func (dialector Dialector) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, nil, `"`, vars...)
}
