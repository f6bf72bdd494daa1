// Package mysql is the MySQL dialect, backed by github.com/go-sql-driver/mysql
package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/clause"
	"github.com/go-dbal/tablemodel/logger"
	"github.com/go-dbal/tablemodel/migrator"
)

// DriverName the database/sql driver registered by go-sql-driver/mysql
const DriverName = "mysql"

const columnsQuery = "SELECT column_name, data_type, column_type, column_key = 'PRI', extra LIKE '%auto_increment%', is_nullable = 'YES', column_default " +
	"FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position"

// Config mysql dialect config
type Config struct {
	DriverName string
	DSN        string
	DSNConfig  *mysql.Config
	Conn       tablemodel.ConnPool
}

// Dialector mysql dialector
type Dialector struct {
	*Config
}

// Open returns a dialector connecting to dsn, e.g. user:pass@tcp(127.0.0.1:3306)/db
func Open(dsn string) tablemodel.Dialector {
	dsnConf, _ := mysql.ParseDSN(dsn)
	return &Dialector{Config: &Config{DSN: dsn, DSNConfig: dsnConf}}
}

// New returns a dialector from config, Conn is used as is when set
func New(config Config) tablemodel.Dialector {
	if config.DSNConfig == nil && config.DSN != "" {
		config.DSNConfig, _ = mysql.ParseDSN(config.DSN)
	}
	return &Dialector{Config: &config}
}

func (dialector Dialector) Name() string {
	return "mysql"
}

func (dialector Dialector) Initialize(db *tablemodel.DB) (err error) {
	if dialector.DriverName == "" {
		dialector.DriverName = DriverName
	}

	if dialector.Conn != nil {
		db.ConnPool = dialector.Conn
	} else {
		db.ConnPool, err = sql.Open(dialector.DriverName, dialector.DSN)
		if err != nil {
			return err
		}
	}

	db.ClauseBuilders["VALUES"] = func(c clause.Clause, builder clause.Builder) {
		if values, ok := c.Expression.(clause.Values); ok && len(values.Columns) == 0 {
			builder.WriteString("VALUES()")
			return
		}
		c.Build(builder)
	}
	return
}

func (dialector Dialector) Migrator(db *tablemodel.DB) tablemodel.Migrator {
	return Migrator{
		Migrator: migrator.Migrator{Config: migrator.Config{
			DB:            db,
			Dialector:     dialector,
			CurrentSchema: "DATABASE()",
			ColumnsQuery:  columnsQuery,
		}},
		dialector: dialector,
	}
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
	return logger.ExplainSQL(sql, nil, `'`, vars...)
}

// Migrator mysql migrator
type Migrator struct {
	migrator.Migrator
	dialector Dialector
}

// CurrentDatabase falls back to the database named in the DSN when the server cannot be asked
func (m Migrator) CurrentDatabase(ctx context.Context) string {
	if name := m.Migrator.CurrentDatabase(ctx); name != "" {
		return name
	}
	if m.dialector.DSNConfig != nil {
		return m.dialector.DSNConfig.DBName
	}
	return ""
}
