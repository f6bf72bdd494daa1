package tablemodel_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/logger"
	"github.com/go-dbal/tablemodel/utils/tests"
)

func TestOpenWithoutConnPool(t *testing.T) {
	db, err := tablemodel.Open(nil, nil)
	assert.Nil(t, db)
	assert.True(t, errors.Is(err, tablemodel.ErrInvalidDB))
}

func TestOpenDefaults(t *testing.T) {
	db, err := tablemodel.Open(tests.DummyDialector{}, nil)
	require.NoError(t, err)

	assert.Equal(t, logger.Default, db.Logger)
	assert.Equal(t, 128, db.ModelCacheSize)
	assert.NotNil(t, db.ClauseBuilders)
	assert.Equal(t, "dummy", db.Dialector.Name())
	assert.NoError(t, db.Close())
}

func TestExecAndQueryTrace(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	db, err := tablemodel.Open(tests.DummyDialector{}, &tablemodel.Config{
		Logger: logger.NewLogrusLogger(log, logger.Config{LogLevel: logger.Info}),
	})
	require.NoError(t, err)
	db.ConnPool = conn

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET name = ?")).
		WithArgs("jinzhu").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3))

	ctx := logger.WithTable(context.Background(), "users")
	_, err = db.Exec(ctx, "UPDATE users SET name = ?", "jinzhu")
	require.NoError(t, err)

	var ids []int64
	err = db.Query(ctx, "SELECT id FROM users", nil, func(rows *sql.Rows) error {
		var id int64
		err := rows.Scan(&id)
		ids = append(ids, id)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var exec, query map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &exec))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &query))

	assert.Equal(t, "SQL executed", exec["msg"])
	assert.Equal(t, `UPDATE users SET name = "jinzhu"`, exec["sql"])
	assert.Equal(t, float64(2), exec["rows"])
	assert.Equal(t, "users", exec["table"])

	assert.Equal(t, "SELECT id FROM users", query["sql"])
	assert.Equal(t, float64(3), query["rows"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
