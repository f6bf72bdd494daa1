package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/dialects/postgres"
	"github.com/go-dbal/tablemodel/logger"
)

func TestTranslate(t *testing.T) {
	dialector := postgres.Dialector{}

	err := dialector.Translate(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
	assert.True(t, errors.Is(err, tablemodel.ErrDuplicatedKey), "got %v", err)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "unique_violation", pqErr.Code.Name())

	err = dialector.Translate(&pq.Error{Code: "23503"})
	assert.True(t, errors.Is(err, tablemodel.ErrForeignKeyViolated), "got %v", err)

	syntax := &pq.Error{Code: "42601"}
	assert.Equal(t, error(syntax), dialector.Translate(syntax))
}

func TestTranslateErrorOnQuery(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	db, err := tablemodel.Open(postgres.New(postgres.Config{Conn: conn}), &tablemodel.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name) VALUES ($1) RETURNING id`)).
		WithArgs("jinzhu").
		WillReturnError(&pq.Error{Code: "23505"})

	err = db.Query(context.Background(), `INSERT INTO users (name) VALUES ($1) RETURNING id`, []interface{}{"jinzhu"}, nil)
	assert.True(t, errors.Is(err, tablemodel.ErrDuplicatedKey), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
