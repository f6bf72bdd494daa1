package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/dialects/sqlite"
	"github.com/go-dbal/tablemodel/logger"
)

func TestTranslateError(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := tablemodel.Open(sqlite.Open(dsn), &tablemodel.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	for _, stmt := range []string{
		"CREATE TABLE users (id INTEGER PRIMARY KEY, email VARCHAR(100) UNIQUE)",
		"CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER REFERENCES users(id))",
	} {
		_, err := db.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	users, err := db.Model(ctx, "users")
	require.NoError(t, err)
	posts, err := db.Model(ctx, "posts")
	require.NoError(t, err)

	_, err = users.Create(ctx, map[string]interface{}{"id": 1, "email": "jinzhu@example.org"})
	require.NoError(t, err)

	_, err = users.Create(ctx, map[string]interface{}{"email": "jinzhu@example.org"})
	assert.True(t, errors.Is(err, tablemodel.ErrDuplicatedKey), "got %v", err)

	var sqliteErr sqlite3.Error
	assert.True(t, errors.As(err, &sqliteErr))

	_, err = users.Create(ctx, map[string]interface{}{"id": 1, "email": "other@example.org"})
	assert.True(t, errors.Is(err, tablemodel.ErrDuplicatedKey), "got %v", err)

	_, err = posts.Create(ctx, map[string]interface{}{"user_id": 42})
	assert.True(t, errors.Is(err, tablemodel.ErrForeignKeyViolated), "got %v", err)

	_, err = posts.Create(ctx, map[string]interface{}{"user_id": 1})
	assert.NoError(t, err)
}

func TestTranslateErrorDisabled(t *testing.T) {
	db := openDB(t, "CREATE TABLE users (id INTEGER PRIMARY KEY, email VARCHAR(100) UNIQUE)")
	ctx := context.Background()

	users, err := db.Model(ctx, "users")
	require.NoError(t, err)

	_, err = users.Create(ctx, map[string]interface{}{"email": "jinzhu@example.org"})
	require.NoError(t, err)
	_, err = users.Create(ctx, map[string]interface{}{"email": "jinzhu@example.org"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, tablemodel.ErrDuplicatedKey))

	plain := errors.New("plain")
	assert.Equal(t, plain, sqlite.Dialector{}.Translate(plain))
}
