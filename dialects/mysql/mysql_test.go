package mysql_test

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/go-dbal/tablemodel"
	"github.com/go-dbal/tablemodel/dialects/mysql"
	"github.com/go-dbal/tablemodel/logger"
)

const dsn = "tablemodel:tablemodel@tcp(localhost:9910)/shop?charset=utf8&parseTime=True"

var catalogColumns = []string{"column_name", "data_type", "column_type", "pk", "autoinc", "nullable", "column_default"}

func newDB(t *testing.T) (*tablemodel.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := tablemodel.Open(mysql.New(mysql.Config{DSN: dsn, Conn: conn}), &tablemodel.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return db, mock
}

func newModel(t *testing.T) (*tablemodel.Model, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ? AND table_type = ?")).
		WithArgs("users", "BASE TABLE").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position")).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows(catalogColumns).
			AddRow("id", "int", "int(10) unsigned", 1, 1, 0, nil).
			AddRow("name", "varchar", "varchar(255)", 0, 0, 0, nil).
			AddRow("active", "tinyint", "tinyint(1)", 0, 0, 0, "1").
			AddRow("born_on", "date", "date", 0, 0, 1, nil))

	model, err := db.Model(context.Background(), "users")
	require.NoError(t, err)
	return model, mock
}

func TestIntrospection(t *testing.T) {
	model, mock := newModel(t)
	s := model.Schema()

	assert.Equal(t, []string{"id", "name", "active", "born_on"}, s.ColumnNames())

	id, _ := s.Column("id")
	assert.Equal(t, "int(10) unsigned", id.DBType)
	assert.True(t, id.AutoIncrement)
	assert.True(t, id.PrimaryKey)

	active, _ := s.Column("active")
	assert.Equal(t, "boolean", string(active.DataType))

	bornOn, _ := s.Column("born_on")
	assert.True(t, bornOn.Nullable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmptyRow(t *testing.T) {
	model, mock := newModel(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users` VALUES()")).
		WillReturnResult(sqlmock.NewResult(11, 1))

	result, err := model.Create(context.Background(), map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, tablemodel.CreateResult{LastInsertID: "11", Inserted: true}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAndCopy(t *testing.T) {
	model, mock := newModel(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `id`,`name`,`active`,`born_on` FROM `users` WHERE `id` = ?")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "active", "born_on"}).AddRow("3", "jinzhu", "1", "2001-02-03"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users` (`active`,`born_on`,`name`) VALUES (?,?,?)")).
		WithArgs("0", "2001-02-03", "jinzhu").
		WillReturnResult(sqlmock.NewResult(12, 1))

	results, err := model.Copy(context.Background(), []tablemodel.Filter{tablemodel.Where("id", tablemodel.OpIn, 3)}, nil, nil, map[string]interface{}{"active": "0"})
	require.NoError(t, err)
	assert.Equal(t, []tablemodel.CreateResult{{LastInsertID: "12", Inserted: true}}, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadCoerced(t *testing.T) {
	model, mock := newModel(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `active`,`born_on` FROM `users` WHERE `id` IN (?,?)")).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"active", "born_on"}).AddRow("1", "2001-02-03").AddRow("0", nil))

	rows, err := model.Read(context.Background(), tablemodel.Query{
		Columns: []tablemodel.Projection{tablemodel.Col("active"), tablemodel.Col("born_on")},
		Filters: []tablemodel.Filter{tablemodel.Where("id", tablemodel.OpIn, []string{"1", "2"})},
		Mode:    tablemodel.ReturnCoerced,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	active, _ := rows[0].Get("active")
	assert.Equal(t, true, active)
	bornOn, _ := rows[0].Get("born_on")
	require.IsType(t, time.Time{}, bornOn)
	assert.Equal(t, "2001-02-03", bornOn.(time.Time).Format("2006-01-02"))

	bornOn, _ = rows[1].Get("born_on")
	assert.Nil(t, bornOn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentDatabase(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DATABASE()")).
		WillReturnRows(sqlmock.NewRows([]string{"DATABASE()"}).AddRow("inventory"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DATABASE()")).
		WillReturnError(errors.New("bad connection"))

	assert.Equal(t, "inventory", db.Migrator().CurrentDatabase(context.Background()))
	assert.Equal(t, "shop", db.Migrator().CurrentDatabase(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialector(t *testing.T) {
	dialector := mysql.Open(dsn)
	assert.Equal(t, "mysql", dialector.Name())
	assert.Equal(t, "shop", dialector.(*mysql.Dialector).DSNConfig.DBName)
	assert.Equal(t, "UPDATE `users` SET `name`='o''neil' WHERE `id` = 1",
		dialector.Explain("UPDATE `users` SET `name`=? WHERE `id` = ?", "o'neil", 1))

	_, isReturner := dialector.(tablemodel.Returner)
	assert.False(t, isReturner)
}

// TestLive runs against a real server when TABLEMODEL_MYSQL_DSN is set
func TestLive(t *testing.T) {
	liveDSN := os.Getenv("TABLEMODEL_MYSQL_DSN")
	if liveDSN == "" {
		t.Skip("TABLEMODEL_MYSQL_DSN not set")
	}

	db, err := tablemodel.Open(mysql.Open(liveDSN), &tablemodel.Config{Logger: logger.Discard})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.Exec(ctx, "DROP TABLE IF EXISTS tablemodel_live")
	require.NoError(t, err)
	_, err = db.Exec(ctx, "CREATE TABLE tablemodel_live (id INT AUTO_INCREMENT PRIMARY KEY, name VARCHAR(50) NOT NULL DEFAULT '', score DECIMAL(6,2))")
	require.NoError(t, err)
	defer db.Exec(ctx, "DROP TABLE tablemodel_live")

	model, err := db.Model(ctx, "tablemodel_live")
	require.NoError(t, err)

	created, err := model.Create(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "1", created.LastInsertID)

	affected, err := model.Update(ctx, map[string]interface{}{"score": 2.5}, []tablemodel.Filter{tablemodel.Where("id", tablemodel.OpEq, 1)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rows, err := model.Read(ctx, tablemodel.Query{Mode: tablemodel.ReturnCoerced})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	score, _ := rows[0].Get("score")
	assert.Equal(t, 2.5, score)
}
