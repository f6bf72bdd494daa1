package tablemodel

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-dbal/tablemodel/clause"
	"github.com/go-dbal/tablemodel/logger"
	"github.com/go-dbal/tablemodel/schema"
)

// Model runs validated queries against one table. It holds no state besides the
// table schema and is safe for concurrent use when the connection pool is.
type Model struct {
	db     *DB
	schema *schema.Schema
}

// NewModel introspects table and returns its model, ErrTableNotFound when the table does not exist
func NewModel(ctx context.Context, table string, db *DB) (*Model, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := schema.Load(logger.WithTable(ctx, table), db.Migrator(), table)
	if err != nil {
		return nil, err
	}
	return &Model{db: db, schema: s}, nil
}

// TableName returns the table the model works on
func (m *Model) TableName() string {
	return m.schema.Table
}

// Schema returns the introspected columns
func (m *Model) Schema() *schema.Schema {
	return m.schema
}

func (m *Model) statement(ctx context.Context) *Statement {
	stmt := NewStatement(ctx, m.db, m.schema.Table)
	stmt.Schema = m.schema
	return stmt
}

// CreateResult outcome of inserting one row
type CreateResult struct {
	// LastInsertID generated identifier, set when the table has an autoincrement column
	LastInsertID string `json:"lastInsertId,omitempty"`
	// Inserted at least one row was affected
	Inserted bool `json:"inserted"`
}

// Query describes a Read
type Query struct {
	Columns []Projection
	Filters []Filter
	Limit   *Limit
	Order   []Order
	Mode    ReturnMode
}

// assignments validates data keys and returns them sorted with their values
func (m *Model) assignments(data map[string]interface{}) ([]clause.Column, []interface{}, error) {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	columns := make([]clause.Column, len(keys))
	values := make([]interface{}, len(keys))
	for idx, key := range keys {
		if !m.schema.HasColumn(key) {
			return nil, nil, fmt.Errorf("%w: %q on table %q", ErrUnknownColumn, key, m.schema.Table)
		}
		columns[idx] = clause.Column{Name: key}
		values[idx] = normalizeNumber(data[key])
	}
	return columns, values, nil
}

// Create inserts one row. Every key of data must be a column of the table,
// an empty data inserts a row of defaults.
func (m *Model) Create(ctx context.Context, data map[string]interface{}) (CreateResult, error) {
	columns, values, err := m.assignments(data)
	if err != nil {
		return CreateResult{}, err
	}

	stmt := m.statement(ctx)
	stmt.AddClause(clause.Insert{})
	if len(columns) > 0 {
		stmt.AddClause(clause.Values{Columns: columns, Values: [][]interface{}{values}})
	} else {
		stmt.AddClause(clause.Values{})
	}

	autoIncrement, hasAutoIncrement := m.schema.AutoIncrementColumn()
	if returner, ok := m.db.Dialector.(Returner); ok && returner.Returning() && hasAutoIncrement {
		stmt.AddClause(clause.Returning{Columns: []clause.Column{{Name: autoIncrement.Name}}})
		stmt.Build("INSERT", "VALUES", "RETURNING")

		var (
			result CreateResult
			id     sql.NullString
		)
		err := stmt.Query(func(rows *sql.Rows) error {
			result.Inserted = true
			return rows.Scan(&id)
		})
		result.LastInsertID = id.String
		return result, err
	}

	stmt.Build("INSERT", "VALUES")
	res, err := stmt.Exec()
	if err != nil {
		return CreateResult{}, err
	}

	var result CreateResult
	if affected, err := res.RowsAffected(); err == nil {
		result.Inserted = affected > 0
	}

	if hasAutoIncrement {
		id, err := res.LastInsertId()
		if err != nil {
			return result, err
		}
		result.LastInsertID = strconv.FormatInt(id, 10)
	}
	return result, nil
}

// Read selects rows matching query.Filters, converted per query.Mode
func (m *Model) Read(ctx context.Context, query Query) ([]*Row, error) {
	projections, err := m.projections(query.Columns)
	if err != nil {
		return nil, err
	}

	where, err := m.whereClause(query.Filters)
	if err != nil {
		return nil, err
	}

	orderBy, err := m.orderClause(query.Order)
	if err != nil {
		return nil, err
	}

	convert, err := m.rowConverter(projections, query.Mode)
	if err != nil {
		return nil, err
	}

	stmt := m.statement(ctx)
	stmt.AddClause(selectClause(projections))
	stmt.AddClause(clause.From{})
	if len(where.Exprs) > 0 {
		stmt.AddClause(where)
	}
	if len(orderBy.Columns) > 0 {
		stmt.AddClause(orderBy)
	}
	if query.Limit != nil {
		stmt.AddClause(query.Limit.clause())
	}
	stmt.Build("SELECT", "FROM", "WHERE", "ORDER BY", "LIMIT")

	var (
		results []*Row
		cells   = make([]sql.NullString, len(projections))
		dest    = make([]interface{}, len(projections))
	)
	for idx := range cells {
		dest[idx] = &cells[idx]
	}

	err = stmt.Query(func(rows *sql.Rows) error {
		if err := rows.Scan(dest...); err != nil {
			return err
		}

		row, err := convert(cells)
		if err != nil {
			return err
		}
		results = append(results, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Update sets data on every row matching filters and returns the number of affected rows.
// No filters updates the whole table unless BlockGlobalUpdate is set.
func (m *Model) Update(ctx context.Context, data map[string]interface{}, filters []Filter) (int64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: update on table %q", ErrEmptyData, m.schema.Table)
	}

	columns, values, err := m.assignments(data)
	if err != nil {
		return 0, err
	}

	where, err := m.guardedWhere(filters)
	if err != nil {
		return 0, err
	}

	set := make(clause.Set, len(columns))
	for idx, column := range columns {
		set[idx] = clause.Assignment{Column: column, Value: values[idx]}
	}

	stmt := m.statement(ctx)
	stmt.AddClause(clause.Update{})
	stmt.AddClause(set)
	if len(where.Exprs) > 0 {
		stmt.AddClause(where)
	}
	stmt.Build("UPDATE", "SET", "WHERE")

	return rowsAffected(stmt.Exec())
}

// Delete removes every row matching filters and returns the number of affected rows.
// No filters empties the table unless BlockGlobalUpdate is set.
func (m *Model) Delete(ctx context.Context, filters []Filter) (int64, error) {
	where, err := m.guardedWhere(filters)
	if err != nil {
		return 0, err
	}

	stmt := m.statement(ctx)
	stmt.AddClause(clause.Delete{})
	stmt.AddClause(clause.From{})
	if len(where.Exprs) > 0 {
		stmt.AddClause(where)
	}
	stmt.Build("DELETE", "FROM", "WHERE")

	return rowsAffected(stmt.Exec())
}

// Copy reads the rows matching filters and inserts each again with changes applied.
// Autoincrement columns are left to the database so every copy gets a fresh id.
// Copies are not atomic, on error the results of the rows already inserted are returned with it.
func (m *Model) Copy(ctx context.Context, filters []Filter, limit *Limit, order []Order, changes map[string]interface{}) ([]CreateResult, error) {
	for key := range changes {
		if !m.schema.HasColumn(key) {
			return nil, fmt.Errorf("%w: %q on table %q", ErrUnknownColumn, key, m.schema.Table)
		}
	}

	rows, err := m.Read(ctx, Query{Filters: filters, Limit: limit, Order: order, Mode: ReturnRaw})
	if err != nil {
		return nil, err
	}

	results := make([]CreateResult, 0, len(rows))
	for _, row := range rows {
		data := row.Map()
		for key, value := range data {
			// raw cells are strings, binary ones must be bound as bytes again
			if value != nil && m.schema.DataTypeOf(key) == schema.Binary {
				if data[key], err = schema.Convert(value, schema.Binary); err != nil {
					return results, err
				}
			}
		}
		for key, value := range changes {
			data[key] = value
		}
		for _, name := range m.schema.ColumnNames() {
			if column, _ := m.schema.Column(name); column.AutoIncrement {
				delete(data, name)
			}
		}

		result, err := m.Create(ctx, data)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (m *Model) guardedWhere(filters []Filter) (clause.Where, error) {
	if len(filters) == 0 && m.db.BlockGlobalUpdate {
		return clause.Where{}, fmt.Errorf("%w: table %q", ErrMissingWhereClause, m.schema.Table)
	}
	return m.whereClause(filters)
}

func rowsAffected(result sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// rowConverter returns the function turning scanned cells into a Row for mode
func (m *Model) rowConverter(projections []Projection, mode ReturnMode) (func([]sql.NullString) (*Row, error), error) {
	type cell struct {
		idx      int
		key      string
		dataType schema.DataType
		convert  bool
	}

	var cells []cell
	for idx, p := range projections {
		dataType := m.schema.DataTypeOf(p.Column)
		switch mode {
		case ReturnRaw:
			cells = append(cells, cell{idx: idx, key: p.Key()})
		case ReturnSimple:
			if m.schema.IsSimpleType(p.Column) {
				cells = append(cells, cell{idx: idx, key: p.Key(), dataType: dataType, convert: true})
			}
		case ReturnCoerced:
			cells = append(cells, cell{idx: idx, key: p.Key(), dataType: dataType, convert: true})
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidReturnMode, mode)
		}
	}

	return func(scanned []sql.NullString) (*Row, error) {
		row := NewRow(len(cells))
		for _, c := range cells {
			var value interface{}
			if scanned[c.idx].Valid {
				value = scanned[c.idx].String
			}

			if c.convert {
				converted, err := schema.Convert(value, c.dataType)
				if err != nil {
					return nil, fmt.Errorf("%w: column %q", err, projections[c.idx].Column)
				}
				value = converted
			}
			row.Set(c.key, value)
		}
		return row, nil
	}, nil
}
