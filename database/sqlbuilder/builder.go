package sqlbuilder

import (
	"github.com/Arkade1984/querybuilder/container/linked_hashmap"
	"github.com/Arkade1984/querybuilder/database/sqltypes"
	"github.com/Arkade1984/querybuilder/errors"
)

// QueryBuilder accumulates a table, column assignments and modifiers, and
// renders them into statements.  Every method validates its arguments before
// touching the builder's state, so a call that returns an error leaves the
// state exactly as it was.
//
// Not safe for concurrent use.
type QueryBuilder struct {
	dialect     Dialect
	strict      bool
	cacheSize   int
	identifiers *identifierValidator
	state       *queryState
}

type Option func(*QueryBuilder)

// WithDialect selects the sql flavor.  The default is MySQL().
func WithDialect(dialect Dialect) Option {
	return func(qb *QueryBuilder) {
		qb.dialect = dialect
	}
}

// WithStrictIdentifiers rejects table and column names that are not plain
// identifiers ([a-zA-Z_][a-zA-Z0-9_]*, optionally dot separated).
func WithStrictIdentifiers() Option {
	return func(qb *QueryBuilder) {
		qb.strict = true
	}
}

// WithIdentifierCache remembers up to size names that passed strict
// validation.
func WithIdentifierCache(size int) Option {
	return func(qb *QueryBuilder) {
		qb.cacheSize = size
	}
}

func NewQueryBuilder(opts ...Option) *QueryBuilder {
	qb := &QueryBuilder{
		dialect: MySQL(),
		state:   newQueryState(),
	}
	for _, opt := range opts {
		opt(qb)
	}
	qb.identifiers = newIdentifierValidator(qb.cacheSize)
	return qb
}

func (qb *QueryBuilder) Dialect() Dialect {
	return qb.dialect
}

// TableName returns the table held by the builder, if any.
func (qb *QueryBuilder) TableName() (string, bool) {
	return qb.state.table, qb.state.table != ""
}

// Columns returns the assigned columns in assignment order.
func (qb *QueryBuilder) Columns() []string {
	return qb.state.assignments.Keys()
}

// From sets the table used by statements that do not name one.  A blank name
// leaves the current table in place.
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	if t, ok := Table(table).(tableName); ok {
		qb.state.table = string(t)
	}
	return qb
}

// Set merges a record into the builder's assignments.  data is anything
// ParseDataArg accepts as a single record (or as no data); a list of
// records fails with ErrInvalidData.
func (qb *QueryBuilder) Set(data interface{}) (*QueryBuilder, error) {
	arg, err := ParseDataArg(data)
	if err != nil {
		return qb, err
	}

	switch d := arg.(type) {
	case rowData:
		return qb.SetRecord(d.record)
	case rowsData:
		return qb, errors.Wrap(ErrInvalidData, "set takes a single record")
	}
	return qb, nil
}

// SetRecord merges r into the builder's assignments.  Columns that are
// already assigned keep their position and take the new value.
func (qb *QueryBuilder) SetRecord(r *Record) (*QueryBuilder, error) {
	values, err := qb.validateRecord(r)
	if err != nil {
		return qb, err
	}
	values.Each(func(col string, value sqltypes.Value) bool {
		qb.state.assignments.Put(col, value)
		return true
	})
	return qb, nil
}

// IgnoreDuplicates makes every following insert an ignoring insert, until
// ResetQuery.
func (qb *QueryBuilder) IgnoreDuplicates(ignore bool) *QueryBuilder {
	qb.state.modifiers.ignore = ignore
	return qb
}

// Suffix sets a sql fragment (e.g. "ON DUPLICATE KEY UPDATE ...") appended
// verbatim to following inserts that do not pass their own suffix.
func (qb *QueryBuilder) Suffix(suffix string) *QueryBuilder {
	qb.state.modifiers.suffix = suffix
	return qb
}

// ResetQuery clears the table, the assignments and the modifiers.
func (qb *QueryBuilder) ResetQuery() *QueryBuilder {
	qb.state.reset()
	return qb
}

// Insert renders an INSERT statement.
//
// A table named by the call replaces the builder's table; otherwise the
// builder's table is used.  Row data is merged over the builder's
// assignments (the call wins for columns set on both) and the merge is kept.
// Rows data renders one VALUES tuple per record and leaves the assignments
// alone.  The first non-empty suffix is appended after the VALUES clause.
func (qb *QueryBuilder) Insert(
	table TableArg,
	data DataArg,
	suffix ...string) (string, error) {

	return qb.insert(false, table, data, suffix)
}

// InsertIgnore is Insert with duplicate rows ignored.
func (qb *QueryBuilder) InsertIgnore(
	table TableArg,
	data DataArg,
	suffix ...string) (string, error) {

	return qb.insert(true, table, data, suffix)
}

// InsertBatch renders a multi row INSERT.  Every record must assign the same
// set of columns; values are written in the column order of the first
// record.
func (qb *QueryBuilder) InsertBatch(
	table TableArg,
	rows []*Record,
	suffix ...string) (string, error) {

	if len(rows) == 0 {
		return "", errors.Wrap(ErrInvalidData, "batch insert without records")
	}
	return qb.insert(false, table, rowsData{records: rows}, suffix)
}

// InsertValues is Insert for loosely typed arguments; see ParseTableArg and
// ParseDataArg.
func (qb *QueryBuilder) InsertValues(
	table interface{},
	data interface{},
	suffix ...string) (string, error) {

	t, d, err := parseInsertArgs(table, data)
	if err != nil {
		return "", err
	}
	return qb.insert(false, t, d, suffix)
}

// InsertIgnoreValues is InsertIgnore for loosely typed arguments.
func (qb *QueryBuilder) InsertIgnoreValues(
	table interface{},
	data interface{},
	suffix ...string) (string, error) {

	t, d, err := parseInsertArgs(table, data)
	if err != nil {
		return "", err
	}
	return qb.insert(true, t, d, suffix)
}

// Truncate renders a TRUNCATE statement (DELETE FROM for sqlite).  The
// assignments are not consulted.
func (qb *QueryBuilder) Truncate(table TableArg) (string, error) {
	name, err := qb.tableFor(table)
	if err != nil {
		return "", err
	}
	sql, err := (&truncateStatement{table: name}).String(qb.dialect)
	if err != nil {
		return "", err
	}
	qb.state.table = name
	return sql, nil
}

// TruncateValue is Truncate for a loosely typed table argument.
func (qb *QueryBuilder) TruncateValue(table interface{}) (string, error) {
	t, err := ParseTableArg(table)
	if err != nil {
		return "", err
	}
	return qb.Truncate(t)
}

// EmptyTable renders a DELETE FROM statement without a WHERE clause.
func (qb *QueryBuilder) EmptyTable(table TableArg) (string, error) {
	name, err := qb.tableFor(table)
	if err != nil {
		return "", err
	}
	sql, err := (&emptyTableStatement{table: name}).String(qb.dialect)
	if err != nil {
		return "", err
	}
	qb.state.table = name
	return sql, nil
}

func parseInsertArgs(
	table interface{},
	data interface{}) (TableArg, DataArg, error) {

	t, err := ParseTableArg(table)
	if err != nil {
		return nil, nil, err
	}
	d, err := ParseDataArg(data)
	if err != nil {
		return nil, nil, err
	}
	return t, d, nil
}

func (qb *QueryBuilder) insert(
	ignore bool,
	table TableArg,
	data DataArg,
	suffix []string) (string, error) {

	name, err := qb.tableFor(table)
	if err != nil {
		return "", err
	}

	stmt := &insertStatement{
		table:  name,
		ignore: ignore || qb.state.modifiers.ignore,
		suffix: qb.state.resolveSuffix(suffix),
	}

	assignments := qb.state.assignments
	switch d := data.(type) {
	case rowsData:
		stmt.columns, stmt.rows, err = qb.batchRows(d.records)
		if err != nil {
			return "", err
		}
	case rowData:
		values, err := qb.validateRecord(d.record)
		if err != nil {
			return "", err
		}
		assignments = assignments.Clone()
		values.Each(func(col string, value sqltypes.Value) bool {
			assignments.Put(col, value)
			return true
		})
		stmt.columns, stmt.rows = singleRow(assignments)
	default:
		stmt.columns, stmt.rows = singleRow(assignments)
	}

	sql, err := stmt.String(qb.dialect)
	if err != nil {
		return "", err
	}

	qb.state.table = name
	qb.state.assignments = assignments
	return sql, nil
}

// tableFor resolves the table of a statement against the builder's state.
func (qb *QueryBuilder) tableFor(table TableArg) (string, error) {
	name := qb.state.resolveTable(table)
	if name == "" {
		return "", errors.Wrap(
			ErrMissingTable,
			"no table given and none set on the builder")
	}
	if qb.strict && !qb.identifiers.valid(name) {
		return "", errors.Wrapf(ErrInvalidTable, "invalid table name %q", name)
	}
	return name, nil
}

// validateRecord converts every value of r, in column order.
func (qb *QueryBuilder) validateRecord(
	r *Record) (*linked_hashmap.LinkedHashmap[sqltypes.Value], error) {

	values := linked_hashmap.NewLinkedHashmap[sqltypes.Value](r.Len())
	var err error
	r.Each(func(col string, val interface{}) bool {
		if col == "" || (qb.strict && !qb.identifiers.valid(col)) {
			err = errors.Wrapf(ErrInvalidData, "invalid column name %q", col)
			return false
		}
		value, ok := scalarValue(val)
		if !ok {
			err = errors.Wrapf(
				ErrInvalidValue,
				"column %q holds a non-scalar %T",
				col,
				val)
			return false
		}
		values.Put(col, value)
		return true
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (qb *QueryBuilder) batchRows(
	records []*Record) (columns []string, rows [][]sqltypes.Value, err error) {

	rows = make([][]sqltypes.Value, 0, len(records))
	for i, r := range records {
		if r.Len() == 0 {
			return nil, nil, errors.Wrapf(ErrInvalidData, "record %d is empty", i)
		}

		values, err := qb.validateRecord(r)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "record %d", i)
		}

		if i == 0 {
			columns = values.Keys()
		} else if values.Len() != len(columns) {
			return nil, nil, errors.Wrapf(
				ErrInvalidData,
				"record %d has columns %v, record 0 has %v",
				i,
				values.Keys(),
				columns)
		}

		row := make([]sqltypes.Value, len(columns))
		for j, col := range columns {
			value, ok := values.Get(col)
			if !ok {
				return nil, nil, errors.Wrapf(
					ErrInvalidData,
					"record %d is missing column %q",
					i,
					col)
			}
			row[j] = value
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}

func singleRow(
	assignments *linked_hashmap.LinkedHashmap[sqltypes.Value]) (
	[]string,
	[][]sqltypes.Value) {

	if assignments.Len() == 0 {
		return nil, nil
	}
	row := make([]sqltypes.Value, 0, assignments.Len())
	assignments.Each(func(_ string, value sqltypes.Value) bool {
		row = append(row, value)
		return true
	})
	return assignments.Keys(), [][]sqltypes.Value{row}
}
