package sqlbuilder

import (
	"bytes"
	"strings"

	"github.com/Arkade1984/querybuilder/database/sqltypes"
	"github.com/Arkade1984/querybuilder/errors"
)

// Statement is a fully resolved statement, ready to be rendered.
type Statement interface {
	// String returns generated SQL as string.
	String(dialect Dialect) (sql string, err error)
}

//
// INSERT Statement ============================================================
//

type insertStatement struct {
	table   string
	columns []string
	rows    [][]sqltypes.Value
	ignore  bool
	suffix  string
}

func (s *insertStatement) String(dialect Dialect) (sql string, err error) {
	buf := new(bytes.Buffer)
	_, _ = buf.WriteString(dialect.InsertPrefix(s.ignore))

	if s.table == "" {
		return "", errors.Newf("empty table.  Generated sql: %s", buf.String())
	}
	_, _ = buf.WriteString(dialect.QuoteIdentifier(s.table))

	if len(s.columns) == 0 {
		if len(s.rows) > 1 {
			return "", errors.Newf(
				"Multiple rows without columns.  Generated sql: %s",
				buf.String())
		}
		_, _ = buf.WriteString(dialect.EmptyInsertClause())
		s.writeTail(dialect, buf)
		return buf.String(), nil
	}

	_, _ = buf.WriteString(" (")
	for i, col := range s.columns {
		if i > 0 {
			_, _ = buf.WriteString(", ")
		}
		_, _ = buf.WriteString(dialect.QuoteIdentifier(col))
	}

	if len(s.rows) == 0 {
		return "", errors.Newf(
			"No row specified.  Generated sql: %s",
			buf.String())
	}

	_, _ = buf.WriteString(") VALUES (")
	for rowIdx, row := range s.rows {
		if rowIdx > 0 {
			_, _ = buf.WriteString(", (")
		}

		if len(row) != len(s.columns) {
			return "", errors.Newf(
				"# of values does not match # of columns.  Generated sql: %s",
				buf.String())
		}

		for colIdx, value := range row {
			if colIdx > 0 {
				_, _ = buf.WriteString(", ")
			}
			dialect.EncodeValue(buf, value)
		}
		_ = buf.WriteByte(')')
	}

	s.writeTail(dialect, buf)
	return buf.String(), nil
}

// A suffix carrying its own ON CONFLICT clause replaces the dialect's ignore
// clause; postgres accepts only one.
func (s *insertStatement) writeTail(dialect Dialect, buf *bytes.Buffer) {
	if s.ignore && !hasConflictClause(s.suffix) {
		_, _ = buf.WriteString(dialect.IgnoreClause())
	}
	if s.suffix != "" {
		_ = buf.WriteByte(' ')
		_, _ = buf.WriteString(s.suffix)
	}
}

func hasConflictClause(suffix string) bool {
	return strings.HasPrefix(
		strings.ToUpper(strings.TrimSpace(suffix)),
		"ON CONFLICT")
}

//
// TRUNCATE / DELETE statements ================================================
//

type truncateStatement struct {
	table string
}

func (s *truncateStatement) String(dialect Dialect) (sql string, err error) {
	if s.table == "" {
		return "", errors.New("empty table in truncate")
	}
	return dialect.TruncatePrefix() + dialect.QuoteIdentifier(s.table), nil
}

// DELETE FROM without a WHERE clause.
type emptyTableStatement struct {
	table string
}

func (s *emptyTableStatement) String(dialect Dialect) (sql string, err error) {
	if s.table == "" {
		return "", errors.New("empty table in delete")
	}
	return "DELETE FROM " + dialect.QuoteIdentifier(s.table), nil
}
