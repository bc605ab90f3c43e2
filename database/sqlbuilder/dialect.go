package sqlbuilder

import (
	"bytes"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/Arkade1984/querybuilder/database/sqltypes"
	"github.com/Arkade1984/querybuilder/encoding2"
)

// Dialect renders identifiers, literals and the dialect specific keywords of
// the statements the builder produces.  Implementations hold no state.
type Dialect interface {
	Name() string

	// Quotes each dot separated part of name.
	QuoteIdentifier(name string) string

	// Writes v as a literal.
	EncodeValue(out *bytes.Buffer, v sqltypes.Value)

	// The leading keywords of an insert, including the trailing space.
	InsertPrefix(ignore bool) string

	// Appended after the VALUES clause of an ignoring insert, if the dialect
	// has no IGNORE keyword.
	IgnoreClause() string

	// The leading keywords of a truncate, including the trailing space.
	TruncatePrefix() string

	// Rendered after the table name of an insert without columns.
	EmptyInsertClause() string
}

type genericDialect struct {
	name         string
	quoteChar    byte
	escapeQuotes bool
	ansiStrings  bool
	insertIgnore string
	ignoreClause string
	truncate     string
	emptyInsert  string
}

func (d *genericDialect) Name() string {
	return d.name
}

func (d *genericDialect) QuoteIdentifier(name string) string {
	quote := string(d.quoteChar)
	parts := strings.Split(name, ".")
	for i, part := range parts {
		if d.escapeQuotes {
			part = strings.ReplaceAll(part, quote, quote+quote)
		}
		parts[i] = quote + part + quote
	}
	return strings.Join(parts, ".")
}

func (d *genericDialect) EncodeValue(out *bytes.Buffer, v sqltypes.Value) {
	if d.ansiStrings {
		v.EncodeAnsi(out)
	} else {
		v.EncodeSql(out)
	}
}

func (d *genericDialect) InsertPrefix(ignore bool) string {
	if ignore {
		return d.insertIgnore
	}
	return "INSERT INTO "
}

func (d *genericDialect) IgnoreClause() string {
	return d.ignoreClause
}

func (d *genericDialect) TruncatePrefix() string {
	return d.truncate
}

func (d *genericDialect) EmptyInsertClause() string {
	return d.emptyInsert
}

var mysqlDialect = &genericDialect{
	name:         "mysql",
	quoteChar:    '`',
	insertIgnore: "INSERT IGNORE INTO ",
	truncate:     "TRUNCATE ",
	emptyInsert:  " () VALUES ()",
}

var sqliteDialect = &genericDialect{
	name:         "sqlite",
	quoteChar:    '"',
	escapeQuotes: true,
	ansiStrings:  true,
	insertIgnore: "INSERT OR IGNORE INTO ",
	// sqlite has no TRUNCATE; an unqualified DELETE takes the truncate
	// optimization.
	truncate:    "DELETE FROM ",
	emptyInsert: " DEFAULT VALUES",
}

// MySQL backquotes identifiers and backslash escapes strings.
func MySQL() Dialect {
	return mysqlDialect
}

// SQLite double quotes identifiers and doubles embedded quotes in strings.
func SQLite() Dialect {
	return sqliteDialect
}

type postgresDialect struct {
	genericDialect
}

// Postgres quotes identifiers with pgx and literals with lib/pq.  Ignoring
// inserts are rendered with ON CONFLICT DO NOTHING.
func Postgres() Dialect {
	return &postgresDialect{
		genericDialect: genericDialect{
			name:         "postgres",
			quoteChar:    '"',
			escapeQuotes: true,
			ansiStrings:  true,
			insertIgnore: "INSERT INTO ",
			ignoreClause: " ON CONFLICT DO NOTHING",
			truncate:     "TRUNCATE ",
			emptyInsert:  " DEFAULT VALUES",
		},
	}
}

func (d *postgresDialect) QuoteIdentifier(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

func (d *postgresDialect) EncodeValue(out *bytes.Buffer, v sqltypes.Value) {
	switch {
	case v.IsUtf8String():
		// QuoteLiteral prefixes E'' literals with a space.
		_, _ = out.WriteString(
			strings.TrimPrefix(pq.QuoteLiteral(v.String()), " "))
	case v.IsString():
		// bytea hex input format
		_, _ = out.WriteString(`'\x`)
		_ = encoding2.HexEncodeToWriter(out, v.Raw())
		_ = out.WriteByte('\'')
	case v.IsBoolean():
		if v.String() == "1" {
			_, _ = out.WriteString("TRUE")
		} else {
			_, _ = out.WriteString("FALSE")
		}
	default:
		v.EncodeAnsi(out)
	}
}
