package sqlbuilder

import (
	"bytes"

	gc "gopkg.in/check.v1"

	"github.com/Arkade1984/querybuilder/database/sqltypes"
	. "github.com/Arkade1984/querybuilder/gocheck2"
)

type DialectSuite struct {
}

var _ = gc.Suite(&DialectSuite{})

func encode(d Dialect, v interface{}) string {
	value, ok := scalarValue(v)
	if !ok {
		panic("not a scalar")
	}
	buf := &bytes.Buffer{}
	d.EncodeValue(buf, value)
	return buf.String()
}

func (s *DialectSuite) TestNames(c *gc.C) {
	c.Assert(MySQL().Name(), gc.Equals, "mysql")
	c.Assert(Postgres().Name(), gc.Equals, "postgres")
	c.Assert(SQLite().Name(), gc.Equals, "sqlite")
	c.Assert(NewQueryBuilder().Dialect(), gc.Equals, MySQL())
}

func (s *DialectSuite) TestQuoteIdentifier(c *gc.C) {
	c.Assert(MySQL().QuoteIdentifier("galaxies"), gc.Equals, "`galaxies`")
	c.Assert(MySQL().QuoteIdentifier("a.b"), gc.Equals, "`a`.`b`")
	c.Assert(SQLite().QuoteIdentifier("a.b"), gc.Equals, `"a"."b"`)
	c.Assert(SQLite().QuoteIdentifier(`we"ird`), gc.Equals, `"we""ird"`)
	c.Assert(Postgres().QuoteIdentifier("a.b"), gc.Equals, `"a"."b"`)
	c.Assert(Postgres().QuoteIdentifier(`we"ird`), gc.Equals, `"we""ird"`)
}

func (s *DialectSuite) TestEncodeValue(c *gc.C) {
	c.Assert(encode(MySQL(), "it's"), gc.Equals, `'it\'s'`)
	c.Assert(encode(SQLite(), "it's"), gc.Equals, `'it''s'`)
	c.Assert(encode(Postgres(), "it's"), gc.Equals, `'it''s'`)

	c.Assert(encode(MySQL(), `C:\dir`), gc.Equals, `'C:\\dir'`)
	c.Assert(encode(SQLite(), `C:\dir`), gc.Equals, `'C:\dir'`)
	c.Assert(encode(Postgres(), `C:\dir`), gc.Equals, `E'C:\\dir'`)

	c.Assert(encode(MySQL(), false), gc.Equals, "0")
	c.Assert(encode(SQLite(), false), gc.Equals, "0")
	c.Assert(encode(Postgres(), false), gc.Equals, "FALSE")

	for _, d := range []Dialect{MySQL(), SQLite(), Postgres()} {
		c.Assert(encode(d, nil), gc.Equals, "NULL")
		c.Assert(encode(d, -12), gc.Equals, "-12")
		c.Assert(encode(d, 2.5), gc.Equals, "2.5")
	}

	binary := "\xff\x00"
	c.Assert(encode(MySQL(), binary), gc.Equals, "X'ff00'")
	c.Assert(encode(SQLite(), binary), gc.Equals, "X'ff00'")
	c.Assert(encode(Postgres(), binary), gc.Equals, `'\xff00'`)

	buf := &bytes.Buffer{}
	Postgres().EncodeValue(buf, sqltypes.Value{Inner: sqltypes.Boolean(true)})
	c.Assert(buf.String(), gc.Equals, "TRUE")
}

func (s *DialectSuite) TestPostgresStatements(c *gc.C) {
	qb := NewQueryBuilder(WithDialect(Postgres()))

	sql, err := qb.Insert(Table("galaxies"), Row(galaxy()))
	c.Assert(err, gc.IsNil)
	c.Assert(
		sql,
		SQLEquals,
		`INSERT INTO "galaxies" ("id", "name", "type") `+
			`VALUES (3, 'Milky Way', 'spiral')`)

	sql, err = qb.InsertIgnore(NoTable(), NoData(), "RETURNING id")
	c.Assert(err, gc.IsNil)
	c.Assert(
		sql,
		SQLEquals,
		`INSERT INTO "galaxies" ("id", "name", "type") `+
			`VALUES (3, 'Milky Way', 'spiral') ON CONFLICT DO NOTHING RETURNING id`)

	qb.ResetQuery()
	sql, err = qb.Insert(Table("files"), Row(R("id", 1, "path", `C:\dir`)))
	c.Assert(err, gc.IsNil)
	c.Assert(
		sql,
		SQLEquals,
		`INSERT INTO "files" ("id", "path") VALUES (1, E'C:\\dir')`)

	sql, err = qb.Truncate(Table("galaxies"))
	c.Assert(err, gc.IsNil)
	c.Assert(sql, SQLEquals, `TRUNCATE "galaxies"`)

	qb.ResetQuery()
	sql, err = qb.Insert(Table("galaxies"), NoData())
	c.Assert(err, gc.IsNil)
	c.Assert(sql, SQLEquals, `INSERT INTO "galaxies" DEFAULT VALUES`)
}

func (s *DialectSuite) TestConflictSuffixReplacesIgnoreClause(c *gc.C) {
	qb := NewQueryBuilder(WithDialect(Postgres())).IgnoreDuplicates(true)

	sql, err := qb.Insert(
		Table("galaxies"),
		Row(R("id", 3, "name", "Milky Way")),
		`ON CONFLICT ("id") DO UPDATE SET "name" = EXCLUDED."name"`)
	c.Assert(err, gc.IsNil)
	c.Assert(
		sql,
		SQLEquals,
		`INSERT INTO "galaxies" ("id", "name") VALUES (3, 'Milky Way') `+
			`ON CONFLICT ("id") DO UPDATE SET "name" = EXCLUDED."name"`)

	sql, err = qb.Suffix("on conflict do nothing").Insert(NoTable(), NoData())
	c.Assert(err, gc.IsNil)
	c.Assert(
		sql,
		SQLEquals,
		`INSERT INTO "galaxies" ("id", "name") VALUES (3, 'Milky Way') on conflict do nothing`)
}

func (s *DialectSuite) TestSQLiteStatements(c *gc.C) {
	qb := NewQueryBuilder(WithDialect(SQLite()))

	sql, err := qb.InsertIgnore(Table("galaxies"), Row(R("id", 3, "name", "it's")))
	c.Assert(err, gc.IsNil)
	c.Assert(
		sql,
		SQLEquals,
		`INSERT OR IGNORE INTO "galaxies" ("id", "name") VALUES (3, 'it''s')`)

	sql, err = qb.Truncate(NoTable())
	c.Assert(err, gc.IsNil)
	c.Assert(sql, SQLEquals, `DELETE FROM "galaxies"`)

	qb.ResetQuery()
	sql, err = qb.Insert(Table("galaxies"), NoData())
	c.Assert(err, gc.IsNil)
	c.Assert(sql, SQLEquals, `INSERT INTO "galaxies" DEFAULT VALUES`)
}

func (s *DialectSuite) TestMultipleRowsWithoutColumns(c *gc.C) {
	stmt := &insertStatement{
		table: "galaxies",
		rows:  [][]sqltypes.Value{nil, nil},
	}
	_, err := stmt.String(MySQL())
	c.Assert(err, gc.NotNil)

	stmt = &insertStatement{
		table:   "galaxies",
		columns: []string{"id", "name"},
		rows:    [][]sqltypes.Value{{{Inner: sqltypes.Numeric("1")}}},
	}
	_, err = stmt.String(MySQL())
	c.Assert(err, gc.ErrorMatches, "# of values does not match.*")
}
