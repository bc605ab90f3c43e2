package sqlbuilder

import (
	"database/sql"

	gc "gopkg.in/check.v1"
	_ "modernc.org/sqlite"
)

// Runs the sqlite flavored output against an in-memory database.
type SQLiteSuite struct {
	db *sql.DB
	qb *QueryBuilder
}

var _ = gc.Suite(&SQLiteSuite{})

func (s *SQLiteSuite) SetUpTest(c *gc.C) {
	db, err := sql.Open("sqlite", ":memory:")
	c.Assert(err, gc.IsNil)
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE galaxies (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT 'unnamed',
		type TEXT,
		visible INTEGER
	)`)
	c.Assert(err, gc.IsNil)

	s.db = db
	s.qb = NewQueryBuilder(WithDialect(SQLite()))
}

func (s *SQLiteSuite) TearDownTest(c *gc.C) {
	c.Assert(s.db.Close(), gc.IsNil)
}

func (s *SQLiteSuite) exec(c *gc.C, query string, err error) {
	c.Assert(err, gc.IsNil)
	_, err = s.db.Exec(query)
	c.Assert(err, gc.IsNil, gc.Commentf("sql: %s", query))
}

func (s *SQLiteSuite) count(c *gc.C) int {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM galaxies").Scan(&n)
	c.Assert(err, gc.IsNil)
	return n
}

func (s *SQLiteSuite) TestInsertAndTruncate(c *gc.C) {
	query, err := s.qb.InsertBatch(Table("galaxies"), []*Record{
		R("id", 3, "name", "Milky Way", "type", "spiral", "visible", false),
		R("id", 4, "name", "Bode's Galaxy", "type", nil, "visible", 1),
	})
	s.exec(c, query, err)
	c.Assert(s.count(c), gc.Equals, 2)

	var name string
	var visible int
	err = s.db.QueryRow(
		"SELECT name, visible FROM galaxies WHERE id = 4").Scan(&name, &visible)
	c.Assert(err, gc.IsNil)
	c.Assert(name, gc.Equals, "Bode's Galaxy")
	c.Assert(visible, gc.Equals, 1)

	// Duplicate primary key is skipped.
	query, err = s.qb.InsertIgnore(NoTable(), Row(R("id", 3, "name", "dup")))
	s.exec(c, query, err)
	c.Assert(s.count(c), gc.Equals, 2)

	query, err = s.qb.Truncate(NoTable())
	s.exec(c, query, err)
	c.Assert(s.count(c), gc.Equals, 0)
}

func (s *SQLiteSuite) TestDefaultValues(c *gc.C) {
	query, err := s.qb.Insert(Table("galaxies"), NoData())
	s.exec(c, query, err)

	var name string
	err = s.db.QueryRow("SELECT name FROM galaxies").Scan(&name)
	c.Assert(err, gc.IsNil)
	c.Assert(name, gc.Equals, "unnamed")
}

func (s *SQLiteSuite) TestEmptyTable(c *gc.C) {
	_, err := s.qb.From("galaxies").Set(map[string]interface{}{"id": 1})
	c.Assert(err, gc.IsNil)
	query, err := s.qb.Insert(NoTable(), NoData())
	s.exec(c, query, err)
	c.Assert(s.count(c), gc.Equals, 1)

	query, err = s.qb.EmptyTable(NoTable())
	s.exec(c, query, err)
	c.Assert(s.count(c), gc.Equals, 0)
}
