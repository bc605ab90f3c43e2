package sqlbuilder

import (
	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
	gc "gopkg.in/check.v1"
)

// Feeds the mysql flavored output through a mysql compatible parser.
type MySQLParseSuite struct {
	p *parser.Parser
}

var _ = gc.Suite(&MySQLParseSuite{})

func (s *MySQLParseSuite) SetUpTest(c *gc.C) {
	s.p = parser.New()
}

func (s *MySQLParseSuite) parse(c *gc.C, sql string, err error) ast.StmtNode {
	c.Assert(err, gc.IsNil)
	stmts, _, err := s.p.Parse(sql, "", "")
	c.Assert(err, gc.IsNil, gc.Commentf("sql: %s", sql))
	c.Assert(stmts, gc.HasLen, 1)
	return stmts[0]
}

func (s *MySQLParseSuite) TestInsert(c *gc.C) {
	qb := NewQueryBuilder()

	sql, err := qb.InsertBatch(
		Table("astronomy.galaxies"),
		[]*Record{
			R("id", 3, "name", "it's \"quoted\"\n", "mass", 1.5, "visible", false),
			R("id", 4, "name", "\xff\xfe", "mass", nil, "visible", 1),
		})
	stmt := s.parse(c, sql, err)

	insert, ok := stmt.(*ast.InsertStmt)
	c.Assert(ok, gc.Equals, true)
	c.Assert(insert.IsReplace, gc.Equals, false)
	c.Assert(insert.IgnoreErr, gc.Equals, false)
	c.Assert(insert.Columns, gc.HasLen, 4)
	c.Assert(insert.Lists, gc.HasLen, 2)
}

func (s *MySQLParseSuite) TestInsertIgnore(c *gc.C) {
	qb := NewQueryBuilder()

	sql, err := qb.InsertIgnore(
		Table("galaxies"),
		Row(galaxy()),
		"ON DUPLICATE KEY UPDATE `name` = VALUES(`name`)")
	stmt := s.parse(c, sql, err)

	insert, ok := stmt.(*ast.InsertStmt)
	c.Assert(ok, gc.Equals, true)
	c.Assert(insert.IgnoreErr, gc.Equals, true)
	c.Assert(insert.OnDuplicate, gc.HasLen, 1)
}

func (s *MySQLParseSuite) TestEmptyInsert(c *gc.C) {
	sql, err := NewQueryBuilder().Insert(Table("galaxies"), NoData())
	stmt := s.parse(c, sql, err)

	_, ok := stmt.(*ast.InsertStmt)
	c.Assert(ok, gc.Equals, true)
}

func (s *MySQLParseSuite) TestTruncateAndDelete(c *gc.C) {
	qb := NewQueryBuilder()

	sql, err := qb.Truncate(Table("galaxies"))
	stmt := s.parse(c, sql, err)
	_, ok := stmt.(*ast.TruncateTableStmt)
	c.Assert(ok, gc.Equals, true)

	sql, err = qb.EmptyTable(NoTable())
	stmt = s.parse(c, sql, err)
	del, ok := stmt.(*ast.DeleteStmt)
	c.Assert(ok, gc.Equals, true)
	c.Assert(del.Where, gc.IsNil)
}
