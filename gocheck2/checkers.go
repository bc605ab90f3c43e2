// Extensions to the go-check unittest framework.
//
// NOTE: see https://github.com/go-check/check/pull/6 for reasons why these
// checkers live here.
package gocheck2

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
	. "gopkg.in/check.v1"

	"github.com/Arkade1984/querybuilder/errors"
)

// -----------------------------------------------------------------------
// IsTrue / IsFalse checker.

type isBoolValueChecker struct {
	*CheckerInfo
	expected bool
}

func (checker *isBoolValueChecker) Check(
	params []interface{},
	names []string) (
	result bool,
	error string) {

	obtained, ok := params[0].(bool)
	if !ok {
		return false, "Argument to " + checker.Name + " must be bool"
	}

	return obtained == checker.expected, ""
}

// The IsTrue checker verifies that the obtained value is true.
//
// For example:
//
//	c.Assert(value, IsTrue)
var IsTrue Checker = &isBoolValueChecker{
	&CheckerInfo{Name: "IsTrue", Params: []string{"obtained"}},
	true,
}

// The IsFalse checker verifies that the obtained value is false.
//
// For example:
//
//	c.Assert(value, IsFalse)
var IsFalse Checker = &isBoolValueChecker{
	&CheckerInfo{Name: "IsFalse", Params: []string{"obtained"}},
	false,
}

// -----------------------------------------------------------------------
// ErrorIs checker.

type errorIsChecker struct {
	*CheckerInfo
}

func (checker *errorIsChecker) Check(
	params []interface{},
	names []string) (
	result bool,
	errMsg string) {

	if params[0] == nil {
		return false, "obtained error is nil"
	}
	obtained, ok := params[0].(error)
	if !ok {
		return false, "First argument to ErrorIs must be an error, got:\n" +
			spew.Sdump(params[0])
	}
	expected, ok := params[1].(error)
	if !ok {
		return false, "Second argument to ErrorIs must be an error"
	}

	if errors.IsError(obtained, expected) {
		return true, ""
	}
	return false, "error chain does not contain the expected error:\n" +
		spew.Sdump(errors.RootError(obtained))
}

// The ErrorIs checker verifies that the obtained error wraps the expected
// error, using errors.IsError.
//
// For example:
//
//	c.Assert(err, ErrorIs, sqlbuilder.ErrMissingTable)
var ErrorIs Checker = &errorIsChecker{
	&CheckerInfo{Name: "ErrorIs", Params: []string{"obtained", "expected"}},
}

// -----------------------------------------------------------------------
// SQLEquals checker.

type sqlEqualsChecker struct {
	*CheckerInfo
}

func (checker *sqlEqualsChecker) Check(
	params []interface{},
	names []string) (
	result bool,
	error string) {

	obtained, ok := params[0].(string)
	if !ok {
		return false, "First argument to SQLEquals must be a string"
	}
	expected, ok := params[1].(string)
	if !ok {
		return false, "Second argument to SQLEquals must be a string"
	}
	if obtained == expected {
		return true, ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitSql(expected),
		B:        splitSql(obtained),
		FromFile: "expected",
		ToFile:   "obtained",
		Context:  2,
	})
	if err != nil {
		return false, err.Error()
	}
	return false, "sql differs:\n" + diff
}

// One clause or list element per line, so the diff points at the token
// that differs rather than at the whole statement.
func splitSql(sql string) []string {
	r := strings.NewReplacer(", ", ",\n", " VALUES ", "\nVALUES ")
	return difflib.SplitLines(r.Replace(sql))
}

// The SQLEquals checker verifies that the obtained sql text is byte for
// byte identical to the expected text, and reports a diff otherwise.
//
// For example:
//
//	c.Assert(sql, SQLEquals, "TRUNCATE `galaxies`")
var SQLEquals Checker = &sqlEqualsChecker{
	&CheckerInfo{Name: "SQLEquals", Params: []string{"obtained", "expected"}},
}
