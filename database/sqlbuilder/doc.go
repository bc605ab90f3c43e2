// A library for generating mutation sql statements from accumulated state.
//
// A QueryBuilder holds a target table, an ordered set of column assignments
// and per-statement modifiers.  State is built up with From / Set /
// IgnoreDuplicates / Suffix and rendered with Insert, InsertIgnore,
// InsertBatch, Truncate or EmptyTable.  State survives rendering and is only
// cleared by ResetQuery.
//
// Arguments are sum types (TableArg, DataArg).  Loosely typed input, such as
// values decoded from JSON, goes through ParseTableArg / ParseDataArg (or the
// *Values variants of the builder methods), which classify the input and
// reject anything that is not a table name, a record or a list of records.
//
// SQL COMPATIBILITY NOTE: the default dialect is MySQL (backquoted
// identifiers, backslash escaped strings).  Postgres and SQLite dialects are
// available through WithDialect.
//
// A QueryBuilder is not safe for concurrent use.  Use one builder per
// goroutine, or guard the whole set / insert sequence with a lock.
//
// Known limitations:
//   - does not support "INSERT INTO SELECT"
//   - does not render placeholders; values are always inlined as literals
//   - identifiers are quoted but never escaped in the MySQL dialect
package sqlbuilder
