package sqlbuilder

import (
	"github.com/Arkade1984/querybuilder/container/linked_hashmap"
	"github.com/Arkade1984/querybuilder/database/sqltypes"
)

type modifiers struct {
	ignore bool
	suffix string
}

// queryState accumulates the pieces of the next statement.  table is empty
// when no table has been named.  assignments only ever holds validated
// values, keyed by column in first-assignment order.
type queryState struct {
	table       string
	assignments *linked_hashmap.LinkedHashmap[sqltypes.Value]
	modifiers   modifiers
}

func newQueryState() *queryState {
	return &queryState{
		assignments: linked_hashmap.NewLinkedHashmap[sqltypes.Value](8),
	}
}

func (s *queryState) reset() {
	s.table = ""
	s.assignments.Clear()
	s.modifiers = modifiers{}
}

// resolveTable picks the table named by the call, falling back to the state.
// An empty result means no table is known.
func (s *queryState) resolveTable(table TableArg) string {
	if t, ok := table.(tableName); ok {
		return string(t)
	}
	return s.table
}

// resolveSuffix prefers a suffix given to the call over the Suffix modifier.
func (s *queryState) resolveSuffix(suffix []string) string {
	for _, sfx := range suffix {
		if sfx != "" {
			return sfx
		}
	}
	return s.modifiers.suffix
}
