package sqlbuilder

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/Arkade1984/querybuilder/container/linked_hashmap"
)

// Record is one row's worth of column -> value assignments.  Columns keep the
// order in which they were first set.  Values are validated when the record
// is handed to a QueryBuilder, not when they are set.
//
// The zero value is an empty record ready to use.
type Record struct {
	values *linked_hashmap.LinkedHashmap[interface{}]
}

func NewRecord() *Record {
	return &Record{}
}

// R builds a record from alternating column / value arguments:
//
//	R("id", 3, "name", "Milky Way", "type", "spiral")
//
// This function will panic if the arguments are not column / value pairs.
func R(pairs ...interface{}) *Record {
	if len(pairs)%2 != 0 {
		panic("R expects column / value pairs")
	}
	r := NewRecord()
	for i := 0; i < len(pairs); i += 2 {
		col, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("Column name at position %d is a %T", i, pairs[i]))
		}
		r.Set(col, pairs[i+1])
	}
	return r
}

// RecordFromMap builds a record from a go map.  Map iteration order is
// random, so columns are ordered lexically.
func RecordFromMap(m map[string]interface{}) *Record {
	return recordFromMapValue(reflect.ValueOf(m))
}

func recordFromMapValue(rv reflect.Value) *Record {
	keys := make([]string, 0, rv.Len())
	values := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		values[k] = iter.Value().Interface()
	}
	sort.Strings(keys)

	r := NewRecord()
	for _, k := range keys {
		r.Set(k, values[k])
	}
	return r
}

// Set assigns val to col.  Re-setting a column keeps its original position.
func (r *Record) Set(col string, val interface{}) *Record {
	if r.values == nil {
		r.values = linked_hashmap.NewLinkedHashmap[interface{}](8)
	}
	r.values.Put(col, val)
	return r
}

func (r *Record) Get(col string) (interface{}, bool) {
	if r == nil || r.values == nil {
		return nil, false
	}
	return r.values.Get(col)
}

func (r *Record) Len() int {
	if r == nil || r.values == nil {
		return 0
	}
	return r.values.Len()
}

func (r *Record) Columns() []string {
	if r == nil || r.values == nil {
		return nil
	}
	return r.values.Keys()
}

// Each calls f for each column in order, stopping at the first false return.
func (r *Record) Each(f func(col string, val interface{}) bool) {
	if r == nil || r.values == nil {
		return
	}
	r.values.Each(f)
}
