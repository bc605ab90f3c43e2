package sqlbuilder

import (
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/Arkade1984/querybuilder/database/sqltypes"
)

// Kind is the semantic classification of a loosely typed argument.
type Kind int

const (
	KindInvalid Kind = iota
	// nil, Undefined, false and NaN.
	KindAbsent
	// Blank strings, empty mappings and empty sequences.
	KindEmpty
	KindPlainString
	KindPlainObject
	KindArrayOfRecords
	// Finite numbers.
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindEmpty:
		return "empty"
	case KindPlainString:
		return "string"
	case KindPlainObject:
		return "object"
	case KindArrayOfRecords:
		return "array of records"
	case KindScalar:
		return "scalar"
	}
	return "invalid"
}

type undefined struct{}

// Undefined stands for a value that was declared but never assigned.  It is
// treated as "not supplied" for table arguments and rejected inside records.
var Undefined = undefined{}

// Classify assigns v one of the closed set of kinds.  It never panics;
// callers decide which kinds are acceptable in their position.
func Classify(v interface{}) Kind {
	switch t := v.(type) {
	case nil, undefined:
		return KindAbsent
	case bool:
		if t {
			return KindInvalid
		}
		return KindAbsent
	case string:
		if strings.TrimSpace(t) == "" {
			return KindEmpty
		}
		return KindPlainString
	case float64:
		return classifyFloat(t)
	case float32:
		return classifyFloat(float64(t))
	case *Record:
		return classifyRecord(t)
	case Record:
		return classifyRecord(&t)
	case *regexp.Regexp:
		return KindInvalid
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return Classify(rv.String())
	case reflect.Bool:
		return Classify(rv.Bool())
	case reflect.Float32, reflect.Float64:
		return classifyFloat(rv.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindScalar
	case reflect.Map:
		return classifyMap(rv)
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return KindEmpty
		}
		for i := 0; i < rv.Len(); i++ {
			if classifyElement(rv.Index(i).Interface()) != KindPlainObject {
				return KindInvalid
			}
		}
		return KindArrayOfRecords
	}
	return KindInvalid
}

func classifyRecord(r *Record) Kind {
	if r.Len() == 0 {
		return KindEmpty
	}
	return KindPlainObject
}

func classifyMap(rv reflect.Value) Kind {
	if rv.Type().Key().Kind() != reflect.String {
		return KindInvalid
	}
	if rv.Len() == 0 {
		return KindEmpty
	}
	return KindPlainObject
}

// classifyElement classifies a member of a sequence.  Only records and
// mappings are looked at, so nested (or self-referencing) sequences never
// recurse.
func classifyElement(v interface{}) Kind {
	switch t := v.(type) {
	case *Record:
		return classifyRecord(t)
	case Record:
		return classifyRecord(&t)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		return classifyMap(rv)
	}
	return KindInvalid
}

func classifyFloat(f float64) Kind {
	if math.IsNaN(f) {
		return KindAbsent
	}
	if math.IsInf(f, 0) {
		return KindInvalid
	}
	return KindScalar
}

// scalarValue converts a record member into a literal.  Only integers,
// finite floats, strings, nil and false are accepted.
func scalarValue(v interface{}) (sqltypes.Value, bool) {
	switch t := v.(type) {
	case nil:
		return sqltypes.NULL, true
	case bool:
		if t {
			return sqltypes.Value{}, false
		}
		return sqltypes.Value{Inner: sqltypes.Boolean(false)}, true
	case string, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		value, err := sqltypes.BuildValue(t)
		return value, err == nil
	}

	// Named types (type Galaxy string, type ID int64, ...).
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return scalarValue(rv.String())
	case reflect.Bool:
		return scalarValue(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalarValue(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return scalarValue(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return scalarValue(rv.Float())
	}
	return sqltypes.Value{}, false
}

// IsScalarValue reports whether v may be used as a column value.
func IsScalarValue(v interface{}) bool {
	_, ok := scalarValue(v)
	return ok
}
