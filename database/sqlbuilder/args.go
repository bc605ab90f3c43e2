package sqlbuilder

import (
	"reflect"
	"strings"

	"github.com/Arkade1984/querybuilder/errors"
)

// TableArg is the table argument of a statement: NoTable() or Table(name).
type TableArg interface {
	isTableArg()
}

type noTable struct{}

type tableName string

func (noTable) isTableArg()   {}
func (tableName) isTableArg() {}

// NoTable defers to the table held by the builder.
func NoTable() TableArg {
	return noTable{}
}

// Table names the target table.  A blank name is the same as NoTable().
func Table(name string) TableArg {
	name = strings.TrimSpace(name)
	if name == "" {
		return noTable{}
	}
	return tableName(name)
}

// DataArg is the data argument of an insert: NoData(), Row(r) or Rows(rs...).
type DataArg interface {
	isDataArg()
}

type noData struct{}

type rowData struct {
	record *Record
}

type rowsData struct {
	records []*Record
}

func (noData) isDataArg()   {}
func (rowData) isDataArg()  {}
func (rowsData) isDataArg() {}

// NoData renders the assignments already held by the builder.
func NoData() DataArg {
	return noData{}
}

// Row merges a single record over the builder's assignments.  A nil or empty
// record is the same as NoData().
func Row(r *Record) DataArg {
	if r.Len() == 0 {
		return noData{}
	}
	return rowData{record: r}
}

// Rows inserts each record as its own VALUES tuple.  No records is the same
// as NoData().
func Rows(rs ...*Record) DataArg {
	if len(rs) == 0 {
		return noData{}
	}
	return rowsData{records: rs}
}

// ParseTableArg converts a loosely typed table argument.  nil, Undefined,
// false, NaN and blank strings mean "no table"; any other string names the
// table; everything else fails with ErrInvalidTable.
func ParseTableArg(v interface{}) (TableArg, error) {
	if s, ok := stringValue(v); ok {
		return Table(s), nil
	}
	if Classify(v) == KindAbsent {
		return NoTable(), nil
	}
	return nil, errors.Wrapf(
		ErrInvalidTable,
		"table must be a string, got %T (%s)",
		v,
		Classify(v))
}

// ParseDataArg converts a loosely typed data argument.  nil, Undefined, ""
// and empty mappings / sequences mean "no data"; a non-empty mapping is a
// Row; a sequence of non-empty mappings is Rows.  Everything else, including
// false, NaN and non-empty strings, fails with ErrInvalidData.
func ParseDataArg(v interface{}) (DataArg, error) {
	switch v.(type) {
	case nil, undefined:
		return NoData(), nil
	}

	switch Classify(v) {
	case KindEmpty:
		// Whitespace is garbage data, not an empty payload.
		if s, isString := stringValue(v); !isString || s == "" {
			return NoData(), nil
		}
	case KindPlainObject:
		return Row(toRecord(v)), nil
	case KindArrayOfRecords:
		rv := reflect.ValueOf(v)
		records := make([]*Record, rv.Len())
		for i := range records {
			records[i] = toRecord(rv.Index(i).Interface())
		}
		return Rows(records...), nil
	}
	return nil, errors.Wrapf(
		ErrInvalidData,
		"data must be a record or a list of records, got %T (%s)",
		v,
		Classify(v))
}

func stringValue(v interface{}) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// toRecord expects v to classify as KindPlainObject.
func toRecord(v interface{}) *Record {
	switch r := v.(type) {
	case *Record:
		return r
	case Record:
		return &r
	}
	return recordFromMapValue(reflect.ValueOf(v))
}
