// Copyright 2012, Google Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file

// Package sqltypes implements the scalar values a statement may carry and
// their encoding into SQL literal text.
package sqltypes

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/Arkade1984/querybuilder/encoding2"
	"github.com/Arkade1984/querybuilder/errors"
)

var (
	NULL       = Value{}
	DONTESCAPE = byte(255)
	nullstr    = "NULL"
)

// Value can store any scalar SQL value. NULL is stored as nil.
type Value struct {
	Inner InnerValue
}

// Numeric represents non-fractional SQL number.
type Numeric []byte

// Fractional represents fractional types like float and decimal
// It's functionally equivalent to Numeric other than how it's constructed
type Fractional []byte

// String represents any SQL type that needs to be represented using quotes.
// If isUtf8 is false, it will be hex encoded.
type String struct {
	data   []byte
	isUtf8 bool
}

// Boolean is kept apart from Numeric so that dialects with a real boolean
// type can spell it out.
type Boolean bool

// Raw returns the raw bytes. NULL is nil.
func (v Value) Raw() []byte {
	if v.Inner == nil {
		return nil
	}
	return v.Inner.raw()
}

// String returns the raw value as a string
func (v Value) String() string {
	if v.Inner == nil {
		return ""
	}
	return string(v.Inner.raw())
}

// EncodeSql encodes the value as a MySQL literal: strings are single quoted
// with backslash escapes, booleans are 0 / 1.
func (v Value) EncodeSql(b encoding2.BinaryWriter) {
	if v.Inner == nil {
		writestring(b, nullstr)
	} else {
		v.Inner.encodeSql(b)
	}
}

// EncodeAnsi encodes the value as a standard SQL literal: strings are single
// quoted with embedded quotes doubled, booleans are 0 / 1.
func (v Value) EncodeAnsi(b encoding2.BinaryWriter) {
	if v.Inner == nil {
		writestring(b, nullstr)
	} else {
		v.Inner.encodeAnsi(b)
	}
}

func (v Value) IsString() (ok bool) {
	if v.Inner != nil {
		_, ok = v.Inner.(String)
	}
	return ok
}

func (v Value) IsUtf8String() bool {
	s, ok := v.Inner.(String)
	return ok && s.isUtf8
}

func (v Value) IsBoolean() (ok bool) {
	if v.Inner != nil {
		_, ok = v.Inner.(Boolean)
	}
	return ok
}

// InnerValue defines methods that need to be supported by all non-null value types.
type InnerValue interface {
	raw() []byte
	encodeSql(encoding2.BinaryWriter)
	encodeAnsi(encoding2.BinaryWriter)
}

// BuildValue converts a go scalar into a Value.  Non-finite floats and
// anything outside of the scalar types are rejected.
func BuildValue(goval interface{}) (v Value, err error) {
	switch bindVal := goval.(type) {
	case nil:
		// no op
	case bool:
		v = Value{Boolean(bindVal)}
	case int:
		v = Value{Numeric(strconv.AppendInt(nil, int64(bindVal), 10))}
	case int8:
		v = Value{Numeric(strconv.AppendInt(nil, int64(bindVal), 10))}
	case int16:
		v = Value{Numeric(strconv.AppendInt(nil, int64(bindVal), 10))}
	case int32:
		v = Value{Numeric(strconv.AppendInt(nil, int64(bindVal), 10))}
	case int64:
		v = Value{Numeric(strconv.AppendInt(nil, bindVal, 10))}
	case uint:
		v = Value{Numeric(strconv.AppendUint(nil, uint64(bindVal), 10))}
	case uint8:
		v = Value{Numeric(strconv.AppendUint(nil, uint64(bindVal), 10))}
	case uint16:
		v = Value{Numeric(strconv.AppendUint(nil, uint64(bindVal), 10))}
	case uint32:
		v = Value{Numeric(strconv.AppendUint(nil, uint64(bindVal), 10))}
	case uint64:
		v = Value{Numeric(strconv.AppendUint(nil, bindVal, 10))}
	case float32:
		f := float64(bindVal)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, errors.Newf("Non-finite float %v", bindVal)
		}
		v = Value{Fractional(strconv.AppendFloat(nil, f, 'f', -1, 32))}
	case float64:
		if math.IsNaN(bindVal) || math.IsInf(bindVal, 0) {
			return Value{}, errors.Newf("Non-finite float %v", bindVal)
		}
		v = Value{Fractional(strconv.AppendFloat(nil, bindVal, 'f', -1, 64))}
	case string:
		v = Value{String{[]byte(bindVal), utf8.ValidString(bindVal)}}
	default:
		return Value{}, errors.Newf("Unsupported scalar type %T: %v", goval, goval)
	}
	return v, nil
}

func (n Numeric) raw() []byte {
	return []byte(n)
}

func (n Numeric) encodeSql(b encoding2.BinaryWriter) {
	writebytes(b, n.raw())
}

func (n Numeric) encodeAnsi(b encoding2.BinaryWriter) {
	writebytes(b, n.raw())
}

func (f Fractional) raw() []byte {
	return []byte(f)
}

func (f Fractional) encodeSql(b encoding2.BinaryWriter) {
	writebytes(b, f.raw())
}

func (f Fractional) encodeAnsi(b encoding2.BinaryWriter) {
	writebytes(b, f.raw())
}

func (bv Boolean) raw() []byte {
	if bv {
		return []byte("1")
	}
	return []byte("0")
}

func (bv Boolean) encodeSql(b encoding2.BinaryWriter) {
	writebytes(b, bv.raw())
}

func (bv Boolean) encodeAnsi(b encoding2.BinaryWriter) {
	writebytes(b, bv.raw())
}

func (s String) raw() []byte {
	return s.data
}

func (s String) encodeSql(b encoding2.BinaryWriter) {
	if !s.isUtf8 {
		s.encodeHex(b)
		return
	}
	writebyte(b, '\'')
	rawBytes := s.raw()
	for i, ch := range rawBytes {
		if encodedChar := SqlEncodeMap[ch]; encodedChar == DONTESCAPE {
			writebyte(b, ch)
		} else if i < len(rawBytes)-1 && '\\' == ch && ('%' == rawBytes[i+1] || '_' == rawBytes[i+1]) {
			// Don't escape '\' specifically in the constructions '\%' or
			// '\_', because those are special to how the RHS of LIKE
			// clauses are escaped. See the notes following table 9.1 in
			// http://dev.mysql.com/doc/refman/5.7/en/string-literals.html
			writebyte(b, ch)
		} else {
			writebyte(b, '\\')
			writebyte(b, encodedChar)
		}
	}
	writebyte(b, '\'')
}

func (s String) encodeAnsi(b encoding2.BinaryWriter) {
	if !s.isUtf8 {
		s.encodeHex(b)
		return
	}
	writebyte(b, '\'')
	for _, ch := range s.raw() {
		if ch == '\'' {
			writebyte(b, '\'')
		}
		writebyte(b, ch)
	}
	writebyte(b, '\'')
}

func (s String) encodeHex(b encoding2.BinaryWriter) {
	writestring(b, "X'")
	if err := encoding2.HexEncodeToWriter(b, s.raw()); err != nil {
		panic(err)
	}
	writebyte(b, '\'')
}

func writebyte(b encoding2.BinaryWriter, c byte) {
	if err := b.WriteByte(c); err != nil {
		panic(err)
	}
}

func writebytes(b encoding2.BinaryWriter, p []byte) {
	if _, err := b.Write(p); err != nil {
		panic(err)
	}
}

func writestring(b encoding2.BinaryWriter, s string) {
	if _, err := b.WriteString(s); err != nil {
		panic(err)
	}
}

// SqlEncodeMap specifies how to escape string data with '\'.
// Complies to http://dev.mysql.com/doc/refman/5.1/en/string-syntax.html
var SqlEncodeMap [256]byte

var encodeRef = map[byte]byte{
	'\x00': '0',
	'\'':   '\'',
	'"':    '"',
	'\b':   'b',
	'\n':   'n',
	'\r':   'r',
	'\t':   't',
	26:     'Z', // ctl-Z
	'\\':   '\\',
}

func init() {
	for i := range SqlEncodeMap {
		SqlEncodeMap[i] = DONTESCAPE
	}
	for from, to := range encodeRef {
		SqlEncodeMap[from] = to
	}
}
