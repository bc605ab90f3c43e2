package sqlbuilder

import (
	"github.com/Arkade1984/querybuilder/errors"
)

// Failures returned by QueryBuilder wrap one of these.  Match them with
// errors.IsError (or the standard library's errors.Is).
var (
	// The table argument is not a string (or fails strict identifier
	// validation).
	ErrInvalidTable = errors.Sentinel("invalid table")

	// The data argument is neither a record, a list of records, nor empty.
	ErrInvalidData = errors.Sentinel("invalid data")

	// A value inside a record is not a scalar.
	ErrInvalidValue = errors.Sentinel("invalid value")

	// Neither the call nor the builder state names a table.
	ErrMissingTable = errors.Sentinel("missing table")
)
