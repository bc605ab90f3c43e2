package encoding2

import (
	"io"
)

// An interface for encoding literal values.  *bytes.Buffer and
// *strings.Builder both satisfy it.
type BinaryWriter interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
}
