package format

import "encoding"

// Encoder writes a parse result value in some output representation.
type Encoder interface {
	encoding.TextMarshaler
	Encode(value any) error
}
