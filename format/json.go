package format

import (
	"encoding/json"
	"io"
)

// JSONEncoder writes values as indented JSON.
type JSONEncoder struct {
	w     io.Writer
	value any
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(value any) error {
	e.value = value
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = e.w.Write([]byte("\n"))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.value, "", "  ")
}
