// pkg/codec/jsoncodec.go
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	ContentType() string
}

type jsonCodec struct{}

// JSON encodes without HTML escaping or a trailing newline and decodes
// numbers as json.Number so their literal text survives a round trip.
var JSON Codec = jsonCodec{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	// Probe for trailing data (must be EOF)
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return fmt.Errorf("json trailing content")
	}
	return nil
}

func (jsonCodec) ContentType() string { return "application/json" }

// Compact validates data as a single JSON value and strips insignificant
// whitespace, keeping key order and literal text intact.
func Compact(data []byte) (json.RawMessage, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("json decode: invalid JSON")
	}
	buf := &bytes.Buffer{}
	if err := json.Compact(buf, data); err != nil {
		return nil, fmt.Errorf("json compact: %w", err)
	}
	return json.RawMessage(buf.Bytes()), nil
}

// IsBlank reports whether data holds no JSON value, only whitespace.
func IsBlank(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}
