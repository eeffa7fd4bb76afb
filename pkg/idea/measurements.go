package idea

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"slices"
	"strconv"
)

// Measurements is an insertion-ordered mapping from measurement name to its
// string value. Names are unique; setting an existing name overwrites the
// value in place.
//
// The zero value is an empty, usable mapping.
type Measurements struct {
	names  []string
	values map[string]string
}

// Set upserts name. New names are appended; existing names keep their position.
func (m *Measurements) Set(name, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = value
}

// Get returns the value stored for name.
func (m *Measurements) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[name]
	return v, ok
}

// Names returns measurement names in insertion order.
func (m *Measurements) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.names)
}

// Len returns the number of measurements.
func (m *Measurements) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Clone returns an independent copy.
func (m *Measurements) Clone() *Measurements {
	if m == nil {
		return nil
	}
	c := &Measurements{}
	for _, n := range m.names {
		c.Set(n, m.values[n])
	}
	return c
}

// MarshalJSON encodes the measurements as a JSON object in insertion order.
func (m Measurements) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.values[n])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object, preserving key order.
// String values are kept as-is; numbers and booleans are stored by their
// literal text. Nested values, arrays, null and non-object input produce a
// *MeasurementParseError.
func (m *Measurements) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return &MeasurementParseError{Reason: err.Error()}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &MeasurementParseError{Reason: "expected an object"}
	}

	parsed := Measurements{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return &MeasurementParseError{Reason: err.Error()}
		}
		name, _ := tok.(string)

		tok, err = dec.Token()
		if err != nil {
			return &MeasurementParseError{Field: name, Reason: err.Error()}
		}
		switch v := tok.(type) {
		case string:
			parsed.Set(name, v)
		case json.Number:
			parsed.Set(name, v.String())
		case bool:
			parsed.Set(name, strconv.FormatBool(v))
		default:
			return &MeasurementParseError{Field: name, Reason: "value must be a string, number or boolean"}
		}
	}
	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return &MeasurementParseError{Reason: err.Error()}
	}

	*m = parsed
	return nil
}
