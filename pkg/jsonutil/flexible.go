package jsonutil

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexibleStringValue converts a json.RawMessage to a string, handling backend agents that
// emit numbers or booleans where a string is documented (unit costs, cost factors).
// Numbers keep their literal text so decimal values are not rounded through float64.
// Returns empty string for null/empty.
func FlexibleStringValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		return strVal
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var anyVal any
	if err := dec.Decode(&anyVal); err == nil {
		switch v := anyVal.(type) {
		case json.Number:
			return v.String()
		case bool:
			return strconv.FormatBool(v)
		}
	}

	// Objects and arrays: return raw representation
	return string(raw)
}

// FlexibleString is a string field that also accepts JSON numbers and booleans.
// It always marshals back as a JSON string.
type FlexibleString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	*f = FlexibleString(FlexibleStringValue(data))
	return nil
}

// String returns the underlying value.
func (f FlexibleString) String() string {
	return string(f)
}
