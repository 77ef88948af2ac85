//go:build nojsonsimd

package jsonx

import stdjson "encoding/json"

// Marshal encodes v as JSON.
func Marshal(v interface{}) ([]byte, error) {
	return stdjson.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func Unmarshal(data []byte, v interface{}) error {
	return stdjson.Unmarshal(data, v)
}

// MarshalIndent encodes v as indented JSON.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return stdjson.MarshalIndent(v, prefix, indent)
}
