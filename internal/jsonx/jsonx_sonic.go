//go:build !nojsonsimd

package jsonx

import "github.com/bytedance/sonic"

// sonic.ConfigStd keeps encoding/json semantics (sorted map keys, HTML
// escaping) so persisted values are stable across both builds.
var fastJSON = sonic.ConfigStd

// Marshal encodes v as JSON.
func Marshal(v interface{}) ([]byte, error) {
	return fastJSON.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func Unmarshal(data []byte, v interface{}) error {
	return fastJSON.Unmarshal(data, v)
}

// MarshalIndent encodes v as indented JSON.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return fastJSON.MarshalIndent(v, prefix, indent)
}
