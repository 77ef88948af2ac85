// Package jsonx is the JSON codec used for proxy payloads and persisted
// history. It uses bytedance/sonic by default; build with -tags nojsonsimd
// to fall back to encoding/json.
package jsonx
