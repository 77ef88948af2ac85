package cli

import (
	"io"

	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/rileyhilliard/xmdash/internal/jsonx"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --format json output uses this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigMissing = "CONFIG_MISSING"
	ErrCodeConfigInvalid = "CONFIG_INVALID"
	ErrCodeHTTP          = "HTTP_ERROR"
	ErrCodeFormat        = "INVALID_FORMAT"
	ErrCodeNetwork       = "NETWORK_ERROR"
	ErrCodeStorage       = "STORAGE_ERROR"
	ErrCodeUnknown       = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: false, Error: ErrorToJSON(err)})
}

func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	data, err := jsonx.MarshalIndent(env, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var dashErr *errors.Error
	if !errors.As(err, &dashErr) {
		return &JSONError{Code: ErrCodeUnknown, Message: err.Error()}
	}

	out := &JSONError{
		Code:       mapErrorCode(dashErr.Code),
		Message:    dashErr.Summary(),
		Suggestion: dashErr.Suggestion,
	}
	if dashErr.StatusCode != 0 {
		out.Details = map[string]interface{}{"status": dashErr.StatusCode}
	}
	return out
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(code string) string {
	switch code {
	case errors.ErrConfigMissing:
		return ErrCodeConfigMissing
	case errors.ErrConfig, errors.ErrConfigInvalid:
		return ErrCodeConfigInvalid
	case errors.ErrHTTP:
		return ErrCodeHTTP
	case errors.ErrFormat:
		return ErrCodeFormat
	case errors.ErrNetwork:
		return ErrCodeNetwork
	case errors.ErrStorage:
		return ErrCodeStorage
	}
	return ErrCodeUnknown
}
