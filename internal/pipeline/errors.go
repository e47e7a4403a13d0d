package pipeline

import "fmt"

// Machine-readable error codes surfaced to callers. Per-polygon and
// per-contour failures are isolated inside the stages and never reach
// this level.
const (
	CodeDecodeFailed     = "DECODE_FAILED"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeProcessingFailed = "PROCESSING_FAILED"
)

// ProcessError is a fatal, request-level failure with a machine-readable
// classification. No partial output accompanies it.
type ProcessError struct {
	Code string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

func processErr(code string, err error) *ProcessError {
	return &ProcessError{Code: code, Err: err}
}
