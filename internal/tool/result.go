package tool

import "fmt"

// Status is the outcome of a tool invocation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is what every tool invocation returns. Payload is always
// user-presentable text; RawError preserves the underlying error for
// logs and is never shown to the user.
type Result struct {
	Status   Status `json:"status"`
	Payload  string `json:"payload"`
	RawError string `json:"rawError,omitempty"`
}

// Failed reports whether the invocation failed.
func (r Result) Failed() bool { return r.Status == StatusFailure }

// OK builds a success result.
func OK(payload string) Result {
	return Result{Status: StatusSuccess, Payload: payload}
}

// Failf builds a failure result with a formatted user-facing message.
func Failf(format string, args ...any) Result {
	return Result{Status: StatusFailure, Payload: fmt.Sprintf(format, args...)}
}

// Fail builds a failure result carrying the underlying error for logs.
func Fail(msg string, err error) Result {
	r := Result{Status: StatusFailure, Payload: msg}
	if err != nil {
		r.RawError = err.Error()
	}
	return r
}
