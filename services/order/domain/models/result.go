package models

// ResultKind tags a SubmissionResult.
type ResultKind string

const (
	ResultNone    ResultKind = "none"
	ResultSuccess ResultKind = "success"
	ResultFailure ResultKind = "failure"
)

// SubmissionResult is the feedback of the latest submit attempt. It is
// replaced wholesale on every attempt, never merged.
type SubmissionResult struct {
	Kind    ResultKind `json:"kind"`
	Message string     `json:"message,omitempty"`
}

// NoResult is the result before any submission.
func NoResult() SubmissionResult {
	return SubmissionResult{Kind: ResultNone}
}

// Success wraps a success message.
func Success(msg string) SubmissionResult {
	return SubmissionResult{Kind: ResultSuccess, Message: msg}
}

// Failure wraps a failure message.
func Failure(msg string) SubmissionResult {
	return SubmissionResult{Kind: ResultFailure, Message: msg}
}

// Succeeded reports whether the result is a success.
func (r SubmissionResult) Succeeded() bool { return r.Kind == ResultSuccess }

// Failed reports whether the result is a failure.
func (r SubmissionResult) Failed() bool { return r.Kind == ResultFailure }
