package client

import "fmt"

// AuthError means the session is invalid or expired. The client purges the
// stored token before returning it.
type AuthError struct {
	Message string
}

func (err *AuthError) Error() string {
	return "auth: " + err.Message
}

// ValidationError is a 4xx rejection carrying the server's message, suitable
// for showing to the user as-is.
type ValidationError struct {
	Status  int
	Message string
}

func (err *ValidationError) Error() string {
	return err.Message
}

// ServerError is a 5xx response.
type ServerError struct {
	Status  int
	Message string
}

func (err *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", err.Status, err.Message)
}

// NetworkError wraps a transport failure. Only the analysis poller retries
// these; everywhere else they surface immediately.
type NetworkError struct {
	Err error
}

func (err *NetworkError) Error() string {
	return "network: " + err.Err.Error()
}

func (err *NetworkError) Unwrap() error {
	return err.Err
}

// TimeoutError means the analysis poller exhausted its attempt budget without
// the meal reaching a terminal status.
type TimeoutError struct {
	Attempts int
}

func (err *TimeoutError) Error() string {
	return fmt.Sprintf("analysis still pending after %d attempts", err.Attempts)
}

// AnalysisError means the analysis itself finished in FAILED. Message is the
// server's failure reason.
type AnalysisError struct {
	Message string
}

func (err *AnalysisError) Error() string {
	return "analysis failed: " + err.Message
}
