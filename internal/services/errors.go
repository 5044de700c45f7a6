package services

import "fmt"

// ConfigurationError indicates a required setting (the API key) could not be
// resolved from any source. It is raised before any network call is made.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s not configured", e.Setting)
}

// TransportError indicates a network-level failure reaching the model
// endpoint: DNS, connection refused, or timeout.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError indicates a non-200 response from the model endpoint.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model API error (status %d): %s", e.StatusCode, truncate(e.Body, 500))
}

// MalformedResponseError indicates the endpoint replied 200 but the body was
// not valid JSON or held no assistant message in any known response shape.
type MalformedResponseError struct {
	Reason string
	Body   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %s: %s", e.Reason, truncate(e.Body, 500))
}

// ParseError indicates the assistant text contained no recoverable JSON
// object.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON from model response: %s", truncate(e.Text, 500))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
