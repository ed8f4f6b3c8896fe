package types

import "fmt"

// ConfigError reports a generation vocabulary that cannot support the
// requested operation (an empty symptom, body-part or demographic set).
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Reason
}

// NewConfigError builds a ConfigError with a formatted reason.
func NewConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// ValueError reports a malformed call argument, such as an empty
// symptom list passed to the prompt builder.
type ValueError struct {
	Reason string
}

func (e *ValueError) Error() string {
	return "invalid argument: " + e.Reason
}

// NewValueError builds a ValueError with a formatted reason.
func NewValueError(format string, args ...interface{}) *ValueError {
	return &ValueError{Reason: fmt.Sprintf(format, args...)}
}

// OracleError reports a text-generation backend failure, or backend
// output that violates the causal-continuation contract.
type OracleError struct {
	Reason string
	Err    error // Underlying cause, may be nil
}

func (e *OracleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oracle: %s: %v", e.Reason, e.Err)
	}
	return "oracle: " + e.Reason
}

func (e *OracleError) Unwrap() error {
	return e.Err
}
