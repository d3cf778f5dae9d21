package session

import (
	"errors"
	"fmt"
)

var (
	// ErrUserExists is the soft registration failure for an already known
	// roll number. Flow treats it as success.
	ErrUserExists = errors.New("session: user already exists")
	// ErrMissingCredentials is returned when the roll number or name is blank.
	ErrMissingCredentials = errors.New("session: roll number and name are required")
	// ErrBusy is returned when a login is already in flight.
	ErrBusy = errors.New("session: login already in progress")
	// ErrContract reports a response body that does not match the form schema.
	ErrContract = errors.New("session: response does not match form contract")
)

// Fallback messages used when the service gives no usable message.
const (
	MessageRegisterFailed = "Failed to register user"
	MessageFetchFailed    = "Failed to fetch form data"
)

// Operation names carried by RemoteError.
const (
	OpRegister  = "register"
	OpFetchForm = "fetch form"
)

// RemoteError is a failed call to the form service: a non-2xx answer, or a
// transport failure (Status 0, Err set).
type RemoteError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *RemoteError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Status == 0 {
		return fmt.Sprintf("session: %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("session: %s: %s (status %d)", e.Op, e.Message, e.Status)
}

// UserMessage returns the text suitable for showing to the person logging in.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "Roll number and name are required"
	case errors.Is(err, ErrBusy):
		return "Login already in progress"
	case errors.Is(err, ErrContract):
		return MessageFetchFailed
	}
	return err.Error()
}
