package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Failure taxonomy for backend calls. Callers branch on these: 401 forces
// re-login, 403 is message-only, 404 drives the not-found view, and other
// 4xx surface the server's message.
var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("permission denied")
)

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// serverMessage extracts the backend's message field, if any.
func serverMessage(resp *resty.Response) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return ""
}

// check normalizes a resty response into the error taxonomy. No raw
// transport or status error escapes the package.
func check(resp *resty.Response, err error, resource string) error {
	if err != nil {
		return fmt.Errorf("cannot reach server: %w", err)
	}
	if resp.IsSuccess() {
		return nil
	}

	switch resp.StatusCode() {
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return &NotFoundError{Resource: resource}
	}

	msg := serverMessage(resp)
	if resp.StatusCode() >= 500 {
		if msg == "" {
			msg = "server error"
		}
		return fmt.Errorf("%s (status %d)", msg, resp.StatusCode())
	}
	if msg == "" {
		msg = "request rejected"
	}
	return &ValidationError{Message: msg}
}
