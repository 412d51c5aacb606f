package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not signed in")
	ErrForbidden       = errors.New("action not allowed for this user")
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNetwork    = "NETWORK_ERROR"
	CodeUnknown    = "UNKNOWN_ERROR"
	CodeHTTP       = "HTTP_ERROR"
)

const (
	StatusNetwork = 0
	StatusUnknown = -1
)

// ValidationError is raised by auth flows before any remote call is made.
type ValidationError struct {
	Code   string   `json:"code"`
	Errors []string `json:"errors"`
}

func NewValidationError(errs []string) *ValidationError {
	return &ValidationError{Code: CodeValidation, Errors: errs}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// APIError is a classified failure of a call to a remote backend.
// Status is the HTTP status, StatusNetwork when no response arrived,
// or StatusUnknown for anything else. Message is never empty.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrForbidden
	}
	return e.Err
}

var defaultMessages = map[int]string{
	http.StatusBadRequest:          "Invalid request. Please check your input.",
	http.StatusUnauthorized:        "Authentication required. Please log in again.",
	http.StatusForbidden:           "You do not have permission to perform this action.",
	http.StatusNotFound:            "The requested resource was not found.",
	http.StatusConflict:            "The request conflicts with the current state of the resource.",
	http.StatusUnprocessableEntity: "The submitted data could not be processed.",
	http.StatusTooManyRequests:     "Too many requests. Please try again later.",
	http.StatusInternalServerError: "Server error. Please try again later.",
	http.StatusBadGateway:          "Bad gateway. Please try again later.",
	http.StatusServiceUnavailable:  "Service unavailable. Please try again later.",
	http.StatusGatewayTimeout:      "The server took too long to respond.",
}

const (
	networkMessage = "Network error. Please check your internet connection."
	unknownMessage = "An unexpected error occurred."
)

func DefaultMessage(status int) string {
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	return fmt.Sprintf("Request failed with status %d.", status)
}

// Classify turns the outcome of a resty call into an *APIError.
// It returns nil for a successful (2xx) response without a transport error.
func Classify(resp *resty.Response, err error) *APIError {
	if resp != nil && resp.RawResponse != nil {
		status := resp.StatusCode()
		if status >= http.StatusBadRequest {
			msg := serverMessage(resp.Body())
			if msg == "" {
				msg = DefaultMessage(status)
			}
			return &APIError{Status: status, Code: CodeHTTP, Message: msg, Err: err}
		}
		if err == nil {
			return nil
		}
		// a response arrived but could not be used, e.g. an undecodable body
		return &APIError{Status: StatusUnknown, Code: CodeUnknown, Message: unknownMessage, Err: err}
	}
	if err == nil {
		return &APIError{Status: StatusUnknown, Code: CodeUnknown, Message: unknownMessage}
	}
	if isNetwork(err) {
		return &APIError{Status: StatusNetwork, Code: CodeNetwork, Message: networkMessage, Err: err}
	}
	return &APIError{Status: StatusUnknown, Code: CodeUnknown, Message: unknownMessage, Err: err}
}

func isNetwork(err error) bool {
	var (
		urlErr *url.Error
		netErr net.Error
	)
	return errors.As(err, &urlErr) || errors.As(err, &netErr)
}

func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if m := strings.TrimSpace(payload.Message); m != "" {
		return m
	}
	return strings.TrimSpace(payload.Error)
}

// HTTPStatus is the status a gateway handler should answer with for err.
func HTTPStatus(err error) int {
	var (
		apiErr *APIError
		valErr *ValidationError
	)
	switch {
	case errors.As(err, &valErr):
		return http.StatusBadRequest
	case errors.As(err, &apiErr):
		if apiErr.Status <= 0 {
			return http.StatusBadGateway
		}
		return apiErr.Status
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Message is the human readable text for err.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
