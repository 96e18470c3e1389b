package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes carried by APIError.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeServer       = "SERVER_ERROR"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNetwork      = "NETWORK_ERROR"
	CodeUnknown      = "UNKNOWN_ERROR"
)

const networkMessage = "Network error. Please check your connection."

var (
	// ErrQuantity rejects ticket bookings outside 1..MaxTickets.
	ErrQuantity = errors.New("quantity must be between 1 and 10")
	// ErrMissingBookingFields rejects ticket bookings without airline, flight or trip type.
	ErrMissingBookingFields = errors.New("missing required booking information")
	ErrMissingEmail         = errors.New("email is required")
)

// FieldError is one entry of the server's validation error list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is every failure the client reports for a request.
type APIError struct {
	Code    string       `json:"code"`
	Status  int          `json:"status,omitempty"`
	Message string       `json:"message"`
	Path    string       `json:"path,omitempty"`
	Details []FieldError `json:"details,omitempty"`
	Err     error        `json:"-"`
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Fields flattens Details into field → message, keeping the first message
// per field.
func (e *APIError) Fields() map[string]string {
	out := make(map[string]string, len(e.Details))
	for _, d := range e.Details {
		if _, ok := out[d.Field]; !ok {
			out[d.Field] = d.Message
		}
	}
	return out
}

// HTTPStatus is the status a gateway should answer with for e.
func (e *APIError) HTTPStatus() int {
	switch e.Code {
	case CodeNetwork:
		return http.StatusBadGateway
	case CodeUnknown:
		return http.StatusInternalServerError
	}
	if e.Status >= 400 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// AsAPIError unwraps err into an APIError, wrapping anything else as
// UNKNOWN_ERROR. A nil err stays nil.
func AsAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Code: CodeUnknown, Message: err.Error(), Err: err}
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// errorBody is the API's failure envelope.
type errorBody struct {
	Success   *bool        `json:"success"`
	Error     string       `json:"error"`
	Message   string       `json:"message"`
	Path      string       `json:"path"`
	Errors    []FieldError `json:"errors"`
	Timestamp string       `json:"timestamp"`
}

func classify(status int, body errorBody) *APIError {
	e := &APIError{Status: status, Path: body.Path, Message: strings.TrimSpace(body.Message)}
	switch {
	case status == http.StatusUnauthorized:
		e.Code = CodeUnauthorized
		if e.Message == "" {
			e.Message = "Invalid credentials"
		}
	case status == http.StatusForbidden:
		e.Code = CodeForbidden
		if e.Message == "" {
			e.Message = "Access denied"
		}
	case len(body.Errors) > 0:
		e.Code = CodeValidation
		e.Details = body.Errors
		if e.Message == "" {
			e.Message = body.Errors[0].Message
		}
	default:
		e.Code = CodeServer
		if e.Message == "" {
			e.Message = "Server error"
		}
	}
	return e
}

// GraphQLError carries the errors array of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}
