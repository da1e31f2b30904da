package httpvalidator

import (
	"errors"
	"fmt"

	"github.com/erraggy/oasprim/parser"
	"github.com/erraggy/oasprim/primitives"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrPathNotFound indicates no path template matches the request path.
	ErrPathNotFound = errors.New("no matching path")

	// ErrMethodNotAllowed indicates the matched path declares no operation
	// for the request method.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrUnsupportedMediaType indicates a request body whose content type the
	// operation does not consume.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrUnknownParameter indicates a query parameter the operation does not
	// declare (strict mode).
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrUndeclaredStatus indicates a response status code the operation does
	// not declare (strict mode).
	ErrUndeclaredStatus = errors.New("undeclared response status")

	// ErrMissingBody indicates an empty body where a schema is declared.
	ErrMissingBody = errors.New("missing body")
)

// ParamError reports a parameter, response header or body that failed
// validation.
type ParamError struct {
	// In is the parameter location: path, query, header, formData or body
	In string
	// Name is the parameter or header name
	Name string
	// Err is the underlying failure, usually an *oaserrors.ValidationError
	// or several joined
	Err error
}

// Error returns a human-readable error message.
func (e *ParamError) Error() string {
	if e.In == parser.ParamInBody {
		return fmt.Sprintf("body: %v", e.Err)
	}
	return fmt.Sprintf("%s parameter %q: %v", e.In, e.Name, e.Err)
}

// Unwrap returns the underlying failure.
func (e *ParamError) Unwrap() error { return e.Err }

// RequestResult contains the results of validating an HTTP request.
type RequestResult struct {
	// Valid is true if the request passes all validation checks.
	Valid bool

	// Errors contains all validation errors found.
	Errors []error

	// Operation is the operation serving the request, nil when routing failed.
	Operation *parser.Operation

	// MatchedPath is the path template that matched the request (e.g.,
	// "/pets/{petId}"). Empty if no path matched.
	MatchedPath string

	// PathParams, QueryParams, HeaderParams and FormParams hold the
	// constructed parameter values keyed by parameter name.
	PathParams   map[string]primitives.Value
	QueryParams  map[string]primitives.Value
	HeaderParams map[string]primitives.Value
	FormParams   map[string]primitives.Value

	// Body is the constructed body parameter, or nil.
	Body primitives.Value
}

func newRequestResult() *RequestResult {
	return &RequestResult{
		Valid:        true,
		PathParams:   make(map[string]primitives.Value),
		QueryParams:  make(map[string]primitives.Value),
		HeaderParams: make(map[string]primitives.Value),
		FormParams:   make(map[string]primitives.Value),
	}
}

func (r *RequestResult) addError(err error) {
	r.Errors = append(r.Errors, err)
	r.Valid = false
}

// Err returns the validation errors joined, or nil.
func (r *RequestResult) Err() error { return errors.Join(r.Errors...) }

// params returns the value map of a parameter location.
func (r *RequestResult) params(in string) map[string]primitives.Value {
	switch in {
	case parser.ParamInPath:
		return r.PathParams
	case parser.ParamInQuery:
		return r.QueryParams
	case parser.ParamInHeader:
		return r.HeaderParams
	case parser.ParamInFormData:
		return r.FormParams
	}
	return nil
}

// ResponseResult contains the results of validating an HTTP response.
type ResponseResult struct {
	// Valid is true if the response passes all validation checks.
	Valid bool

	// Errors contains all validation errors found.
	Errors []error

	// Operation is the operation the request was routed to.
	Operation *parser.Operation

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Response is the declared response the status code selected (its own
	// entry or "default"), nil when none is declared.
	Response *parser.Response

	// Headers holds the constructed values of declared response headers.
	Headers map[string]primitives.Value

	// Body is the constructed response body, or nil.
	Body primitives.Value
}

func (r *ResponseResult) addError(err error) {
	r.Errors = append(r.Errors, err)
	r.Valid = false
}

// Err returns the validation errors joined, or nil.
func (r *ResponseResult) Err() error { return errors.Join(r.Errors...) }
