// Package httpvalidator validates HTTP requests and responses against the
// operations of a loaded Swagger 2.0 document graph.
//
// Request paths are matched against the document's path templates (after
// stripping basePath), the operation is selected by method, and every
// effective parameter is extracted from its location (path, query, header,
// formData or body) and constructed with the primitives package. The
// resulting typed values are returned alongside any validation errors.
//
// # Basic Usage
//
//	v, err := httpvalidator.New(graph)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := v.ValidateRequest(req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Valid {
//	    for _, e := range result.Errors {
//	        log.Printf("invalid request: %v", e)
//	    }
//	}
//	petID := result.PathParams["petId"].Native().(int64)
//
// # Middleware
//
// [Validator.Middleware] rejects invalid requests before they reach a handler:
// unknown paths with 404, undeclared methods with 405, unsupported content
// types with 415 and any other failure with 400.
//
//	http.Handle("/", v.Middleware(api))
//
// # Errors
//
// Each failure in a result is an error; parameter failures are *ParamError
// values wrapping the *oaserrors.ValidationError produced by the primitives
// package, so errors.Is(err, oaserrors.ErrConstraintViolation) works on them.
// Routing failures match [ErrPathNotFound] or [ErrMethodNotAllowed].
package httpvalidator
