package httpvalidator

import (
	"errors"
	"net/http"

	"github.com/erraggy/oasprim/oaserrors"
)

// Middleware wraps next with request validation. Invalid requests are
// answered with a plain-text error and never reach next.
func (v *Validator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, err := v.ValidateRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !result.Valid {
			verr := result.Err()
			http.Error(w, verr.Error(), statusOf(verr))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrPathNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, oaserrors.ErrResourceLimit):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
