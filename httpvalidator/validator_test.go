package httpvalidator

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasprim/internal/testutil"
	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/primitives"
)

func paramErrors(t *testing.T, result *RequestResult) map[string]error {
	t.Helper()
	out := make(map[string]error)
	for _, err := range result.Errors {
		var perr *ParamError
		require.ErrorAs(t, err, &perr)
		out[perr.In+"."+perr.Name] = perr.Err
	}
	return out
}

// =============================================================================
// New Tests
// =============================================================================

func TestNew(t *testing.T) {
	g := loadText(t, testutil.Petstore)

	t.Run("nil graph", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	tests := []struct {
		name   string
		opt    Option
		option string
	}{
		{"nil factory", WithFactory(nil), "WithFactory"},
		{"zero body size", WithMaxBodySize(0), "WithMaxBodySize"},
		{"nil logger", WithLogger(nil), "WithLogger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(g, tt.opt)
			var cerr *oaserrors.ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.option, cerr.Option)
		})
	}

	t.Run("custom factory", func(t *testing.T) {
		f, err := primitives.New()
		require.NoError(t, err)
		v, err := New(g, WithFactory(f))
		require.NoError(t, err)
		assert.Same(t, f, v.factory)
		assert.Equal(t, "/v2", v.basePath)
	})
}

// =============================================================================
// Routing Tests
// =============================================================================

func TestValidateRequest_Routing(t *testing.T) {
	v := newValidator(t, testutil.Petstore)

	tests := []struct {
		name     string
		method   string
		target   string
		op       string
		template string
		err      error
	}{
		{"literal before variable", http.MethodGet, "/v2/pet/findByStatus?status=sold", "findPetsByStatus", "/pet/findByStatus", nil},
		{"variable", http.MethodGet, "/v2/pet/42", "getPetById", "/pet/{petId}", nil},
		{"outside basePath", http.MethodGet, "/v3/pet/42", "", "", ErrPathNotFound},
		{"basePath prefix only", http.MethodGet, "/v2pet/42", "", "", ErrPathNotFound},
		{"unknown path", http.MethodGet, "/v2/store", "", "", ErrPathNotFound},
		{"undeclared method", http.MethodPatch, "/v2/pet", "", "/pet", ErrMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			result, err := v.ValidateRequest(req)
			require.NoError(t, err)
			assert.Equal(t, tt.template, result.MatchedPath)
			if tt.err != nil {
				assert.False(t, result.Valid)
				assert.ErrorIs(t, result.Err(), tt.err)
				assert.Nil(t, result.Operation)
				return
			}
			require.NotNil(t, result.Operation)
			assert.Equal(t, tt.op, result.Operation.Name())
		})
	}

	t.Run("nil request", func(t *testing.T) {
		_, err := v.ValidateRequest(nil)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

// =============================================================================
// Parameter Tests
// =============================================================================

func TestValidateRequest_Params(t *testing.T) {
	v := newValidator(t, testutil.Petstore)

	t.Run("path and header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v2/pet/42", nil)
		req.Header.Set("api_key", "secret")
		result, err := v.ValidateRequest(req)
		require.NoError(t, err)
		require.True(t, result.Valid, "%v", result.Err())

		require.Contains(t, result.PathParams, "petId")
		assert.Equal(t, int64(42), result.PathParams["petId"].Native())
		assert.Equal(t, "secret", result.HeaderParams["api_key"].String())
	})

	t.Run("path type mismatch", func(t *testing.T) {
		result, err := v.ValidateRequest(httptest.NewRequest(http.MethodGet, "/v2/pet/abc", nil))
		require.NoError(t, err)
		assert.False(t, result.Valid)
		errs := paramErrors(t, result)
		require.Contains(t, errs, "path.petId")
		assert.ErrorIs(t, errs["path.petId"], oaserrors.ErrValidation)
	})

	t.Run("operation overrides path-level header", func(t *testing.T) {
		result, err := v.ValidateRequest(httptest.NewRequest(http.MethodDelete, "/v2/pet/1", nil))
		require.NoError(t, err)
		errs := paramErrors(t, result)
		require.Contains(t, errs, "header.api_key")
		assert.ErrorIs(t, errs["header.api_key"], oaserrors.ErrMissingProperty)
	})

	t.Run("multi query collection", func(t *testing.T) {
		result, err := v.ValidateRequest(httptest.NewRequest(http.MethodGet, "/v2/pet/findByStatus?status=sold&status=pending", nil))
		require.NoError(t, err)
		require.True(t, result.Valid, "%v", result.Err())
		arr, ok := result.QueryParams["status"].(*primitives.Array)
		require.True(t, ok)
		assert.Equal(t, []string{"sold", "pending"}, arr.Strings())
	})

	t.Run("enum violation", func(t *testing.T) {
		result, err := v.ValidateRequest(httptest.NewRequest(http.MethodGet, "/v2/pet/findByStatus?status=lost", nil))
		require.NoError(t, err)
		assert.ErrorIs(t, result.Err(), oaserrors.ErrConstraintViolation)
	})

	t.Run("required query missing", func(t *testing.T) {
		result, err := v.ValidateRequest(httptest.NewRequest(http.MethodGet, "/v2/pet/findByStatus", nil))
		require.NoError(t, err)
		errs := paramErrors(t, result)
		require.Contains(t, errs, "query.status")
		var verr *oaserrors.ValidationError
		require.ErrorAs(t, errs["query.status"], &verr)
		assert.Equal(t, oaserrors.KindMissingProperty, verr.Kind)
		assert.Equal(t, "status", verr.Constraint)
	})

	t.Run("delimited headers and queries", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v2/t?flags=true%7Cfalse", nil)
		req.Header.Set("limit", "5")
		req.Header.Add("ids", "1,2")
		req.Header.Add("ids", "3")
		result, err := v.ValidateRequest(req)
		require.NoError(t, err)
		require.True(t, result.Valid, "%v", result.Err())

		assert.Equal(t, []any{true, false}, result.QueryParams["flags"].Native())
		assert.Equal(t, int64(5), result.HeaderParams["limit"].Native())
		assert.Equal(t, []any{int64(1), int64(2), int64(3)}, result.HeaderParams["ids"].Native(),
			"repeated header lines join into one list")
	})

	t.Run("header maximum", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v2/t", nil)
		req.Header.Set("limit", "500")
		result, err := v.ValidateRequest(req)
		require.NoError(t, err)
		errs := paramErrors(t, result)
		require.Contains(t, errs, "header.limit")
		assert.ErrorIs(t, errs["header.limit"], oaserrors.ErrConstraintViolation)
	})

	t.Run("strict mode rejects unknown query parameters", func(t *testing.T) {
		strict := newValidator(t, testutil.Petstore, WithStrictMode(true))
		result, err := strict.ValidateRequest(httptest.NewRequest(http.MethodGet, "/v2/pet/1?b=1&a=2", nil))
		require.NoError(t, err)
		require.Len(t, result.Errors, 2)
		assert.ErrorIs(t, result.Errors[0], ErrUnknownParameter)
		assert.Equal(t, `query parameter "a": unknown parameter`, result.Errors[0].Error())

		result, err = v.ValidateRequest(httptest.NewRequest(http.MethodGet, "/v2/pet/1?b=1", nil))
		require.NoError(t, err)
		assert.True(t, result.Valid, "lenient by default")
	})
}

// =============================================================================
// Body Tests
// =============================================================================

func TestValidateRequest_Body(t *testing.T) {
	v := newValidator(t, testutil.Petstore)

	t.Run("model body", func(t *testing.T) {
		body := `{"name": "doggie", "photoUrls": ["a.png"], "status": "sold"}`
		req := httptest.NewRequest(http.MethodPost, "/v2/pet", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		result, err := v.ValidateRequest(req)
		require.NoError(t, err)
		require.True(t, result.Valid, "%v", result.Err())

		m, ok := result.Body.(*primitives.Model)
		require.True(t, ok)
		assert.Equal(t, []string{"name", "photoUrls", "status"}, m.Names())

		again := new(bytes.Buffer)
		_, err = again.ReadFrom(req.Body)
		require.NoError(t, err)
		assert.Equal(t, body, again.String(), "body is restored for the handler")
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/v2/pet", strings.NewReader(`{"photoUrls": "nope"}`))
		result, err := v.ValidateRequest(req)
		require.NoError(t, err)
		errs := paramErrors(t, result)
		require.Contains(t, errs, "body.body")
		assert.ErrorIs(t, errs["body.body"], oaserrors.ErrMissingProperty)
		assert.ErrorIs(t, errs["body.body"], oaserrors.ErrTypeMismatch)
	})

	t.Run("missing required body", func(t *testing.T) {
		result, err := v.ValidateRequest(httptest.NewRequest(http.MethodPost, "/v2/pet", nil))
		require.NoError(t, err)
		assert.ErrorIs(t, result.Err(), oaserrors.ErrMissingProperty)
	})

	t.Run("body too large", func(t *testing.T) {
		small := newValidator(t, testutil.Petstore, WithMaxBodySize(8))
		req := httptest.NewRequest(http.MethodPost, "/v2/pet", strings.NewReader(`{"name": "doggie"}`))
		result, err := small.ValidateRequest(req)
		require.NoError(t, err)
		assert.ErrorIs(t, result.Err(), oaserrors.ErrResourceLimit)
	})

	t.Run("consumes", func(t *testing.T) {
		v := newValidator(t, uploads)
		for ct, ok := range map[string]bool{
			"application/json":                true,
			"application/json; charset=utf-8": true,
			"text/plain":                      false,
			"not a media type;;":              false,
		} {
			req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{"id": 1}`))
			req.Header.Set("Content-Type", ct)
			result, err := v.ValidateRequest(req)
			require.NoError(t, err)
			assert.Equal(t, ok, result.Valid, ct)
			if !ok {
				assert.ErrorIs(t, result.Err(), ErrUnsupportedMediaType, ct)
				assert.Nil(t, result.Body, "payload parameters are skipped")
			}
		}
	})
}

func TestValidateRequest_FormData(t *testing.T) {
	v := newValidator(t, uploads)

	t.Run("url encoded", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/files/report", strings.NewReader("note=hello&tags=a&tags=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		result, err := v.ValidateRequest(req)
		require.NoError(t, err)
		require.True(t, result.Valid, "%v", result.Err())
		assert.Equal(t, "report", result.PathParams["name"].String())
		assert.Equal(t, "hello", result.FormParams["note"].String())
		assert.Equal(t, []any{"a", "b"}, result.FormParams["tags"].Native())
		assert.NotContains(t, result.FormParams, "content")
	})

	t.Run("multipart", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		fw, err := w.CreateFormFile("content", "report.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte("a,b\n"))
		require.NoError(t, err)
		require.NoError(t, w.WriteField("note", "toolong"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/files/report", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		result, err := v.ValidateRequest(req)
		require.NoError(t, err)

		require.Contains(t, result.FormParams, "content")
		assert.Equal(t, "report.csv", result.FormParams["content"].String())
		errs := paramErrors(t, result)
		require.Contains(t, errs, "formData.note")
		assert.ErrorIs(t, errs["formData.note"], oaserrors.ErrConstraintViolation)
	})

	t.Run("path pattern", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/files/Report1", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		result, err := v.ValidateRequest(req)
		require.NoError(t, err)
		errs := paramErrors(t, result)
		require.Contains(t, errs, "path.name")
		var verr *oaserrors.ValidationError
		require.ErrorAs(t, errs["path.name"], &verr)
		assert.Equal(t, "pattern", verr.Constraint)
	})
}

// =============================================================================
// Response Tests
// =============================================================================

func TestValidateResponse(t *testing.T) {
	v := newValidator(t, testutil.Petstore)
	req := httptest.NewRequest(http.MethodGet, "/v2/pet/42", nil)

	t.Run("valid body", func(t *testing.T) {
		result, err := v.ValidateResponseData(req, http.StatusOK, http.Header{}, []byte(`{"name": "doggie", "photoUrls": []}`))
		require.NoError(t, err)
		require.True(t, result.Valid, "%v", result.Err())
		assert.Equal(t, "getPetById", result.Operation.Name())
		require.NotNil(t, result.Body)
		assert.Equal(t, `{"name":"doggie","photoUrls":[]}`, result.Body.String())
	})

	t.Run("invalid body", func(t *testing.T) {
		result, err := v.ValidateResponseData(req, http.StatusOK, http.Header{}, []byte(`{"photoUrls": []}`))
		require.NoError(t, err)
		assert.ErrorIs(t, result.Err(), oaserrors.ErrMissingProperty)
	})

	t.Run("missing body", func(t *testing.T) {
		result, err := v.ValidateResponseData(req, http.StatusOK, http.Header{}, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, result.Err(), ErrMissingBody)
	})

	t.Run("undeclared status", func(t *testing.T) {
		result, err := v.ValidateResponseData(req, http.StatusTeapot, http.Header{}, nil)
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Nil(t, result.Response)

		strict := newValidator(t, testutil.Petstore, WithStrictMode(true))
		result, err = strict.ValidateResponseData(req, http.StatusTeapot, http.Header{}, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, result.Err(), ErrUndeclaredStatus)
	})

	t.Run("from http.Response", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rec.WriteHeader(http.StatusOK)
		_, _ = rec.WriteString(`{"name": "doggie", "photoUrls": ["x"]}`)
		resp := rec.Result()

		result, err := v.ValidateResponse(req, resp)
		require.NoError(t, err)
		assert.True(t, result.Valid, "%v", result.Err())

		again := new(bytes.Buffer)
		_, err = again.ReadFrom(resp.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, again.String(), "body is restored")
	})

	t.Run("headers", func(t *testing.T) {
		v := newValidator(t, uploads)
		req := httptest.NewRequest(http.MethodPost, "/files/report", nil)

		h := http.Header{}
		h.Set("X-Rate-Limit", "10")
		result, err := v.ValidateResponseData(req, http.StatusCreated, h, nil)
		require.NoError(t, err)
		require.True(t, result.Valid, "%v", result.Err())
		assert.Equal(t, int64(10), result.Headers["X-Rate-Limit"].Native())

		h.Set("X-Rate-Limit", "-1")
		result, err = v.ValidateResponseData(req, http.StatusCreated, h, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, result.Err(), oaserrors.ErrConstraintViolation)
	})

	t.Run("unrouted request", func(t *testing.T) {
		result, err := v.ValidateResponseData(httptest.NewRequest(http.MethodGet, "/elsewhere", nil), http.StatusOK, nil, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, result.Err(), ErrPathNotFound)
	})
}

// =============================================================================
// Middleware Tests
// =============================================================================

func TestMiddleware(t *testing.T) {
	v := newValidator(t, testutil.Petstore)
	var reached int
	h := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached++
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/v2/pet/42", http.StatusNoContent},
		{http.MethodGet, "/v2/pet/abc", http.StatusBadRequest},
		{http.MethodGet, "/v2/nothing", http.StatusNotFound},
		{http.MethodPatch, "/v2/pet", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
		assert.Equal(t, tt.status, rec.Code, "%s %s", tt.method, tt.target)
	}
	assert.Equal(t, 1, reached)

	assert.Equal(t, http.StatusRequestEntityTooLarge, statusOf(errors.Join(&oaserrors.ResourceLimitError{})))
	assert.Equal(t, http.StatusUnsupportedMediaType, statusOf(ErrUnsupportedMediaType))
}
