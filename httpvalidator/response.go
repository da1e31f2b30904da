package httpvalidator

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/parser"
	"github.com/erraggy/oasprim/primitives"
	"github.com/erraggy/oasprim/rawdoc"
)

// ValidateResponse validates resp against the operation req routes to. The
// response body is read and restored.
func (v *Validator) ValidateResponse(req *http.Request, resp *http.Response) (*ResponseResult, error) {
	if resp == nil {
		return nil, &oaserrors.ConfigError{Option: "response", Message: "response cannot be nil"}
	}
	var body []byte
	if resp.Body != nil && resp.Body != http.NoBody {
		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("httpvalidator: failed to read response body: %w", err)
		}
		resp.Body = io.NopCloser(bytes.NewReader(data))
		body = data
	}
	return v.ValidateResponseData(req, resp.StatusCode, resp.Header, body)
}

// ValidateResponseData validates captured response parts without an
// *http.Response, as middleware recording a response has them.
//
//	result, err := v.ValidateResponseData(req, rec.Code, rec.Header(), rec.Body.Bytes())
func (v *Validator) ValidateResponseData(req *http.Request, status int, header http.Header, body []byte) (*ResponseResult, error) {
	if req == nil || req.URL == nil {
		return nil, &oaserrors.ConfigError{Option: "request", Message: "request cannot be nil"}
	}
	result := &ResponseResult{Valid: true, StatusCode: status, Headers: make(map[string]primitives.Value)}

	_, op, _, err := v.route(req)
	if err != nil {
		result.addError(err)
		return result, nil
	}
	result.Operation = op

	decl := op.Response(strconv.Itoa(status))
	if decl == nil {
		if v.strict {
			result.addError(fmt.Errorf("%w: %d", ErrUndeclaredStatus, status))
		}
		return result, nil
	}
	result.Response = decl

	if decl.Headers != nil {
		for name, h := range decl.Headers.All() {
			values := header.Values(name)
			if len(values) == 0 {
				continue
			}
			val, err := v.factory.Construct(h, values[0])
			if err != nil {
				result.addError(&ParamError{In: parser.ParamInHeader, Name: name, Err: err})
				continue
			}
			result.Headers[name] = val
		}
	}

	if decl.Schema == nil {
		return result, nil
	}
	if len(body) == 0 {
		result.addError(&ParamError{In: parser.ParamInBody, Err: ErrMissingBody})
		return result, nil
	}
	raw, err := rawdoc.Decode(body)
	if err != nil {
		result.addError(&ParamError{In: parser.ParamInBody, Err: err})
		return result, nil
	}
	val, err := v.factory.Construct(decl.Schema, raw)
	if err != nil {
		result.addError(&ParamError{In: parser.ParamInBody, Err: err})
		return result, nil
	}
	result.Body = val
	return result, nil
}
