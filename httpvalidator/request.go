package httpvalidator

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/parser"
	"github.com/erraggy/oasprim/rawdoc"
)

// validateParams constructs every effective parameter of op from req.
func (v *Validator) validateParams(req *http.Request, op *parser.Operation, vars map[string]string, result *RequestResult) {
	in := &requestInput{req: req, query: req.URL.Query(), vars: vars, max: v.maxBodySize}
	params := op.EffectiveParameters()
	for i, p := range params {
		params[i] = p.Resolved()
	}

	skipPayload := false
	if slices.ContainsFunc(params, carriesPayload) {
		if err := v.checkMediaType(req, op); err != nil {
			result.addError(err)
			skipPayload = true
		}
	}

	declared := make(map[string]bool)
	for _, p := range params {
		if p.In == parser.ParamInQuery {
			declared[p.Name] = true
		}
		if skipPayload && carriesPayload(p) {
			continue
		}

		raw, present, err := in.extract(p)
		if err != nil {
			result.addError(&ParamError{In: p.In, Name: p.Name, Err: err})
			continue
		}
		if !present {
			if p.Required {
				result.addError(&ParamError{In: p.In, Name: p.Name, Err: missing(p)})
				continue
			}
			if p.Default == nil {
				continue
			}
		}

		val, err := v.factory.Construct(p, raw)
		if err != nil {
			result.addError(&ParamError{In: p.In, Name: p.Name, Err: err})
			continue
		}
		if p.In == parser.ParamInBody {
			result.Body = val
		} else {
			result.params(p.In)[p.Name] = val
		}
	}

	if v.strict {
		for _, name := range slices.Sorted(maps.Keys(in.query)) {
			if !declared[name] {
				result.addError(&ParamError{In: parser.ParamInQuery, Name: name, Err: ErrUnknownParameter})
			}
		}
	}
}

// checkMediaType compares the request content type with the media types
// the operation consumes, falling back to the document's.
func (v *Validator) checkMediaType(req *http.Request, op *parser.Operation) error {
	ct := req.Header.Get("Content-Type")
	consumes := op.Consumes
	if len(consumes) == 0 {
		consumes = v.graph.Root().Consumes
	}
	if ct == "" || len(consumes) == 0 {
		return nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, ct)
	}
	for _, c := range consumes {
		if cm, _, err := mime.ParseMediaType(c); err == nil && strings.EqualFold(cm, mt) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mt)
}

func carriesPayload(p *parser.Parameter) bool {
	return p.In == parser.ParamInBody || p.In == parser.ParamInFormData
}

func missing(p *parser.Parameter) error {
	return &oaserrors.ValidationError{
		Kind:       oaserrors.KindMissingProperty,
		Path:       "#",
		Node:       p.Origin(),
		Constraint: p.Name,
		Message:    fmt.Sprintf("required %s parameter %q is missing", p.In, p.Name),
	}
}

// requestInput reads parameter values out of a request. The body is read
// once and shared by the body and formData parameters.
type requestInput struct {
	req   *http.Request
	query url.Values
	vars  map[string]string
	max   int64

	bodyRead bool
	data     []byte
	bodyErr  error

	formRead bool
	form     *multipart.Form
	formErr  error
}

// extract returns the raw value of p and whether the request carries it.
func (in *requestInput) extract(p *parser.Parameter) (any, bool, error) {
	switch p.In {
	case parser.ParamInPath:
		s, ok := in.vars[p.Name]
		if !ok {
			return nil, false, nil
		}
		s, err := url.PathUnescape(s)
		if err != nil {
			return nil, false, fmt.Errorf("invalid path escape: %w", err)
		}
		return s, true, nil

	case parser.ParamInQuery:
		values, ok := in.query[p.Name]
		if !ok {
			return nil, false, nil
		}
		return pick(p, values), true, nil

	case parser.ParamInHeader:
		values := in.req.Header.Values(p.Name)
		if len(values) == 0 {
			return nil, false, nil
		}
		return pick(p, values), true, nil

	case parser.ParamInFormData:
		form, err := in.formData()
		if err != nil {
			return nil, false, err
		}
		if p.Type == parser.TypeFile {
			files := form.File[p.Name]
			if len(files) == 0 {
				return nil, false, nil
			}
			return files[0], true, nil
		}
		values, ok := form.Value[p.Name]
		if !ok {
			return nil, false, nil
		}
		return pick(p, values), true, nil

	case parser.ParamInBody:
		data, err := in.body()
		if err != nil || len(data) == 0 {
			return nil, false, err
		}
		raw, err := rawdoc.Decode(data)
		if err != nil {
			return nil, false, err
		}
		return raw, true, nil
	}
	return nil, false, fmt.Errorf("unknown parameter location %q", p.In)
}

// pick passes repeated values through for multi collections. Repeated
// header lines of other arrays are joined as one comma separated list.
func pick(p *parser.Parameter, values []string) any {
	if p.Type == parser.TypeArray && p.CollectionFormat == parser.CollectionMulti {
		return values
	}
	if p.In == parser.ParamInHeader && len(values) > 1 {
		return strings.Join(values, ",")
	}
	return values[0]
}

func (in *requestInput) body() ([]byte, error) {
	if in.bodyRead {
		return in.data, in.bodyErr
	}
	in.bodyRead = true

	req := in.req
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	data, err := io.ReadAll(io.LimitReader(req.Body, in.max+1))
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(data))
	switch {
	case err != nil:
		in.bodyErr = fmt.Errorf("failed to read body: %w", err)
	case int64(len(data)) > in.max:
		in.bodyErr = &oaserrors.ResourceLimitError{
			ResourceType: "body_size",
			Limit:        in.max,
			Message:      "request body is too large",
		}
	default:
		in.data = data
	}
	return in.data, in.bodyErr
}

// formData parses the body as multipart or URL-encoded form data.
func (in *requestInput) formData() (*multipart.Form, error) {
	if in.formRead {
		return in.form, in.formErr
	}
	in.formRead = true

	data, err := in.body()
	if err != nil {
		in.formErr = err
		return nil, err
	}
	mt, params, _ := mime.ParseMediaType(in.req.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		mr := multipart.NewReader(bytes.NewReader(data), params["boundary"])
		in.form, in.formErr = mr.ReadForm(in.max)
		if in.formErr != nil {
			in.formErr = fmt.Errorf("invalid multipart form: %w", in.formErr)
		}
		return in.form, in.formErr
	}
	values, err := url.ParseQuery(string(data))
	if err != nil {
		in.formErr = fmt.Errorf("invalid form: %w", err)
		return nil, in.formErr
	}
	in.form = &multipart.Form{Value: values, File: map[string][]*multipart.FileHeader{}}
	return in.form, nil
}
