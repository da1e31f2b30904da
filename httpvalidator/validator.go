package httpvalidator

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/parser"
	"github.com/erraggy/oasprim/primitives"
)

// Validator validates HTTP traffic against a document graph. It is safe for
// concurrent use.
type Validator struct {
	graph       *parser.Graph
	basePath    string
	routes      router
	factory     *primitives.Factory
	strict      bool
	maxBodySize int64
	logger      parser.Logger
}

// New creates a Validator for the operations of g's root document.
func New(g *parser.Graph, opts ...Option) (*Validator, error) {
	if g == nil || g.Root() == nil {
		return nil, &oaserrors.ConfigError{Option: "graph", Message: "a loaded graph is required"}
	}
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.factory == nil {
		if cfg.factory, err = primitives.New(primitives.WithLogger(cfg.logger)); err != nil {
			return nil, err
		}
	}

	root := g.Root()
	routes, err := newRouter(root.Paths)
	if err != nil {
		return nil, err
	}
	return &Validator{
		graph:       g,
		basePath:    strings.TrimSuffix(root.BasePath, "/"),
		routes:      routes,
		factory:     cfg.factory,
		strict:      cfg.strict,
		maxBodySize: cfg.maxBodySize,
		logger:      cfg.logger,
	}, nil
}

// Templates returns the path templates in matching order.
func (v *Validator) Templates() []string { return v.routes.templates() }

// route finds the operation serving req. The returned error matches
// ErrPathNotFound or ErrMethodNotAllowed.
func (v *Validator) route(req *http.Request) (*route, *parser.Operation, map[string]string, error) {
	path := req.URL.EscapedPath()
	if v.basePath != "" {
		rest, ok := strings.CutPrefix(path, v.basePath)
		if !ok || rest != "" && rest[0] != '/' {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		path = rest
	}
	if path == "" {
		path = "/"
	}

	r, vars, ok := v.routes.match(path)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	op := r.operation(req.Method)
	if op == nil {
		return r, nil, nil, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, req.Method, r.template)
	}
	v.logger.Debug("matched route", "method", req.Method, "path", path, "template", r.template, "operation", op.Name())
	return r, op, vars, nil
}

// ValidateRequest validates req against the operation it routes to. The
// error is non-nil only when req itself is unusable; validation failures
// are reported in the result.
//
// A body or form read by the validator is restored on req so handlers can
// read it again.
func (v *Validator) ValidateRequest(req *http.Request) (*RequestResult, error) {
	if req == nil || req.URL == nil {
		return nil, &oaserrors.ConfigError{Option: "request", Message: "request cannot be nil"}
	}
	result := newRequestResult()

	r, op, vars, err := v.route(req)
	if r != nil {
		result.MatchedPath = r.template
	}
	if err != nil {
		result.addError(err)
		return result, nil
	}
	result.Operation = op

	v.validateParams(req, op, vars, result)
	return result, nil
}
