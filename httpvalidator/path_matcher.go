package httpvalidator

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/erraggy/oasprim/parser"
)

// route matches request paths against one path template, such as
// "/pets/{petId}".
type route struct {
	template string
	item     *parser.PathItem
	re       *regexp.Regexp
	vars     []string
	// literal characters count up, variables count down
	specificity int
}

func newRoute(template string, item *parser.PathItem) (*route, error) {
	if template == "" {
		return nil, fmt.Errorf("httpvalidator: path template cannot be empty")
	}
	r := &route{template: template, item: item}

	var expr strings.Builder
	expr.WriteByte('^')
	rest := template
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			r.literal(&expr, rest)
			break
		}
		r.literal(&expr, rest[:open])
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return nil, fmt.Errorf("httpvalidator: unclosed path parameter in template %q", template)
		}
		name := rest[open+1 : open+end]
		if name == "" {
			return nil, fmt.Errorf("httpvalidator: empty path parameter in template %q", template)
		}
		if slices.Contains(r.vars, name) {
			return nil, fmt.Errorf("httpvalidator: duplicate path parameter %q in template %q", name, template)
		}
		r.vars = append(r.vars, name)
		// A variable spans one path segment.
		expr.WriteString("([^/]+)")
		r.specificity--
		rest = rest[open+end+1:]
	}
	expr.WriteByte('$')

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("httpvalidator: failed to compile path pattern for template %q: %w", template, err)
	}
	r.re = re
	return r, nil
}

func (r *route) literal(expr *strings.Builder, s string) {
	expr.WriteString(regexp.QuoteMeta(s))
	r.specificity += len(s) - strings.Count(s, "/")
}

// match returns the raw, still escaped, values of the template variables.
func (r *route) match(path string) (map[string]string, bool) {
	m := r.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	vars := make(map[string]string, len(r.vars))
	for i, name := range r.vars {
		vars[name] = m[i+1]
	}
	return vars, true
}

// operation returns the operation declared for an HTTP method, or nil.
func (r *route) operation(method string) *parser.Operation {
	method = strings.ToLower(method)
	for _, op := range r.item.Operations() {
		if op.Method() == method {
			return op
		}
	}
	return nil
}

// router tries routes from the most specific template to the least.
type router []*route

func newRouter(paths *parser.Paths) (router, error) {
	if paths == nil {
		return nil, nil
	}
	var rt router
	for template, item := range paths.Items().All() {
		r, err := newRoute(template, item.Resolved())
		if err != nil {
			return nil, err
		}
		rt = append(rt, r)
	}
	slices.SortFunc(rt, func(a, b *route) int {
		if c := cmp.Compare(b.specificity, a.specificity); c != 0 {
			return c
		}
		if c := cmp.Compare(len(b.template), len(a.template)); c != 0 {
			return c
		}
		return strings.Compare(a.template, b.template)
	})
	return rt, nil
}

func (rt router) match(path string) (*route, map[string]string, bool) {
	for _, r := range rt {
		if vars, ok := r.match(path); ok {
			return r, vars, true
		}
	}
	return nil, nil, false
}

func (rt router) templates() []string {
	out := make([]string, len(rt))
	for i, r := range rt {
		out[i] = r.template
	}
	return out
}
