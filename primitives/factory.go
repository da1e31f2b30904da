package primitives

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erraggy/oasprim/internal/pathutil"
	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/parser"
)

// Creator builds the primitive for one (type, format) pair. The Factory runs
// the node's constraint checks on the result.
type Creator func(in Input) (Value, error)

// Input is what a Creator receives.
type Input struct {
	// Node is the resolved node the value is built against
	Node parser.Typed
	// Raw is the raw value
	Raw any
	// Textual is true when Raw travels as text: it was split from a
	// collection string, or Node is a non-body parameter, a header or an
	// items node. Textual numbers and booleans are parsed from strings.
	Textual bool

	path  *pathutil.PathBuilder
	outer []string
}

// Path returns the location of Raw in the value passed to Construct, as a
// JSON pointer ("#" for the value itself).
func (in Input) Path() string { return in.path.String() }

type typeFormat struct {
	typ    string
	format string
}

// Factory constructs primitive values. A Factory is safe for concurrent use.
type Factory struct {
	logger        parser.Logger
	strictFormats bool
	patterns      *lru.Cache[string, *regexp.Regexp]
	formats       *validator.Validate

	mu       sync.RWMutex
	creators map[typeFormat]Creator
}

// New creates a Factory with the built-in creators.
func New(opts ...Option) (*Factory, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("primitives: invalid options: %w", err)
		}
	}
	patterns, err := lru.New[string, *regexp.Regexp](cfg.patternCacheSize)
	if err != nil {
		return nil, fmt.Errorf("primitives: pattern cache: %w", err)
	}
	f := &Factory{
		logger:        cfg.logger,
		strictFormats: cfg.strictFormats,
		patterns:      patterns,
		formats:       validator.New(validator.WithRequiredStructEnabled()),
	}
	f.creators = map[typeFormat]Creator{
		{parser.TypeInteger, ""}:      f.integer,
		{parser.TypeInteger, "int32"}: f.integer,
		{parser.TypeInteger, "int64"}: f.integer,

		{parser.TypeNumber, ""}:       f.number,
		{parser.TypeNumber, "float"}:  f.number,
		{parser.TypeNumber, "double"}: f.number,

		{parser.TypeString, ""}:          f.str,
		{parser.TypeString, "password"}:  f.str,
		{parser.TypeString, "byte"}:      f.byteString,
		{parser.TypeString, "binary"}:    f.file,
		{parser.TypeString, "date"}:      f.date,
		{parser.TypeString, "date-time"}: f.dateTime,
		{parser.TypeString, "uuid"}:      f.uuidString,
		{parser.TypeString, "email"}:     f.formatted("email"),
		{parser.TypeString, "uri"}:       f.formatted("uri"),
		{parser.TypeString, "hostname"}:  f.formatted("hostname_rfc1123"),
		{parser.TypeString, "ipv4"}:      f.formatted("ipv4"),
		{parser.TypeString, "ipv6"}:      f.formatted("ipv6"),

		{parser.TypeBoolean, ""}: f.boolean,
		{parser.TypeArray, ""}:   f.array,
		{parser.TypeFile, ""}:    f.file,
	}
	return f, nil
}

// Register adds or replaces the creator for a (type, format) pair. An empty
// format registers the creator for the plain type.
func (f *Factory) Register(typ, format string, c Creator) error {
	if typ == "" {
		return &oaserrors.ConfigError{Option: "Register", Message: "type cannot be empty"}
	}
	if c == nil {
		return &oaserrors.ConfigError{Option: "Register", Value: typ + "/" + format, Message: "creator cannot be nil"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[typeFormat{typ, format}] = c
	return nil
}

var defaultFactory = sync.OnceValue(func() *Factory {
	// New without options cannot fail.
	f, _ := New()
	return f
})

// Construct builds a value with a Factory using the default options.
func Construct(node parser.Typed, raw any) (Value, error) {
	return defaultFactory().Construct(node, raw)
}

// Construct validates raw against node and returns the typed value.
//
// Validation failures are *oaserrors.ValidationError values; several are
// returned joined. Nothing partial is returned on failure.
func (f *Factory) Construct(node parser.Typed, raw any) (Value, error) {
	if node == nil {
		return nil, &oaserrors.ConfigError{Option: "Construct", Message: "node cannot be nil"}
	}
	path := pathutil.Get()
	defer pathutil.Put(path)
	return f.construct(node, raw, path, nil, false)
}

func (f *Factory) construct(node parser.Typed, raw any, path *pathutil.PathBuilder, outer []string, textual bool) (Value, error) {
	node = resolve(node)
	if p, ok := node.(*parser.Parameter); ok && p.IsBody() {
		if p.Schema == nil {
			return nil, unsupported(node, path, "body parameter %q has no schema", p.Name)
		}
		node = p.Schema.Resolved()
	}
	c := node.Constraint()
	if raw == nil && c.Default != nil {
		raw = c.Default
	}
	if s, ok := node.(*parser.Schema); ok && s.IsModel() {
		return f.model(s, raw, path)
	}

	create, err := f.creator(node, path)
	if err != nil {
		return nil, err
	}
	in := Input{Node: node, Raw: raw, Textual: textual || carriesText(node), path: path, outer: outer}
	v, err := create(in)
	if err != nil {
		return nil, err
	}
	if errs := f.check(node, v, path); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return v, nil
}

func (f *Factory) creator(node parser.Typed, path *pathutil.PathBuilder) (Creator, error) {
	c := node.Constraint()
	f.mu.RLock()
	defer f.mu.RUnlock()
	if create, ok := f.creators[typeFormat{c.Type, c.Format}]; ok {
		return create, nil
	}
	if c.Format != "" && !f.strictFormats {
		if create, ok := f.creators[typeFormat{c.Type, ""}]; ok {
			f.logger.Debug("unknown format, using plain type", "type", c.Type, "format", c.Format, "node", node.Origin())
			return create, nil
		}
	}
	if c.Type == "" {
		return nil, unsupported(node, path, "node declares no type")
	}
	return nil, unsupported(node, path, "no primitive for type %q with format %q", c.Type, c.Format)
}

// resolve follows a $ref schema or parameter to its target.
func resolve(node parser.Typed) parser.Typed {
	switch n := node.(type) {
	case *parser.Schema:
		return n.Resolved()
	case *parser.Parameter:
		return n.Resolved()
	}
	return node
}

// carriesText reports whether values of node arrive as text on the wire.
func carriesText(node parser.Typed) bool {
	switch n := node.(type) {
	case *parser.Parameter:
		return !n.IsBody()
	case *parser.Header, *parser.Items:
		return true
	}
	return false
}
