package primitives

import (
	"math/big"
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/erraggy/oasprim/internal/pathutil"
	"github.com/erraggy/oasprim/parser"
)

// check runs every constraint of node that applies to v and returns all
// violations.
func (f *Factory) check(node parser.Typed, v Value, path *pathutil.PathBuilder) []error {
	c := node.Constraint()
	var errs []error
	switch t := v.(type) {
	case *Integer:
		errs = checkNumber(node, c, t.rat(), t.v, path)
	case *Number:
		if t.r == nil {
			return []error{violation(node, path, "format", t.v, "value %s is not a finite number", t)}
		}
		errs = checkNumber(node, c, t.rat(), t.v, path)
	case *String:
		errs = f.checkString(node, c, t.v, path)
	case *Array:
		errs = checkArray(node, c, t, path)
	}
	if len(c.Enum) > 0 {
		if err := checkEnum(node, c, v, path); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func checkNumber(node parser.Typed, c *parser.Constraints, r *big.Rat, value any, path *pathutil.PathBuilder) []error {
	var errs []error

	if c.Minimum != nil {
		cmp := r.Cmp(c.Minimum)
		if c.ExclusiveMinimum && cmp <= 0 {
			errs = append(errs, violation(node, path, "minimum", value,
				"value %s must be greater than %s", formatRat(r), formatRat(c.Minimum)))
		} else if cmp < 0 {
			errs = append(errs, violation(node, path, "minimum", value,
				"value %s is less than minimum %s", formatRat(r), formatRat(c.Minimum)))
		}
	}

	if c.Maximum != nil {
		cmp := r.Cmp(c.Maximum)
		if c.ExclusiveMaximum && cmp >= 0 {
			errs = append(errs, violation(node, path, "maximum", value,
				"value %s must be less than %s", formatRat(r), formatRat(c.Maximum)))
		} else if cmp > 0 {
			errs = append(errs, violation(node, path, "maximum", value,
				"value %s exceeds maximum %s", formatRat(r), formatRat(c.Maximum)))
		}
	}

	if m := c.MultipleOf; m != nil && m.Sign() != 0 {
		if q := new(big.Rat).Quo(r, m); !q.IsInt() {
			errs = append(errs, violation(node, path, "multipleOf", value,
				"value %s is not a multiple of %s", formatRat(r), formatRat(m)))
		}
	}

	return errs
}

func (f *Factory) checkString(node parser.Typed, c *parser.Constraints, s string, path *pathutil.PathBuilder) []error {
	var errs []error

	if c.MinLength != nil || c.MaxLength != nil {
		n := utf8.RuneCountInString(norm.NFC.String(s))
		if c.MinLength != nil && n < *c.MinLength {
			errs = append(errs, violation(node, path, "minLength", s,
				"string length %d is less than minimum %d", n, *c.MinLength))
		}
		if c.MaxLength != nil && n > *c.MaxLength {
			errs = append(errs, violation(node, path, "maxLength", s,
				"string length %d exceeds maximum %d", n, *c.MaxLength))
		}
	}

	if c.Pattern != "" {
		re, err := f.pattern(c.Pattern)
		if err != nil {
			errs = append(errs, violation(node, path, "pattern", s, "invalid pattern %q: %v", c.Pattern, err))
		} else if !re.MatchString(s) {
			errs = append(errs, violation(node, path, "pattern", s, "string does not match pattern %q", c.Pattern))
		}
	}

	return errs
}

// pattern compiles expr anchored at both ends, so it must match the whole
// string.
func (f *Factory) pattern(expr string) (*regexp.Regexp, error) {
	if re, ok := f.patterns.Get(expr); ok {
		return re, nil
	}
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, err
	}
	f.patterns.Add(expr, re)
	return re, nil
}

func checkArray(node parser.Typed, c *parser.Constraints, a *Array, path *pathutil.PathBuilder) []error {
	var errs []error
	n := len(a.items)

	if c.MinItems != nil && n < *c.MinItems {
		errs = append(errs, violation(node, path, "minItems", n,
			"array has %d items, minimum is %d", n, *c.MinItems))
	}
	if c.MaxItems != nil && n > *c.MaxItems {
		errs = append(errs, violation(node, path, "maxItems", n,
			"array has %d items, maximum is %d", n, *c.MaxItems))
	}

	if c.UniqueItems {
		rendered := make([]any, n)
		for i, item := range a.items {
			rendered[i] = item.ToJSON()
		}
	outer:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if semanticEqual(rendered[i], rendered[j]) {
					errs = append(errs, violation(node, path, "uniqueItems", rendered[j],
						"array items %d and %d are equal", i, j))
					break outer
				}
			}
		}
	}

	return errs
}

func checkEnum(node parser.Typed, c *parser.Constraints, v Value, path *pathutil.PathBuilder) error {
	rendered := v.ToJSON()
	for _, allowed := range c.Enum {
		if semanticEqual(rendered, allowed) {
			return nil
		}
	}
	return violation(node, path, "enum", v.Native(), "value %s is not one of the allowed values %v", v.String(), c.Enum)
}
