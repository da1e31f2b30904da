package primitives

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasprim/internal/testutil"
	"github.com/erraggy/oasprim/parser"
)

var (
	petstoreOnce  sync.Once
	petstoreGraph *parser.Graph
	petstoreErr   error
)

// petstore loads the shared fixture once per test binary; graphs are
// read-only.
func petstore(t *testing.T) *parser.Graph {
	t.Helper()
	petstoreOnce.Do(func() {
		petstoreGraph, petstoreErr = parser.Load(context.Background(), "api.yaml",
			parser.WithStore(testutil.Single("api.yaml", testutil.Petstore)))
	})
	require.NoError(t, petstoreErr)
	return petstoreGraph
}

func definition(t *testing.T, name string) *parser.Schema {
	t.Helper()
	s := petstore(t).Schema("#/definitions/" + name)
	require.NotNil(t, s, "definition %s", name)
	return s
}

func parameter(t *testing.T, op, name, in string) *parser.Parameter {
	t.Helper()
	o := petstore(t).Operation(op)
	require.NotNil(t, o, "operation %s", op)
	p := o.Parameter(name, in)
	require.NotNil(t, p, "parameter %s in %s", name, in)
	return p
}

// loadDefinitions loads a minimal document with the given definitions block.
func loadDefinitions(t *testing.T, definitions string) *parser.Graph {
	t.Helper()
	g, err := parser.Load(context.Background(), "api.yaml",
		parser.WithStore(testutil.Single("api.yaml", testutil.Minimal(definitions))))
	require.NoError(t, err)
	return g
}

func newFactory(t *testing.T, opts ...Option) *Factory {
	t.Helper()
	f, err := New(opts...)
	require.NoError(t, err)
	return f
}
