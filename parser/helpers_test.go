package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasprim/internal/testutil"
)

// loadText loads a single YAML document stored under "api.yaml".
func loadText(t *testing.T, text string, opts ...Option) (*Graph, error) {
	t.Helper()
	opts = append([]Option{WithStore(testutil.Single("api.yaml", text))}, opts...)
	return Load(context.Background(), "api.yaml", opts...)
}

func mustLoad(t *testing.T, text string, opts ...Option) *Graph {
	t.Helper()
	g, err := loadText(t, text, opts...)
	require.NoError(t, err)
	return g
}

func petstore(t *testing.T) *Graph {
	t.Helper()
	return mustLoad(t, testutil.Petstore)
}
