package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasprim/oaserrors"
)

func TestFlatten_Operations(t *testing.T) {
	g := petstore(t)
	paths := g.Root().Paths
	require.NotNil(t, paths)

	assert.Equal(t,
		[]string{"addPet", "updatePet", "findPetsByStatus", "getPetById", "delete /pet/{petId}", "collections"},
		paths.Operations().Keys(),
		"document order is preserved")

	op := g.Operation("getPetById")
	require.NotNil(t, op)
	assert.Equal(t, "get", op.Method())
	assert.Equal(t, "/pet/{petId}", op.URLPath())
	assert.Equal(t, "getPetById", op.Name())
	assert.Equal(t, "#/paths/~1pet~1{petId}/get", op.Origin())
	assert.Same(t, paths, op.Parent(), "flattened operations are re-parented to the container")

	item, ok := paths.Get("/pet/{petId}")
	require.True(t, ok)
	assert.Same(t, item, op.PathItem())
	assert.Same(t, op, item.Get)
	assert.Len(t, item.Operations(), 2)

	unnamed := g.Operation("delete /pet/{petId}")
	require.NotNil(t, unnamed)
	assert.Empty(t, unnamed.OperationID)
	assert.Equal(t, "delete", unnamed.Method())
}

func TestFlatten_EffectiveParameters(t *testing.T) {
	g := petstore(t)

	t.Run("inherits path-level parameters", func(t *testing.T) {
		op := g.Operation("getPetById")
		params := op.EffectiveParameters()
		require.Len(t, params, 2)
		assert.Equal(t, "petId", params[0].Name)
		assert.Equal(t, "api_key", params[1].Name)
		assert.False(t, params[1].Required)
		assert.Empty(t, op.Parameters, "declared parameters are untouched")
	})

	t.Run("operation parameter overrides path parameter", func(t *testing.T) {
		op := g.Operation("delete /pet/{petId}")
		params := op.EffectiveParameters()
		require.Len(t, params, 2)
		assert.Equal(t, "api_key", params[0].Name)
		assert.True(t, params[0].Required)
		assert.Equal(t, "petId", params[1].Name)

		key := op.Parameter("api_key", ParamInHeader)
		require.NotNil(t, key)
		assert.True(t, key.Required)
		assert.Nil(t, op.Parameter("api_key", ParamInQuery))
	})

	t.Run("referenced parameters are matched after resolution", func(t *testing.T) {
		op := g.Operation("updatePet")
		body := op.Parameter("body", ParamInBody)
		require.NotNil(t, body)
		assert.True(t, body.IsBody())
		assert.Equal(t, "#/parameters/petBody", body.Origin())
		assert.Same(t, g.Schema("#/definitions/Pet"), body.Schema.Resolved())
	})
}

func TestFlatten_Responses(t *testing.T) {
	g := petstore(t)
	op := g.Operation("updatePet")

	r := op.Response("200")
	require.NotNil(t, r, "falls back to default")
	assert.Equal(t, "generic response", r.Description)
	assert.Equal(t, "#/responses/generic", r.Origin())

	assert.Nil(t, g.Operation("addPet").Response("200"))
}

func TestFlatten_DuplicateNames(t *testing.T) {
	tests := []struct {
		name      string
		paths     string
		duplicate string
		at        string
		first     string
	}{
		{
			name: "same operationId on two paths",
			paths: `  /a:
    get:
      operationId: dup
      responses: {}
  /b:
    post:
      operationId: dup
      responses: {}
`,
			duplicate: "dup",
			at:        "#/paths/~1b/post",
			first:     "#/paths/~1a/get",
		},
		{
			name: "operationId clashing with a generated name",
			paths: `  /a:
    get:
      responses: {}
    put:
      operationId: get /a
      responses: {}
`,
			duplicate: "get /a",
			at:        "#/paths/~1a/put",
			first:     "#/paths/~1a/get",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "swagger: \"2.0\"\ninfo: {title: t, version: \"1\"}\npaths:\n" + tt.paths
			_, err := loadText(t, doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrLoad)
			assert.ErrorIs(t, err, oaserrors.ErrDuplicateName)

			var derr *oaserrors.DuplicateNameError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.duplicate, derr.Name)
			assert.Equal(t, tt.at, derr.Path)
			assert.Equal(t, tt.first, derr.FirstPath)
			assert.Contains(t, err.Error(), tt.duplicate)
		})
	}
}

func TestFlatten_StableAcrossLoads(t *testing.T) {
	first := petstore(t).Operations().Keys()
	for range 5 {
		assert.Equal(t, first, petstore(t).Operations().Keys())
	}
}

func TestFlatten_PathItemRef(t *testing.T) {
	g := mustLoad(t, `swagger: "2.0"
info: {title: t, version: "1"}
paths:
  /a:
    get:
      operationId: a
      responses: {}
  /b:
    $ref: "#/x-shared/item"
  /c:
    post:
      responses: {}
x-shared:
  item:
    parameters:
      - {name: q, in: query, type: string}
    get:
      responses: {}
`)
	assert.Equal(t, []string{"a", "get /b", "post /c"}, g.Operations().Keys())

	b, ok := g.Root().Paths.Get("/b")
	require.True(t, ok)
	require.NotNil(t, b.Target())
	assert.Equal(t, "#/x-shared/item", b.Target().Origin())

	op := g.Operation("get /b")
	require.NotNil(t, op)
	assert.Same(t, b.Resolved().Get, op)
	assert.Equal(t, "get /b", op.Name())
	assert.Equal(t, "/b", op.URLPath())
	assert.Same(t, b.Target(), op.PathItem())
	assert.NotNil(t, op.Parameter("q", "query"), "path-level parameters of the target")
}

func TestFlatten_PathItemRefDuplicate(t *testing.T) {
	_, err := loadText(t, `swagger: "2.0"
info: {title: t, version: "1"}
paths:
  /a:
    get:
      operationId: shared
      responses: {}
  /b:
    $ref: "#/x-shared/item"
x-shared:
  item:
    get:
      operationId: shared
      responses: {}
`)
	assert.ErrorIs(t, err, oaserrors.ErrDuplicateName)
	var derr *oaserrors.DuplicateNameError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "#/x-shared/item/get", derr.Path)
	assert.Equal(t, "#/paths/~1a/get", derr.FirstPath)
}
