package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasprim/internal/testutil"
	"github.com/erraggy/oasprim/oaserrors"
)

func TestBuild_Petstore(t *testing.T) {
	g := petstore(t)
	root := g.Root()
	require.NotNil(t, root)

	assert.Equal(t, KindSwagger, root.Kind())
	assert.Equal(t, "#", root.Origin())
	assert.Nil(t, root.Parent())
	assert.Equal(t, "2.0", root.Swagger)
	assert.Equal(t, "/v2", root.BasePath)
	assert.Equal(t, []string{"http"}, root.Schemes)

	require.NotNil(t, root.Info)
	assert.Equal(t, "Swagger Petstore", root.Info.Title)
	assert.Equal(t, "#/info", root.Info.Origin())
	assert.Same(t, root, root.Info.Parent())

	require.Len(t, root.Tags, 1)
	assert.Equal(t, "#/tags/0", root.Tags[0].Origin())
	assert.Equal(t, "pet", root.Tags[0].Name)

	assert.Equal(t,
		[]string{"Category", "Tag", "Pet", "User", "Employee", "Boss", "Animal", "Cat", "Dog", "Settings", "Node",
			"int", "num_multipleOf", "str_enum", "str_pattern", "byte", "date", "date-time", "uuid", "email",
			"unique", "nested", "file"},
		root.Definitions.Keys(),
		"definitions keep document order")

	pet := g.Schema("#/definitions/Pet")
	require.NotNil(t, pet)
	assert.Equal(t, "Pet", pet.Name())
	assert.Equal(t, TypeObject, pet.Type)
	assert.Equal(t, []string{"name", "photoUrls"}, pet.Required)
	assert.Equal(t, []string{"id", "category", "name", "photoUrls", "tags", "status"}, pet.Properties.Keys())

	name, ok := pet.Properties.Get("name")
	require.True(t, ok)
	assert.Equal(t, "doggie", name.Example)
	assert.Equal(t, "#/definitions/Pet/properties/name", name.Origin())
	assert.Same(t, pet, name.Parent())

	status, _ := pet.Properties.Get("status")
	assert.Equal(t, []any{"available", "pending", "sold"}, status.Enum)

	intDef := g.Schema("#/definitions/int")
	require.NotNil(t, intDef)
	require.NotNil(t, intDef.Maximum)
	assert.Equal(t, "100", intDef.Maximum.RatString())
	assert.Equal(t, "0", intDef.Minimum.RatString())
	assert.Nil(t, intDef.MultipleOf)

	settings := g.Schema("#/definitions/Settings")
	require.NotNil(t, settings.AdditionalProperties)
	assert.Equal(t, TypeInteger, settings.AdditionalProperties.Type)
	assert.Nil(t, settings.AdditionalPropertiesAllowed)
}

func TestBuild_ExactBounds(t *testing.T) {
	g := mustLoad(t, testutil.Minimal(`  big:
    type: integer
    format: int64
    maximum: 9007199254740993
    minimum: -9007199254740993
  cents:
    type: number
    multipleOf: 0.01
`))
	big := g.Schema("#/definitions/big")
	assert.Equal(t, "9007199254740993", big.Maximum.RatString())
	assert.Equal(t, "-9007199254740993", big.Minimum.RatString())
	assert.Equal(t, "1/100", g.Schema("#/definitions/cents").MultipleOf.RatString())

	_, err := loadText(t, testutil.Minimal("  A:\n    type: number\n    maximum: .inf\n"), WithValidateStructure(false))
	var lerr *oaserrors.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "#/definitions/A/maximum", lerr.Path)
}

func TestBuild_Defaults(t *testing.T) {
	g := mustLoad(t, testutil.Minimal("  A:\n    type: string\n"))
	assert.Equal(t, "/", g.Root().BasePath)
	assert.Nil(t, g.Root().ExternalDocs, "absent object fields stay nil")
	assert.Empty(t, g.Root().Tags)
}

func TestBuild_Extensions(t *testing.T) {
	g := petstore(t)
	dog := g.Schema("#/definitions/Dog")
	require.NotNil(t, dog)

	v, ok := dog.Extension("x-discriminator-value")
	require.True(t, ok)
	assert.Equal(t, "doggo", v)
	assert.Equal(t, map[string]any{"x-discriminator-value": "doggo"}, dog.Extensions())

	_, ok = dog.Extension("x-missing")
	assert.False(t, ok)

	op := g.Operation("getPetById")
	require.NotNil(t, op)
	assert.Equal(t, []string{"200"}, op.Responses.Keys(), "vendor keys are not response codes")
}

func TestBuild_UnknownKeysIgnored(t *testing.T) {
	g := mustLoad(t, testutil.Minimal("  A:\n    type: string\n    colour: blue\n    nullable: true\n"))
	a := g.Schema("#/definitions/A")
	require.NotNil(t, a)
	assert.Equal(t, TypeString, a.Type)
	assert.Nil(t, a.Extensions())
}

func TestBuild_OriginPathsEscaped(t *testing.T) {
	g := petstore(t)
	item := g.Resolve("#/paths/~1pet~1{petId}")
	require.NotNil(t, item)
	assert.Equal(t, KindPathItem, item.Kind())

	p := g.Resolve("#/paths/~1pet~1{petId}/parameters/0")
	require.NotNil(t, p)
	assert.Equal(t, "petId", p.(*Parameter).Name)
}

func TestBuild_Malformed(t *testing.T) {
	tests := []struct {
		name string
		defs string
		path string
	}{
		{
			name: "sequence expected",
			defs: "  A:\n    allOf: {type: string}\n",
			path: "#/definitions/A/allOf",
		},
		{
			name: "mapping expected",
			defs: "  A:\n    properties:\n      b: 12\n",
			path: "#/definitions/A/properties/b",
		},
		{
			name: "scalar type mismatch",
			defs: "  A:\n    type: [string]\n",
			path: "#/definitions/A/type",
		},
		{
			name: "negative length",
			defs: "  A:\n    type: string\n    maxLength: -1\n",
			path: "#/definitions/A/maxLength",
		},
		{
			name: "required is not a list of names",
			defs: "  A:\n    required: [1]\n",
			path: "#/definitions/A/required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadText(t, testutil.Minimal(tt.defs))
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrLoad)

			var lerr *oaserrors.LoadError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, tt.path, lerr.Path)
			assert.Equal(t, "api.yaml", lerr.Document)
		})
	}
}

func TestFields(t *testing.T) {
	fields := Fields(KindSwagger)
	require.NotEmpty(t, fields)
	assert.Equal(t, "swagger", fields[0].Name)

	byName := make(map[string]Field)
	for _, f := range fields {
		byName[f.Name] = f
	}
	assert.Equal(t, "/", byName["basePath"].Default)
	assert.Equal(t, ShapeMap, byName["definitions"].Shape)
	assert.Equal(t, KindSchema, byName["definitions"].Kind)
	assert.Equal(t, ShapeList, byName["tags"].Shape)

	schemaFields := make(map[string]Shape)
	for _, f := range Fields(KindSchema) {
		schemaFields[f.Name] = f.Shape
	}
	assert.Equal(t, ShapeObjectOrBool, schemaFields["additionalProperties"])
	assert.Equal(t, ShapeScalar, schemaFields["multipleOf"])

	assert.Nil(t, Fields(Kind(99)))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Schema", KindSchema.String())
	assert.Equal(t, "SecurityScheme", KindSecurityScheme.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestNamed(t *testing.T) {
	var empty *Named[*Schema]
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Keys())
	_, ok := empty.Get("x")
	assert.False(t, ok)
	for range empty.All() {
		t.Fatal("nil Named must not yield")
	}

	n := newNamed[int](2)
	n.set("b", 1)
	n.set("a", 2)
	n.set("b", 3)
	assert.Equal(t, []string{"b", "a"}, n.Keys())
	assert.Equal(t, []int{3, 2}, n.Values())

	var keys []string
	for k := range n.All() {
		keys = append(keys, k)
		break
	}
	assert.Equal(t, []string{"b"}, keys)
}
