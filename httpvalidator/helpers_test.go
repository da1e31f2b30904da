package httpvalidator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasprim/internal/testutil"
	"github.com/erraggy/oasprim/parser"
)

func loadText(t *testing.T, text string) *parser.Graph {
	t.Helper()
	g, err := parser.Load(context.Background(), "api.yaml", parser.WithStore(testutil.Single("api.yaml", text)))
	require.NoError(t, err)
	return g
}

func newValidator(t *testing.T, text string, opts ...Option) *Validator {
	t.Helper()
	v, err := New(loadText(t, text), opts...)
	require.NoError(t, err)
	return v
}

// uploads exercises form data, consumes and response headers.
const uploads = `swagger: "2.0"
info: {title: Uploads, version: "1"}
basePath: /
consumes: [application/json]
paths:
  /files/{name}:
    post:
      operationId: upload
      consumes: [multipart/form-data, application/x-www-form-urlencoded]
      parameters:
        - {name: name, in: path, required: true, type: string, pattern: "[a-z]+"}
        - {name: content, in: formData, type: file}
        - {name: note, in: formData, type: string, maxLength: 5}
        - {name: tags, in: formData, type: array, items: {type: string}, collectionFormat: multi}
      responses:
        "201":
          description: created
          headers:
            X-Rate-Limit: {type: integer, minimum: 0}
  /things:
    post:
      operationId: addThing
      parameters:
        - name: body
          in: body
          required: true
          schema:
            type: object
            required: [id]
            properties:
              id: {type: integer}
      responses:
        default: {description: ok}
`
