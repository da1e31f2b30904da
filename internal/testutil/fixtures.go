// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/rawdoc"
)

// Petstore is a Swagger 2.0 document exercising operations, shared parameters
// and responses, allOf inheritance, discriminators and the primitive formats.
const Petstore = `swagger: "2.0"
info:
  title: Swagger Petstore
  version: 1.0.0
host: petstore.example.com
basePath: /v2
schemes: [http]
tags:
  - name: pet
    description: Everything about your Pets
paths:
  /pet:
    post:
      tags: [pet]
      operationId: addPet
      parameters:
        - in: body
          name: body
          required: true
          schema:
            $ref: "#/definitions/Pet"
      responses:
        "405":
          description: Invalid input
    put:
      operationId: updatePet
      parameters:
        - $ref: "#/parameters/petBody"
      responses:
        default:
          $ref: "#/responses/generic"
  /pet/findByStatus:
    get:
      operationId: findPetsByStatus
      parameters:
        - name: status
          in: query
          required: true
          type: array
          collectionFormat: multi
          items:
            type: string
            enum: [available, pending, sold]
            default: available
      responses:
        "200":
          description: successful operation
          schema:
            type: array
            items:
              $ref: "#/definitions/Pet"
  /pet/{petId}:
    parameters:
      - name: petId
        in: path
        required: true
        type: integer
        format: int64
      - name: api_key
        in: header
        type: string
    get:
      operationId: getPetById
      responses:
        "200":
          description: successful operation
          schema:
            $ref: "#/definitions/Pet"
        x-internal: true
    delete:
      parameters:
        - name: api_key
          in: header
          required: true
          type: string
      responses:
        "400":
          description: Invalid ID supplied
  /t:
    get:
      operationId: collections
      parameters:
        - name: p1
          in: query
          type: array
          items:
            type: array
            items:
              type: array
              items:
                type: integer
        - name: limit
          in: header
          type: integer
          maximum: 100
          minimum: 0
        - name: ids
          in: header
          type: array
          items:
            type: integer
        - name: flags
          in: query
          type: array
          collectionFormat: pipes
          items:
            type: boolean
      responses:
        default:
          description: void
parameters:
  petBody:
    in: body
    name: body
    required: true
    schema:
      $ref: "#/definitions/Pet"
responses:
  generic:
    description: generic response
definitions:
  Category:
    type: object
    properties:
      id:
        type: integer
        format: int64
      name:
        type: string
  Tag:
    type: object
    properties:
      id:
        type: integer
        format: int64
      name:
        type: string
  Pet:
    type: object
    required: [name, photoUrls]
    properties:
      id:
        type: integer
        format: int64
      category:
        $ref: "#/definitions/Category"
      name:
        type: string
        example: doggie
      photoUrls:
        type: array
        items:
          type: string
      tags:
        type: array
        items:
          $ref: "#/definitions/Tag"
      status:
        type: string
        enum: [available, pending, sold]
  User:
    type: object
    required: [id, name]
    properties:
      id:
        type: integer
        format: int64
      name:
        type: string
  Employee:
    allOf:
      - $ref: "#/definitions/User"
      - type: object
        required: [skill_id]
        properties:
          skill_id:
            type: integer
          skill_name:
            type: string
  Boss:
    allOf:
      - $ref: "#/definitions/Employee"
      - type: object
        required: [boss_level]
        properties:
          boss_level:
            type: integer
  Animal:
    type: object
    discriminator: kind
    required: [kind]
    properties:
      kind:
        type: string
      name:
        type: string
  Cat:
    allOf:
      - $ref: "#/definitions/Animal"
      - type: object
        required: [purrs]
        properties:
          purrs:
            type: boolean
  Dog:
    x-discriminator-value: doggo
    allOf:
      - $ref: "#/definitions/Animal"
      - type: object
        properties:
          barks:
            type: boolean
  Settings:
    type: object
    additionalProperties:
      type: integer
  Node:
    type: object
    properties:
      value:
        type: integer
      children:
        type: array
        items:
          $ref: "#/definitions/Node"
  int:
    type: integer
    format: int32
    minimum: 0
    maximum: 100
  num_multipleOf:
    type: number
    multipleOf: 5
  str_enum:
    type: string
    enum: [red, green, blue]
  str_pattern:
    type: string
    pattern: "[a-z]+"
    minLength: 2
    maxLength: 5
  byte:
    type: string
    format: byte
  date:
    type: string
    format: date
  date-time:
    type: string
    format: date-time
  uuid:
    type: string
    format: uuid
  email:
    type: string
    format: email
  unique:
    type: array
    uniqueItems: true
    minItems: 1
    maxItems: 3
    items:
      type: integer
  nested:
    type: array
    items:
      type: array
      items:
        type: array
        items:
          type: integer
  file:
    type: file
`

// CrossDocument is a set of documents whose root references a fragment
// document (defs/pet.yaml) and a definitions-only document
// (defs/common.yaml), with a reference back into the root.
var CrossDocument = map[string]string{
	"api.yaml": `swagger: "2.0"
info:
  title: Orders
  version: "1.0"
paths:
  /orders:
    get:
      operationId: listOrders
      responses:
        "200":
          description: ok
          schema:
            $ref: "defs/common.yaml#/definitions/OrderList"
definitions:
  Owner:
    type: object
    properties:
      name:
        type: string
  Pet:
    $ref: "defs/pet.yaml"
  Price:
    $ref: "defs/common.yaml#/definitions/Money"
  Alias:
    $ref: "#/definitions/Price"
`,
	"defs/pet.yaml": `type: object
required: [name]
properties:
  name:
    type: string
  owner:
    $ref: "../api.yaml#/definitions/Owner"
`,
	"defs/common.yaml": `definitions:
  Money:
    type: object
    properties:
      amount:
        type: number
      currency:
        $ref: "#/definitions/Currency"
  Currency:
    type: string
    enum: [EUR, USD]
  OrderList:
    type: array
    items:
      $ref: "#/definitions/Money"
`,
}

// Minimal wraps a definitions block into an otherwise empty Swagger document.
func Minimal(definitions string) string {
	return "swagger: \"2.0\"\ninfo:\n  title: t\n  version: \"1\"\npaths: {}\ndefinitions:\n" + definitions
}

// Docs is an in-memory document store over YAML texts that counts fetches.
// Its Fetch method satisfies parser.DocumentStore.
type Docs struct {
	mu      sync.Mutex
	texts   map[string]string
	fetches map[string]int
}

// NewDocs creates a store over YAML or JSON texts keyed by identifier.
func NewDocs(texts map[string]string) *Docs {
	return &Docs{texts: texts, fetches: make(map[string]int)}
}

// Single creates a store holding one document.
func Single(id, text string) *Docs {
	return NewDocs(map[string]string{id: text})
}

// Fetch decodes the text stored under id.
func (d *Docs) Fetch(_ context.Context, id string) (any, error) {
	d.mu.Lock()
	d.fetches[id]++
	text, ok := d.texts[id]
	d.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", oaserrors.ErrNotFound, id)
	}
	return rawdoc.Decode([]byte(text))
}

// Fetches returns how many times id was fetched.
func (d *Docs) Fetches(id string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fetches[id]
}

// MustDecode decodes a YAML or JSON text, failing the test on error.
func MustDecode(t testing.TB, text string) any {
	t.Helper()
	v, err := rawdoc.Decode([]byte(text))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}
