package parser

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/rawdoc"
)

//go:embed schemas/swagger-2.0-core.json
var structureSchemaJSON []byte

const structureSchemaURL = "swagger-2.0-core.json"

var (
	structureOnce   sync.Once
	structureSchema *jsonschema.Schema
	structureErr    error
)

func compiledStructureSchema() (*jsonschema.Schema, error) {
	structureOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(structureSchemaJSON))
		if err != nil {
			structureErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(structureSchemaURL, doc); err != nil {
			structureErr = err
			return
		}
		structureSchema, structureErr = c.Compile(structureSchemaURL)
	})
	return structureSchema, structureErr
}

// checkStructure validates the top-level shape of a Swagger document before
// it is built.
func checkStructure(id string, raw any) error {
	sch, err := compiledStructureSchema()
	if err != nil {
		return &oaserrors.LoadError{Document: id, Message: "failed to compile structure schema", Cause: err}
	}
	data, err := json.Marshal(rawdoc.Plain(raw))
	if err != nil {
		return &oaserrors.LoadError{Document: id, Path: "#", Message: "document is not representable as JSON", Cause: err}
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &oaserrors.LoadError{Document: id, Path: "#", Message: "document is not representable as JSON", Cause: err}
	}
	if err := sch.Validate(inst); err != nil {
		return &oaserrors.LoadError{Document: id, Path: "#", Message: "document does not match the Swagger 2.0 structure", Cause: err}
	}
	return nil
}
