package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// quizSchema is the JSON schema every quiz definition file must satisfy.
// Cross-field rules (correct_index < len(options)) are enforced by
// Quiz.Validate after unmarshalling.
const quizSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["module_id", "phases"],
	"properties": {
		"module_id": {"type": "string", "minLength": 1},
		"phases": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "questions"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"questions": {
						"type": "array",
						"minItems": 1,
						"items": {
							"type": "object",
							"required": ["prompt", "options", "correct_index"],
							"properties": {
								"prompt": {"type": "string", "minLength": 1},
								"options": {
									"type": "array",
									"minItems": 1,
									"items": {"type": "string"}
								},
								"correct_index": {"type": "integer", "minimum": 0}
							}
						}
					}
				}
			}
		}
	}
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// getSchema compiles the embedded quiz schema once.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(quizSchema)))
		if err != nil {
			compileErr = fmt.Errorf("parse quiz schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://quiz.json", doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://quiz.json")
	})
	return compiledSchema, compileErr
}

// Parse unmarshals and validates a quiz definition. The raw JSON is
// checked against the embedded schema first, then against the
// cross-field invariants.
func Parse(raw []byte) (*Quiz, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var q Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("unmarshal quiz: %w", err)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

// LoadFile reads and parses a quiz definition from a JSON file.
func LoadFile(path string) (*Quiz, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	q, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return q, nil
}
