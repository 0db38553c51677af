package personas

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

//go:embed schema.json
var fileSchemaJSON []byte

var (
	schemaOnce sync.Once
	fileSchema *jsonschema.Schema
	schemaErr  error
)

// file is the on-disk persona file layout.
type file struct {
	Personas []Persona `yaml:"personas"`
}

// Default returns a registry with the built-in personas.
func Default() *Registry {
	reg, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in personas are invalid: %v", err))
	}
	return reg
}

// Load reads a persona file from disk. An empty path yields the built-in set.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file: %w", err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("persona file %s: %w", path, err)
	}
	return reg, nil
}

// Parse validates YAML persona data against the persona file schema
// and builds a registry in file order.
func Parse(data []byte) (*Registry, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode personas: %w", err)
	}
	return NewRegistry(f.Personas)
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("personas.json", bytes.NewReader(fileSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to load persona schema: %w", err)
			return
		}
		fileSchema, schemaErr = compiler.Compile("personas.json")
	})
	return fileSchema, schemaErr
}

// validateDocument round-trips YAML through JSON so the validator sees
// plain JSON values.
func validateDocument(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode personas: %w", err)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("persona file is not representable as JSON: %w", err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("failed to decode personas: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("persona file does not match schema: %w", err)
	}
	return nil
}
