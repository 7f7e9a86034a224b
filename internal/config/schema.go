package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema describing the YAML configuration file,
// so editors can validate hand-written configs.
func Schema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		FieldNameTag:   "yaml",
		DoNotReference: true,
	}
	schema := reflector.Reflect(new(SoundlessConfig))
	if schema == nil {
		return nil, fmt.Errorf("failed to reflect config schema")
	}
	schema.Title = "Soundless configuration"
	schema.Description = "Tuning for the stages and swarm rule sets"
	return schema, nil
}

// SchemaJSON returns the indented JSON encoding of Schema.
func SchemaJSON() ([]byte, error) {
	schema, err := Schema()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
