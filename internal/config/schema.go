package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns a JSON Schema for config.yaml.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	sch := r.Reflect(&File{})
	sch.Title = "aiup config"
	sch.Description = "~/.aiup/config.yaml (YAML; this schema applies to its JSON form)"
	return sch
}

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}
