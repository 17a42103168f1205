package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the configuration file, with nested
// definitions inlined.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	s := r.Reflect(&Config{})
	s.Title = "recordkit pipeline"
	return json.MarshalIndent(s, "", "  ")
}
