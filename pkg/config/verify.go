package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Unknown keys and numbers outside minimum/maximum are reported, one violation per entry.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(configData, &values); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return verifyValues(values)
}

// verifyValues checks a decoded config document against the embedded schema
func verifyValues(values map[string]any) error {
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}
	// refs are local, resolve them against the document itself
	delete(schema, "$schema")
	delete(schema, "$id")

	res, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(values))
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	if res.Valid() {
		return nil
	}

	errs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		errs = append(errs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	sort.Strings(errs)
	return fmt.Errorf("validation failed: %s", strings.Join(errs, "; "))
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
