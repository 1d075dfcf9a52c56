package scene

import "github.com/invopop/jsonschema"

// BuildSchema reflects the persisted scene document into a JSON Schema so
// external tooling can validate exports without importing this module.
func BuildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Document))
	schema.Title = "Backstage Scene Document"
	schema.Description = "Validates exported stage scenes: object ids, subtypes, transforms, and visibility flags."
	return schema
}
