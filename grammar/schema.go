package grammar

import (
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

// Schema returns a JSON schema for grammar files, suitable for editor
// validation of YAML and JSON grammars. The type property enumerates the
// parser types registered at call time.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}
	s := r.Reflect(&Node{})
	s.Title = "aocp grammar"

	if def, ok := s.Definitions["Node"]; ok && def.Properties != nil {
		if typ, ok := def.Properties.Get("type"); ok {
			typ.Enum = lo.ToAnySlice(Types())
		}
	}
	return s
}
