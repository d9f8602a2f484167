package totosca

import (
	"strconv"

	"descriptor-translator/internal/constraint"
	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/tree"
)

const defaultInputType = "string"

// inputs maps input-parameter records to topology inputs.
func (b *Builder) inputs(records []*tree.Map) error {
	for i, in := range records {
		name, ok := in.GetString("name")
		if !ok || name == "" {
			return diagnostic.Validationf(strconv.Itoa(i), ListInputs, "input parameter has no name")
		}

		input := tree.MapOf("type", in.StringOr("data-type", defaultInputType))

		if d, ok := in.GetString("description"); ok {
			input.Set("description", d)
		}

		if v, ok := in.Get("default-value"); ok {
			input.Set("default", tree.Clone(v))
		}

		if entries := in.Maps("constraint"); len(entries) > 0 {
			clauses, err := constraint.ReverseAll(entries)
			if err != nil {
				return diagnostic.Attribute(err, name, ListInputs)
			}

			list := make([]any, len(clauses))
			for j, c := range clauses {
				list[j] = c.Clause()
			}

			input.Set("constraints", list)
		}

		b.inputsMap.Set(name, input)
	}

	return nil
}
