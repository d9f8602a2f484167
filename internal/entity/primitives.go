package entity

import (
	"slices"

	"descriptor-translator/internal/match"
	"descriptor-translator/internal/tree"
)

// ConfigPrimitives translates a service primitives policy. Each property is one
// primitive: the key is its name, kept verbatim, and the value its body.
type ConfigPrimitives struct {
	Base
	names   []string
	records []*tree.Map
}

// NewConfigPrimitives is the Constructor of ConfigPrimitives.
func NewConfigPrimitives(src *Source) Translator {
	return &ConfigPrimitives{Base: newBase(src, KindConfigPrimitives)}
}

func (c *ConfigPrimitives) HandleProperties(ctx *Context) error {
	var err error

	c.src.Properties.Range(func(name string, v any) bool {
		body, ok := v.(*tree.Map)
		if !ok && v != nil {
			err = c.invalid("primitive %q must be a mapping", name)
			return false
		}

		rec := tree.MapOf("name", name)

		ctx.Keys.RenameMap(body, match.ToYANG).Range(func(k string, item any) bool {
			if k != "name" {
				rec.Set(k, item)
			}

			return true
		})

		if script, ok := rec.GetString("user-defined-script"); ok {
			ctx.Files.AddScript(script)
		}

		c.names = append(c.names, name)
		c.records = append(c.records, rec)
		c.props.Set(name, rec)

		return true
	})

	return err
}

// HasPrimitive implements PrimitiveSet.
func (c *ConfigPrimitives) HasPrimitive(name string) bool {
	return slices.Contains(c.names, name)
}

// Names returns the primitive names in declaration order.
func (c *ConfigPrimitives) Names() []string {
	return slices.Clone(c.names)
}

func (c *ConfigPrimitives) GenerateOutput(out *Output) error {
	for _, rec := range c.records {
		out.AppendNSD("service-primitive", rec)
	}

	return nil
}

// InitialConfigPrimitive translates an initial config primitive policy.
type InitialConfigPrimitive struct {
	Base
}

// NewInitialConfigPrimitive is the Constructor of InitialConfigPrimitive.
func NewInitialConfigPrimitive(src *Source) Translator {
	return &InitialConfigPrimitive{Base: newBase(src, KindInitialConfigPrimitive)}
}

func (p *InitialConfigPrimitive) HandleProperties(ctx *Context) error {
	props := p.renamed(ctx)

	seq, err := p.requireInt(props, "seq")
	if err != nil {
		return err
	}

	props.Set("seq", seq)
	props.SetDefault("name", p.src.Name)

	if script, ok := props.GetString("user-defined-script"); ok {
		ctx.Files.AddScript(script)
	}

	p.props = props

	return nil
}

func (p *InitialConfigPrimitive) GenerateOutput(out *Output) error {
	out.AppendNSD("initial-config-primitive", p.props)
	return nil
}
