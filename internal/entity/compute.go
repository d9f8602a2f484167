package entity

import (
	"path"

	"descriptor-translator/internal/match"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/tree"
)

// Compute translates a VDU node into a vdu record. The record is appended to
// its owning VNF by the resolver, so it has no output of its own.
type Compute struct {
	Base
}

// NewCompute is the Constructor of Compute.
func NewCompute(src *Source) Translator {
	return &Compute{Base: newBase(src, KindCompute)}
}

func (c *Compute) HandleProperties(ctx *Context) error {
	props := c.renamed(ctx)

	props.SetDefault("id", c.src.Name)
	props.SetDefault("name", c.src.Name)
	coerceStringLeaves(props)

	if err := c.mapFlavor(ctx, props); err != nil {
		return err
	}

	if err := c.mapImage(ctx, props); err != nil {
		return err
	}

	if script, ok := props.GetString("cloud-init-file"); ok {
		ctx.Files.AddScript(script)
	}

	c.props = props

	return nil
}

// mapFlavor turns capabilities.host.properties into vm-flavor.
func (c *Compute) mapFlavor(ctx *Context, props *tree.Map) error {
	host := c.src.Capabilities.GetMap("host").GetMap("properties")
	if host.Len() == 0 {
		return nil
	}

	flavor := ctx.Keys.RenameMap(host, match.ToYANG)

	for key, unit := range map[string]string{"memory-mb": "MB", "storage-gb": "GB"} {
		raw, ok := flavor.Get(key)
		if !ok {
			continue
		}

		n, err := ScalarSize(raw, unit)
		if err != nil {
			return c.invalid("host capability %s: %v", key, err)
		}

		flavor.Set(key, n)
	}

	props.Set("vm-flavor", flavor)

	return nil
}

// mapImage takes the first image artifact as the vdu image.
func (c *Compute) mapImage(ctx *Context, props *tree.Map) error {
	var found bool

	c.src.Artifacts.Range(func(name string, v any) bool {
		art, ok := v.(*tree.Map)
		if !ok {
			return true
		}

		if t, ok := art.GetString("type"); ok && t != tosca.ArtifactQCOW2 {
			ctx.Logger(c).WithField("artifact", name).Debugf("skipping artifact of type %s", t)
			return true
		}

		image := name
		if file, ok := art.GetString("file"); ok && file != "" {
			image = path.Base(file)
		}

		props.Set("image", image)

		if sum, ok := art.Get("image_checksum"); ok {
			props.Set("image-checksum", sum)
		}

		found = true

		return false
	})

	if image, ok := props.GetString("image"); ok {
		ctx.Files.AddImage(image)
	} else if c.src.Artifacts.Len() > 0 && !found {
		return c.invalid("artifacts declare no %s image", tosca.ArtifactQCOW2)
	}

	return nil
}

func (c *Compute) GenerateOutput(*Output) error {
	return nil
}
