package resolve

import (
	"github.com/sirupsen/logrus"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/entity"
	"descriptor-translator/internal/match"
	"descriptor-translator/internal/tree"
)

const maxSuggestions = 3

// Resolver resolves the cross references of one unit.
type Resolver struct {
	unit *entity.Unit
	log  logrus.FieldLogger

	// HasPrimitive reports whether a service primitive is declared in the unit.
	HasPrimitive func(name string) bool

	hostedBy map[string]string
}

// New creates a Resolver for unit. A nil log uses the standard logger.
func New(unit *entity.Unit, log logrus.FieldLogger) *Resolver {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Resolver{
		unit:         unit,
		log:          log,
		HasPrimitive: unit.HasPrimitive,
		hostedBy:     make(map[string]string),
	}
}

// Resolve resolves every reference. The first failure aborts resolution.
func (r *Resolver) Resolve() error {
	for _, t := range r.unit.Entities() {
		if err := r.resolveEntity(t); err != nil {
			return err
		}
	}

	for _, c := range r.unit.OfKind(entity.KindCompute) {
		if _, ok := r.hostedBy[c.Name()]; !ok {
			return diagnostic.Validationf(c.Name(), c.Type(),
				"compute node is not a member of any VNF component group")
		}
	}

	return nil
}

func (r *Resolver) resolveEntity(t entity.Translator) error {
	var boundTo entity.VNFTarget

	for _, ref := range t.References() {
		log := r.log.WithFields(logrus.Fields{
			"entity": t.Name(),
			"type":   t.Type(),
			"ref":    ref.Kind.String(),
			"target": ref.To,
		})

		var err error

		switch ref.Kind {
		case entity.RefHosts:
			err = r.hosts(t, ref)
		case entity.RefVirtualBinding:
			boundTo, err = r.virtualBinding(t, ref)
		case entity.RefVirtualLink:
			err = r.virtualLink(t, ref, boundTo)
		case entity.RefScalingMember:
			err = r.scalingMember(t, ref)
		case entity.RefConfigAction:
			err = r.configAction(t, ref)
		default:
			err = &diagnostic.InternalError{Entity: t.Name(), EntityType: t.Type(),
				Err: errUnknownRef(ref.Kind)}
		}

		if err != nil {
			return err
		}

		log.Debug("reference resolved")
	}

	return nil
}

// target looks up a node of the wanted kind.
func (r *Resolver) target(from entity.Translator, ref entity.CrossReference, name string, want entity.Kind) (entity.Translator, error) {
	t, ok := r.unit.Get(name)
	if !ok {
		return nil, diagnostic.Validationf(from.Name(), from.Type(),
			"unknown %s target %q", ref.Kind, name).
			WithSuggestions(match.Suggest(name, r.unit.Names(want), maxSuggestions))
	}

	if t.Kind() != want {
		return nil, diagnostic.Validationf(from.Name(), from.Type(),
			"%s target %q is a %s node, expected %s", ref.Kind, name, t.Kind(), want)
	}

	return t, nil
}

func (r *Resolver) vnf(from entity.Translator, ref entity.CrossReference, name string) (entity.VNFTarget, error) {
	t, err := r.target(from, ref, name, entity.KindVNF)
	if err != nil {
		return nil, err
	}

	vnf, ok := t.(entity.VNFTarget)
	if !ok {
		return nil, &diagnostic.InternalError{Entity: t.Name(), EntityType: t.Type(),
			Err: errNotVNFTarget}
	}

	return vnf, nil
}

func (r *Resolver) hosts(group entity.Translator, ref entity.CrossReference) error {
	compute, err := r.target(group, ref, ref.To, entity.KindCompute)
	if err != nil {
		return err
	}

	vnf, err := r.vnf(group, ref, ref.Owner)
	if err != nil {
		return err
	}

	if owner, hosted := r.hostedBy[compute.Name()]; hosted {
		return diagnostic.Validationf(compute.Name(), compute.Type(),
			"compute node is a member of both %q and %q", owner, vnf.Name())
	}

	r.hostedBy[compute.Name()] = vnf.Name()
	vnf.Properties().Append("vdu", compute.Properties())

	return nil
}

func (r *Resolver) virtualBinding(port entity.Translator, ref entity.CrossReference) (entity.VNFTarget, error) {
	compute, err := r.target(port, ref, ref.To, entity.KindCompute)
	if err != nil {
		return nil, err
	}

	owner, ok := r.unit.OwnerOf(compute.Name())
	if !ok {
		return nil, diagnostic.Validationf(port.Name(), port.Type(),
			"virtualBinding target %q is not a member of any VNF", compute.Name())
	}

	vnf, ok := owner.(entity.VNFTarget)
	if !ok {
		return nil, &diagnostic.InternalError{Entity: owner.Name(), EntityType: owner.Type(), Err: errNotVNFTarget}
	}

	props := port.Properties()
	cpName, _ := props.GetString(entity.PortName)
	cpType, _ := props.GetString(entity.PortType)
	intfName, _ := props.GetString(entity.PortIntfName)
	intfType, _ := props.GetString(entity.PortIntfType)

	vnf.Properties().Append("connection-point", tree.MapOf(
		"name", cpName,
		"type", cpType,
	))

	compute.Properties().Append("external-interface", tree.MapOf(
		"name", intfName,
		"virtual-interface", tree.MapOf("type", intfType),
		"connection-point-ref", cpName,
	))

	return vnf, nil
}

func (r *Resolver) virtualLink(port entity.Translator, ref entity.CrossReference, vnf entity.VNFTarget) error {
	network, err := r.target(port, ref, ref.To, entity.KindNetwork)
	if err != nil {
		return err
	}

	if vnf == nil {
		return diagnostic.Validationf(port.Name(), port.Type(),
			"virtualLink to %q has no resolved virtualBinding", ref.To)
	}

	cpName, _ := port.Properties().GetString(entity.PortName)

	network.Properties().Append("vnfd-connection-point-ref", tree.MapOf(
		"member-vnf-index-ref", vnf.MemberIndex(),
		"vnfd-id-ref", vnf.ID(),
		"vnfd-connection-point-ref", cpName,
	))

	return nil
}

func (r *Resolver) scalingMember(group entity.Translator, ref entity.CrossReference) error {
	vnf, err := r.vnf(group, ref, ref.To)
	if err != nil {
		return err
	}

	group.Properties().Append("vnfd-member", tree.MapOf(
		"member-vnf-index-ref", vnf.MemberIndex(),
		"count", ref.Count,
	))

	return nil
}

func (r *Resolver) configAction(group entity.Translator, ref entity.CrossReference) error {
	if !r.HasPrimitive(ref.To) {
		return diagnostic.Validationf(group.Name(), group.Type(),
			"config action %q names unknown primitive %q", ref.Trigger, ref.To).
			WithSuggestions(match.Suggest(ref.To, r.unit.Primitives(), maxSuggestions))
	}

	group.Properties().Append("scaling-config-action", tree.MapOf(
		"trigger", ref.Trigger,
		"ns-service-primitive-name-ref", ref.To,
	))

	return nil
}
