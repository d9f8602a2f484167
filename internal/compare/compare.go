package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/ghodss/yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"descriptor-translator/internal/tree"
)

// DefaultOrderless lists the keys whose lists are compared regardless of order.
var DefaultOrderless = []string{
	"allowedValues",
	"dependsOn",
	"vnfd",
	"constituent-vnfd",
	"vnfd-connection-point-ref",
	"external-interface",
	"connection-point",
	"vnfd-member",
	"scaling-config-action",
	"service-primitive",
}

// Options configures an Engine.
type Options struct {
	// OrderlessKeys are added to DefaultOrderless.
	OrderlessKeys []string
	// Debug dumps the normalized trees to the log at debug level.
	Debug bool
	Log   logrus.FieldLogger
}

// Engine compares descriptor trees.
type Engine struct {
	orderless map[string]bool
	debug     bool
	log       logrus.FieldLogger
}

// New creates an Engine.
func New(opts Options) *Engine {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	orderless := make(map[string]bool)
	for _, k := range slices.Concat(DefaultOrderless, opts.OrderlessKeys) {
		orderless[k] = true
	}

	return &Engine{orderless: orderless, debug: opts.Debug, log: log}
}

// Compare reports the differences between expected and generated.
func (e *Engine) Compare(expected, generated any) *Report {
	exp := e.Normalize(expected)
	gen := e.Normalize(generated)

	if e.debug {
		e.log.Debugf("normalized expected tree:\n%s", spew.Sdump(exp))
		e.log.Debugf("normalized generated tree:\n%s", spew.Sdump(gen))
	}

	r := &Report{}
	walk("", exp, gen, &r.Differences)

	if !r.Equal() {
		r.Diff = cmp.Diff(exp, gen)
	}

	e.log.WithField("differences", len(r.Differences)).Debug("descriptors compared")

	return r
}

// Normalize converts v to plain maps, lists and scalars with float64 numbers
// and sorted orderless lists.
func (e *Engine) Normalize(v any) any {
	return e.normalize("", v)
}

func (e *Engine) normalize(key string, v any) any {
	switch t := v.(type) {
	case *tree.Map:
		out := make(map[string]any, t.Len())
		t.Range(func(k string, item any) bool {
			out[k] = e.normalize(k, item)
			return true
		})

		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = e.normalize(k, item)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = e.normalize(key, item)
		}

		if e.orderless[key] {
			sortCanonical(out)
		}

		return out
	default:
		if f, ok := tree.ToFloat(v); ok {
			return f
		}

		return v
	}
}

// sortCanonical sorts normalized values by their JSON encoding, which has
// sorted object keys.
func sortCanonical(list []any) {
	keys := make(map[int]string, len(list))

	for i, item := range list {
		data, err := json.Marshal(item)
		if err != nil {
			data = []byte(fmt.Sprintf("%#v", item))
		}

		keys[i] = string(data)
	}

	idx := make([]int, len(list))
	for i := range idx {
		idx[i] = i
	}

	slices.SortStableFunc(idx, func(a, b int) int { return strings.Compare(keys[a], keys[b]) })

	sorted := make([]any, len(list))
	for i, j := range idx {
		sorted[i] = list[j]
	}

	copy(list, sorted)
}

func walk(path string, exp, gen any, out *[]Difference) {
	ek, gk := kindOf(exp), kindOf(gen)
	if ek != gk {
		*out = append(*out, Difference{Path: path, Kind: TypeChanged, Expected: exp, Generated: gen})
		return
	}

	switch ek {
	case "map":
		em, gm := exp.(map[string]any), gen.(map[string]any)

		for _, k := range unionKeys(em, gm) {
			ev, inExp := em[k]
			gv, inGen := gm[k]
			p := join(path, k)

			switch {
			case !inGen:
				*out = append(*out, Difference{Path: p, Kind: Removed, Expected: ev})
			case !inExp:
				*out = append(*out, Difference{Path: p, Kind: Added, Generated: gv})
			default:
				walk(p, ev, gv, out)
			}
		}
	case "list":
		el, gl := exp.([]any), gen.([]any)

		for i := range max(len(el), len(gl)) {
			p := fmt.Sprintf("%s[%d]", path, i)

			switch {
			case i >= len(gl):
				*out = append(*out, Difference{Path: p, Kind: Removed, Expected: el[i]})
			case i >= len(el):
				*out = append(*out, Difference{Path: p, Kind: Added, Generated: gl[i]})
			default:
				walk(p, el[i], gl[i], out)
			}
		}
	default:
		if !cmp.Equal(exp, gen) {
			*out = append(*out, Difference{Path: path, Kind: ValueChanged, Expected: exp, Generated: gen})
		}
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case map[string]any:
		return "map"
	case []any:
		return "list"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func unionKeys(a, b map[string]any) []string {
	keys := tree.SortedKeys(a)
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}

	slices.Sort(keys)

	return keys
}

func join(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

// LoadFile reads a descriptor in the given format (yaml or json).
func LoadFile(path, format string) (*tree.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	switch format {
	case "", "yaml":
	case "json":
		if data, err = yaml.JSONToYAML(data); err != nil {
			return nil, errors.Wrapf(err, "%s is not valid JSON", path)
		}
	default:
		return nil, errors.Errorf("unknown descriptor format %q", format)
	}

	m, err := tree.DecodeMap(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	return m, nil
}
