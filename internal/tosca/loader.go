package tosca

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/tree"
)

var validate = validator.New()

// LoadFile loads and parses a service template from the given path.
func LoadFile(path string) (*ServiceTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service template %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML (or JSON) data into a ServiceTemplate.
func Parse(data []byte) (*ServiceTemplate, error) {
	var st ServiceTemplate

	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse service template: %w", err)
	}

	if err := Validate(&st); err != nil {
		return nil, err
	}

	return &st, nil
}

// FromTree converts an already decoded document into a ServiceTemplate.
func FromTree(doc *tree.Map) (*ServiceTemplate, error) {
	node, err := tree.EncodeOptions{}.Node(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode service template: %w", err)
	}

	var st ServiceTemplate
	if err := node.Decode(&st); err != nil {
		return nil, fmt.Errorf("failed to decode service template: %w", err)
	}

	if err := Validate(&st); err != nil {
		return nil, err
	}

	return &st, nil
}

// Validate checks required fields. The first violation is reported as a ValidationError.
func Validate(st *ServiceTemplate) error {
	err := validate.Struct(st)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &diagnostic.InternalError{Err: err}
	}

	fe := verrs[0]

	return diagnostic.Validationf(entityPath(fe.Namespace()), "service template",
		"field %s failed %q validation", fe.Field(), fe.Tag())
}

// entityPath turns a validator namespace into a dotted path without the root struct name.
func entityPath(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}

	return rest
}
