package tosca

import (
	"regexp"

	"github.com/Masterminds/semver/v3"

	"descriptor-translator/internal/diagnostic"
)

var (
	definitionsVersionRe = regexp.MustCompile(`^tosca_simple_(?:profile_for_nfv|yaml)_(\d+)_(\d+)(?:_(\d+))?$`)
	supportedVersions    = mustConstraint(">= 1.0.0, < 2.0.0")
)

func mustConstraint(raw string) *semver.Constraints {
	c, err := semver.NewConstraint(raw)
	if err != nil {
		panic(err)
	}

	return c
}

// DefinitionsSemver extracts the semantic version from a tosca_definitions_version value.
func DefinitionsSemver(v string) (*semver.Version, error) {
	m := definitionsVersionRe.FindStringSubmatch(v)
	if m == nil {
		return nil, diagnostic.Validationf("tosca_definitions_version", "service template",
			"unrecognized definitions version %q", v)
	}

	patch := m[3]
	if patch == "" {
		patch = "0"
	}

	ver, err := semver.NewVersion(m[1] + "." + m[2] + "." + patch)
	if err != nil {
		return nil, diagnostic.Validationf("tosca_definitions_version", "service template",
			"invalid definitions version %q: %v", v, err)
	}

	return ver, nil
}

// CheckDefinitionsVersion rejects definitions versions outside the supported 1.x range.
func CheckDefinitionsVersion(v string) error {
	ver, err := DefinitionsSemver(v)
	if err != nil {
		return err
	}

	if !supportedVersions.Check(ver) {
		return diagnostic.Validationf("tosca_definitions_version", "service template",
			"definitions version %s is not supported (want %s)", ver, supportedVersions)
	}

	return nil
}
