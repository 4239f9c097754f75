// Package runtimeabi describes the compiler's fixed contract with the
// external JPL runtime library: which symbols the generator must declare
// `global`/`extern` in its linking preamble, and in what order. The list
// is data, embedded from externs.yaml, rather than a hardcoded Go slice,
// so the ABI contract stays reviewable/diffable on its own.
package runtimeabi

import (
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed externs.yaml
var externsYAML []byte

// ABI is the parsed runtime contract: the symbols this compilation's
// emitted code exposes (Globals) and the symbols it requires the linked
// runtime library to provide (Externs), both in manifest order.
type ABI struct {
	Globals []string `yaml:"globals"`
	Externs []string `yaml:"externs"`
}

// Load parses the embedded manifest. It only fails if the embedded YAML
// is malformed, which would be a build-time defect, not a user error.
func Load() (*ABI, error) {
	var abi ABI
	if err := yaml.Unmarshal(externsYAML, &abi); err != nil {
		return nil, errors.Wrap(err, "runtimeabi: parsing externs.yaml")
	}
	return &abi, nil
}
