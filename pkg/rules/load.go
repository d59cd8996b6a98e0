package rules

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrhapile/skindx/pkg/types"
)

// document is the on-disk layout of a knowledge base file.
type document struct {
	Rules    []types.Rule        `yaml:"rules"`
	Symptoms []string            `yaml:"symptoms"`
	Presets  map[string][]string `yaml:"presets"`
}

// Load parses a YAML knowledge base and validates it.
// Unknown keys are rejected so typos do not silently drop fields.
func Load(r io.Reader) (*Store, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("knowledge base is empty")
		}
		return nil, fmt.Errorf("decoding knowledge base: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("knowledge base declares no rules")
	}

	return NewStore(doc.Rules, doc.Symptoms, doc.Presets)
}

// LoadFile reads a knowledge base from path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening knowledge base: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
