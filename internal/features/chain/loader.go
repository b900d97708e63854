package chain

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type chainFile struct {
	Chains []Definition `yaml:"chains"`
}

// Load parses a YAML chain document. Step indexes come from list order.
func Load(r io.Reader) ([]Definition, error) {
	var doc chainFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("chain: decode: %w", err)
	}
	for i := range doc.Chains {
		for j := range doc.Chains[i].Steps {
			doc.Chains[i].Steps[j].StepIndex = j
		}
	}
	return doc.Chains, nil
}

// LoadFile registers every chain found in path on top of the registry contents
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("chain: open %s: %w", path, err)
	}
	defer f.Close()

	defs, err := Load(f)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return fmt.Errorf("chain: %s: %w", path, err)
		}
	}
	return nil
}
