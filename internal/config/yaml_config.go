package config

import (
	"io"

	"gopkg.in/yaml.v3"
)

type YAMLConfigLoader struct {
	reader io.Reader
}

func NewYAMLConfigLoader(reader io.Reader) *YAMLConfigLoader {
	return &YAMLConfigLoader{
		reader: reader,
	}
}

// LoadInto decodes over cfg, so keys missing from the document keep their current value.
// Unknown keys are rejected.
func (cl *YAMLConfigLoader) LoadInto(cfg *Config) error {
	decoder := yaml.NewDecoder(cl.reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}
