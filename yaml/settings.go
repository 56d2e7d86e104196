// Package yaml loads textgrab selector configuration from YAML settings files.
// JSON documents are valid YAML, so JSON settings files load as well.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/textgrab"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsPath is the settings file looked up in the working directory.
const DefaultSettingsPath = "settings"

// LoadSelectorConfig loads the selector configuration from path. A missing
// file is not an error: the built-in default configuration is returned.
// The file must map host names to selector sets and include a complete
// "default" entry.
func LoadSelectorConfig(path string) (textgrab.SelectorConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return textgrab.DefaultSelectorConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	return ParseSelectorConfig(data)
}

// ParseSelectorConfig decodes and validates a selector configuration.
// Unknown selector keys are rejected.
func ParseSelectorConfig(data []byte) (textgrab.SelectorConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg textgrab.SelectorConfig
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, textgrab.Errorf(textgrab.EINVALID, "settings file is empty")
		}
		return nil, textgrab.Errorf(textgrab.EINVALID, "failed to parse settings file: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
