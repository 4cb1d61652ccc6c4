package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML content file and merges it over the defaults. Tables
// present in the file replace the default table wholesale; absent tables
// and absent fixed lines keep their default values. A missing file yields
// the defaults.
func Load(path string) (*Tables, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content file %s: %w", path, err)
	}
	return t, nil
}

// Marshal renders the tables as YAML, the same shape Load accepts.
func (t *Tables) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content: %w", err)
	}
	return data, nil
}
