package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_dataset.yaml
var defaultDatasetYAML []byte

// DefaultDataset returns the built-in demonstration dataset.
func DefaultDataset() (*Dataset, error) {
	return LoadFromBytes(defaultDatasetYAML)
}

// DefaultDatasetYAML returns the raw built-in dataset document.
func DefaultDatasetYAML() []byte {
	out := make([]byte, len(defaultDatasetYAML))
	copy(out, defaultDatasetYAML)
	return out
}

// Load reads, defaults and validates a dataset file.
func Load(path string) (*Dataset, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses, defaults and validates a dataset document.
func LoadFromBytes(data []byte) (*Dataset, error) {
	ds, err := parseDataset(data)
	if err != nil {
		return nil, err
	}

	ds.ApplyDefaults()
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("dataset validation failed: %w", err)
	}
	return ds, nil
}

// parseDataset parses YAML data into a Dataset. IssueCount keeps its default
// when the document does not set it.
func parseDataset(data []byte) (*Dataset, error) {
	ds := Dataset{IssueCount: DefaultIssueCount}
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &ds, nil
}

// Marshal renders the dataset as YAML.
func Marshal(ds *Dataset) ([]byte, error) {
	data, err := yaml.Marshal(ds)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dataset: %w", err)
	}
	return data, nil
}

// Write saves the dataset as YAML to path.
func Write(ds *Dataset, path string) error {
	data, err := Marshal(ds)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	return nil
}
