// Package yaml provides YAML-based policy parsing.
package yaml

import (
	"fmt"
	"os"

	"github.com/ochairo/sbat/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlPolicy represents the raw YAML structure
type yamlPolicy struct {
	Revocations yamlRevocations `yaml:"revocations"`
	Metadata    yamlMetadata    `yaml:"metadata"`
	Report      yamlReport      `yaml:"report"`
}

type yamlRevocations struct {
	Source    string `yaml:"source"`
	Path      string `yaml:"path"`
	Signature string `yaml:"signature"`
	Keyring   string `yaml:"keyring"`
	Capacity  int    `yaml:"capacity"`
}

type yamlMetadata struct {
	Capacity int `yaml:"capacity"`
}

type yamlReport struct {
	Format string `yaml:"format"`
}

// maxCapacity keeps a policy from asking for unbounded storage
const maxCapacity = 4096

// PolicyParser parses YAML policy files
type PolicyParser struct{}

// NewPolicyParser creates a new YAML policy parser
func NewPolicyParser() *PolicyParser {
	return &PolicyParser{}
}

// ParseFile parses a YAML policy file
func (p *PolicyParser) ParseFile(filePath string) (*entities.Policy, error) {
	//nolint:gosec // G304: filePath is the operator's policy file
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML policy data. Unset fields take DefaultPolicy values.
func (p *PolicyParser) Parse(data []byte) (*entities.Policy, error) {
	var raw yamlPolicy
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	policy := entities.DefaultPolicy()
	if raw.Revocations.Source != "" {
		policy.Revocations.Source = raw.Revocations.Source
	}
	policy.Revocations.Path = raw.Revocations.Path
	policy.Revocations.Signature = raw.Revocations.Signature
	policy.Revocations.Keyring = raw.Revocations.Keyring
	if raw.Revocations.Capacity != 0 {
		policy.Revocations.Capacity = raw.Revocations.Capacity
	}
	if raw.Metadata.Capacity != 0 {
		policy.Metadata.Capacity = raw.Metadata.Capacity
	}
	if raw.Report.Format != "" {
		policy.Report.Format = raw.Report.Format
	}

	if err := Validate(&policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

// Validate checks a policy for consistency
func Validate(policy *entities.Policy) error {
	switch policy.Revocations.Source {
	case entities.SourceFile:
		if policy.Revocations.Path == "" {
			return fmt.Errorf("revocations.path is required for source %q", policy.Revocations.Source)
		}
	case entities.SourceEFIVar, entities.SourceImagePrevious, entities.SourceImageLatest:
	default:
		return fmt.Errorf("unknown revocations.source %q", policy.Revocations.Source)
	}

	if policy.Revocations.Signature != "" && policy.Revocations.Keyring == "" {
		return fmt.Errorf("revocations.keyring is required when revocations.signature is set")
	}

	if err := checkCapacity("revocations.capacity", policy.Revocations.Capacity); err != nil {
		return err
	}
	if err := checkCapacity("metadata.capacity", policy.Metadata.Capacity); err != nil {
		return err
	}

	switch policy.Report.Format {
	case entities.ReportText, entities.ReportJSON:
	default:
		return fmt.Errorf("unknown report.format %q", policy.Report.Format)
	}

	return nil
}

func checkCapacity(field string, capacity int) error {
	if capacity <= 0 || capacity > maxCapacity {
		return fmt.Errorf("%s must be between 1 and %d, got %d", field, maxCapacity, capacity)
	}
	return nil
}
