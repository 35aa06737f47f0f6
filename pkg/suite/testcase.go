// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package suite sequences test-case descriptors through setup,
// execution and teardown, isolating each test's configuration mutations
// and aggregating the results.
package suite

import (
	"os"

	"github.com/onosproject/vsperf/pkg/vsperferrors"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Descriptor declares one benchmark scenario. Descriptors are loaded at
// startup and never mutated after selection; the executing test
// receives a deep copy.
type Descriptor struct {
	// Name uniquely identifies the test
	Name string `yaml:"name"`
	// Description is the human-readable summary
	Description string `yaml:"description"`
	// Deployment names the traffic path, e.g., p2p, pvp, pvvp
	Deployment string `yaml:"deployment"`
	// Traffic overrides the default traffic descriptor
	Traffic map[string]any `yaml:"traffic"`
	// Parameters are per-test settings overrides, applied to the store
	// for the duration of the test only
	Parameters map[string]any `yaml:"parameters"`
	// SLA holds minimum acceptable measurement values
	SLA map[string]float64 `yaml:"sla"`
}

// Copy returns a deep copy of the descriptor
func (d Descriptor) Copy() Descriptor {
	copied := d
	copied.Traffic = copyMap(d.Traffic)
	copied.Parameters = copyMap(d.Parameters)
	if d.SLA != nil {
		copied.SLA = make(map[string]float64, len(d.SLA))
		for key, value := range d.SLA {
			copied.SLA[key] = value
		}
	}
	return copied
}

func copyMap(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	copied := make(map[string]any, len(values))
	for key, value := range values {
		switch value := value.(type) {
		case map[string]any:
			copied[key] = copyMap(value)
		case []any:
			elements := make([]any, len(value))
			copy(elements, value)
			copied[key] = elements
		default:
			copied[key] = value
		}
	}
	return copied
}

// LoadCatalog reads test descriptors from a YAML file and validates
// them: every descriptor needs a name and a description, and names must
// be unique within the catalog.
func LoadCatalog(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read test catalog %s", path)
	}
	var catalog []Descriptor
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrapf(err, "failed to parse test catalog %s", path)
	}
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// ValidateCatalog checks descriptor invariants
func ValidateCatalog(catalog []Descriptor) error {
	names := make(map[string]bool)
	for _, descriptor := range catalog {
		if descriptor.Name == "" {
			return &vsperferrors.ErrInvalidArgument{
				Name:    "Name",
				Value:   descriptor.Name,
				Message: "every test descriptor needs a name",
			}
		}
		if descriptor.Description == "" {
			return &vsperferrors.ErrInvalidArgument{
				Name:    "Description",
				Value:   descriptor.Name,
				Message: "every test descriptor needs a description",
			}
		}
		if names[descriptor.Name] {
			return &vsperferrors.ErrInvalidArgument{
				Name:    "Name",
				Value:   descriptor.Name,
				Message: "test names must be unique",
			}
		}
		names[descriptor.Name] = true
	}
	return nil
}
