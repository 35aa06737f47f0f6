// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package suite

import (
	"strings"

	"github.com/onosproject/vsperf/pkg/vsperferrors"
)

// Filter selects descriptors by a comma-separated list of lower-cased
// substring terms. Positive terms are ORed into the selection; a term
// prefixed with "!" removes previously matched tests. When the very
// first term is negative the starting set is the full catalog rather
// than empty. An empty expression selects everything.
func Filter(catalog []Descriptor, expression string) []Descriptor {
	var terms []string
	for _, term := range strings.Split(expression, ",") {
		term = strings.TrimSpace(term)
		if term != "" {
			terms = append(terms, strings.ToLower(term))
		}
	}
	if len(terms) == 0 {
		return catalog
	}

	selected := make([]bool, len(catalog))
	if strings.HasPrefix(terms[0], "!") {
		for i := range selected {
			selected[i] = true
		}
	}

	for _, term := range terms {
		negative := strings.HasPrefix(term, "!")
		term = strings.TrimPrefix(term, "!")
		for i, descriptor := range catalog {
			if strings.Contains(strings.ToLower(descriptor.Name), term) {
				selected[i] = !negative
			}
		}
	}

	var matched []Descriptor
	for i, descriptor := range catalog {
		if selected[i] {
			matched = append(matched, descriptor)
		}
	}
	return matched
}

// SelectNames selects descriptors by exact name, in catalog order. An
// unknown name is a configuration error.
func SelectNames(catalog []Descriptor, names []string) ([]Descriptor, error) {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	var matched []Descriptor
	for _, descriptor := range catalog {
		if wanted[descriptor.Name] {
			matched = append(matched, descriptor)
			delete(wanted, descriptor.Name)
		}
	}
	for name := range wanted {
		return nil, &vsperferrors.ErrInvalidArgument{
			Name:    "tests",
			Value:   name,
			Message: "no such test in the catalog",
		}
	}
	return matched, nil
}
