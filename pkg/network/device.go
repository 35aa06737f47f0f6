// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package network discovers, validates and reversibly reconfigures the
// network interfaces a test run uses, including SR-IOV virtual-function
// provisioning.
package network

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/onosproject/vsperf/pkg/vsperferrors"
)

// pciPattern matches a PCI address with an optional domain prefix
var pciPattern = regexp.MustCompile(`^([0-9a-fA-F]{4}:)?[0-9a-fA-F]{2}:[0-9a-fA-F]{2}\.[0-7]$`)

// Spec is a parsed whitelist entry: a PCI address with an optional
// virtual-function annotation ("0000:05:00.0|vf1")
type Spec struct {
	PCI string
	// VF is the requested virtual-function index, or -1 for the
	// physical function itself
	VF int
}

// ParseSpec parses a whitelist entry. A malformed entry is a
// configuration error, reported before any hardware is touched.
func ParseSpec(entry string) (Spec, error) {
	spec := Spec{VF: -1}
	pci, annotation, annotated := strings.Cut(entry, "|")
	if !pciPattern.MatchString(pci) {
		return Spec{}, &vsperferrors.ErrInvalidArgument{
			Name:    "WHITELIST_NICS",
			Value:   entry,
			Message: "not a PCI address",
		}
	}
	// Normalize the short form by prepending the default domain.
	if strings.Count(pci, ":") == 1 {
		pci = "0000:" + pci
	}
	spec.PCI = strings.ToLower(pci)

	if annotated {
		if !strings.HasPrefix(annotation, "vf") {
			return Spec{}, &vsperferrors.ErrInvalidArgument{
				Name:    "WHITELIST_NICS",
				Value:   entry,
				Message: "unknown annotation, expected vf<index>",
			}
		}
		vf, err := strconv.Atoi(strings.TrimPrefix(annotation, "vf"))
		if err != nil || vf < 0 {
			return Spec{}, &vsperferrors.ErrInvalidArgument{
				Name:    "WHITELIST_NICS",
				Value:   entry,
				Message: "invalid virtual function index",
			}
		}
		spec.VF = vf
	}
	return spec, nil
}

// Descriptor is a validated network device
type Descriptor struct {
	// PCI is the physical function address
	PCI string
	// VF is the requested virtual-function index, or -1
	VF int
	// MAC is the physical function MAC address
	MAC string
	// Driver is the kernel driver bound to the physical function
	Driver string
	// Device is the logical network device name
	Device string
	// Role is "pf" or "vf"
	Role string
}
