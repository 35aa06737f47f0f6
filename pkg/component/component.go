// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package component defines the capability contracts the orchestration
// core consumes. Concrete drivers live outside the core and register
// themselves with the registry; the core only ever sees these
// interfaces.
package component

import (
	"github.com/onosproject/vsperf/pkg/config"
)

// VSwitch is a virtual switch under test
type VSwitch interface {
	// Start brings the switch up
	Start() error
	// Stop tears the switch down
	Stop() error
}

// VNF is a virtual network function deployed into the traffic path
type VNF interface {
	Start() error
	Stop() error
}

// Forwarder is a standalone packet forwarding application used in place
// of a vswitch
type Forwarder interface {
	Start() error
	Stop() error
}

// LoadGen produces background system load while a test runs
type LoadGen interface {
	Start() error
	Stop() error
}

// Collector samples system metrics around a test run
type Collector interface {
	// Start begins collection
	Start() error
	// Stop ends collection
	Stop() error
	// Results returns the collected samples as report columns
	Results() map[string]string
}

// VSwitchFactory creates a vswitch bound to the given settings
type VSwitchFactory func(settings *config.Store) (VSwitch, error)

// VNFFactory creates a VNF bound to the given settings
type VNFFactory func(settings *config.Store) (VNF, error)

// ForwarderFactory creates a forwarding application bound to the given settings
type ForwarderFactory func(settings *config.Store) (Forwarder, error)

// LoadGenFactory creates a load generator bound to the given settings
type LoadGenFactory func(settings *config.Store) (LoadGen, error)

// CollectorFactory creates a metrics collector bound to the given settings
type CollectorFactory func(settings *config.Store) (Collector, error)
