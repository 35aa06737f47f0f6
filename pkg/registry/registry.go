// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package registry maps role categories and declared names to pluggable
// component factories. Implementations register themselves at init time;
// there is no directory scanning or reflection involved, resolution is a
// lookup in an explicit mapping.
package registry

import (
	"sort"
	"strings"

	"github.com/onosproject/vsperf/pkg/component"
	"github.com/onosproject/vsperf/pkg/traffic"
	"github.com/onosproject/vsperf/pkg/vsperferrors"
)

// Role is a functional slot a pluggable component fills
type Role string

const (
	// RoleTrafficGen identifies traffic generator implementations
	RoleTrafficGen Role = "trafficgen"
	// RoleVSwitch identifies virtual switch implementations
	RoleVSwitch Role = "vswitch"
	// RoleForwarder identifies packet forwarding applications
	RoleForwarder Role = "fwdapp"
	// RoleVNF identifies virtual network functions
	RoleVNF Role = "vnf"
	// RoleLoadGen identifies background load generators
	RoleLoadGen Role = "loadgen"
	// RoleCollector identifies system metrics collectors
	RoleCollector Role = "collector"
)

// Roles returns all role categories
func Roles() []Role {
	return []Role{
		RoleTrafficGen,
		RoleVSwitch,
		RoleForwarder,
		RoleVNF,
		RoleLoadGen,
		RoleCollector,
	}
}

var components = map[Role]map[string]any{}

func register(role Role, name string, factory any) {
	if components[role] == nil {
		components[role] = make(map[string]any)
	}
	components[role][name] = factory
}

// Names returns the sorted declared names registered for a role
func Names(role Role) []string {
	names := make([]string, 0, len(components[role]))
	for name := range components[role] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve looks a name up within a role. Matching is exact on the
// canonical identifier, with a case-insensitive fallback accepted when
// it is unambiguous.
func resolve(role Role, name string) (any, error) {
	if factory, ok := components[role][name]; ok {
		return factory, nil
	}
	var match any
	matches := 0
	for candidate, factory := range components[role] {
		if strings.EqualFold(candidate, name) {
			match = factory
			matches++
		}
	}
	if matches == 1 {
		return match, nil
	}
	return nil, &vsperferrors.ErrUnknownComponent{
		Role:      string(role),
		Name:      name,
		Available: Names(role),
	}
}

// RegisterTrafficGenerator registers a traffic generator implementation
func RegisterTrafficGenerator(name string, factory traffic.GeneratorFactory) {
	register(RoleTrafficGen, name, factory)
}

// ResolveTrafficGenerator resolves a traffic generator by name
func ResolveTrafficGenerator(name string) (traffic.GeneratorFactory, error) {
	factory, err := resolve(RoleTrafficGen, name)
	if err != nil {
		return nil, err
	}
	return factory.(traffic.GeneratorFactory), nil
}

// RegisterVSwitch registers a virtual switch implementation
func RegisterVSwitch(name string, factory component.VSwitchFactory) {
	register(RoleVSwitch, name, factory)
}

// ResolveVSwitch resolves a virtual switch by name
func ResolveVSwitch(name string) (component.VSwitchFactory, error) {
	factory, err := resolve(RoleVSwitch, name)
	if err != nil {
		return nil, err
	}
	return factory.(component.VSwitchFactory), nil
}

// RegisterForwarder registers a forwarding application implementation
func RegisterForwarder(name string, factory component.ForwarderFactory) {
	register(RoleForwarder, name, factory)
}

// ResolveForwarder resolves a forwarding application by name
func ResolveForwarder(name string) (component.ForwarderFactory, error) {
	factory, err := resolve(RoleForwarder, name)
	if err != nil {
		return nil, err
	}
	return factory.(component.ForwarderFactory), nil
}

// RegisterVNF registers a virtual network function implementation
func RegisterVNF(name string, factory component.VNFFactory) {
	register(RoleVNF, name, factory)
}

// ResolveVNF resolves a virtual network function by name
func ResolveVNF(name string) (component.VNFFactory, error) {
	factory, err := resolve(RoleVNF, name)
	if err != nil {
		return nil, err
	}
	return factory.(component.VNFFactory), nil
}

// RegisterLoadGen registers a load generator implementation
func RegisterLoadGen(name string, factory component.LoadGenFactory) {
	register(RoleLoadGen, name, factory)
}

// ResolveLoadGen resolves a load generator by name
func ResolveLoadGen(name string) (component.LoadGenFactory, error) {
	factory, err := resolve(RoleLoadGen, name)
	if err != nil {
		return nil, err
	}
	return factory.(component.LoadGenFactory), nil
}

// RegisterCollector registers a metrics collector implementation
func RegisterCollector(name string, factory component.CollectorFactory) {
	register(RoleCollector, name, factory)
}

// ResolveCollector resolves a metrics collector by name
func ResolveCollector(name string) (component.CollectorFactory, error) {
	factory, err := resolve(RoleCollector, name)
	if err != nil {
		return nil, err
	}
	return factory.(component.CollectorFactory), nil
}
