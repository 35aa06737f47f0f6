// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package vsperferrors contains typed errors returned by the orchestration
// core. Callers should use errors.As to classify failures; configuration
// errors abort a run before any hardware mutation, hardware errors abort
// after best-effort cleanup, and per-test errors are recorded and skipped.
package vsperferrors

import (
	"fmt"
	"strings"
)

// ErrKeyNotFound is returned when no configuration layer defines a key.
type ErrKeyNotFound struct {
	Key string
}

func (err *ErrKeyNotFound) Error() string {
	return fmt.Sprintf("configuration key %q is not defined in any layer", err.Key)
}

// ErrUnknownComponent is returned when a name cannot be resolved against
// the registered implementations of a role.
type ErrUnknownComponent struct {
	Role      string   // Role category, e.g., "trafficgen" or "vswitch"
	Name      string   // The name that failed to resolve
	Available []string // Names registered for the role, sorted
}

func (err *ErrUnknownComponent) Error() string {
	if len(err.Available) == 0 {
		return fmt.Sprintf("unknown %s %q; no implementations registered", err.Role, err.Name)
	}
	return fmt.Sprintf("unknown %s %q; available: %s", err.Role, err.Name, strings.Join(err.Available, ", "))
}

// ErrInvalidArgument is a generic error to be returned on invalid input.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string      // Name of the field or flag referred to
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for %q", err.Value, err.Name)
	}
	return fmt.Sprintf("value %q is invalid for %q; %s", err.Value, err.Name, err.Message)
}

// ErrUnsupportedTrafficType is returned by the controller factory when the
// requested traffic type is not in the dispatch table.
type ErrUnsupportedTrafficType struct {
	Type      string
	Supported []string
}

func (err *ErrUnsupportedTrafficType) Error() string {
	return fmt.Sprintf("unsupported traffic type %q; supported: %s", err.Type, strings.Join(err.Supported, ", "))
}

// ErrHardware is returned when reconfiguring a network device fails.
// Errors of this type are fatal to the run once setup has begun.
type ErrHardware struct {
	Device  string // PCI address of the device
	Op      string // The operation that failed, e.g., "sriov enable"
	Message string
}

func (err *ErrHardware) Error() string {
	return fmt.Sprintf("%s failed for device %s: %s", err.Op, err.Device, err.Message)
}
