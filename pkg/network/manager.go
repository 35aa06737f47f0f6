// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package network

import (
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/vsperferrors"
	log "github.com/sirupsen/logrus"
)

// Manager validates the whitelisted devices and reversibly enables
// SR-IOV for the duration of a run. Only SR-IOV state this manager
// enabled is reverted at teardown; configuration made outside the tool
// is left alone.
type Manager struct {
	settings *config.Store
	bus      Bus
	log      *log.Entry
	sleep    func(time.Duration)
	// enabled holds the physical functions this run reconfigured
	enabled []string
}

// NewManager creates a lifecycle manager operating on the given bus
func NewManager(settings *config.Store, bus Bus) *Manager {
	return &Manager{
		settings: settings,
		bus:      bus,
		log:      log.WithField("component", "network"),
		sleep:    time.Sleep,
	}
}

// Validate parses the whitelist entries and resolves each one against
// the bus. Every entry must resolve to exactly one present device; any
// failure aborts before hardware is mutated.
func (m *Manager) Validate(entries []string) ([]Descriptor, error) {
	specs := make([]Spec, 0, len(entries))
	for _, entry := range entries {
		spec, err := ParseSpec(entry)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	descriptors := make([]Descriptor, 0, len(specs))
	for _, spec := range specs {
		if !m.bus.Exists(spec.PCI) {
			return nil, &vsperferrors.ErrInvalidArgument{
				Name:    "WHITELIST_NICS",
				Value:   spec.PCI,
				Message: "device not present",
			}
		}
		driver, err := m.bus.Driver(spec.PCI)
		if err != nil {
			return nil, err
		}
		device, err := m.bus.NetDev(spec.PCI)
		if err != nil {
			return nil, err
		}
		mac, err := m.bus.MAC(spec.PCI)
		if err != nil {
			return nil, err
		}
		role := "pf"
		if spec.VF >= 0 {
			role = "vf"
		}
		descriptors = append(descriptors, Descriptor{
			PCI:    spec.PCI,
			VF:     spec.VF,
			MAC:    mac,
			Driver: driver,
			Device: device,
			Role:   role,
		})
	}
	return descriptors, nil
}

// Setup validates the whitelist and enables SR-IOV where virtual
// functions were requested. Enabling is idempotent with respect to VF
// counts already satisfied by the current hardware state.
func (m *Manager) Setup(entries []string) ([]Descriptor, error) {
	descriptors, err := m.Validate(entries)
	if err != nil {
		return nil, err
	}

	// Group VF requests by physical function, keeping the maximum
	// requested index per device.
	required := make(map[string]int)
	for _, descriptor := range descriptors {
		if descriptor.VF < 0 {
			continue
		}
		if descriptor.VF > required[descriptor.PCI] {
			required[descriptor.PCI] = descriptor.VF
		} else if _, ok := required[descriptor.PCI]; !ok {
			required[descriptor.PCI] = descriptor.VF
		}
	}

	devices := make([]string, 0, len(required))
	for pci := range required {
		devices = append(devices, pci)
	}
	sort.Strings(devices)

	for _, pci := range devices {
		need := required[pci] + 1
		current, err := m.bus.NumVFs(pci)
		if err != nil {
			return nil, err
		}
		if current >= need {
			m.log.WithField("device", pci).Debugf("SR-IOV already provides %d virtual functions", current)
			continue
		}
		if err := m.enableSRIOV(pci, need); err != nil {
			return nil, err
		}
	}
	return descriptors, nil
}

func (m *Manager) enableSRIOV(pci string, count int) error {
	m.log.WithField("device", pci).Infof("Enabling SR-IOV with %d virtual functions", count)
	if err := m.bus.SetNumVFs(pci, count); err != nil {
		return &vsperferrors.ErrHardware{
			Device:  pci,
			Op:      "sriov enable",
			Message: err.Error(),
		}
	}
	m.enabled = append(m.enabled, pci)

	// Some drivers keep routing traffic to the physical function by MAC
	// until the PF driver is unbound and rebound, so the rebind is
	// mandatory whenever SR-IOV was reconfigured.
	if err := m.rebind(pci); err != nil {
		return err
	}

	// Driver initialization after an SR-IOV change is asynchronous and
	// offers no completion signal; wait a fixed settle time.
	m.sleep(m.settings.Default("SETTLE_TIME", 2).Duration())
	return nil
}

func (m *Manager) rebind(pci string) error {
	driver, err := m.bus.Driver(pci)
	if err != nil {
		return &vsperferrors.ErrHardware{Device: pci, Op: "driver rebind", Message: err.Error()}
	}
	if err := m.bus.Unbind(pci); err != nil {
		return &vsperferrors.ErrHardware{Device: pci, Op: "driver rebind", Message: err.Error()}
	}
	if err := m.bus.Bind(driver, pci); err != nil {
		return &vsperferrors.ErrHardware{Device: pci, Op: "driver rebind", Message: err.Error()}
	}
	return nil
}

// Teardown disables SR-IOV on every device this run enabled. Failures
// are collected so one device cannot block cleanup of the others, but
// any failure is still surfaced to the caller.
func (m *Manager) Teardown() error {
	var result *multierror.Error
	for _, pci := range m.enabled {
		m.log.WithField("device", pci).Info("Disabling SR-IOV")
		if err := m.bus.SetNumVFs(pci, 0); err != nil {
			result = multierror.Append(result, &vsperferrors.ErrHardware{
				Device:  pci,
				Op:      "sriov disable",
				Message: err.Error(),
			})
		}
	}
	m.enabled = nil
	return result.ErrorOrNil()
}
