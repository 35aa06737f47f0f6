// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package network

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Bus is the view of the PCI bus the lifecycle manager operates on.
// The production implementation reads and writes sysfs; tests use an
// in-memory fake.
type Bus interface {
	// Exists reports whether a device is present
	Exists(pci string) bool
	// NumVFs returns the currently configured virtual function count
	NumVFs(pci string) (int, error)
	// SetNumVFs reconfigures the virtual function count
	SetNumVFs(pci string, count int) error
	// Driver returns the name of the driver bound to the device
	Driver(pci string) (string, error)
	// Unbind unbinds the device from its driver
	Unbind(pci string) error
	// Bind binds the device to a driver
	Bind(driver, pci string) error
	// NetDev returns the logical network device name
	NetDev(pci string) (string, error)
	// MAC returns the device MAC address
	MAC(pci string) (string, error)
}

// NewSysfsBus returns the sysfs-backed bus implementation
func NewSysfsBus() Bus {
	return &sysfsBus{root: "/sys"}
}

type sysfsBus struct {
	root string
}

func (b *sysfsBus) devicePath(pci string, elements ...string) string {
	return filepath.Join(append([]string{b.root, "bus", "pci", "devices", pci}, elements...)...)
}

func (b *sysfsBus) Exists(pci string) bool {
	_, err := os.Stat(b.devicePath(pci))
	return err == nil
}

func (b *sysfsBus) NumVFs(pci string) (int, error) {
	data, err := os.ReadFile(b.devicePath(pci, "sriov_numvfs"))
	if err != nil {
		if os.IsNotExist(err) {
			// No sriov_numvfs attribute means SR-IOV is unsupported.
			return 0, nil
		}
		return 0, errors.Wrapf(err, "failed to read sriov_numvfs for %s", pci)
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errors.Wrapf(err, "unexpected sriov_numvfs content for %s", pci)
	}
	return count, nil
}

func (b *sysfsBus) SetNumVFs(pci string, count int) error {
	path := b.devicePath(pci, "sriov_numvfs")
	current, err := b.NumVFs(pci)
	if err != nil {
		return err
	}
	// The kernel rejects changing a non-zero VF count directly; it has
	// to pass through zero.
	if current != 0 && count != 0 {
		if err := os.WriteFile(path, []byte("0"), 0o200); err != nil {
			return errors.Wrapf(err, "failed to reset sriov_numvfs for %s", pci)
		}
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(count)), 0o200); err != nil {
		return errors.Wrapf(err, "failed to write sriov_numvfs for %s", pci)
	}
	return nil
}

func (b *sysfsBus) Driver(pci string) (string, error) {
	target, err := os.Readlink(b.devicePath(pci, "driver"))
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve driver for %s", pci)
	}
	return filepath.Base(target), nil
}

func (b *sysfsBus) Unbind(pci string) error {
	path := b.devicePath(pci, "driver", "unbind")
	if err := os.WriteFile(path, []byte(pci), 0o200); err != nil {
		return errors.Wrapf(err, "failed to unbind %s", pci)
	}
	return nil
}

func (b *sysfsBus) Bind(driver, pci string) error {
	path := filepath.Join(b.root, "bus", "pci", "drivers", driver, "bind")
	if err := os.WriteFile(path, []byte(pci), 0o200); err != nil {
		return errors.Wrapf(err, "failed to bind %s to %s", pci, driver)
	}
	return nil
}

func (b *sysfsBus) NetDev(pci string) (string, error) {
	entries, err := os.ReadDir(b.devicePath(pci, "net"))
	if err != nil || len(entries) == 0 {
		return "", errors.Errorf("no network device found for %s", pci)
	}
	return entries[0].Name(), nil
}

func (b *sysfsBus) MAC(pci string) (string, error) {
	device, err := b.NetDev(pci)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(b.root, "class", "net", device, "address"))
	if err != nil {
		return "", errors.Wrapf(err, "failed to read MAC address for %s", device)
	}
	return strings.TrimSpace(string(data)), nil
}
