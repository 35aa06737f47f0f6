// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"testing"

	"github.com/onosproject/vsperf/pkg/component"
	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/traffic"
	"github.com/onosproject/vsperf/pkg/vsperferrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trafficGenFactory(settings *config.Store) (traffic.Generator, error) {
	return nil, nil
}

func vswitchFactory(settings *config.Store) (component.VSwitch, error) {
	return nil, nil
}

func TestResolveTrafficGenerator(t *testing.T) {
	RegisterTrafficGenerator("TRex", trafficGenFactory)
	RegisterTrafficGenerator("IxNet", trafficGenFactory)

	factory, err := ResolveTrafficGenerator("TRex")
	require.NoError(t, err)
	assert.NotNil(t, factory)

	// Case-insensitive fallback accepted when unambiguous.
	factory, err = ResolveTrafficGenerator("trex")
	require.NoError(t, err)
	assert.NotNil(t, factory)
}

func TestResolveUnknownComponent(t *testing.T) {
	RegisterVSwitch("OvsDpdkVhost", vswitchFactory)

	_, err := ResolveVSwitch("Bogus")
	require.Error(t, err)
	var unknown *vsperferrors.ErrUnknownComponent
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "vswitch", unknown.Role)
	assert.Equal(t, "Bogus", unknown.Name)
	assert.Contains(t, unknown.Available, "OvsDpdkVhost")
}

func TestResolveAmbiguousCaseFold(t *testing.T) {
	RegisterVNF("QemuVM", func(settings *config.Store) (component.VNF, error) { return nil, nil })
	RegisterVNF("QEMUVM", func(settings *config.Store) (component.VNF, error) { return nil, nil })

	// Exact names still resolve.
	_, err := ResolveVNF("QemuVM")
	require.NoError(t, err)

	// A case-insensitive match against two names is rejected.
	_, err = ResolveVNF("qemuvm")
	require.Error(t, err)
}

func TestNamesSorted(t *testing.T) {
	RegisterLoadGen("Stress", func(settings *config.Store) (component.LoadGen, error) { return nil, nil })
	RegisterLoadGen("DummyLoadGen", func(settings *config.Store) (component.LoadGen, error) { return nil, nil })

	names := Names(RoleLoadGen)
	assert.Equal(t, []string{"DummyLoadGen", "Stress"}, names)
}

func TestRolesComplete(t *testing.T) {
	assert.Len(t, Roles(), 6)
}
