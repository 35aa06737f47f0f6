// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/onosproject/vsperf/pkg/vsperferrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	cmd := GetRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNamesAndFilterConflict(t *testing.T) {
	_, err := execute(t, "--tests", "rfc", "phy2phy_tput")
	require.Error(t, err)
	var invalid *vsperferrors.ErrInvalidArgument
	assert.ErrorAs(t, err, &invalid)
}

func TestUnknownModeRejected(t *testing.T) {
	_, err := execute(t, "--mode", "warp-speed")
	require.Error(t, err)
	var invalid *vsperferrors.ErrInvalidArgument
	assert.ErrorAs(t, err, &invalid)
}

func TestFilterSelectsNothing(t *testing.T) {
	_, err := execute(t, "--tests", "no_such_test")
	require.Error(t, err)
}

func TestRunEndToEndWithDummy(t *testing.T) {
	results := t.TempDir()
	out, err := execute(t,
		"--test-params", "RESULTS_PATH="+results+";DURATION=1",
		"phy2phy_tput")
	require.NoError(t, err)
	assert.Contains(t, out, "all passed")

	entries, err := os.ReadDir(results)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	dir := filepath.Join(results, entries[0].Name())
	_, err = os.Stat(filepath.Join(dir, "phy2phy_tput.csv"))
	require.NoError(t, err)
	reports, err := filepath.Glob(filepath.Join(dir, "report_*.md"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestRunWritesJUnit(t *testing.T) {
	results := t.TempDir()
	_, err := execute(t,
		"--test-params", "RESULTS_PATH="+results+";DURATION=1",
		"--xunit",
		"back2back")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(results, "*", "results.xml"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestListSettingsShowsOrigins(t *testing.T) {
	out, err := execute(t, "--list-settings", "--mode", "trafficgen")
	require.NoError(t, err)
	assert.Contains(t, out, "TRAFFICGEN")
	assert.Contains(t, out, "MODE")
}

func TestListTests(t *testing.T) {
	out, err := execute(t, "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "phy2phy_tput")
	assert.Contains(t, out, "back2back")
}

func TestListTrafficGens(t *testing.T) {
	out, err := execute(t, "--list-trafficgens")
	require.NoError(t, err)
	assert.Contains(t, out, "Dummy")
}

func TestIntegrationCatalogSelected(t *testing.T) {
	out, err := execute(t, "--integration", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "vswitch_add_del_bridge")
	assert.NotContains(t, out, "phy2phy_tput")
}

func TestParseTestParams(t *testing.T) {
	values, err := parseTestParams("DURATION=10;PACKET_SIZES=[64, 1518];TRAFFICGEN=Dummy")
	require.NoError(t, err)
	assert.Equal(t, 10, values["DURATION"])
	assert.Equal(t, []any{64, 1518}, values["PACKET_SIZES"])
	assert.Equal(t, "Dummy", values["TRAFFICGEN"])

	_, err = parseTestParams("no-equals-sign")
	require.Error(t, err)
}

func TestConfFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "vsperf.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("duration: 5\n"), 0o644))

	cmd := GetRootCommand()
	cmd.SetArgs([]string{"--conf-file", conf})
	require.NoError(t, cmd.ParseFlags([]string{"--conf-file", conf}))

	settings, err := buildSettings(cmd)
	require.NoError(t, err)
	value, err := settings.Get("DURATION")
	require.NoError(t, err)
	assert.Equal(t, 5, value.Int())
}
