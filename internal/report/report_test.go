// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/suite"
	"github.com/onosproject/vsperf/pkg/traffic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *suite.Report {
	started := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	return &suite.Report{
		RunID:    "9f1c9a2e-0000-0000-0000-000000000000",
		RunName:  "brave-otter",
		Started:  started,
		Finished: started.Add(90 * time.Second),
		Results: []suite.Result{
			{
				Name:       "test_a",
				Deployment: "p2p",
				Passed:     true,
				Duration:   30 * time.Second,
				Rows: []traffic.Result{{
					traffic.ResultID:           "test_a",
					traffic.ResultDeployment:   "p2p",
					traffic.ResultTrafficType:  "rfc2544_throughput",
					traffic.ResultPacketSize:   "64",
					traffic.ResultRxThroughput: "5000",
				}},
			},
			{
				Name:       "test_b",
				Deployment: "p2p",
				Passed:     false,
				Message:    "SLA not met",
				Duration:   30 * time.Second,
			},
			{
				Name:       "test_c",
				Deployment: "pvp",
				Passed:     true,
				Duration:   30 * time.Second,
				Rows: []traffic.Result{{
					traffic.ResultID:           "test_c",
					traffic.ResultDeployment:   "pvp",
					traffic.ResultTrafficType:  "rfc2544_throughput",
					traffic.ResultPacketSize:   "64",
					traffic.ResultRxThroughput: "4000",
				}},
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSVsOnePerTest(t *testing.T) {
	dir := t.TempDir()
	rep := sampleReport()

	paths, err := WriteCSVs(dir, rep)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	// Every selected test gets a data row, failed ones included.
	dataRows := 0
	for _, path := range paths {
		records := readCSV(t, path)
		require.GreaterOrEqual(t, len(records), 2)
		dataRows += len(records) - 1
	}
	assert.Equal(t, 3, dataRows)
}

func TestWriteCSVColumnsAndStatus(t *testing.T) {
	dir := t.TempDir()
	rep := sampleReport()

	paths, err := WriteCSVs(dir, rep)
	require.NoError(t, err)

	records := readCSV(t, paths[0])
	header := records[0]
	assert.Equal(t, []string{"id", "deployment", "traffic_type", "packet_size"}, header[:4])
	assert.Equal(t, "message", header[len(header)-1])
	assert.Equal(t, "status", header[len(header)-2])
	assert.Equal(t, "test_a", records[1][0])
	assert.Equal(t, "passed", records[1][len(header)-2])

	failed := readCSV(t, paths[1])
	require.Len(t, failed, 2)
	assert.Equal(t, "test_b", failed[1][0])
	assert.Equal(t, "failed", failed[1][len(failed[0])-2])
	assert.Equal(t, "SLA not met", failed[1][len(failed[0])-1])
}

func TestCreateResultsDirNaming(t *testing.T) {
	base := t.TempDir()
	rep := sampleReport()

	dir, err := CreateResultsDir(base, rep.Started, rep.RunName)
	require.NoError(t, err)
	assert.Equal(t, "results_2023-04-01_12-00-00_brave-otter", filepath.Base(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEngineName(t *testing.T) {
	settings := config.NewStore()
	assert.Equal(t, "Dummy", EngineName(settings))

	settings.Set("FWDAPP", "TestPMD")
	assert.Equal(t, "TestPMD", EngineName(settings))

	settings.Set("VSWITCH", "OvsDpdkVhost")
	assert.Equal(t, "OvsDpdkVhost_TestPMD", EngineName(settings))
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	rep := sampleReport()

	path, err := WriteSummary(dir, "OvsDpdkVhost", rep, map[string]string{"os": "Fedora 36"})
	require.NoError(t, err)
	assert.Equal(t, "report_ovs_dpdk_vhost.md", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "brave-otter")
	assert.Contains(t, content, "Fedora 36")
	assert.Contains(t, content, "test_b: FAILED")
	assert.Contains(t, content, "SLA not met")
	assert.True(t, strings.Contains(content, "tests: 3, failures: 1"))
}

func TestWriteJUnit(t *testing.T) {
	dir := t.TempDir()
	rep := sampleReport()
	path := filepath.Join(dir, "results.xml")

	require.NoError(t, WriteJUnit(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `tests="3"`)
	assert.Contains(t, content, `failures="1"`)
	assert.Contains(t, content, `name="test_b"`)
	assert.Contains(t, content, "SLA not met")
}
