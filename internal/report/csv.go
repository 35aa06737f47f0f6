// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package report persists run artifacts: per-test CSV rows, the
// aggregated report file and the optional CI summary. Reporting
// failures never change the recorded outcome of a test.
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/onosproject/vsperf/pkg/suite"
	"github.com/onosproject/vsperf/pkg/traffic"
	"github.com/pkg/errors"
)

// CreateResultsDir creates the timestamped results directory for a run
func CreateResultsDir(base string, started time.Time, runName string) (string, error) {
	dir := filepath.Join(base, "results_"+started.Format("2006-01-02_15-04-05")+"_"+runName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create results directory %s", dir)
	}
	return dir, nil
}

// WriteCSVs writes one CSV file per test result and returns the file
// paths. A test that produced no measurement rows still gets one row
// recording its outcome, so every selected test appears in the
// artifacts.
func WriteCSVs(dir string, rep *suite.Report) ([]string, error) {
	var paths []string
	for _, result := range rep.Results {
		path := filepath.Join(dir, result.Name+".csv")
		if err := writeCSV(path, result); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSV(path string, result suite.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	rows := result.Rows
	if len(rows) == 0 {
		rows = []traffic.Result{{
			traffic.ResultID:         result.Name,
			traffic.ResultDeployment: result.Deployment,
		}}
	}

	columns := csvColumns(rows)
	header := append(append([]string{}, columns...), "status", "message")
	if err := writer.Write(header); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	status := "passed"
	if !result.Passed {
		status = "failed"
	}
	for _, row := range rows {
		record := make([]string, 0, len(header))
		for _, column := range columns {
			record = append(record, row[column])
		}
		record = append(record, status, result.Message)
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
	}
	return nil
}

// csvColumns returns the identity columns followed by the remaining
// measurement columns, sorted
func csvColumns(rows []traffic.Result) []string {
	identity := []string{
		traffic.ResultID,
		traffic.ResultDeployment,
		traffic.ResultTrafficType,
		traffic.ResultPacketSize,
	}
	leading := make(map[string]bool, len(identity))
	for _, column := range identity {
		leading[column] = true
	}
	seen := make(map[string]bool)
	for _, row := range rows {
		for column := range row {
			if !leading[column] {
				seen[column] = true
			}
		}
	}
	var rest []string
	for column := range seen {
		rest = append(rest, column)
	}
	sort.Strings(rest)
	return append(identity, rest...)
}
