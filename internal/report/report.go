// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/suite"
	"github.com/onosproject/vsperf/pkg/traffic"
	"github.com/pkg/errors"
)

// EngineName derives the processing-engine name the aggregated report
// file is named after: the vswitch if one is deployed, otherwise the
// forwarding application, otherwise the traffic generator alone.
func EngineName(settings *config.Store) string {
	var engines []string
	if name := settings.Default("VSWITCH", "none").String(); name != "none" {
		engines = append(engines, name)
	}
	if name := settings.Default("FWDAPP", "none").String(); name != "none" {
		engines = append(engines, name)
	}
	if len(engines) == 0 {
		engines = append(engines, settings.Default("TRAFFICGEN", "Dummy").String())
	}
	return strings.Join(engines, "_")
}

// WriteSummary assembles the aggregated report across all tests that
// produced output and writes it into the results directory
func WriteSummary(dir, engine string, rep *suite.Report, env map[string]string) (string, error) {
	path := filepath.Join(dir, "report_"+strcase.ToSnake(engine)+".md")
	var b strings.Builder

	fmt.Fprintf(&b, "# Test Report: %s\n\n", engine)
	fmt.Fprintf(&b, "- run: %s (%s)\n", rep.RunName, rep.RunID)
	fmt.Fprintf(&b, "- started: %s\n", rep.Started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- tests: %d, failures: %d\n\n", len(rep.Results), rep.Failures())

	if len(env) > 0 {
		b.WriteString("## Environment\n\n")
		keys := make([]string, 0, len(env))
		for key := range env {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", key, env[key])
		}
		b.WriteString("\n")
	}

	for _, result := range rep.Results {
		status := "PASSED"
		if !result.Passed {
			status = "FAILED"
		}
		fmt.Fprintf(&b, "## %s: %s\n\n", result.Name, status)
		if result.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", result.Description)
		}
		fmt.Fprintf(&b, "- deployment: %s\n", result.Deployment)
		fmt.Fprintf(&b, "- duration: %s\n", result.Duration.Round(time.Millisecond))
		if result.Message != "" {
			fmt.Fprintf(&b, "- failure: %s\n", result.Message)
		}
		b.WriteString("\n")
		if len(result.Rows) > 0 {
			traffic.PrintResults(&b, result.Rows)
			b.WriteString("\n")
		}
		if len(result.Metrics) > 0 {
			keys := make([]string, 0, len(result.Metrics))
			for key := range result.Metrics {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(&b, "- %s: %s\n", key, result.Metrics[key])
			}
			b.WriteString("\n")
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write report %s", path)
	}
	return path, nil
}
