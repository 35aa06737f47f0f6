// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package dashboard pushes run results to an OPNFV results collector.
// Publication is best-effort; a collector outage never fails the run.
package dashboard

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"time"

	retry "github.com/avast/retry-go"
	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/suite"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Record is the payload the collector expects for one test case
type Record struct {
	Project     string            `json:"project_name"`
	Case        string            `json:"case_name"`
	Pod         string            `json:"pod_name"`
	Installer   string            `json:"installer"`
	Version     string            `json:"version"`
	BuildTag    string            `json:"build_tag"`
	Criteria    string            `json:"criteria"`
	StartDate   string            `json:"start_date"`
	StopDate    string            `json:"stop_date"`
	Details     map[string]string `json:"details"`
}

// Client publishes reports to the collector URL configured in the
// settings store
type Client struct {
	settings *config.Store
	client   *http.Client
	log      *log.Entry
}

// NewClient creates a dashboard client
func NewClient(settings *config.Store) *Client {
	return &Client{
		settings: settings,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log.WithField("component", "dashboard"),
	}
}

// Publish sends one record per test to the collector. Individual
// failures are logged and publication continues with the next record.
func (c *Client) Publish(rep *suite.Report, pod string) {
	url := c.settings.Default("OPNFV_URL", "").String()
	if url == "" {
		c.log.Warn("No collector URL configured, skipping publication")
		return
	}

	buildTag := os.Getenv("BUILD_TAG")
	if buildTag == "" {
		buildTag = "none"
	}

	for _, result := range rep.Results {
		criteria := "PASS"
		if !result.Passed {
			criteria = "FAIL"
		}
		record := Record{
			Project:   c.settings.Default("OPNFV_PROJECT", "vsperf").String(),
			Case:      result.Name,
			Pod:       pod,
			Installer: c.settings.Default("OPNFV_INSTALLER", "").String(),
			Version:   c.settings.Default("OPNFV_VERSION", "master").String(),
			BuildTag:  buildTag,
			Criteria:  criteria,
			StartDate: rep.Started.UTC().Format("2006-01-02 15:04:05"),
			StopDate:  rep.Finished.UTC().Format("2006-01-02 15:04:05"),
			Details:   details(result),
		}
		if err := c.post(url, record); err != nil {
			c.log.WithError(err).Warnf("Failed to publish result for %s", result.Name)
		}
	}
}

func details(result suite.Result) map[string]string {
	d := map[string]string{
		"deployment": result.Deployment,
		"duration":   result.Duration.String(),
	}
	if result.Message != "" {
		d["message"] = result.Message
	}
	for _, row := range result.Rows {
		for key, value := range row {
			d[key] = value
		}
	}
	for key, value := range result.Metrics {
		d[key] = value
	}
	return d
}

func (c *Client) post(url string, record Record) error {
	body, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to encode record")
	}
	return retry.Do(
		func() error {
			resp, err := c.client.Post(url, "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode >= 300 {
				return errors.Errorf("collector returned %s", resp.Status)
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
	)
}
