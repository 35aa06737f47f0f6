// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package sysmetrics provides the LinuxMetrics collector, which samples
// load and memory figures from procfs around a test.
package sysmetrics

import (
	"os"
	"strings"

	"github.com/onosproject/vsperf/pkg/component"
	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/registry"
	log "github.com/sirupsen/logrus"
)

func init() {
	registry.RegisterCollector("LinuxMetrics", func(settings *config.Store) (component.Collector, error) {
		return &collector{
			log:  log.WithField("component", "sysmetrics"),
			proc: "/proc",
		}, nil
	})
}

type sample struct {
	load    string
	memFree string
}

type collector struct {
	log  *log.Entry
	proc string

	before sample
	after  sample
}

func (c *collector) Start() error {
	c.before = c.sample()
	c.log.Debug("Sampled system metrics at test start")
	return nil
}

func (c *collector) Stop() error {
	c.after = c.sample()
	c.log.Debug("Sampled system metrics at test end")
	return nil
}

// Results reports the samples taken at the test boundaries. Missing
// procfs entries produce empty values rather than errors.
func (c *collector) Results() map[string]string {
	return map[string]string{
		"load_start":     c.before.load,
		"load_end":       c.after.load,
		"mem_free_start": c.before.memFree,
		"mem_free_end":   c.after.memFree,
	}
}

func (c *collector) sample() sample {
	return sample{
		load:    c.loadavg(),
		memFree: c.memInfo("MemFree"),
	}
}

func (c *collector) loadavg() string {
	data, err := os.ReadFile(c.proc + "/loadavg")
	if err != nil {
		return ""
	}
	fields := strings.Fields(string(data))
	if len(fields) < 3 {
		return ""
	}
	return strings.Join(fields[:3], " ")
}

func (c *collector) memInfo(key string) string {
	data, err := os.ReadFile(c.proc + "/meminfo")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		name, value, ok := strings.Cut(line, ":")
		if ok && strings.TrimSpace(name) == key {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
