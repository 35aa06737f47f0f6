// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package sysinfo collects a best-effort description of the test
// environment for the aggregated report header.
package sysinfo

import (
	"os"
	"runtime"
	"strings"
)

// Get returns the environment details available on this host. Fields
// that cannot be determined are omitted rather than reported as errors;
// the report is informational.
func Get() map[string]string {
	info := map[string]string{
		"arch": runtime.GOARCH,
	}
	if value := osRelease(); value != "" {
		info["os"] = value
	}
	if value := firstLine("/proc/version"); value != "" {
		info["kernel"] = value
	}
	if value := procField("/proc/cpuinfo", "model name"); value != "" {
		info["cpu"] = value
	}
	if value := procField("/proc/meminfo", "MemTotal"); value != "" {
		info["memory"] = value
	}
	if hostname, err := os.Hostname(); err == nil {
		info["host"] = hostname
	}
	return info
}

func osRelease() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if value, ok := cutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(value, `"`)
		}
	}
	return ""
}

func firstLine(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line)
}

// procField returns the value of the first "key: value" line matching
// the given key
func procField(path, key string) string {
	data, err := os.ReadFile(path)
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

func cutPrefix(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return strings.TrimPrefix(s, prefix), true
	}
	return s, false
}
