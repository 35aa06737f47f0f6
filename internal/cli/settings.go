// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"
	"strings"

	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/vsperferrors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// EnvPrefix marks the environment variables the settings store imports
// when --load-env is given
const EnvPrefix = "VSPERF_"

// defaults returns the lowest settings layer. Everything here can be
// overridden by configuration files, the environment or flags.
func defaults() map[string]any {
	return map[string]any{
		"MODE":           "normal",
		"TRAFFICGEN":     "Dummy",
		"VSWITCH":        "none",
		"FWDAPP":         "none",
		"VNF":            "none",
		"LOADGEN":        "none",
		"SYSMETRICS":     "LinuxMetrics",
		"TRAFFIC_TYPE":   "rfc2544_throughput",
		"PACKET_SIZES":   []any{64},
		"DURATION":       30,
		"RFC2544_TRIALS": 1,
		"RFC2889_TRIALS": 1,
		"SETTLE_TIME":    2,
		"WHITELIST_NICS": []any{},
		"RESULTS_PATH":   "./results",
		"OPNFV_URL":      "",
		"OPNFV_PROJECT":  "vsperf",
		"OPNFV_VERSION":  "master",
	}
}

// flagKeys maps component flags onto the settings keys they override
var flagKeys = map[string]string{
	"mode":       "MODE",
	"trafficgen": "TRAFFICGEN",
	"vswitch":    "VSWITCH",
	"fwdapp":     "FWDAPP",
	"vnf":        "VNF",
	"loadgen":    "LOADGEN",
	"sysmetrics": "SYSMETRICS",
}

// buildSettings assembles the layered settings store for a run. Flags
// are applied twice: once before the environment layer so file parsing
// can see them, and once after so an explicit flag always wins over an
// inherited environment variable.
func buildSettings(cmd *cobra.Command) (*config.Store, error) {
	settings := config.NewStore()
	settings.LoadDefaults(defaults())

	confDir, _ := cmd.Flags().GetString("conf-dir")
	if confDir != "" {
		if _, err := os.Stat(confDir); err == nil {
			if err := settings.LoadDir(confDir); err != nil {
				return nil, err
			}
		} else if cmd.Flags().Changed("conf-dir") {
			// A directory the operator asked for must exist.
			return nil, &vsperferrors.ErrInvalidArgument{
				Name:    "conf-dir",
				Value:   confDir,
				Message: "configuration directory not found",
			}
		}
	}

	if confFile, _ := cmd.Flags().GetString("conf-file"); confFile != "" {
		if err := settings.LoadFile(confFile); err != nil {
			return nil, err
		}
	}

	args, err := flagSettings(cmd)
	if err != nil {
		return nil, err
	}
	settings.LoadArgsEarly(args)

	if loadEnv, _ := cmd.Flags().GetBool("load-env"); loadEnv {
		settings.LoadEnv(EnvPrefix)
	}

	settings.LoadArgsLate(args)
	return settings, nil
}

// flagSettings collects the settings overrides given on the command
// line, including parsed --test-params pairs
func flagSettings(cmd *cobra.Command) (map[string]any, error) {
	values := make(map[string]any)
	for flag, key := range flagKeys {
		if cmd.Flags().Changed(flag) {
			value, _ := cmd.Flags().GetString(flag)
			values[key] = value
		}
	}

	params, _ := cmd.Flags().GetString("test-params")
	overrides, err := parseTestParams(params)
	if err != nil {
		return nil, err
	}
	for key, value := range overrides {
		values[key] = value
	}
	return values, nil
}

// parseTestParams parses "key=value;key2=value2" overrides. Values are
// YAML scalars, so DURATION=10 is numeric and PACKET_SIZES=[64,1518] is
// a list.
func parseTestParams(params string) (map[string]any, error) {
	values := make(map[string]any)
	for _, pair := range strings.Split(params, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, &vsperferrors.ErrInvalidArgument{
				Name:    "test-params",
				Value:   pair,
				Message: "overrides must be key=value pairs separated by ;",
			}
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		values[strings.TrimSpace(key)] = value
	}
	return values, nil
}
