// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LoadDefaults merges the built-in defaults into the lowest layer
func (s *Store) LoadDefaults(values map[string]any) {
	s.load(LayerDefaults, values)
}

// LoadDir loads every configuration file in a directory into the
// conf-dir layer. Files are applied in lexical order so numbered file
// names (01_defaults.yaml, 02_vswitch.yaml) give a stable precedence
// within the layer.
func (s *Store) LoadDir(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read configuration directory %s", path)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml", ".json", ".toml":
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	for _, file := range files {
		values, err := readFile(file)
		if err != nil {
			return err
		}
		s.load(LayerConfDir, values)
	}
	return nil
}

// LoadFile loads an explicit configuration file override
func (s *Store) LoadFile(path string) error {
	values, err := readFile(path)
	if err != nil {
		return err
	}
	s.load(LayerConfFile, values)
	return nil
}

// LoadArgsEarly applies command-line overrides before the file and
// environment layers are loaded
func (s *Store) LoadArgsEarly(values map[string]any) {
	s.load(LayerArgsEarly, values)
}

// LoadArgsLate re-applies command-line overrides after the environment
// layer so explicit flags win over environment variables
func (s *Store) LoadArgsLate(values map[string]any) {
	s.load(LayerArgsLate, values)
}

// LoadEnv loads settings from environment variables carrying the given
// prefix. VSPERF_TRAFFICGEN=Dummy becomes TRAFFICGEN=Dummy. Values are
// YAML scalars, so VSPERF_PACKET_SIZES="[64, 1518]" yields a list just
// as a configuration file would.
func (s *Store) LoadEnv(prefix string) {
	values := make(map[string]any)
	for _, entry := range os.Environ() {
		key, raw, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		values[strings.TrimPrefix(key, prefix)] = value
	}
	s.load(LayerEnvironment, values)
}

// readFile parses a single configuration file into a settings map
func readFile(path string) (map[string]any, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read configuration file %s", path)
	}
	return v.AllSettings(), nil
}
