// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/registry"
	"github.com/onosproject/vsperf/pkg/suite"
)

var (
	headingColor = color.New(color.FgBlue, color.Bold)
	nameColor    = color.New(color.FgCyan)
)

// listFlags maps the component listing flags onto the roles they show
var listFlags = map[string]registry.Role{
	"list-trafficgens": registry.RoleTrafficGen,
	"list-vswitches":   registry.RoleVSwitch,
	"list-fwdapps":     registry.RoleForwarder,
	"list-vnfs":        registry.RoleVNF,
	"list-loadgens":    registry.RoleLoadGen,
	"list-collectors":  registry.RoleCollector,
}

func listTests(w io.Writer, catalog []suite.Descriptor) {
	headingColor.Fprintln(w, "Available tests:")
	for _, descriptor := range catalog {
		nameColor.Fprintf(w, "  %s", descriptor.Name)
		fmt.Fprintf(w, "  %s\n", descriptor.Description)
	}
}

func listComponents(w io.Writer, role registry.Role) {
	headingColor.Fprintf(w, "Registered %s components:\n", role)
	names := registry.Names(role)
	if len(names) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, name := range names {
		nameColor.Fprintf(w, "  %s\n", name)
	}
}

func listSettings(w io.Writer, settings *config.Store) {
	headingColor.Fprintln(w, "Effective settings:")
	for _, key := range settings.Keys() {
		value, err := settings.Get(key)
		if err != nil {
			continue
		}
		origin, _ := settings.Origin(key)
		nameColor.Fprintf(w, "  %s", key)
		fmt.Fprintf(w, " = %v (%s)\n", value.Interface(), origin)
	}
}
