// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package cli wires the settings store, component registry, hardware
// manager and test runner into the vsperf command.
package cli

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/onosproject/vsperf/internal/dashboard"
	"github.com/onosproject/vsperf/internal/report"
	"github.com/onosproject/vsperf/internal/sysinfo"
	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/network"
	"github.com/onosproject/vsperf/pkg/suite"
	"github.com/onosproject/vsperf/pkg/vsperferrors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	// Built-in components register themselves with the registry.
	_ "github.com/onosproject/vsperf/internal/drivers/dummy"
	_ "github.com/onosproject/vsperf/internal/drivers/sysmetrics"
)

const rootExamples = `
  # Run every performance test with the built-in Dummy traffic generator.
  vsperf

  # Run the RFC 2544 tests except the phy2phy ones.
  vsperf --tests "rfc,!phy2phy"

  # Run two tests by exact name.
  vsperf phy2phy_tput back2back

  # Send traffic only, without deploying a switching stack.
  vsperf --mode trafficgen phy2phy_cont

  # Override settings for this run only.
  vsperf --test-params "DURATION=10;PACKET_SIZES=[64,1518]" phy2phy_tput
`

var validModes = map[string]bool{
	"normal":           true,
	"trafficgen":       true,
	"trafficgen-off":   true,
	"trafficgen-pause": true,
}

// GetRootCommand returns the root vsperf command
func GetRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "vsperf [test names]",
		Short:        "Run dataplane performance tests against a packet processing deployment",
		Example:      rootExamples,
		SilenceUsage: true,
		RunE:         runRootCommand,
	}
	cmd.Flags().StringP("tests", "t", "", "substring filter selecting tests, \"!\" negates a term")
	cmd.Flags().StringP("mode", "m", "normal", "run mode: normal, trafficgen, trafficgen-off or trafficgen-pause")
	cmd.Flags().Bool("integration", false, "run the integration test catalog")
	cmd.Flags().String("catalog", "", "load test descriptors from a YAML file instead of the built-in catalog")
	cmd.Flags().String("trafficgen", "", "the traffic generator to use")
	cmd.Flags().String("vswitch", "", "the virtual switch to deploy")
	cmd.Flags().String("fwdapp", "", "the forwarding application to deploy")
	cmd.Flags().String("vnf", "", "the virtual network function to deploy")
	cmd.Flags().String("loadgen", "", "the background load generator to use")
	cmd.Flags().String("sysmetrics", "", "the system metrics collector to use")
	cmd.Flags().String("conf-dir", "./conf", "directory of configuration files, applied in lexical order")
	cmd.Flags().String("conf-file", "", "configuration file overriding the configuration directory")
	cmd.Flags().Bool("load-env", false, "import VSPERF_ prefixed environment variables into the settings")
	cmd.Flags().String("test-params", "", "per-run settings overrides as \"key=value;key2=value2\"")
	cmd.Flags().Bool("xunit", false, "write a junit XML summary into the results directory")
	cmd.Flags().String("xunit-dir", "", "directory for the junit XML summary")
	cmd.Flags().String("opnfvpod", "", "pod name under which to publish results to the OPNFV collector")
	cmd.Flags().Bool("list", false, "list the selected tests and exit")
	cmd.Flags().Bool("list-settings", false, "list the effective settings and exit")
	for flag, role := range listFlags {
		cmd.Flags().Bool(flag, false, "list the registered "+string(role)+" components and exit")
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	return cmd
}

func runRootCommand(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)

	settings, err := buildSettings(cmd)
	if err != nil {
		return err
	}

	if mode := settings.Default("MODE", "normal").String(); !validModes[mode] {
		return &vsperferrors.ErrInvalidArgument{
			Name:    "mode",
			Value:   mode,
			Message: "not a recognized run mode",
		}
	}

	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	if done, err := runListCommands(cmd, settings, catalog); done || err != nil {
		return err
	}

	selected, err := selectTests(cmd, catalog, args)
	if err != nil {
		return err
	}

	var manager *network.Manager
	if nics := settings.Default("WHITELIST_NICS", []any{}).StringSlice(); len(nics) > 0 {
		manager = network.NewManager(settings, network.NewSysfsBus())
	}

	runner := suite.NewRunner(settings, manager)
	rep, err := runner.Run(cmd.Context(), selected)
	if err != nil {
		return err
	}

	finalize(cmd, settings, rep)

	// Individual test failures are recorded in the artifacts; only
	// configuration and hardware errors fail the command itself.
	if failures := rep.Failures(); failures > 0 {
		color.New(color.FgRed, color.Bold).Fprintf(cmd.OutOrStdout(),
			"Ran %d tests, %d failed\n", len(rep.Results), failures)
	} else {
		color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(),
			"Ran %d tests, all passed\n", len(rep.Results))
	}
	return nil
}

func setupLogging(cmd *cobra.Command) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func loadCatalog(cmd *cobra.Command) ([]suite.Descriptor, error) {
	if path, _ := cmd.Flags().GetString("catalog"); path != "" {
		return suite.LoadCatalog(path)
	}
	if integration, _ := cmd.Flags().GetBool("integration"); integration {
		return suite.IntegrationCatalog(), nil
	}
	return suite.PerformanceCatalog(), nil
}

// runListCommands handles the informational flags. The command is done
// when any of them was given.
func runListCommands(cmd *cobra.Command, settings *config.Store, catalog []suite.Descriptor) (bool, error) {
	out := cmd.OutOrStdout()
	done := false
	if list, _ := cmd.Flags().GetBool("list"); list {
		listTests(out, catalog)
		done = true
	}
	for flag, role := range listFlags {
		if set, _ := cmd.Flags().GetBool(flag); set {
			listComponents(out, role)
			done = true
		}
	}
	if list, _ := cmd.Flags().GetBool("list-settings"); list {
		listSettings(out, settings)
		done = true
	}
	return done, nil
}

// selectTests resolves the test selection. Exact names and a filter
// expression are mutually exclusive.
func selectTests(cmd *cobra.Command, catalog []suite.Descriptor, args []string) ([]suite.Descriptor, error) {
	filter, _ := cmd.Flags().GetString("tests")
	if len(args) > 0 && filter != "" {
		return nil, &vsperferrors.ErrInvalidArgument{
			Name:    "tests",
			Value:   filter,
			Message: "give either exact test names or --tests, not both",
		}
	}
	if len(args) > 0 {
		return suite.SelectNames(catalog, args)
	}
	selected := suite.Filter(catalog, filter)
	if len(selected) == 0 {
		return nil, &vsperferrors.ErrInvalidArgument{
			Name:    "tests",
			Value:   filter,
			Message: "no tests selected",
		}
	}
	return selected, nil
}

// finalize writes the run artifacts. Reporting problems are warnings;
// the measured results are already in memory and the run outcome must
// not depend on artifact writing.
func finalize(cmd *cobra.Command, settings *config.Store, rep *suite.Report) {
	logger := log.WithField("component", "report")

	dir, err := report.CreateResultsDir(settings.Default("RESULTS_PATH", "./results").String(), rep.Started, rep.RunName)
	if err != nil {
		logger.WithError(err).Warn("Failed to create results directory")
		return
	}

	if _, err := report.WriteCSVs(dir, rep); err != nil {
		logger.WithError(err).Warn("Failed to write CSV results")
	}

	engine := report.EngineName(settings)
	if path, err := report.WriteSummary(dir, engine, rep, sysinfo.Get()); err != nil {
		logger.WithError(err).Warn("Failed to write the aggregated report")
	} else {
		logger.Infof("Wrote report %s", path)
	}

	if xunit, _ := cmd.Flags().GetBool("xunit"); xunit {
		xunitDir, _ := cmd.Flags().GetString("xunit-dir")
		if xunitDir == "" {
			xunitDir = dir
		}
		if err := report.WriteJUnit(filepath.Join(xunitDir, "results.xml"), rep); err != nil {
			logger.WithError(err).Warn("Failed to write the junit summary")
		}
	}

	if pod, _ := cmd.Flags().GetString("opnfvpod"); pod != "" {
		dashboard.NewClient(settings).Publish(rep, pod)
	}
}
