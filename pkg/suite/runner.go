// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package suite

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"github.com/onosproject/vsperf/pkg/component"
	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/network"
	"github.com/onosproject/vsperf/pkg/registry"
	"github.com/onosproject/vsperf/pkg/traffic"
	"github.com/onosproject/vsperf/pkg/vsperferrors"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Result is the recorded outcome of one test
type Result struct {
	Name        string
	Description string
	Deployment  string
	Passed      bool
	Message     string
	Duration    time.Duration
	// Rows are the measurement rows produced by the traffic controller
	Rows []traffic.Result
	// Metrics are the system metrics sampled around the test
	Metrics map[string]string
}

// Report aggregates the outcome of a run
type Report struct {
	RunID    string
	RunName  string
	Started  time.Time
	Finished time.Time
	Results  []Result
}

// Failures returns the number of failed tests
func (r *Report) Failures() int {
	failures := 0
	for _, result := range r.Results {
		if !result.Passed {
			failures++
		}
	}
	return failures
}

// Runner executes test descriptors strictly sequentially. A failure
// inside one test's body fails that test only; configuration mutations
// made by a test are reverted before the next one starts.
type Runner struct {
	settings *config.Store
	network  *network.Manager
	log      *log.Entry

	// Out receives the per-test result tables. Defaults to standard
	// output; tests override it to make assertions on the output.
	Out io.Writer
}

// NewRunner creates a test runner. The network manager may be nil when
// the run does not manage NIC state.
func NewRunner(settings *config.Store, manager *network.Manager) *Runner {
	return &Runner{
		settings: settings,
		network:  manager,
		log:      log.WithField("component", "suite"),
		Out:      os.Stdout,
	}
}

// components holds the factories resolved for a run. Resolution happens
// once, before any hardware mutation or test execution.
type components struct {
	gen       traffic.GeneratorFactory
	vswitch   component.VSwitchFactory
	fwdapp    component.ForwarderFactory
	vnf       component.VNFFactory
	loadgen   component.LoadGenFactory
	collector component.CollectorFactory
}

// resolve maps the configured component names to registered factories.
// An unknown name for any required component is fatal.
func (r *Runner) resolve() (*components, error) {
	c := &components{}
	var err error

	if c.gen, err = registry.ResolveTrafficGenerator(r.settings.Default("TRAFFICGEN", "Dummy").String()); err != nil {
		return nil, err
	}
	if name := r.settings.Default("VSWITCH", "none").String(); name != "none" {
		if c.vswitch, err = registry.ResolveVSwitch(name); err != nil {
			return nil, err
		}
	}
	if name := r.settings.Default("FWDAPP", "none").String(); name != "none" {
		if c.fwdapp, err = registry.ResolveForwarder(name); err != nil {
			return nil, err
		}
	}
	if name := r.settings.Default("VNF", "none").String(); name != "none" {
		if c.vnf, err = registry.ResolveVNF(name); err != nil {
			return nil, err
		}
	}
	if name := r.settings.Default("LOADGEN", "none").String(); name != "none" {
		if c.loadgen, err = registry.ResolveLoadGen(name); err != nil {
			return nil, err
		}
	}
	if name := r.settings.Default("SYSMETRICS", "none").String(); name != "none" {
		if c.collector, err = registry.ResolveCollector(name); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Run executes the selected descriptors in order. Component resolution
// and NIC preparation happen once up front; a resolution failure stops
// the run before any hardware is touched.
func (r *Runner) Run(ctx context.Context, selected []Descriptor) (*Report, error) {
	if len(selected) == 0 {
		return nil, &vsperferrors.ErrInvalidArgument{
			Name:    "tests",
			Value:   "",
			Message: "no tests selected",
		}
	}

	comps, err := r.resolve()
	if err != nil {
		return nil, err
	}

	if r.network != nil {
		nics := r.settings.Default("WHITELIST_NICS", []any{}).StringSlice()
		if _, err := r.network.Setup(nics); err != nil {
			// Leave already-mutated siblings in a safe state before
			// surfacing the fatal error.
			if terr := r.network.Teardown(); terr != nil {
				r.log.WithError(terr).Error("Failed to revert SR-IOV state")
			}
			return nil, err
		}
		defer func() {
			if err := r.network.Teardown(); err != nil {
				r.log.WithError(err).Error("Failed to revert SR-IOV state")
			}
		}()
	}

	report := &Report{
		RunID:   uuid.New().String(),
		RunName: petname.Generate(2, "-"),
		Started: time.Now(),
	}
	r.log.WithField("run", report.RunName).Infof("Running %d tests", len(selected))

	snapshot := r.settings.Snapshot()
	for _, descriptor := range selected {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Results = append(report.Results, r.runOne(descriptor.Copy(), comps, snapshot))
	}
	report.Finished = time.Now()
	return report, nil
}

// runOne executes a single test with full isolation: the settings
// snapshot is restored and any panic in the body is converted into a
// failed result, whatever happens.
func (r *Runner) runOne(d Descriptor, comps *components, snapshot *config.Snapshot) (result Result) {
	started := time.Now()
	result.Name = d.Name
	result.Description = d.Description
	result.Deployment = d.Deployment
	logger := r.log.WithField("test", d.Name)
	logger.Info("Starting test")

	defer r.settings.Restore(snapshot)
	defer func() {
		result.Duration = time.Since(started)
		if rec := recover(); rec != nil {
			result.Passed = false
			result.Message = fmt.Sprintf("panic: %v", rec)
			logger.WithField("stack", string(debug.Stack())).Errorf("Test panicked: %v", rec)
		}
	}()

	if err := r.execute(d, comps, &result); err != nil {
		result.Message = err.Error()
		logger.WithError(err).Errorf("Test failed: %+v", err)
		return result
	}
	result.Passed = true
	logger.Info("Test passed")
	return result
}

func (r *Runner) execute(d Descriptor, comps *components, result *Result) error {
	// Per-test parameter overrides land in the runtime layer; the
	// snapshot restore in runOne reverts them.
	for key, value := range d.Parameters {
		r.settings.Set(key, value)
	}

	mode := r.settings.Default("MODE", "normal").String()

	// In pure trafficgen mode no deployment components are started.
	if mode != "trafficgen" {
		if comps.vswitch != nil {
			vswitch, err := comps.vswitch(r.settings)
			if err != nil {
				return err
			}
			if err := vswitch.Start(); err != nil {
				return errors.Wrap(err, "failed to start vswitch")
			}
			defer r.stop("vswitch", vswitch.Stop)
		}
		if comps.fwdapp != nil {
			fwdapp, err := comps.fwdapp(r.settings)
			if err != nil {
				return err
			}
			if err := fwdapp.Start(); err != nil {
				return errors.Wrap(err, "failed to start forwarding application")
			}
			defer r.stop("forwarding application", fwdapp.Stop)
		}
		if comps.vnf != nil {
			vnf, err := comps.vnf(r.settings)
			if err != nil {
				return err
			}
			if err := vnf.Start(); err != nil {
				return errors.Wrap(err, "failed to start VNF")
			}
			defer r.stop("VNF", vnf.Stop)
		}
		if comps.loadgen != nil {
			loadgen, err := comps.loadgen(r.settings)
			if err != nil {
				return err
			}
			if err := loadgen.Start(); err != nil {
				return errors.Wrap(err, "failed to start load generator")
			}
			defer r.stop("load generator", loadgen.Stop)
		}
	}

	if comps.collector != nil {
		collector, err := comps.collector(r.settings)
		if err != nil {
			return err
		}
		if err := collector.Start(); err != nil {
			return errors.Wrap(err, "failed to start metrics collector")
		}
		defer func() {
			r.stop("metrics collector", collector.Stop)
			result.Metrics = collector.Results()
		}()
	}

	gen, err := comps.gen(r.settings)
	if err != nil {
		return err
	}

	defaults := traffic.Traffic{
		Type:      traffic.Type(r.settings.Default("TRAFFIC_TYPE", string(traffic.RFC2544Throughput)).String()),
		FrameRate: 100,
	}
	t, err := traffic.Decode(d.Traffic, defaults)
	if err != nil {
		return err
	}

	controller, err := traffic.NewController(string(t.Type), gen, r.settings)
	if err != nil {
		return err
	}
	if err := controller.Open(); err != nil {
		return err
	}
	// Generator teardown is guaranteed even when the body fails below.
	defer r.stop("traffic generator", controller.Close)

	if err := controller.SendTraffic(t); err != nil {
		return err
	}

	for _, row := range controller.Results() {
		row[traffic.ResultID] = d.Name
		row[traffic.ResultDeployment] = d.Deployment
		result.Rows = append(result.Rows, row)
	}
	controller.PrintResults(r.Out)

	return checkSLA(d.SLA, result.Rows)
}

// stop invokes a teardown function, logging instead of failing; one
// component's teardown must not block the others
func (r *Runner) stop(name string, stop func() error) {
	if err := stop(); err != nil {
		r.log.WithError(err).Warnf("Failed to stop %s", name)
	}
}

// checkSLA verifies every measurement row against the minimum values
// declared by the descriptor
func checkSLA(sla map[string]float64, rows []traffic.Result) error {
	for key, minimum := range sla {
		for _, row := range rows {
			raw, ok := row[key]
			if !ok {
				continue
			}
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return errors.Wrapf(err, "SLA field %s is not numeric", key)
			}
			if value < minimum {
				return errors.Errorf("SLA not met: %s %v below minimum %v (packet size %s)",
					key, value, minimum, row[traffic.ResultPacketSize])
			}
		}
	}
	return nil
}
