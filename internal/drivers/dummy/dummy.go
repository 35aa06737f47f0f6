// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package dummy provides a traffic generator that fabricates
// measurements instead of driving hardware. It exists so deployments,
// test selection and reporting can be exercised without a physical
// generator attached.
package dummy

import (
	"fmt"
	"time"

	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/registry"
	"github.com/onosproject/vsperf/pkg/traffic"
	log "github.com/sirupsen/logrus"
)

func init() {
	registry.RegisterTrafficGenerator("Dummy", func(settings *config.Store) (traffic.Generator, error) {
		return &generator{
			log: log.WithField("component", "dummy-trafficgen"),
		}, nil
	})
}

// lineRate approximates 10GbE throughput in frames per second for a
// given frame size, including preamble and inter-frame gap
func lineRate(frameSize int) float64 {
	return 10e9 / float64((frameSize+20)*8)
}

type generator struct {
	log       *log.Entry
	connected bool
	running   *traffic.Traffic
}

func (g *generator) Connect() error {
	g.log.Info("Connected")
	g.connected = true
	return nil
}

func (g *generator) Disconnect() error {
	g.log.Info("Disconnected")
	g.connected = false
	return nil
}

// synthesize fabricates a plausible measurement for the requested
// traffic profile, scaled by the configured frame rate percentage
func (g *generator) synthesize(t traffic.Traffic) traffic.Result {
	rate := lineRate(t.L2.FrameSize) * t.FrameRate / 100
	return traffic.Result{
		traffic.ResultTxFrames:     fmt.Sprintf("%.0f", rate),
		traffic.ResultRxFrames:     fmt.Sprintf("%.0f", rate),
		traffic.ResultTxRate:       fmt.Sprintf("%.2f", rate),
		traffic.ResultRxThroughput: fmt.Sprintf("%.2f", rate),
		traffic.ResultFrameLoss:    "0.00",
		traffic.ResultMinLatency:   "10",
		traffic.ResultAvgLatency:   "25",
		traffic.ResultMaxLatency:   "120",
	}
}

func (g *generator) SendRFC2544Throughput(t traffic.Traffic, trials int, duration time.Duration) (traffic.Result, error) {
	g.log.Infof("RFC 2544 throughput search, %d trials of %s", trials, duration)
	return g.synthesize(t), nil
}

func (g *generator) SendRFC2544BackToBack(t traffic.Traffic, trials int, duration time.Duration) (traffic.Result, error) {
	g.log.Infof("RFC 2544 back-to-back, %d trials of %s", trials, duration)
	result := g.synthesize(t)
	result[traffic.ResultB2BFrames] = "1000"
	return result, nil
}

func (g *generator) SendContTraffic(t traffic.Traffic, duration time.Duration) (traffic.Result, error) {
	g.log.Infof("Continuous traffic for %s", duration)
	return g.synthesize(t), nil
}

func (g *generator) StartContTraffic(t traffic.Traffic) error {
	g.log.Info("Continuous traffic started")
	g.running = &t
	return nil
}

func (g *generator) StopContTraffic() (traffic.Result, error) {
	g.log.Info("Continuous traffic stopped")
	if g.running == nil {
		return traffic.Result{}, nil
	}
	result := g.synthesize(*g.running)
	g.running = nil
	return result, nil
}

func (g *generator) SendRFC2889Forwarding(t traffic.Traffic, trials int, duration time.Duration) (traffic.Result, error) {
	g.log.Infof("RFC 2889 forwarding rate, %d trials of %s", trials, duration)
	return g.synthesize(t), nil
}

func (g *generator) SendRFC2889Caching(t traffic.Traffic, trials int, duration time.Duration) (traffic.Result, error) {
	g.log.Infof("RFC 2889 address caching, %d trials of %s", trials, duration)
	result := g.synthesize(t)
	result["caching_capacity"] = "16384"
	return result, nil
}

func (g *generator) SendRFC2889Congestion(t traffic.Traffic, duration time.Duration) (traffic.Result, error) {
	g.log.Infof("RFC 2889 congestion control for %s", duration)
	return g.synthesize(t), nil
}
