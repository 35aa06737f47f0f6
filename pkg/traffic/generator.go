// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package traffic

import (
	"time"

	"github.com/onosproject/vsperf/pkg/config"
)

// Generator is the capability contract a traffic-generator driver must
// satisfy. Send operations block until the measurement completes; the
// Start/Stop pair supports deployments that run other work while
// continuous traffic flows.
type Generator interface {
	// Connect prepares the generator for use
	Connect() error
	// Disconnect releases the generator
	Disconnect() error

	// SendRFC2544Throughput runs a throughput search and reports the result
	SendRFC2544Throughput(t Traffic, trials int, duration time.Duration) (Result, error)
	// SendRFC2544BackToBack runs a back-to-back frames measurement
	SendRFC2544BackToBack(t Traffic, trials int, duration time.Duration) (Result, error)
	// SendContTraffic sends at a fixed rate for the given duration
	SendContTraffic(t Traffic, duration time.Duration) (Result, error)
	// StartContTraffic starts fixed-rate traffic without blocking
	StartContTraffic(t Traffic) error
	// StopContTraffic stops traffic started by StartContTraffic
	StopContTraffic() (Result, error)

	// SendRFC2889Forwarding runs a maximum forwarding rate measurement
	SendRFC2889Forwarding(t Traffic, trials int, duration time.Duration) (Result, error)
	// SendRFC2889Caching runs an address caching measurement
	SendRFC2889Caching(t Traffic, trials int, duration time.Duration) (Result, error)
	// SendRFC2889Congestion runs a congestion control measurement
	SendRFC2889Congestion(t Traffic, duration time.Duration) (Result, error)
}

// GeneratorFactory creates a generator instance bound to the given settings
type GeneratorFactory func(settings *config.Store) (Generator, error)
