// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package traffic

import (
	"github.com/onosproject/vsperf/pkg/config"
)

// rfc2544Controller drives throughput, back-to-back and continuous
// scenarios. The measurement to run is taken from the traffic
// descriptor, so one controller instance serves all three subtypes.
type rfc2544Controller struct {
	controller
	trials int
}

func newRFC2544Controller(gen Generator, settings *config.Store) Controller {
	return &rfc2544Controller{
		controller: newController("rfc2544", gen, settings),
		trials:     settings.Default("RFC2544_TRIALS", 1).Int(),
	}
}

func (c *rfc2544Controller) SendTraffic(t Traffic) error {
	if !c.trafficRequired() {
		return nil
	}
	c.log.WithField("traffic", t.Type).Debug("Sending traffic")

	for _, size := range c.packetSizes {
		t.L2.FrameSize = size

		var result Result
		var err error
		switch t.Type {
		case RFC2544BackToBack:
			result, err = c.gen.SendRFC2544BackToBack(t, c.trials, c.duration)
		case RFC2544Continuous:
			result, err = c.gen.SendContTraffic(t, c.duration)
		default:
			result, err = c.gen.SendRFC2544Throughput(t, c.trials, c.duration)
		}
		if err != nil {
			return err
		}
		c.record(result, t)
	}
	return nil
}
