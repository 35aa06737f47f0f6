// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package traffic

import (
	"github.com/onosproject/vsperf/pkg/config"
)

// rfc2889Controller drives forwarding rate, address caching and
// congestion control scenarios
type rfc2889Controller struct {
	controller
	trials int
}

func newRFC2889Controller(gen Generator, settings *config.Store) Controller {
	return &rfc2889Controller{
		controller: newController("rfc2889", gen, settings),
		trials:     settings.Default("RFC2889_TRIALS", 1).Int(),
	}
}

func (c *rfc2889Controller) SendTraffic(t Traffic) error {
	if !c.trafficRequired() {
		return nil
	}
	c.log.WithField("traffic", t.Type).Debug("Sending traffic")

	for _, size := range c.packetSizes {
		t.L2.FrameSize = size

		var result Result
		var err error
		switch t.Type {
		case RFC2889Caching:
			result, err = c.gen.SendRFC2889Caching(t, c.trials, c.duration)
		case RFC2889Congestion:
			result, err = c.gen.SendRFC2889Congestion(t, c.duration)
		default:
			result, err = c.gen.SendRFC2889Forwarding(t, c.trials, c.duration)
		}
		if err != nil {
			return err
		}
		c.record(result, t)
	}
	return nil
}
