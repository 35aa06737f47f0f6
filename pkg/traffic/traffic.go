// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package traffic defines the traffic descriptors exchanged between the
// orchestrator and traffic-generator implementations, and the controllers
// that drive a generator for one deployment scenario.
package traffic

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Type identifies a traffic scenario understood by the controller factory
type Type string

const (
	// RFC2544Throughput is a binary-search throughput measurement
	RFC2544Throughput Type = "rfc2544_throughput"
	// RFC2544BackToBack is a back-to-back frames measurement
	RFC2544BackToBack Type = "rfc2544_back2back"
	// RFC2544Continuous sends at a fixed rate without a search
	RFC2544Continuous Type = "rfc2544_continuous"
	// RFC2889Forwarding is a maximum forwarding rate measurement
	RFC2889Forwarding Type = "rfc2889_forwarding"
	// RFC2889Caching is an address caching capacity measurement
	RFC2889Caching Type = "rfc2889_caching"
	// RFC2889Congestion is a congestion control measurement
	RFC2889Congestion Type = "rfc2889_congestion"
)

// L2 is the link-layer portion of a traffic descriptor
type L2 struct {
	FrameSize int    `mapstructure:"framesize"`
	SrcMAC    string `mapstructure:"srcmac"`
	DstMAC    string `mapstructure:"dstmac"`
}

// L3 is the network-layer portion of a traffic descriptor
type L3 struct {
	Proto string `mapstructure:"proto"`
	SrcIP string `mapstructure:"srcip"`
	DstIP string `mapstructure:"dstip"`
}

// Traffic describes one traffic scenario. A test descriptor carries it
// as a plain mapping; Decode converts the mapping to this form. The
// controller owns the FrameSize field and overwrites it for every
// configured packet size.
type Traffic struct {
	Type        Type    `mapstructure:"traffic_type"`
	Bidir       bool    `mapstructure:"bidir"`
	FrameRate   float64 `mapstructure:"frame_rate"`
	MultiStream int     `mapstructure:"multistream"`
	L2          L2      `mapstructure:"l2"`
	L3          L3      `mapstructure:"l3"`
}

// Decode converts a traffic mapping from a test descriptor into a
// Traffic value, leaving unspecified fields at the given defaults
func Decode(values map[string]any, defaults Traffic) (Traffic, error) {
	t := defaults
	if len(values) == 0 {
		return t, nil
	}
	if err := mapstructure.WeakDecode(values, &t); err != nil {
		return Traffic{}, errors.Wrap(err, "failed to decode traffic parameters")
	}
	return t, nil
}
