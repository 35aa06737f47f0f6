// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package suite

// PerformanceCatalog returns the built-in performance test descriptors
func PerformanceCatalog() []Descriptor {
	return []Descriptor{
		{
			Name:        "phy2phy_tput",
			Description: "LTD.Throughput.RFC2544.PacketLossRatio",
			Deployment:  "p2p",
			Traffic:     map[string]any{"traffic_type": "rfc2544_throughput"},
		},
		{
			Name:        "phy2phy_forwarding",
			Description: "LTD.Forwarding.RFC2889.MaxForwardingRate",
			Deployment:  "p2p",
			Traffic:     map[string]any{"traffic_type": "rfc2889_forwarding"},
		},
		{
			Name:        "back2back",
			Description: "LTD.Throughput.RFC2544.BackToBackFrames",
			Deployment:  "p2p",
			Traffic:     map[string]any{"traffic_type": "rfc2544_back2back"},
		},
		{
			Name:        "phy2phy_cont",
			Description: "Phy2Phy Continuous Stream",
			Deployment:  "p2p",
			Traffic:     map[string]any{"traffic_type": "rfc2544_continuous", "frame_rate": 100},
		},
		{
			Name:        "pvp_tput",
			Description: "LTD.Throughput.RFC2544.PacketLossRatio",
			Deployment:  "pvp",
			Traffic:     map[string]any{"traffic_type": "rfc2544_throughput"},
		},
		{
			Name:        "pvvp_tput",
			Description: "LTD.Throughput.RFC2544.PacketLossRatio",
			Deployment:  "pvvp",
			Traffic:     map[string]any{"traffic_type": "rfc2544_throughput"},
		},
	}
}

// IntegrationCatalog returns the built-in integration test descriptors.
// Integration tests exercise component bring-up without measuring
// traffic, so they force trafficgen-off for their own duration.
func IntegrationCatalog() []Descriptor {
	return []Descriptor{
		{
			Name:        "vswitch_add_del_bridge",
			Description: "vSwitch - add and delete bridge",
			Deployment:  "clean",
			Parameters:  map[string]any{"MODE": "trafficgen-off"},
		},
		{
			Name:        "vswitch_vports_add_del_connection",
			Description: "vSwitch - add and delete connection between virtual ports",
			Deployment:  "clean",
			Parameters:  map[string]any{"MODE": "trafficgen-off"},
		},
		{
			Name:        "vnf_start_stop",
			Description: "VNF - start and stop",
			Deployment:  "pvp",
			Parameters:  map[string]any{"MODE": "trafficgen-off"},
		},
	}
}
