// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package traffic

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// Well-known result row keys. Generators fill the measurement keys; the
// controller stamps the identity keys before recording a row.
const (
	ResultID            = "id"
	ResultDeployment    = "deployment"
	ResultTrafficType   = "traffic_type"
	ResultPacketSize    = "packet_size"
	ResultRxThroughput  = "throughput_rx_fps"
	ResultRxMbps        = "throughput_rx_mbps"
	ResultRxPercent     = "throughput_rx_percent"
	ResultTxRate        = "tx_rate_fps"
	ResultTxFrames      = "tx_frames"
	ResultRxFrames      = "rx_frames"
	ResultFrameLoss     = "frame_loss_percent"
	ResultMinLatency    = "min_latency_ns"
	ResultMaxLatency    = "max_latency_ns"
	ResultAvgLatency    = "avg_latency_ns"
	ResultB2BFrames     = "b2b_frames"
	ResultB2BFrameLoss  = "b2b_frame_loss_percent"
	ResultForwardingFPS = "forwarding_rate_fps"
)

// Result is one measurement row produced by a traffic generator
type Result map[string]string

// Copy returns a detached copy of the result row
func (r Result) Copy() Result {
	copied := make(Result, len(r))
	for key, value := range r {
		copied[key] = value
	}
	return copied
}

// PrintResults writes a set of result rows as an aligned table. Columns
// are the union of the row keys, sorted.
func PrintResults(w io.Writer, results []Result) {
	if len(results) == 0 {
		return
	}
	seen := make(map[string]bool)
	for _, result := range results {
		for key := range result {
			seen[key] = true
		}
	}
	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}
	sort.Strings(columns)

	tw := tabwriter.NewWriter(w, 1, 1, 2, ' ', 0)
	defer tw.Flush()
	for i, column := range columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, column)
	}
	fmt.Fprintln(tw)
	for _, result := range results {
		for i, column := range columns {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, result[column])
		}
		fmt.Fprintln(tw)
	}
}
