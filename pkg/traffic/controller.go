// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package traffic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/vsperferrors"
	log "github.com/sirupsen/logrus"
)

// Controller drives a traffic generator for one test. Open prepares the
// generator, Close releases it and must be called even when the test
// body failed in between.
type Controller interface {
	// Open connects the underlying generator
	Open() error
	// Close disconnects the underlying generator
	Close() error
	// SendTraffic runs the scenario for every configured packet size
	SendTraffic(t Traffic) error
	// Results returns the recorded result rows
	Results() []Result
	// PrintResults writes the recorded result rows to the writer
	PrintResults(w io.Writer)
}

// controllerFamilies is the closed dispatch table from traffic type to
// controller constructor. This is deliberately not open-ended plugin
// discovery; new traffic types are added here.
var controllerFamilies = map[Type]func(gen Generator, settings *config.Store) Controller{
	RFC2544Throughput: newRFC2544Controller,
	RFC2544BackToBack: newRFC2544Controller,
	RFC2544Continuous: newRFC2544Controller,
	RFC2889Forwarding: newRFC2889Controller,
	RFC2889Caching:    newRFC2889Controller,
	RFC2889Congestion: newRFC2889Controller,
}

// SupportedTypes returns the sorted traffic types the factory can dispatch
func SupportedTypes() []string {
	types := make([]string, 0, len(controllerFamilies))
	for t := range controllerFamilies {
		types = append(types, string(t))
	}
	sort.Strings(types)
	return types
}

// NewController creates the controller for a traffic type, bound to the
// given generator instance
func NewController(trafficType string, gen Generator, settings *config.Store) (Controller, error) {
	t := Type(strings.ToLower(trafficType))
	constructor, ok := controllerFamilies[t]
	if !ok {
		return nil, &vsperferrors.ErrUnsupportedTrafficType{
			Type:      trafficType,
			Supported: SupportedTypes(),
		}
	}
	return constructor(gen, settings), nil
}

// controller carries the state shared by all controller families
type controller struct {
	gen         Generator
	settings    *config.Store
	log         *log.Entry
	packetSizes []int
	duration    time.Duration
	results     []Result

	// in and out serve the trafficgen-pause operator prompt
	in  io.Reader
	out io.Writer
}

func newController(family string, gen Generator, settings *config.Store) controller {
	return controller{
		gen:         gen,
		settings:    settings,
		log:         log.WithField("controller", family),
		packetSizes: settings.Default("PACKET_SIZES", []any{64}).IntSlice(),
		duration:    settings.Default("DURATION", 30).Duration(),
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

func (c *controller) Open() error {
	return c.gen.Connect()
}

func (c *controller) Close() error {
	return c.gen.Disconnect()
}

func (c *controller) Results() []Result {
	return c.results
}

func (c *controller) PrintResults(w io.Writer) {
	PrintResults(w, c.results)
}

// trafficRequired reports whether the current mode calls for traffic to
// be sent; trafficgen-pause waits for the operator before agreeing
func (c *controller) trafficRequired() bool {
	mode := c.settings.Default("MODE", "normal").String()
	switch mode {
	case "trafficgen-off":
		return false
	case "trafficgen-pause":
		fmt.Fprint(c.out, "Traffic generator ready; press Enter to start sending: ")
		bufio.NewReader(c.in).ReadString('\n')
		return true
	default:
		return true
	}
}

// record stamps the identity columns onto a measurement and appends it
func (c *controller) record(result Result, t Traffic) {
	row := result.Copy()
	row[ResultTrafficType] = string(t.Type)
	row[ResultPacketSize] = strconv.Itoa(t.L2.FrameSize)
	c.results = append(c.results, row)
}
