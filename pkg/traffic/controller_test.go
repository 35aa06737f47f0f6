// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package traffic

import (
	"strings"
	"testing"
	"time"

	"github.com/onosproject/vsperf/pkg/config"
	"github.com/onosproject/vsperf/pkg/vsperferrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingGenerator records the operations invoked on it
type recordingGenerator struct {
	calls     []string
	sizes     []int
	connected bool
}

func (g *recordingGenerator) record(op string, t Traffic) (Result, error) {
	g.calls = append(g.calls, op)
	g.sizes = append(g.sizes, t.L2.FrameSize)
	return Result{ResultRxThroughput: "1000"}, nil
}

func (g *recordingGenerator) Connect() error {
	g.connected = true
	return nil
}

func (g *recordingGenerator) Disconnect() error {
	g.connected = false
	return nil
}

func (g *recordingGenerator) SendRFC2544Throughput(t Traffic, trials int, duration time.Duration) (Result, error) {
	return g.record("throughput", t)
}

func (g *recordingGenerator) SendRFC2544BackToBack(t Traffic, trials int, duration time.Duration) (Result, error) {
	return g.record("back2back", t)
}

func (g *recordingGenerator) SendContTraffic(t Traffic, duration time.Duration) (Result, error) {
	return g.record("continuous", t)
}

func (g *recordingGenerator) StartContTraffic(t Traffic) error {
	g.calls = append(g.calls, "start")
	return nil
}

func (g *recordingGenerator) StopContTraffic() (Result, error) {
	g.calls = append(g.calls, "stop")
	return Result{}, nil
}

func (g *recordingGenerator) SendRFC2889Forwarding(t Traffic, trials int, duration time.Duration) (Result, error) {
	return g.record("forwarding", t)
}

func (g *recordingGenerator) SendRFC2889Caching(t Traffic, trials int, duration time.Duration) (Result, error) {
	return g.record("caching", t)
}

func (g *recordingGenerator) SendRFC2889Congestion(t Traffic, duration time.Duration) (Result, error) {
	return g.record("congestion", t)
}

func newTestSettings() *config.Store {
	settings := config.NewStore()
	settings.LoadDefaults(map[string]any{
		"MODE":         "normal",
		"PACKET_SIZES": []any{64, 512},
		"DURATION":     1,
	})
	return settings
}

func TestControllerPerPacketSize(t *testing.T) {
	gen := &recordingGenerator{}
	controller, err := NewController("rfc2544_throughput", gen, newTestSettings())
	require.NoError(t, err)

	require.NoError(t, controller.Open())
	assert.True(t, gen.connected)

	require.NoError(t, controller.SendTraffic(Traffic{Type: RFC2544Throughput}))
	assert.Equal(t, []string{"throughput", "throughput"}, gen.calls)
	assert.Equal(t, []int{64, 512}, gen.sizes)

	results := controller.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "64", results[0][ResultPacketSize])
	assert.Equal(t, "512", results[1][ResultPacketSize])
	assert.Equal(t, "rfc2544_throughput", results[0][ResultTrafficType])

	require.NoError(t, controller.Close())
	assert.False(t, gen.connected)
}

func TestControllerDispatch(t *testing.T) {
	tests := []struct {
		trafficType Type
		want        string
	}{
		{RFC2544Throughput, "throughput"},
		{RFC2544BackToBack, "back2back"},
		{RFC2544Continuous, "continuous"},
		{RFC2889Forwarding, "forwarding"},
		{RFC2889Caching, "caching"},
		{RFC2889Congestion, "congestion"},
	}
	for _, test := range tests {
		gen := &recordingGenerator{}
		controller, err := NewController(string(test.trafficType), gen, newTestSettings())
		require.NoError(t, err)
		require.NoError(t, controller.SendTraffic(Traffic{Type: test.trafficType}))
		require.NotEmpty(t, gen.calls)
		assert.Equal(t, test.want, gen.calls[0])
	}
}

func TestControllerUnsupportedType(t *testing.T) {
	_, err := NewController("rfc9999_warp", &recordingGenerator{}, newTestSettings())
	require.Error(t, err)
	var unsupported *vsperferrors.ErrUnsupportedTrafficType
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "rfc9999_warp", unsupported.Type)
	assert.Contains(t, unsupported.Supported, "rfc2544_throughput")
}

func TestControllerTrafficGenOff(t *testing.T) {
	settings := newTestSettings()
	settings.Set("MODE", "trafficgen-off")

	gen := &recordingGenerator{}
	controller, err := NewController("rfc2889_forwarding", gen, settings)
	require.NoError(t, err)

	require.NoError(t, controller.SendTraffic(Traffic{Type: RFC2889Forwarding}))
	assert.Empty(t, gen.calls)
	assert.Empty(t, controller.Results())
}

func TestControllerPauseMode(t *testing.T) {
	settings := newTestSettings()
	settings.Set("MODE", "trafficgen-pause")

	gen := &recordingGenerator{}
	ctrl, err := NewController("rfc2544_continuous", gen, settings)
	require.NoError(t, err)

	// Feed the operator prompt from a buffer.
	impl := ctrl.(*rfc2544Controller)
	var out strings.Builder
	impl.in = strings.NewReader("\n")
	impl.out = &out

	require.NoError(t, ctrl.SendTraffic(Traffic{Type: RFC2544Continuous}))
	assert.Contains(t, out.String(), "press Enter")
	assert.Equal(t, []string{"continuous", "continuous"}, gen.calls)
}

func TestDecodeTraffic(t *testing.T) {
	defaults := Traffic{Type: RFC2544Throughput, FrameRate: 100}
	decoded, err := Decode(map[string]any{
		"traffic_type": "rfc2889_forwarding",
		"bidir":        true,
		"multistream":  1000,
		"l3": map[string]any{
			"srcip": "1.1.1.1",
			"dstip": "90.90.90.90",
		},
	}, defaults)
	require.NoError(t, err)
	assert.Equal(t, RFC2889Forwarding, decoded.Type)
	assert.True(t, decoded.Bidir)
	assert.Equal(t, 1000, decoded.MultiStream)
	assert.Equal(t, float64(100), decoded.FrameRate)
	assert.Equal(t, "1.1.1.1", decoded.L3.SrcIP)
}
