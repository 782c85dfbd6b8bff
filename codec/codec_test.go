package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type framePayload struct {
	Name     string       `json:"name"`
	Vertices [][3]float32 `json:"vertices"`
	Edges    [][2]uint32  `json:"edges"`
}

func samplePayload() framePayload {
	return framePayload{
		Name: "web",
		Vertices: [][3]float32{
			{0, 0, 0},
			{1.5, -2.25, 3},
			{0.125, 0.25, 0.5},
		},
		Edges: [][2]uint32{{0, 1}, {1, 2}},
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{name: "json", ok: true},
		{name: "go-json", ok: true},
		{name: "msgpack", ok: false},
		{name: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ByName(tt.name)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.name, c.Name())
			}
		})
	}
}

func TestCodecsAreWireCompatible(t *testing.T) {
	payload := samplePayload()

	// What one codec writes, the other must decode identically: a
	// snapshot written with go-json stays readable if the default
	// changes back to stdlib.
	written := MustMarshal(GoJSON{}, payload)

	var decoded framePayload
	require.NoError(t, JSON{}.Unmarshal(written, &decoded))
	assert.Equal(t, payload, decoded)

	written = MustMarshal(JSON{}, payload)
	decoded = framePayload{}
	require.NoError(t, GoJSON{}.Unmarshal(written, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestDefaultRegistered(t *testing.T) {
	c, ok := ByName(Default.Name())
	require.True(t, ok)
	assert.Equal(t, Default.Name(), c.Name())
}
