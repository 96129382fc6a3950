package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Dim     int       `json:"dim"`
	Name    string    `json:"name"`
	Vector  []float64 `json:"vector"`
	Derived bool      `json:"derived,omitempty"`
}

func TestCodecRoundTrip(t *testing.T) {
	payload := testPayload{
		Dim:    4,
		Name:   "SHAPE",
		Vector: []float64{0.5, -0.5, 0.5, -0.5},
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(payload)
			require.NoError(t, err)

			var got testPayload
			require.NoError(t, c.Unmarshal(data, &got))
			assert.Equal(t, payload, got)
		})
	}
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestMustMarshal(t *testing.T) {
	data := MustMarshal(nil, testPayload{Dim: 2, Name: "A", Vector: []float64{1, 0}})
	assert.NotEmpty(t, data)

	assert.Panics(t, func() {
		MustMarshal(JSON{}, func() {})
	})
}
