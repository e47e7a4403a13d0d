package pipeline

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFidelityMonotonic(t *testing.T) {
	low := OptionsFromRequest(Request{Fidelity: 0})
	high := OptionsFromRequest(Request{Fidelity: 100})

	assert.Less(t, high.Epsilon, low.Epsilon)
	assert.Less(t, high.AreaMin, low.AreaMin)
}

func TestOptionsFidelityFormulas(t *testing.T) {
	opts := OptionsFromRequest(Request{Fidelity: 0})
	assert.InDelta(t, 2.0, opts.Epsilon, 1e-9)
	assert.InDelta(t, 100.0, opts.AreaMin, 1e-9)

	opts = OptionsFromRequest(Request{Fidelity: 50})
	assert.InDelta(t, 2.0*0.6, opts.Epsilon, 1e-9)
	assert.InDelta(t, 100.0*0.55, opts.AreaMin, 1e-9)

	opts = OptionsFromRequest(Request{Fidelity: 100})
	assert.InDelta(t, 2.0*0.2, opts.Epsilon, 1e-9)
	assert.InDelta(t, 10.0, opts.AreaMin, 1e-9)
}

func TestOptionsUserOverrides(t *testing.T) {
	opts := OptionsFromRequest(Request{Fidelity: 50, Threshold: 200, DespeckleAreaMin: 42})
	assert.Equal(t, uint8(200), opts.Threshold)
	assert.InDelta(t, 42.0, opts.AreaMin, 1e-9)
}

func TestOptionsDefaults(t *testing.T) {
	opts := OptionsFromRequest(Request{Fidelity: 50})
	assert.Equal(t, uint8(128), opts.Threshold, "zero threshold means unset")
	assert.False(t, opts.UseAI)
}

func TestOptionsFloors(t *testing.T) {
	opts := OptionsFromRequest(Request{Fidelity: 100, DespeckleAreaMin: 0.5})
	assert.InDelta(t, 1.0, opts.AreaMin, 1e-9, "areaMin floor")
	assert.GreaterOrEqual(t, opts.Epsilon, 0.1)
}

func TestRequestValidate(t *testing.T) {
	require.NoError(t, Request{Fidelity: 50}.Validate())
	require.NoError(t, Request{Fidelity: 0}.Validate())
	require.NoError(t, Request{Fidelity: 100, Threshold: 255}.Validate())

	assert.Error(t, Request{Fidelity: -1}.Validate())
	assert.Error(t, Request{Fidelity: 101}.Validate())
	assert.Error(t, Request{Fidelity: 50, Threshold: 256}.Validate())
	assert.Error(t, Request{Fidelity: 50, DespeckleAreaMin: -1}.Validate())
}

func TestOptionsProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("epsilon and areaMin stay above their floors", prop.ForAll(
		func(fidelity int) bool {
			opts := OptionsFromRequest(Request{Fidelity: fidelity})
			return opts.Epsilon >= 0.1 && opts.AreaMin >= 1.0
		},
		gen.IntRange(0, 100),
	))

	properties.Property("higher fidelity never increases epsilon", prop.ForAll(
		func(a, b int) bool {
			if a > b {
				a, b = b, a
			}
			lo := OptionsFromRequest(Request{Fidelity: a})
			hi := OptionsFromRequest(Request{Fidelity: b})
			return hi.Epsilon <= lo.Epsilon && hi.AreaMin <= lo.AreaMin
		},
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
