package behavior

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameters_Validate(t *testing.T) {
	require.NoError(t, DefaultParameters().Validate())

	tests := []struct {
		name   string
		mutate func(p *Parameters)
	}{
		{"negative min speed", func(p *Parameters) { p.MinSpeed = -1 }},
		{"min above max", func(p *Parameters) { p.MinSpeed, p.MaxSpeed = 6, 5 }},
		{"negative initial speed", func(p *Parameters) { p.InitialSpeed = -0.5 }},
		{"negative neighbor distance", func(p *Parameters) { p.MinNeighborDistance = -1 }},
		{"fov above 180", func(p *Parameters) { p.NeighborFOV = 181 }},
		{"negative fov", func(p *Parameters) { p.NeighborFOV = -1 }},
		{"negative edge", func(p *Parameters) { p.EdgeEffectDistance = -2 }},
		{"negative weight", func(p *Parameters) { p.CohesionWeight = -1 }},
		{"NaN weight", func(p *Parameters) { p.ObstacleRejectionWeight = math.NaN() }},
		{"NaN min speed", func(p *Parameters) { p.MinSpeed = math.NaN() }},
		{"NaN max speed", func(p *Parameters) { p.MaxSpeed = math.NaN() }},
		{"NaN initial speed", func(p *Parameters) { p.InitialSpeed = math.NaN() }},
		{"NaN neighbor distance", func(p *Parameters) { p.MinNeighborDistance = math.NaN() }},
		{"NaN fov", func(p *Parameters) { p.NeighborFOV = math.NaN() }},
		{"NaN edge", func(p *Parameters) { p.EdgeEffectDistance = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidParameters)
		})
	}
}

func TestParameters_Rules(t *testing.T) {
	r := DefaultParameters().Rules()
	assert.InDelta(t, 0, r.ViewThreshold, 1e-12)
	assert.False(t, r.Omnidirectional)
	assert.Equal(t, 5.0, r.MaxSpeed, "embedded parameters are promoted")

	p := DefaultParameters()
	p.NeighborFOV = 60
	assert.InDelta(t, 0.5, p.Rules().ViewThreshold, 1e-12)

	p.NeighborFOV = 180
	assert.True(t, p.Rules().Omnidirectional)
}
