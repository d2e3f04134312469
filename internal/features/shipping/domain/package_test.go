package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPackage_DimensionsIn verifies metric/imperial dimension conversion.
func TestPackage_DimensionsIn(t *testing.T) {
	p := Package{Length: 25.4, Width: 50.8, Height: 76.2, Weight: 10}

	l, w, h := p.DimensionsIn(false)
	assert.Equal(t, 25.4, l)
	assert.Equal(t, 50.8, w)
	assert.Equal(t, 76.2, h)

	l, w, h = p.DimensionsIn(true)
	assert.InDelta(t, 10.0, l, 0.001)
	assert.InDelta(t, 20.0, w, 0.001)
	assert.InDelta(t, 30.0, h, 0.001)
}

// TestPackage_WeightIn verifies metric/imperial weight conversion.
func TestPackage_WeightIn(t *testing.T) {
	p := Package{Weight: 10}

	assert.Equal(t, 10.0, p.WeightIn(false))
	assert.InDelta(t, 22.046, p.WeightIn(true), 0.001)
}
