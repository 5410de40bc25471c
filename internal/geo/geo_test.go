package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_IdenticalPointsIsZero(t *testing.T) {
	assert.Zero(t, Distance(52.52, 13.405, 52.52, 13.405))
	assert.Zero(t, Distance(0, 0, 0, 0))
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{52.52, 13.405, 48.8566, 2.3522},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{0.001, -0.001, -0.001, 0.001},
	}
	for _, p := range pairs {
		assert.InDelta(t, Distance(p[0], p[1], p[2], p[3]), Distance(p[2], p[3], p[0], p[1]), 1e-9)
	}
}

func TestDistance_KnownValues(t *testing.T) {
	// Berlin -> Paris, roughly 878 km.
	d := Distance(52.52, 13.405, 48.8566, 2.3522)
	assert.InDelta(t, 878, d, 5)

	// One degree of latitude is about 111.19 km.
	d = Distance(0, 0, 1, 0)
	assert.InDelta(t, 111.19, d, 0.1)
}

func TestDistance_ShortRange(t *testing.T) {
	// ~100 m apart, well inside the 0.5 km site radius.
	d := Distance(52.5200, 13.4050, 52.5209, 13.4050)
	assert.Less(t, d, 0.5)
	assert.Greater(t, d, 0.05)
}

func TestFuelCost(t *testing.T) {
	assert.InDelta(t, 3.0, FuelCost(20, 10, 1.5), 1e-9)
	assert.Zero(t, FuelCost(0, 12, 1.5))
	assert.InDelta(t, 1.25, FuelCost(10, 12, 1.5), 1e-9)
}
