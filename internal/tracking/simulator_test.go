package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceMonotonicApproach(t *testing.T) {
	now := time.Now()
	pos := Origin()
	prev := DistanceKm(pos, Destination())
	require.Greater(t, prev, 0.0)

	for i := 0; i < 100; i++ {
		pos = Advance(pos, now)
		d := DistanceKm(pos, Destination())
		assert.GreaterOrEqual(t, d, 0.0)
		if Arrived(pos) {
			assert.Equal(t, 0.0, d)
			return
		}
		assert.Less(t, d, prev, "distance must shrink on every advance")
		prev = d
	}
	// 0.9^100 of ~13 km is well under the arrival clamp.
	t.Fatalf("courier never arrived, remaining %.4f km", prev)
}

func TestAdvanceSetsTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	next := Advance(Origin(), now)
	assert.Equal(t, now, next.LastUpdated)
}

func TestAdvanceClampsNearDestination(t *testing.T) {
	almost := Destination()
	almost.Lat += 0.0001
	next := Advance(almost, time.Now())
	assert.True(t, Arrived(next))
}

func TestETAMinutes(t *testing.T) {
	assert.Equal(t, 0, ETAMinutes(0))
	assert.Equal(t, 0, ETAMinutes(-1))
	assert.Equal(t, 3, ETAMinutes(1))   // 1 km at 20 km/h
	assert.Equal(t, 30, ETAMinutes(10)) // 10 km at 20 km/h
}

func TestDistanceKm(t *testing.T) {
	a := Origin()
	assert.Equal(t, 0.0, DistanceKm(a, a))
	b := a
	b.Lat += 1
	assert.InDelta(t, 111.0, DistanceKm(a, b), 1e-9)
}
