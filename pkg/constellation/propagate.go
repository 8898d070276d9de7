package constellation

import (
	"math"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/pkg/errors"
)

// TrackPoint is one sample of a satellite track: seconds since the
// simulation start and a geocentric inertial position in metres.
type TrackPoint struct {
	TSeconds int
	X, Y, Z  float64
}

// newSatrec initialises an SGP4 propagation record from orbital elements
// using the WGS84 gravity model.
func newSatrec(e elements) (satellite.Satellite, error) {
	line1, line2 := encodeTLE(e)
	rec := satellite.TLEToSat(line1, line2, satellite.GravityWGS84)
	if rec.Error != 0 {
		return rec, errors.Errorf("sgp4 init failed with code %d", rec.Error)
	}
	return rec, nil
}

// propagateTrack samples the satellite position at every minute offset in
// [0, periodMin). Positions are geocentric inertial (TEME), in km.
// A NaN position at any minute aborts the whole track; the simulator does
// not tolerate partial constellations. The SGP4 error code is checked only
// at initialisation (newSatrec), not per propagation step.
func propagateTrack(rec satellite.Satellite, epoch timeFields, periodMin int) ([]satellite.Vector3, error) {
	positions := make([]satellite.Vector3, periodMin)
	for t := 0; t < periodMin; t++ {
		pos, _ := satellite.Propagate(rec, epoch.Year, epoch.Month, epoch.Day, epoch.Hour, epoch.Minute+t, 0)
		if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsNaN(pos.Z) {
			return nil, errors.Errorf("sgp4 propagation produced NaN at minute %d", t)
		}
		positions[t] = pos
	}
	return positions, nil
}

// timeFields is a broken-down UTC instant in the form the propagator
// consumes. Minute offsets past 59 are legal; the underlying Julian-day
// arithmetic absorbs them.
type timeFields struct {
	Year, Month, Day, Hour, Minute int
}

// Distance is the Euclidean distance between two inertial positions in km.
func Distance(a, b satellite.Vector3) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
