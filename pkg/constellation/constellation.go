// Package constellation builds LEO walker constellations and propagates
// them with SGP4 over a one-minute-resolution simulation window.
package constellation

import (
	"fmt"
	"math"
	"sort"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// keplerMu is the geocentric gravitational parameter in m^3/s^2.
	keplerMu = 3.9861e14
	// earthRadiusM is the mean equatorial Earth radius from the
	// astronomical constant table, in metres.
	earthRadiusM = 6378160.0

	eccentricity = 0.001 // circular orbits
	argOfPerigee = 0.0
	bstarDrag    = 2.8098e-05
)

// DefaultRuns is how many orbit periods a simulation spans.
const DefaultRuns = 1

// simulationStart is the epoch of every satellite and of minute zero.
var simulationStart = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

// Config is the constellation geometry.
type Config struct {
	OrbitHeightKm  float64
	InclinationDeg float64
	NumOrbits      int
	SatsPerOrbit   int
	ElevationDeg   float64 // minimum elevation for ground visibility
	Zigzag         bool    // shift odd orbits by half a satellite spacing
	Half           bool    // pi constellation: orbits span 180 degrees
	Runs           int     // orbit periods to simulate; 0 means DefaultRuns
}

func (c Config) validate() error {
	switch {
	case c.OrbitHeightKm <= 0:
		return errors.Errorf("orbit height must be positive, got %g km", c.OrbitHeightKm)
	case c.NumOrbits < 3:
		return errors.Errorf("need at least 3 orbits for a +Grid topology, got %d", c.NumOrbits)
	case c.SatsPerOrbit < 3:
		return errors.Errorf("need at least 3 satellites per orbit, got %d", c.SatsPerOrbit)
	case c.ElevationDeg <= 0 || c.ElevationDeg >= 90:
		return errors.Errorf("elevation angle must be in (0, 90) degrees, got %g", c.ElevationDeg)
	case c.Runs < 0:
		return errors.Errorf("runs must not be negative, got %d", c.Runs)
	}
	return nil
}

// Satellite is one constellation member: identity, SGP4 record, and the
// precomputed minute-resolution track. Immutable once built.
type Satellite struct {
	ID       string
	OrbitNum int
	SatNum   int

	rec       satellite.Satellite
	positions []satellite.Vector3 // km, TEME, one per simulation minute
}

// PositionKm returns the inertial position at epoch minute t, in km.
func (s *Satellite) PositionKm(t int) satellite.Vector3 {
	return s.positions[t]
}

// Track returns the position samples as (seconds, metres) tuples, the form
// the visualisation serialisers consume.
func (s *Satellite) Track() []TrackPoint {
	track := make([]TrackPoint, len(s.positions))
	for i, p := range s.positions {
		track[i] = TrackPoint{TSeconds: i * 60, X: p.X * 1000, Y: p.Y * 1000, Z: p.Z * 1000}
	}
	return track
}

// Constellation owns the satellite set and the derived simulation scalars.
type Constellation struct {
	Config

	MeanMotion  float64 // rev/day
	OrbitPeriod int     // minutes, rounded down
	SimPeriod   int     // minutes
	MaxDistance float64 // km; visibility threshold at the elevation angle
	Start       time.Time

	sats  []*Satellite   // creation order: orbit-major
	byID  map[string]*Satellite
	grid  [][]*Satellite // [orbit][sat]
	ids   []string       // lexically sorted
	jdays []float64      // Julian day per epoch minute
}

// SatID names a satellite from its orbit and in-orbit index.
func SatID(orbitNum, satNum int) string {
	return fmt.Sprintf("sat-%d-%d", orbitNum, satNum)
}

// MeanMotionRevPerDay derives the circular-orbit mean motion for an orbit
// height in metres from the standard Keplerian relation.
func MeanMotionRevPerDay(orbitHeightM float64) float64 {
	return math.Pow(math.Cbrt(keplerMu)/(orbitHeightM+earthRadiusM), 1.5) * 86400 / (2 * math.Pi)
}

// MaxSlantRangeKm solves the Earth-centre / ground-point / satellite
// triangle for the slant range at which the satellite sits exactly at the
// given elevation angle above the ground point's horizon. Beyond this
// range the satellite is below the elevation mask.
func MaxSlantRangeKm(orbitHeightKm, elevationDeg float64) float64 {
	re := earthRadiusM / 1000
	rs := re + orbitHeightKm
	ground := (elevationDeg + 90) / 180 * math.Pi // angle at the ground point
	sat := math.Asin(re * math.Sin(ground) / rs)  // angle at the satellite
	centre := math.Pi - ground - sat              // angle at Earth's centre
	return rs * math.Sin(centre) / math.Sin(ground)
}

// New builds the constellation: derives the simulation scalars, places
// every satellite, and propagates all tracks. A configuration or SGP4
// error fails the whole build.
func New(cfg Config, log *logrus.Logger) (*Constellation, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid constellation config")
	}
	runs := cfg.Runs
	if runs == 0 {
		runs = DefaultRuns
	}

	c := &Constellation{
		Config:     cfg,
		MeanMotion: MeanMotionRevPerDay(cfg.OrbitHeightKm * 1000),
		Start:      simulationStart,
		byID:       make(map[string]*Satellite, cfg.NumOrbits*cfg.SatsPerOrbit),
	}
	c.OrbitPeriod = int(1440 / c.MeanMotion)
	c.SimPeriod = runs * c.OrbitPeriod
	c.MaxDistance = MaxSlantRangeKm(cfg.OrbitHeightKm, cfg.ElevationDeg)

	c.jdays = make([]float64, c.SimPeriod)
	for t := 0; t < c.SimPeriod; t++ {
		c.jdays[t] = satellite.JDay(c.Start.Year(), int(c.Start.Month()), c.Start.Day(), c.Start.Hour(), t, 0)
	}

	log.WithFields(logrus.Fields{
		"orbits":       cfg.NumOrbits,
		"satsPerOrbit": cfg.SatsPerOrbit,
		"periodMin":    c.OrbitPeriod,
		"maxDistKm":    fmt.Sprintf("%.1f", c.MaxDistance),
	}).Info("creating satellites")

	epoch := timeFields{
		Year:   c.Start.Year(),
		Month:  int(c.Start.Month()),
		Day:    c.Start.Day(),
		Hour:   c.Start.Hour(),
		Minute: c.Start.Minute(),
	}

	raanFactor := 2.0
	if cfg.Half {
		raanFactor = 1.0
	}
	for orbitNum := 0; orbitNum < cfg.NumOrbits; orbitNum++ {
		raanDeg := raanFactor * 180 * float64(orbitNum) / float64(cfg.NumOrbits)
		anomalyOffset := 0.0
		if cfg.Zigzag && orbitNum%2 == 1 {
			anomalyOffset = 0.5
		}
		orbit := make([]*Satellite, 0, cfg.SatsPerOrbit)
		for satNum := 0; satNum < cfg.SatsPerOrbit; satNum++ {
			id := SatID(orbitNum, satNum)
			rec, err := newSatrec(elements{
				SatNum:         orbitNum*cfg.SatsPerOrbit + satNum,
				Epoch:          c.Start,
				InclinationDeg: cfg.InclinationDeg,
				RAANDeg:        raanDeg,
				Eccentricity:   eccentricity,
				ArgPerigeeDeg:  argOfPerigee,
				MeanAnomalyDeg: 360 * (float64(satNum) + anomalyOffset) / float64(cfg.SatsPerOrbit),
				MeanMotion:     c.MeanMotion,
				Bstar:          bstarDrag,
			})
			if err != nil {
				return nil, errors.Wrapf(err, "satellite %s", id)
			}
			positions, err := propagateTrack(rec, epoch, c.SimPeriod)
			if err != nil {
				return nil, errors.Wrapf(err, "satellite %s", id)
			}
			sat := &Satellite{ID: id, OrbitNum: orbitNum, SatNum: satNum, rec: rec, positions: positions}
			orbit = append(orbit, sat)
			c.sats = append(c.sats, sat)
			c.byID[id] = sat
		}
		c.grid = append(c.grid, orbit)
	}

	c.ids = make([]string, 0, len(c.sats))
	for id := range c.byID {
		c.ids = append(c.ids, id)
	}
	sort.Strings(c.ids)

	return c, nil
}

// Satellites returns all satellites in creation (orbit-major) order.
func (c *Constellation) Satellites() []*Satellite { return c.sats }

// IDs returns all satellite ids in lexical order.
func (c *Constellation) IDs() []string { return c.ids }

// ByID looks a satellite up by id.
func (c *Constellation) ByID(id string) (*Satellite, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// At returns the satellite at the rectangular index [orbit][sat].
func (c *Constellation) At(orbitNum, satNum int) *Satellite {
	return c.grid[orbitNum][satNum]
}

// Size returns the number of satellites.
func (c *Constellation) Size() int { return len(c.sats) }

// JDay returns the Julian day of epoch minute t.
func (c *Constellation) JDay(t int) float64 { return c.jdays[t] }

// Range returns the slant range between two satellites at epoch t, in km.
func (c *Constellation) Range(a, b *Satellite, t int) float64 {
	return Distance(a.positions[t], b.positions[t])
}
