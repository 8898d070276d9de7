// Package groundstation models the ground stations a constellation serves
// and loads them from a cities CSV.
package groundstation

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GroundStation is a fixed point on the WGS84 surface (altitude zero).
// Immutable.
type GroundStation struct {
	ID     string
	LatDeg float64
	LonDeg float64
}

// ID derives the stable ground-station id for a city name.
func ID(city string) string {
	return fmt.Sprintf("city-%s", city)
}

// ECIPositionKm lifts the station to geocentric inertial coordinates at
// the given Julian day, in km.
func (g GroundStation) ECIPositionKm(jday float64) satellite.Vector3 {
	obs := satellite.LatLong{
		Latitude:  g.LatDeg * satellite.DEG2RAD,
		Longitude: g.LonDeg * satellite.DEG2RAD,
	}
	return satellite.LLAToECI(obs, 0, jday)
}

// Set is a ground-station collection with deterministic iteration order.
type Set struct {
	byID map[string]GroundStation
	ids  []string // sorted
}

// NewSet builds a set from stations, rejecting duplicate ids.
func NewSet(stations ...GroundStation) (*Set, error) {
	s := &Set{byID: make(map[string]GroundStation, len(stations))}
	for _, gt := range stations {
		if gt.ID == "" {
			return nil, errors.New("ground station id cannot be empty")
		}
		if _, exists := s.byID[gt.ID]; exists {
			return nil, errors.Errorf("duplicate ground station id %q", gt.ID)
		}
		s.byID[gt.ID] = gt
	}
	for id := range s.byID {
		s.ids = append(s.ids, id)
	}
	sort.Strings(s.ids)
	return s, nil
}

// IDs returns all station ids in sorted order.
func (s *Set) IDs() []string { return s.ids }

// Get looks a station up by id.
func (s *Set) Get(id string) (GroundStation, bool) {
	gt, ok := s.byID[id]
	return gt, ok
}

// Len returns the number of stations.
func (s *Set) Len() int { return len(s.ids) }

// Pairs returns every ordered (consumer, producer) pair of distinct
// stations, enumerated in sorted id order.
func (s *Set) Pairs() [][2]string {
	pairs := make([][2]string, 0, len(s.ids)*(len(s.ids)-1))
	for _, consumer := range s.ids {
		for _, producer := range s.ids {
			if consumer == producer {
				continue
			}
			pairs = append(pairs, [2]string{consumer, producer})
		}
	}
	return pairs
}

// LoadOptions filter the cities CSV.
type LoadOptions struct {
	// Targets keeps only the named cities when non-empty.
	Targets []string
	// MaxCities caps the number of stations loaded; 0 means no cap.
	MaxCities int
}

// csv column headers
const (
	colCity = "Urban Agglomeration"
	colLat  = "Latitude"
	colLon  = "Longitude"
)

// LoadCities reads ground stations from a cities CSV. The file must carry
// the Urban Agglomeration, Latitude and Longitude columns; all others are
// ignored. Rows with unparsable coordinates are skipped with a warning.
func LoadCities(path string, opts LoadOptions, log *logrus.Logger) (*Set, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open cities file")
	}
	defer f.Close()
	return readCities(f, opts, log)
}

func readCities(r io.Reader, opts LoadOptions, log *logrus.Logger) (*Set, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read cities header")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{colCity, colLat, colLon} {
		if _, ok := cols[required]; !ok {
			return nil, errors.Errorf("cities file is missing the %q column", required)
		}
	}

	wanted := make(map[string]bool, len(opts.Targets))
	for _, name := range opts.Targets {
		wanted[name] = true
	}
	limit := opts.MaxCities
	if len(opts.Targets) > 0 && (limit == 0 || limit > len(opts.Targets)) {
		limit = len(opts.Targets)
	}

	var stations []GroundStation
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read cities row")
		}
		city := row[cols[colCity]]
		if len(wanted) > 0 && !wanted[city] {
			continue
		}
		lat, latErr := strconv.ParseFloat(row[cols[colLat]], 64)
		lon, lonErr := strconv.ParseFloat(row[cols[colLon]], 64)
		if latErr != nil || lonErr != nil {
			log.WithField("city", city).Warn("skipping city with unparsable coordinates")
			continue
		}
		stations = append(stations, GroundStation{ID: ID(city), LatDeg: lat, LonDeg: lon})
		if limit > 0 && len(stations) >= limit {
			break
		}
	}

	if len(stations) == 0 {
		return nil, errors.New("no ground stations loaded")
	}
	return NewSet(stations...)
}
