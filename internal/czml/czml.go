// Package czml emits CZML documents for the 3D visualisation front-end:
// satellite tracks, ground stations, attachment links, and route
// polylines.
package czml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/zhongda-xia/leo-demo/pkg/attachment"
	"github.com/zhongda-xia/leo-demo/pkg/constellation"
	"github.com/zhongda-xia/leo-demo/pkg/groundstation"
	"github.com/zhongda-xia/leo-demo/pkg/routing"
)

// Builder accumulates CZML packets for one document. The zero value is
// not usable; construct with NewBuilder, which seeds the document packet.
type Builder struct {
	start   time.Time
	end     time.Time
	period  int // simulation period in minutes
	packets []Packet
}

// NewBuilder starts a document spanning periodMin minutes from start,
// with the standard clock settings (60x multiplier, loop-stop).
func NewBuilder(start time.Time, periodMin int) *Builder {
	b := &Builder{
		start:  start,
		end:    start.Add(time.Duration(periodMin) * time.Minute),
		period: periodMin,
	}
	b.packets = append(b.packets, Packet{
		ID:      "document",
		Version: "1.0",
		Clock: &Clock{
			Interval:    b.span(),
			CurrentTime: iso(b.start),
			Multiplier:  60,
			Range:       "LOOP_STOP",
			Step:        "SYSTEM_CLOCK_MULTIPLIER",
		},
	})
	return b
}

func iso(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func (b *Builder) span() string {
	return iso(b.start) + "/" + iso(b.end)
}

// interval renders a minute range as a CZML ISO interval.
func (b *Builder) interval(fromMin, toMin int) string {
	from := b.start.Add(time.Duration(fromMin) * time.Minute)
	to := b.start.Add(time.Duration(toMin) * time.Minute)
	return iso(from) + "/" + iso(to)
}

// AddSatellites emits one position packet per satellite with its
// Lagrange-interpolated inertial track. Orbit leaders (in-orbit index
// zero) additionally trace their orbit path.
func (b *Builder) AddSatellites(sats []*constellation.Satellite) {
	for _, sat := range sats {
		track := sat.Track()
		cartesian := make([]float64, 0, 4*len(track))
		for _, p := range track {
			cartesian = append(cartesian, float64(p.TSeconds), p.X, p.Y, p.Z)
		}
		packet := Packet{
			ID: sat.ID,
			Position: &Position{
				InterpolationAlgorithm: "LAGRANGE",
				InterpolationDegree:    5,
				ReferenceFrame:         "INERTIAL",
				Epoch:                  iso(b.start),
				Cartesian:              cartesian,
			},
			Billboard: &Billboard{
				Image: satelliteImage,
				Scale: 1.5,
				Show:  true,
				Color: &Color{RGBA: colorWhite},
			},
			Availability: b.span(),
		}
		if sat.SatNum == 0 {
			packet.Path = &Path{Material: solid(colorOrbitPath), Width: 3, Show: true}
		}
		b.packets = append(b.packets, packet)
	}
}

// AddGroundStations emits one cartographic position packet per station.
func (b *Builder) AddGroundStations(gts *groundstation.Set) {
	for _, gtID := range gts.IDs() {
		gt, _ := gts.Get(gtID)
		b.packets = append(b.packets, Packet{
			ID: gt.ID,
			Position: &Position{
				CartographicRadians: []float64{
					gt.LonDeg / 180 * math.Pi,
					gt.LatDeg / 180 * math.Pi,
					0,
				},
			},
			Billboard: &Billboard{
				Image: stationImage,
				Scale: 1.5,
				Show:  true,
				Color: &Color{RGBA: colorWhite},
			},
			Availability: b.span(),
		})
	}
}

// polyline builds a polyline packet between two referenced entities that
// is visible during the given intervals. With no intervals the line is
// permanently hidden.
func (b *Builder) polyline(id1, id2 string, intervals []string, rgba [4]int, suffix string) Packet {
	poly := &Polyline{
		Width:         8,
		FollowSurface: false,
		Material:      solid(rgba),
		Positions:     &Position{References: []string{id1 + "#position", id2 + "#position"}},
	}
	if len(intervals) == 0 {
		poly.Show = false
	} else {
		show := make([]ShowInterval, len(intervals))
		for i, iv := range intervals {
			show[i] = ShowInterval{Interval: iv, Show: true}
		}
		poly.Show = show
	}
	packet := Packet{
		ID:       fmt.Sprintf("line-%s-%s%s", id1, id2, suffix),
		Polyline: poly,
	}
	if len(intervals) > 0 {
		packet.Availability = intervals
	}
	return packet
}

// AddUserLinks emits, for every (station, satellite) pair, a polyline
// visible while the station is attached to that satellite.
func (b *Builder) AddUserLinks(satIDs []string, gts *groundstation.Set, table attachment.Table) {
	for _, gtID := range gts.IDs() {
		attachments := table[gtID]
		intervals := make(map[string][]string, len(satIDs))

		lastSat := attachment.None
		lastTime := 0
		for i, satID := range attachments {
			switch {
			case satID == attachment.None:
				if lastSat != attachment.None {
					intervals[lastSat] = append(intervals[lastSat], b.interval(lastTime, i))
					lastSat = attachment.None
				}
			case satID == lastSat:
				// interval continues
			default:
				if lastSat != attachment.None {
					intervals[lastSat] = append(intervals[lastSat], b.interval(lastTime, i))
				}
				lastSat = satID
				lastTime = i
			}
		}
		if lastSat != attachment.None {
			intervals[lastSat] = append(intervals[lastSat], b.interval(lastTime, b.period-1))
		}

		for _, satID := range satIDs {
			b.packets = append(b.packets, b.polyline(gtID, satID, intervals[satID], colorUserLink, ""))
		}
	}
}

// link is an ordered polyline endpoint pair.
type link struct {
	a, b string
}

// boolIntervals run-length encodes a per-minute visibility series.
func (b *Builder) boolIntervals(show []bool) []string {
	var intervals []string
	active := false
	from := 0
	for i, on := range show {
		if on == active {
			continue
		}
		if on {
			active = true
			from = i
		} else {
			intervals = append(intervals, b.interval(from, i))
			active = false
		}
	}
	if active {
		intervals = append(intervals, b.interval(from, b.period-1))
	}
	sort.Strings(intervals)
	return intervals
}

// AddPairRoutes emits the route polylines of one station pair: links on
// the current path in green, links just vacated by a path change in red
// (packet ids carry a -last suffix).
func (b *Builder) AddPairRoutes(routes routing.PairRoutes) {
	epochs := make([]int, 0, len(routes))
	for epoch := range routes {
		epochs = append(epochs, epoch)
	}
	sort.Ints(epochs)

	curShow := make(map[link][]bool)
	lastShow := make(map[link][]bool)
	var lastPath []string
	for _, epoch := range epochs {
		path := routes[epoch]
		pathLinks := make(map[link]bool, len(path))
		for i := 1; i < len(path); i++ {
			l := link{a: path[i-1], b: path[i]}
			pathLinks[l] = true
			if curShow[l] == nil {
				curShow[l] = make([]bool, b.period)
			}
			curShow[l][epoch] = true
		}
		if lastPath != nil {
			for i := 1; i < len(lastPath); i++ {
				l := link{a: lastPath[i-1], b: lastPath[i]}
				if pathLinks[l] {
					continue
				}
				if lastShow[l] == nil {
					lastShow[l] = make([]bool, b.period)
				}
				lastShow[l][epoch] = true
			}
		}
		lastPath = path
	}

	for _, l := range sortedLinks(curShow) {
		b.packets = append(b.packets, b.polyline(l.a, l.b, b.boolIntervals(curShow[l]), colorCurrentRoute, ""))
	}
	for _, l := range sortedLinks(lastShow) {
		b.packets = append(b.packets, b.polyline(l.a, l.b, b.boolIntervals(lastShow[l]), colorPreviousRoute, "-last"))
	}
}

// AddGlobalRoutes emits one polyline per predecessor edge of a station's
// shortest-path trees, visible during the epochs the edge is in the tree.
func (b *Builder) AddGlobalRoutes(routes routing.GlobalRoutes) {
	epochs := make([]int, 0, len(routes))
	for epoch := range routes {
		epochs = append(epochs, epoch)
	}
	sort.Ints(epochs)

	intervals := make(map[link][]string)
	for _, epoch := range epochs {
		iv := b.interval(epoch, epoch+1)
		for edge := range routes[epoch] {
			l := link{a: edge.From, b: edge.To}
			intervals[l] = append(intervals[l], iv)
		}
	}

	links := make([]link, 0, len(intervals))
	for l := range intervals {
		links = append(links, l)
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].a != links[j].a {
			return links[i].a < links[j].a
		}
		return links[i].b < links[j].b
	})
	for _, l := range links {
		ivs := intervals[l]
		sort.Strings(ivs)
		b.packets = append(b.packets, b.polyline(l.a, l.b, ivs, colorGlobalRoute, ""))
	}
}

func sortedLinks(m map[link][]bool) []link {
	links := make([]link, 0, len(m))
	for l := range m {
		links = append(links, l)
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].a != links[j].a {
			return links[i].a < links[j].a
		}
		return links[i].b < links[j].b
	})
	return links
}

// Write renders the document as indented JSON.
func (b *Builder) Write() ([]byte, error) {
	data, err := json.MarshalIndent(b.packets, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal CZML document")
	}
	return data, nil
}

// WriteFile renders the document and writes it to path.
func (b *Builder) WriteFile(path string) error {
	data, err := b.Write()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write CZML file")
	}
	return nil
}
