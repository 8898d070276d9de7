package czml

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/zhongda-xia/leo-demo/pkg/attachment"
	"github.com/zhongda-xia/leo-demo/pkg/groundstation"
	"github.com/zhongda-xia/leo-demo/pkg/routing"
)

var testStart = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDocumentPacket(t *testing.T) {
	b := NewBuilder(testStart, 95)
	doc := b.packets
	if len(doc) != 1 {
		t.Fatalf("new builder has %d packets, want the document packet only", len(doc))
	}
	p := doc[0]
	if p.ID != "document" || p.Version != "1.0" {
		t.Errorf("document packet header wrong: %+v", p)
	}
	clock := p.Clock
	if clock == nil {
		t.Fatal("document packet has no clock")
	}
	if clock.Multiplier != 60 {
		t.Errorf("clock multiplier = %g, want 60", clock.Multiplier)
	}
	if clock.Range != "LOOP_STOP" || clock.Step != "SYSTEM_CLOCK_MULTIPLIER" {
		t.Errorf("clock settings wrong: %+v", clock)
	}
	if clock.Interval != "2021-01-01T00:00:00Z/2021-01-01T01:35:00Z" {
		t.Errorf("clock interval = %q", clock.Interval)
	}
}

func TestInterval(t *testing.T) {
	b := NewBuilder(testStart, 95)
	if got := b.interval(3, 7); got != "2021-01-01T00:03:00Z/2021-01-01T00:07:00Z" {
		t.Errorf("interval = %q", got)
	}
}

func TestBoolIntervals(t *testing.T) {
	b := NewBuilder(testStart, 10)
	show := []bool{false, true, true, false, false, true, true, true, true, true}
	got := b.boolIntervals(show)
	want := []string{
		"2021-01-01T00:01:00Z/2021-01-01T00:03:00Z",
		"2021-01-01T00:05:00Z/2021-01-01T00:09:00Z", // open run closes at period-1
	}
	if len(got) != len(want) {
		t.Fatalf("intervals = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("interval %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAddGroundStations(t *testing.T) {
	b := NewBuilder(testStart, 95)
	gts, err := groundstation.NewSet(groundstation.GroundStation{ID: "city-X", LatDeg: 45, LonDeg: 90})
	if err != nil {
		t.Fatal(err)
	}
	b.AddGroundStations(gts)

	p := b.packets[len(b.packets)-1]
	if p.ID != "city-X" {
		t.Fatalf("packet id = %q", p.ID)
	}
	radians := p.Position.CartographicRadians
	if len(radians) != 3 {
		t.Fatalf("cartographic position has %d components", len(radians))
	}
	// lon, lat, altitude order
	if radians[0] < 1.57 || radians[0] > 1.58 {
		t.Errorf("longitude = %g rad", radians[0])
	}
	if radians[1] < 0.78 || radians[1] > 0.79 {
		t.Errorf("latitude = %g rad", radians[1])
	}
	if radians[2] != 0 {
		t.Errorf("altitude = %g", radians[2])
	}
}

func TestAddUserLinksIntervals(t *testing.T) {
	b := NewBuilder(testStart, 6)
	gts, err := groundstation.NewSet(groundstation.GroundStation{ID: "city-X", LatDeg: 0, LonDeg: 0})
	if err != nil {
		t.Fatal(err)
	}
	table := attachment.Table{
		"city-X": {"s1", "s1", attachment.None, "s2", "s2", "s2"},
	}
	b.AddUserLinks([]string{"s1", "s2"}, gts, table)

	// One polyline per (station, satellite) pair.
	polylines := b.packets[1:]
	if len(polylines) != 2 {
		t.Fatalf("emitted %d polylines, want 2", len(polylines))
	}
	byID := make(map[string]Packet, len(polylines))
	for _, p := range polylines {
		byID[p.ID] = p
	}

	s1 := byID["line-city-X-s1"]
	show, ok := s1.Polyline.Show.([]ShowInterval)
	if !ok || len(show) != 1 {
		t.Fatalf("s1 link show = %#v", s1.Polyline.Show)
	}
	if show[0].Interval != "2021-01-01T00:00:00Z/2021-01-01T00:02:00Z" {
		t.Errorf("s1 interval = %q", show[0].Interval)
	}

	s2 := byID["line-city-X-s2"]
	show, ok = s2.Polyline.Show.([]ShowInterval)
	if !ok || len(show) != 1 {
		t.Fatalf("s2 link show = %#v", s2.Polyline.Show)
	}
	if show[0].Interval != "2021-01-01T00:03:00Z/2021-01-01T00:05:00Z" {
		t.Errorf("s2 interval = %q", show[0].Interval)
	}
}

func TestAddPairRoutesColours(t *testing.T) {
	b := NewBuilder(testStart, 4)
	routes := routing.PairRoutes{
		0: {"a", "b", "c"},
		1: {"a", "b", "c"},
		2: {"a", "d", "c"}, // b-c and a-b vacated, a-d and d-c appear
		3: {"a", "d", "c"},
	}
	b.AddPairRoutes(routes)

	var current, previous int
	for _, p := range b.packets[1:] {
		rgba := p.Polyline.Material.SolidColor.Color.RGBA
		switch rgba {
		case colorCurrentRoute:
			current++
		case colorPreviousRoute:
			previous++
		default:
			t.Errorf("packet %s has unexpected colour %v", p.ID, rgba)
		}
	}
	if current != 4 { // a-b, b-c, a-d, d-c
		t.Errorf("current-route polylines = %d, want 4", current)
	}
	if previous != 2 { // a-b and b-c at the change epoch
		t.Errorf("previous-route polylines = %d, want 2", previous)
	}
}

func TestWriteProducesValidJSON(t *testing.T) {
	b := NewBuilder(testStart, 5)
	gts, err := groundstation.NewSet(groundstation.GroundStation{ID: "city-X", LatDeg: 1, LonDeg: 2})
	if err != nil {
		t.Fatal(err)
	}
	b.AddGroundStations(gts)

	data, err := b.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	var packets []map[string]interface{}
	if err := json.Unmarshal(data, &packets); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	if packets[0]["id"] != "document" {
		t.Error("first packet must be the document packet")
	}
}
