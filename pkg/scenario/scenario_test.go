package scenario

import (
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/zhongda-xia/leo-demo/pkg/attachment"
	"github.com/zhongda-xia/leo-demo/pkg/constellation"
	"github.com/zhongda-xia/leo-demo/pkg/groundstation"
)

func buildTestScenario(t *testing.T) *Scenario {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	cons, err := constellation.New(constellation.Config{
		OrbitHeightKm:  550,
		InclinationDeg: 53,
		NumOrbits:      4,
		SatsPerOrbit:   4,
		ElevationDeg:   25,
	}, log)
	if err != nil {
		t.Fatalf("building constellation: %v", err)
	}
	gts, err := groundstation.NewSet(
		groundstation.GroundStation{ID: "city-A", LatDeg: 10, LonDeg: 20},
		groundstation.GroundStation{ID: "city-B", LatDeg: -30, LonDeg: 150},
	)
	if err != nil {
		t.Fatal(err)
	}

	fill := func(satID string) []string {
		arr := make([]string, cons.SimPeriod)
		for i := range arr {
			arr[i] = satID
		}
		return arr
	}
	table := attachment.Table{
		"city-A": fill("sat-0-0"),
		"city-B": fill("sat-2-2"),
	}
	return NewWithAttachments(cons, gts, table, log)
}

func TestPairRoutesCoverAllPairs(t *testing.T) {
	sc := buildTestScenario(t)
	routes, err := sc.PairRoutes()
	if err != nil {
		t.Fatalf("PairRoutes: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("got routes for %d pairs, want 2", len(routes))
	}
	forward := routes[[2]string{"city-A", "city-B"}]
	if forward == nil {
		t.Fatal("missing city-A -> city-B routes")
	}
	p := forward[0]
	if p[0] != "sat-0-0" || p[len(p)-1] != "sat-2-2" {
		t.Errorf("forward path endpoints %s .. %s", p[0], p[len(p)-1])
	}
	backward := routes[[2]string{"city-B", "city-A"}][0]
	if backward[0] != "sat-2-2" || backward[len(backward)-1] != "sat-0-0" {
		t.Error("backward path endpoints wrong")
	}
}

func TestResultsAreMemoized(t *testing.T) {
	sc := buildTestScenario(t)
	first, err := sc.PairRoutes()
	if err != nil {
		t.Fatalf("PairRoutes: %v", err)
	}
	second, err := sc.PairRoutes()
	if err != nil {
		t.Fatalf("PairRoutes: %v", err)
	}
	// The same map instance is returned, not a recomputation.
	if reflect.ValueOf(first).Pointer() != reflect.ValueOf(second).Pointer() {
		t.Error("second access recomputed the pair routes")
	}
}

func TestGlobalRoutesPerStation(t *testing.T) {
	sc := buildTestScenario(t)
	global, err := sc.GlobalRoutes()
	if err != nil {
		t.Fatalf("GlobalRoutes: %v", err)
	}
	if len(global) != 2 {
		t.Fatalf("got global routes for %d stations, want 2", len(global))
	}
	for _, gtID := range sc.GTs.IDs() {
		routes := global[gtID]
		if len(routes) != sc.Cons.SimPeriod {
			t.Errorf("%s: trees for %d epochs, want %d", gtID, len(routes), sc.Cons.SimPeriod)
		}
	}
}

func TestCrossStatsRun(t *testing.T) {
	sc := buildTestScenario(t)
	stats, err := sc.CrossStats()
	if err != nil {
		t.Fatalf("CrossStats: %v", err)
	}
	// Static attachments: no handovers anywhere.
	for pair, cross := range stats {
		if len(cross) != 0 {
			t.Errorf("pair %v recorded %d handovers with static attachments", pair, len(cross))
		}
	}
}
