package routing

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/zhongda-xia/leo-demo/pkg/attachment"
	"github.com/zhongda-xia/leo-demo/pkg/constellation"
	"github.com/zhongda-xia/leo-demo/pkg/topology"
)

func buildTestNetwork(t *testing.T) (*constellation.Constellation, *topology.Network) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	cons, err := constellation.New(constellation.Config{
		OrbitHeightKm:  550,
		InclinationDeg: 53,
		NumOrbits:      5,
		SatsPerOrbit:   6,
		ElevationDeg:   25,
	}, log)
	if err != nil {
		t.Fatalf("building constellation: %v", err)
	}
	return cons, topology.NewNetwork(cons, log)
}

// fill builds a full-window attachment array bound to one satellite.
func fill(period int, satID string) []string {
	arr := make([]string, period)
	for i := range arr {
		arr[i] = satID
	}
	return arr
}

func TestShortestPathAdjacent(t *testing.T) {
	_, net := buildTestNetwork(t)
	// Straight-line geometry makes the direct ISL the shortest route
	// between ring neighbours.
	p, err := shortestPath(net, 0, "sat-0-0", "sat-0-1")
	if err != nil {
		t.Fatalf("shortestPath: %v", err)
	}
	if len(p) != 2 || p[0] != "sat-0-0" || p[1] != "sat-0-1" {
		t.Errorf("path = %v, want the direct hop", p)
	}
}

func TestPairRoutesEndpointsAndReuse(t *testing.T) {
	cons, net := buildTestNetwork(t)
	table := attachment.Table{
		"city-A": fill(cons.SimPeriod, "sat-0-0"),
		"city-B": fill(cons.SimPeriod, "sat-2-3"),
	}

	routes, err := PairRoutesFor(net, table, [2]string{"city-A", "city-B"})
	if err != nil {
		t.Fatalf("PairRoutesFor: %v", err)
	}
	if len(routes) != cons.SimPeriod {
		t.Fatalf("routes cover %d epochs, want %d", len(routes), cons.SimPeriod)
	}
	for epoch, p := range routes {
		if p[0] != "sat-0-0" || p[len(p)-1] != "sat-2-3" {
			t.Fatalf("epoch %d: path endpoints %s .. %s", epoch, p[0], p[len(p)-1])
		}
	}
	// Unchanged endpoints reuse the previous path verbatim: the slice
	// header is shared, not recomputed.
	if &routes[0][0] != &routes[1][0] {
		t.Error("unchanged epochs must reuse the same path")
	}
}

func TestPairRoutesSkipsDetachedEpochs(t *testing.T) {
	cons, net := buildTestNetwork(t)
	consumer := fill(cons.SimPeriod, "sat-0-0")
	consumer[3] = attachment.None
	consumer[4] = attachment.None
	table := attachment.Table{
		"city-A": consumer,
		"city-B": fill(cons.SimPeriod, "sat-2-3"),
	}

	routes, err := PairRoutesFor(net, table, [2]string{"city-A", "city-B"})
	if err != nil {
		t.Fatalf("PairRoutesFor: %v", err)
	}
	if _, ok := routes[3]; ok {
		t.Error("epoch 3 must have no route while the consumer is detached")
	}
	if _, ok := routes[4]; ok {
		t.Error("epoch 4 must have no route while the consumer is detached")
	}
	if _, ok := routes[5]; !ok {
		t.Error("epoch 5 must have a route after re-attachment")
	}
}

func TestPairRoutesUnknownStation(t *testing.T) {
	_, net := buildTestNetwork(t)
	if _, err := PairRoutesFor(net, attachment.Table{}, [2]string{"city-A", "city-B"}); err == nil {
		t.Error("expected an error for a station without attachments")
	}
}

func TestGlobalRoutesTreeShape(t *testing.T) {
	cons, net := buildTestNetwork(t)
	attachments := fill(cons.SimPeriod, "sat-1-2")

	routes, err := GlobalRoutesFor(net, attachments, "city-A")
	if err != nil {
		t.Fatalf("GlobalRoutesFor: %v", err)
	}
	edges := routes[0]
	// A shortest-path tree over n nodes has n-1 predecessor edges, and
	// every node except the root appears exactly once as a child.
	if len(edges) != net.NumNodes()-1 {
		t.Fatalf("tree has %d edges, want %d", len(edges), net.NumNodes()-1)
	}
	children := make(map[string]int, len(edges))
	for edge := range edges {
		children[edge.From]++
	}
	if children["sat-1-2"] != 0 {
		t.Error("the root must not appear as a child")
	}
	for child, count := range children {
		if count != 1 {
			t.Errorf("node %s has %d parents", child, count)
		}
	}
}

func TestGlobalRoutesSkipsDetachedEpochs(t *testing.T) {
	cons, net := buildTestNetwork(t)
	attachments := fill(cons.SimPeriod, "sat-1-2")
	attachments[7] = attachment.None

	routes, err := GlobalRoutesFor(net, attachments, "city-A")
	if err != nil {
		t.Fatalf("GlobalRoutesFor: %v", err)
	}
	if _, ok := routes[7]; ok {
		t.Error("epoch 7 must carry no tree while the producer is detached")
	}
	if _, ok := routes[8]; !ok {
		t.Error("epoch 8 must carry a tree")
	}
}
