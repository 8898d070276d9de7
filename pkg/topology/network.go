// Package topology builds the time-indexed +Grid inter-satellite-link
// graph of a constellation: a fixed node and edge set shared by every
// epoch, with per-epoch edge weights equal to instantaneous range in km.
package topology

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zhongda-xia/leo-demo/pkg/constellation"
)

// Link is one undirected ISL, identified by its endpoint node ids.
type Link struct {
	U, V int64
}

// RangeFunc evaluates a pairwise slant range at an epoch minute, in km.
type RangeFunc func(t int) float64

// Network holds the structure shared by all snapshots: the node table,
// the +Grid edge table and adjacency, and one weight vector per epoch.
type Network struct {
	cons *constellation.Constellation

	nodes   []graph.Node
	satOf   []string         // node id -> satellite id
	idOf    map[string]int64 // satellite id -> node id
	links   []Link
	linkIdx map[Link]int // normalised (min,max) endpoint key -> links index
	adj     [][]int      // node id -> incident link indices

	weights [][]float64 // [epoch][link] range in km

	rangeFns map[Link]RangeFunc // memoised pair evaluators
}

// NewNetwork constructs the +Grid edge set over the constellation and
// precomputes the weight vector of every epoch in [0, SimPeriod).
func NewNetwork(cons *constellation.Constellation, log *logrus.Logger) *Network {
	if log == nil {
		log = logrus.StandardLogger()
	}

	numOrbits := cons.NumOrbits
	satsPerOrbit := cons.SatsPerOrbit
	n := numOrbits * satsPerOrbit

	net := &Network{
		cons:     cons,
		nodes:    make([]graph.Node, n),
		satOf:    make([]string, n),
		idOf:     make(map[string]int64, n),
		linkIdx:  make(map[Link]int, 2*n),
		adj:      make([][]int, n),
		rangeFns: make(map[Link]RangeFunc, 2*n),
	}
	for orbitNum := 0; orbitNum < numOrbits; orbitNum++ {
		for satNum := 0; satNum < satsPerOrbit; satNum++ {
			id := net.nodeID(orbitNum, satNum)
			net.nodes[id] = simple.Node(id)
			net.satOf[id] = cons.At(orbitNum, satNum).ID
			net.idOf[net.satOf[id]] = id
		}
	}

	// Each satellite links to its intra-orbit successor and to the
	// same-index satellite in the next orbit, both with wrap-around.
	// Every undirected edge is emitted exactly once.
	for orbitNum := 0; orbitNum < numOrbits; orbitNum++ {
		for satNum := 0; satNum < satsPerOrbit; satNum++ {
			u := net.nodeID(orbitNum, satNum)
			net.addLink(u, net.nodeID(orbitNum, (satNum+1)%satsPerOrbit))
			net.addLink(u, net.nodeID((orbitNum+1)%numOrbits, satNum))
		}
	}

	log.WithFields(logrus.Fields{
		"nodes":  n,
		"links":  len(net.links),
		"epochs": cons.SimPeriod,
	}).Info("generating topology snapshots")

	net.weights = make([][]float64, cons.SimPeriod)
	for t := 0; t < cons.SimPeriod; t++ {
		row := make([]float64, len(net.links))
		for i, link := range net.links {
			row[i] = net.RangeEvaluator(link.U, link.V)(t)
		}
		net.weights[t] = row
	}

	return net
}

func (n *Network) nodeID(orbitNum, satNum int) int64 {
	return int64(orbitNum*n.cons.SatsPerOrbit + satNum)
}

func normalise(u, v int64) Link {
	if u > v {
		u, v = v, u
	}
	return Link{U: u, V: v}
}

func (n *Network) addLink(u, v int64) {
	key := normalise(u, v)
	if _, dup := n.linkIdx[key]; dup {
		return
	}
	n.linkIdx[key] = len(n.links)
	n.adj[u] = append(n.adj[u], len(n.links))
	n.adj[v] = append(n.adj[v], len(n.links))
	n.links = append(n.links, key)
}

// RangeEvaluator returns the memoised range evaluator for a node pair.
// The cache key is the normalised (min, max) id pair, so the evaluator is
// shared between both orientations of an edge.
func (n *Network) RangeEvaluator(u, v int64) RangeFunc {
	key := normalise(u, v)
	if fn, ok := n.rangeFns[key]; ok {
		return fn
	}
	a, _ := n.cons.ByID(n.satOf[key.U])
	b, _ := n.cons.ByID(n.satOf[key.V])
	fn := func(t int) float64 { return n.cons.Range(a, b, t) }
	n.rangeFns[key] = fn
	return fn
}

// NumEpochs returns the number of snapshots.
func (n *Network) NumEpochs() int { return len(n.weights) }

// NumNodes returns the number of satellites in each snapshot.
func (n *Network) NumNodes() int { return len(n.nodes) }

// Links returns the persistent edge set in construction order.
func (n *Network) Links() []Link { return n.links }

// EdgeIDs returns the persistent edge set as satellite-id pairs, in
// construction order. This is the form the serialisers consume.
func (n *Network) EdgeIDs() [][2]string {
	pairs := make([][2]string, len(n.links))
	for i, l := range n.links {
		pairs[i] = [2]string{n.satOf[l.U], n.satOf[l.V]}
	}
	return pairs
}

// NodeID maps a satellite id to its graph node id.
func (n *Network) NodeID(satID string) (int64, error) {
	id, ok := n.idOf[satID]
	if !ok {
		return 0, errors.Errorf("unknown satellite %q", satID)
	}
	return id, nil
}

// SatID maps a graph node id back to its satellite id.
func (n *Network) SatID(node int64) string { return n.satOf[node] }

// Snapshot returns the epoch-t view of the network as a weighted
// undirected graph.
func (n *Network) Snapshot(t int) Snapshot {
	return Snapshot{net: n, epoch: t}
}
