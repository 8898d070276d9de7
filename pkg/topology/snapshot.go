package topology

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
)

// Snapshot is the topology at one epoch minute. It implements
// graph.WeightedUndirected over the shared node and edge tables, reading
// weights from the epoch's weight vector, so gonum's shortest-path
// algorithms run on it directly.
type Snapshot struct {
	net   *Network
	epoch int
}

var _ graph.WeightedUndirected = Snapshot{}

// Epoch returns the snapshot's epoch minute.
func (s Snapshot) Epoch() int { return s.epoch }

// Node returns the node with the given id, or nil if it does not exist.
func (s Snapshot) Node(id int64) graph.Node {
	if id < 0 || id >= int64(len(s.net.nodes)) {
		return nil
	}
	return s.net.nodes[id]
}

// Nodes returns all satellites.
func (s Snapshot) Nodes() graph.Nodes {
	return iterator.NewOrderedNodes(s.net.nodes)
}

// From returns the four +Grid neighbours of a node.
func (s Snapshot) From(id int64) graph.Nodes {
	if id < 0 || id >= int64(len(s.net.adj)) {
		return graph.Empty
	}
	incident := s.net.adj[id]
	neighbours := make([]graph.Node, 0, len(incident))
	for _, li := range incident {
		link := s.net.links[li]
		other := link.U
		if other == id {
			other = link.V
		}
		neighbours = append(neighbours, s.net.nodes[other])
	}
	return iterator.NewOrderedNodes(neighbours)
}

// HasEdgeBetween reports whether an ISL joins the two nodes.
func (s Snapshot) HasEdgeBetween(xid, yid int64) bool {
	_, ok := s.net.linkIdx[normalise(xid, yid)]
	return ok
}

// Edge returns the edge between two nodes, or nil.
func (s Snapshot) Edge(uid, vid int64) graph.Edge {
	return s.WeightedEdge(uid, vid)
}

// EdgeBetween returns the edge between two nodes, or nil.
func (s Snapshot) EdgeBetween(xid, yid int64) graph.Edge {
	return s.WeightedEdge(xid, yid)
}

// WeightedEdge returns the weighted edge between two nodes, or nil.
func (s Snapshot) WeightedEdge(uid, vid int64) graph.WeightedEdge {
	li, ok := s.net.linkIdx[normalise(uid, vid)]
	if !ok {
		return nil
	}
	return simple.WeightedEdge{
		F: s.net.nodes[uid],
		T: s.net.nodes[vid],
		W: s.net.weights[s.epoch][li],
	}
}

// WeightedEdgeBetween returns the weighted edge between two nodes, or nil.
func (s Snapshot) WeightedEdgeBetween(xid, yid int64) graph.WeightedEdge {
	return s.WeightedEdge(xid, yid)
}

// Weight returns the range in km between two adjacent satellites at this
// epoch. A node is at distance zero from itself.
func (s Snapshot) Weight(xid, yid int64) (w float64, ok bool) {
	if xid == yid {
		return 0, true
	}
	li, found := s.net.linkIdx[normalise(xid, yid)]
	if !found {
		return 0, false
	}
	return s.net.weights[s.epoch][li], true
}
