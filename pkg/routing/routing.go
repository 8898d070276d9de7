// Package routing derives route products from attachment tables and the
// topology snapshot sequence: per-producer shortest-path trees, per-pair
// shortest paths, and handover cross statistics.
package routing

import (
	"gonum.org/v1/gonum/graph/path"

	"github.com/pkg/errors"

	"github.com/zhongda-xia/leo-demo/pkg/attachment"
	"github.com/zhongda-xia/leo-demo/pkg/topology"
)

// DirectedEdge is a (child, parent) predecessor edge of a shortest-path
// tree, pointing toward the tree root.
type DirectedEdge struct {
	From string
	To   string
}

// GlobalRoutes maps an epoch to the edge union of the Dijkstra tree
// rooted at the producer's attachment. Epochs where the producer is
// detached carry no entry.
type GlobalRoutes map[int]map[DirectedEdge]struct{}

// PairRoutes maps an epoch to the shortest path (satellite ids) from the
// consumer's attachment to the producer's attachment.
type PairRoutes map[int][]string

// shortestPath computes the weighted shortest path between two satellites
// on the epoch-t snapshot. The +Grid graph is connected, so a missing
// path is a hard error, never silently dropped.
func shortestPath(net *topology.Network, t int, fromID, toID string) ([]string, error) {
	u, err := net.NodeID(fromID)
	if err != nil {
		return nil, err
	}
	v, err := net.NodeID(toID)
	if err != nil {
		return nil, err
	}
	snap := net.Snapshot(t)
	nodes, _ := path.DijkstraFrom(snap.Node(u), snap).To(v)
	if len(nodes) == 0 {
		return nil, errors.Errorf("no path from %s to %s", fromID, toID)
	}
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = net.SatID(n.ID())
	}
	return ids, nil
}

// GlobalRoutesFor computes, for one producer station, the per-epoch
// predecessor-edge union of the single-source shortest-path tree rooted
// at the station's attachment.
func GlobalRoutesFor(net *topology.Network, attachments []string, gtID string) (GlobalRoutes, error) {
	routes := make(GlobalRoutes, len(attachments))
	for t := 0; t < net.NumEpochs() && t < len(attachments); t++ {
		att := attachments[t]
		if att == attachment.None {
			continue
		}
		src, err := net.NodeID(att)
		if err != nil {
			return nil, errors.Wrapf(err, "gt %s epoch %d", gtID, t)
		}
		snap := net.Snapshot(t)
		tree := path.DijkstraFrom(snap.Node(src), snap)

		edges := make(map[DirectedEdge]struct{}, net.NumNodes())
		for v := 0; v < net.NumNodes(); v++ {
			nodes, _ := tree.To(int64(v))
			if len(nodes) == 0 {
				return nil, errors.Errorf("gt %s epoch %d: satellite %s unreachable from %s",
					gtID, t, net.SatID(int64(v)), att)
			}
			for i := 1; i < len(nodes); i++ {
				edges[DirectedEdge{
					From: net.SatID(nodes[i].ID()),
					To:   net.SatID(nodes[i-1].ID()),
				}] = struct{}{}
			}
		}
		routes[t] = edges
	}
	return routes, nil
}

// PairRoutesFor computes the per-epoch shortest path for one ordered
// (consumer, producer) pair. When neither endpoint changed since the
// previous epoch the previous path is reused verbatim; epochs where
// either endpoint is detached carry no entry.
func PairRoutesFor(net *topology.Network, table attachment.Table, pair [2]string) (PairRoutes, error) {
	consumer, producer := pair[0], pair[1]
	sAtt, ok := table[consumer]
	if !ok {
		return nil, errors.Errorf("no attachments for consumer %s", consumer)
	}
	dAtt, ok := table[producer]
	if !ok {
		return nil, errors.Errorf("no attachments for producer %s", producer)
	}

	routes := make(PairRoutes, net.NumEpochs())
	lastS, lastD := attachment.None, attachment.None
	var lastPath []string
	for t := 0; t < net.NumEpochs(); t++ {
		thisS, thisD := sAtt[t], dAtt[t]
		if thisS == attachment.None || thisD == attachment.None {
			lastS, lastD, lastPath = thisS, thisD, nil
			continue
		}
		if thisS == lastS && thisD == lastD && lastPath != nil {
			routes[t] = lastPath
		} else {
			p, err := shortestPath(net, t, thisS, thisD)
			if err != nil {
				return nil, errors.Wrapf(err, "pair %s->%s epoch %d", consumer, producer, t)
			}
			routes[t] = p
			lastPath = p
		}
		lastS, lastD = thisS, thisD
	}
	return routes, nil
}
