package routing

import (
	"github.com/pkg/errors"

	"github.com/zhongda-xia/leo-demo/pkg/attachment"
	"github.com/zhongda-xia/leo-demo/pkg/topology"
)

// CrossStats measures, at one consumer handover, how the new pair route
// overlaps the previous one: hops from the new attachment to the first
// common satellite, hops from the old attachment to that satellite on the
// old path, the new path length, and the hop distance between the old and
// new attachments.
type CrossStats struct {
	Hops        int    `json:"hops"`
	HopsLast    int    `json:"hopsLast"`
	Length      int    `json:"length"`
	HopsBetween int    `json:"hopsBetween"`
	CurSat      string `json:"curSat"`
	LastSat     string `json:"lastSat"`
}

// PairCross maps a consumer-handover epoch to its cross statistics.
type PairCross map[int]CrossStats

// PairCrossStatsFor scans one ordered (consumer, producer) pair for
// consumer handovers and records the path-overlap statistics at each.
// The returned routes hold only the epochs where the path was recomputed.
//
// The overlap scan walks the new path outermost, so it always reports the
// first common satellite counted from the new attachment; swapping the
// loop nesting would change the tie-break.
func PairCrossStatsFor(net *topology.Network, table attachment.Table, pair [2]string) (PairCross, PairRoutes, error) {
	consumer, producer := pair[0], pair[1]
	sAtt, ok := table[consumer]
	if !ok {
		return nil, nil, errors.Errorf("no attachments for consumer %s", consumer)
	}
	dAtt, ok := table[producer]
	if !ok {
		return nil, nil, errors.Errorf("no attachments for producer %s", producer)
	}

	stats := make(PairCross)
	routes := make(PairRoutes)
	lastS, lastD := attachment.None, attachment.None
	var lastPath []string
	for t := 0; t < net.NumEpochs(); t++ {
		thisS, thisD := sAtt[t], dAtt[t]
		if thisS == attachment.None || thisD == attachment.None {
			lastS, lastD, lastPath = thisS, thisD, nil
			continue
		}

		var p []string
		if thisS == lastS && thisD == lastD && lastPath != nil {
			p = lastPath
		} else {
			var err error
			p, err = shortestPath(net, t, thisS, thisD)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "pair %s->%s epoch %d", consumer, producer, t)
			}
			routes[t] = p
		}

		if lastS != attachment.None && lastS != thisS && lastPath != nil {
			between, err := shortestPath(net, t, thisS, lastS)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "pair %s->%s epoch %d", consumer, producer, t)
			}
			stats[t] = overlap(p, lastPath, thisS, lastS, len(between)-1)
		}

		lastS, lastD, lastPath = thisS, thisD, p
	}
	return stats, routes, nil
}

// overlap locates the first satellite of the new path that also appears
// on the old path. With no common satellite, hops and hopsLast degrade to
// the full path lengths.
func overlap(newPath, oldPath []string, curSat, lastSat string, hopsBetween int) CrossStats {
	for j := range newPath {
		for i := range oldPath {
			if newPath[j] == oldPath[i] {
				return CrossStats{
					Hops:        j,
					HopsLast:    i,
					Length:      len(newPath),
					HopsBetween: hopsBetween,
					CurSat:      curSat,
					LastSat:     lastSat,
				}
			}
		}
	}
	return CrossStats{
		Hops:        len(newPath),
		HopsLast:    len(oldPath),
		Length:      len(newPath),
		HopsBetween: hopsBetween,
		CurSat:      curSat,
		LastSat:     lastSat,
	}
}
