// Package scenario binds a constellation to a set of ground stations and
// exposes the derived connectivity products behind memoized accessors.
package scenario

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zhongda-xia/leo-demo/internal/executor"
	"github.com/zhongda-xia/leo-demo/pkg/attachment"
	"github.com/zhongda-xia/leo-demo/pkg/constellation"
	"github.com/zhongda-xia/leo-demo/pkg/groundstation"
	"github.com/zhongda-xia/leo-demo/pkg/routing"
	"github.com/zhongda-xia/leo-demo/pkg/topology"
)

// Scenario owns a constellation, its ISL network, a ground-station set,
// and the attachment table computed under one handover strategy. Route
// products are computed on first access and cached.
type Scenario struct {
	Cons        *constellation.Constellation
	GTs         *groundstation.Set
	Net         *topology.Network
	Attachments attachment.Table

	log *logrus.Logger

	mu          sync.Mutex
	global      map[string]routing.GlobalRoutes
	pairs       map[[2]string]routing.PairRoutes
	cross       map[[2]string]routing.PairCross
	crossRoutes map[[2]string]routing.PairRoutes
}

// New builds the topology snapshots and the attachment table for the
// given strategy.
func New(cons *constellation.Constellation, gts *groundstation.Set, strat attachment.Strategy, log *logrus.Logger) (*Scenario, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	net := topology.NewNetwork(cons, log)
	table, err := attachment.Compute(cons, gts, strat, log)
	if err != nil {
		return nil, errors.Wrap(err, "computing attachments")
	}
	return &Scenario{Cons: cons, GTs: gts, Net: net, Attachments: table, log: log}, nil
}

// NewWithAttachments builds a scenario around a precomputed attachment
// table instead of running a strategy.
func NewWithAttachments(cons *constellation.Constellation, gts *groundstation.Set, table attachment.Table, log *logrus.Logger) *Scenario {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scenario{Cons: cons, GTs: gts, Net: topology.NewNetwork(cons, log), Attachments: table, log: log}
}

// GlobalRoutes returns, for every station as producer, the per-epoch
// predecessor-edge unions of its shortest-path trees.
func (s *Scenario) GlobalRoutes() (map[string]routing.GlobalRoutes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.global != nil {
		return s.global, nil
	}
	s.log.Info("computing global routes")
	res, err := executor.Collect(s.GTs.IDs(), func(gtID string) (routing.GlobalRoutes, error) {
		return routing.GlobalRoutesFor(s.Net, s.Attachments[gtID], gtID)
	}, s.log)
	if err != nil {
		return nil, err
	}
	s.global = res
	return s.global, nil
}

// PairRoutes returns the per-epoch shortest path for every ordered
// station pair.
func (s *Scenario) PairRoutes() (map[[2]string]routing.PairRoutes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pairs != nil {
		return s.pairs, nil
	}
	s.log.Info("computing pair routes")
	res, err := executor.Collect(s.GTs.Pairs(), func(pair [2]string) (routing.PairRoutes, error) {
		return routing.PairRoutesFor(s.Net, s.Attachments, pair)
	}, s.log)
	if err != nil {
		return nil, err
	}
	s.pairs = res
	return s.pairs, nil
}

// CrossStats returns the consumer-handover cross statistics for every
// ordered station pair.
func (s *Scenario) CrossStats() (map[[2]string]routing.PairCross, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cross != nil {
		return s.cross, nil
	}
	s.log.Info("computing pair cross stats")

	type crossResult struct {
		stats  routing.PairCross
		routes routing.PairRoutes
	}
	res, err := executor.Collect(s.GTs.Pairs(), func(pair [2]string) (crossResult, error) {
		stats, routes, err := routing.PairCrossStatsFor(s.Net, s.Attachments, pair)
		return crossResult{stats: stats, routes: routes}, err
	}, s.log)
	if err != nil {
		return nil, err
	}
	s.cross = make(map[[2]string]routing.PairCross, len(res))
	s.crossRoutes = make(map[[2]string]routing.PairRoutes, len(res))
	for pair, r := range res {
		s.cross[pair] = r.stats
		s.crossRoutes[pair] = r.routes
	}
	return s.cross, nil
}
