// Package attachment selects, for every ground station and epoch, the
// satellite the station is bound to under a configurable handover
// strategy.
package attachment

import (
	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zhongda-xia/leo-demo/pkg/constellation"
	"github.com/zhongda-xia/leo-demo/pkg/groundstation"
)

// None marks an epoch with no visible satellite.
const None = ""

// Table maps each ground-station id to its per-epoch attachment array.
// Entries are satellite ids, or None while the station is detached.
type Table map[string][]string

// Compute builds the attachment table for every station in the set.
// Station order never affects the result; stations are independent.
func Compute(cons *constellation.Constellation, gts *groundstation.Set, strat Strategy, log *logrus.Logger) (Table, error) {
	if strat == nil {
		return nil, errors.New("nil strategy")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	log.WithField("strategy", strat.Name()).Info("determining access satellites")

	table := make(Table, gts.Len())
	for _, gtID := range gts.IDs() {
		gt, _ := gts.Get(gtID)
		table[gtID] = computeOne(cons, gt, strat, log)
	}
	return table, nil
}

// computeOne runs the strategy over the full simulation window for one
// station. Ranges are evaluated against the station's inertial position
// at each epoch, precomputed once.
func computeOne(cons *constellation.Constellation, gt groundstation.GroundStation, strat Strategy, log *logrus.Logger) []string {
	gtECI := make([]satellite.Vector3, cons.SimPeriod)
	for t := 0; t < cons.SimPeriod; t++ {
		gtECI[t] = gt.ECIPositionKm(cons.JDay(t))
	}

	e := &env{
		maxDistance: cons.MaxDistance,
		ids:         cons.IDs(),
		rangeTo: func(satID string, t int) float64 {
			sat, _ := cons.ByID(satID)
			return constellation.Distance(gtECI[t], sat.PositionKm(t))
		},
		orbitOf: func(satID string) (int, int) {
			sat, _ := cons.ByID(satID)
			return sat.OrbitNum, sat.SatNum
		},
		satAt: func(orbitNum, satNum int) string {
			return cons.At(orbitNum, satNum).ID
		},
		satsPerOrbit: cons.SatsPerOrbit,
	}

	attachments := make([]string, cons.SimPeriod)
	prev := None
	warned := false
	for t := 0; t < cons.SimPeriod; t++ {
		choice := strat.choose(e, prev, t)
		if !warned && t > 0 && prev != None && choice == None {
			if _, lazy := strat.(closestLazy); lazy {
				log.WithFields(logrus.Fields{"gt": gt.ID, "epoch": t}).
					Warn("station lost coverage; it stays detached for the rest of the run under this strategy")
				warned = true
			}
		}
		attachments[t] = choice
		prev = choice
	}
	return attachments
}

// Handovers counts the attachment changes in one station's array.
func Handovers(attachments []string) int {
	count := 0
	for t := 1; t < len(attachments); t++ {
		if attachments[t] != attachments[t-1] {
			count++
		}
	}
	return count
}
