package attachment

import (
	"strings"

	"github.com/pkg/errors"
)

// Strategy decides which satellite a ground station binds to at an epoch,
// given the previous epoch's choice and the station's range geometry.
type Strategy interface {
	Name() string
	// choose returns the attachment at epoch t, or None. prev is the
	// previous epoch's attachment; it is meaningless when t is zero.
	choose(env *env, prev string, t int) string
}

// ParseStrategy resolves a strategy by name. Both hyphenated and
// space-separated spellings are accepted.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-") {
	case "closest-active":
		return closestActive{}, nil
	case "closest-lazy":
		return closestLazy{}, nil
	case "orbit-closest-lazy":
		return orbitClosestLazy{}, nil
	}
	return nil, errors.Errorf("unknown handover strategy %q", name)
}

// env is the per-ground-station view a strategy works against: the
// visibility threshold, the global candidate list in lexical id order,
// per-orbit candidate lookup, and a range evaluator.
type env struct {
	maxDistance  float64
	ids          []string                          // lexical order
	rangeTo      func(satID string, t int) float64 // km
	orbitOf      func(satID string) (orbitNum, satNum int)
	satAt        func(orbitNum, satNum int) string
	satsPerOrbit int
}

func (e *env) visible(satID string, t int) bool {
	return e.rangeTo(satID, t) < e.maxDistance
}

// closest returns the visible satellite minimising slant range, or None.
// Candidates are scanned in lexical id order, so ties resolve to the
// lexically first satellite.
func (e *env) closest(t int) string {
	best := None
	bestDist := 0.0
	for _, id := range e.ids {
		dist := e.rangeTo(id, t)
		if dist >= e.maxDistance {
			continue
		}
		if best == None || dist < bestDist {
			best = id
			bestDist = dist
		}
	}
	return best
}

// orbitClosest searches only the previous satellite's orbit, in a
// traversal order that starts adjacent to the previous in-orbit index and
// expands outward. Returns None when nothing in the orbit is visible.
func (e *env) orbitClosest(prev string, t int) string {
	orbitNum, satNum := e.orbitOf(prev)
	best := None
	bestDist := 0.0
	for _, i := range orbitSearchOrder(satNum, e.satsPerOrbit) {
		id := e.satAt(orbitNum, i)
		dist := e.rangeTo(id, t)
		if dist >= e.maxDistance {
			continue
		}
		if best == None || dist < bestDist {
			best = id
			bestDist = dist
		}
	}
	return best
}

// orbitSearchOrder enumerates the in-orbit indices to try after losing
// the satellite at index p, for an orbit of n satellites. Note the middle
// case never reaches index n-1.
func orbitSearchOrder(p, n int) []int {
	order := make([]int, 0, n-1)
	switch p {
	case 0:
		order = append(order, n-1)
		for i := 1; i <= n-2; i++ {
			order = append(order, i)
		}
	case n - 1:
		order = append(order, n-2)
		for i := 0; i <= n-3; i++ {
			order = append(order, i)
		}
	default:
		order = append(order, p-1)
		for i := p + 1; i <= n-2; i++ {
			order = append(order, i)
		}
		for i := 0; i <= p-2; i++ {
			order = append(order, i)
		}
	}
	return order
}

// closestActive re-evaluates the global minimum range every epoch. A
// handover happens whenever the argmin changes.
type closestActive struct{}

func (closestActive) Name() string { return "closest-active" }

func (closestActive) choose(e *env, prev string, t int) string {
	return e.closest(t)
}

// closestLazy keeps the previous satellite while it stays visible and
// re-runs the global search when it drops below the horizon mask. A
// station that ends up with no attachment stays detached for the rest of
// the run.
type closestLazy struct{}

func (closestLazy) Name() string { return "closest-lazy" }

func (closestLazy) choose(e *env, prev string, t int) string {
	if t == 0 {
		return e.closest(t)
	}
	if prev == None {
		return None
	}
	if e.visible(prev, t) {
		return prev
	}
	return e.closest(t)
}

// orbitClosestLazy keeps the previous satellite while visible; on a
// handover it first searches the previous satellite's own orbit, and only
// falls back to the global search when that orbit offers nothing.
type orbitClosestLazy struct{}

func (orbitClosestLazy) Name() string { return "orbit-closest-lazy" }

func (orbitClosestLazy) choose(e *env, prev string, t int) string {
	if t > 0 && prev != None {
		if e.visible(prev, t) {
			return prev
		}
		if sat := e.orbitClosest(prev, t); sat != None {
			return sat
		}
	}
	return e.closest(t)
}
