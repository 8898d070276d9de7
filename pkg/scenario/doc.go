// Package scenario wires the simulation core together: a constellation,
// its +Grid ISL topology, a ground-station set, and one handover
// strategy, with route products computed in parallel and cached.
//
// # Basic Usage
//
// Build a constellation and bind it to ground stations:
//
//	cons, err := constellation.New(constellation.Config{
//	    OrbitHeightKm:  550,
//	    InclinationDeg: 53,
//	    NumOrbits:      24,
//	    SatsPerOrbit:   66,
//	    ElevationDeg:   25,
//	}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gts, err := groundstation.LoadCities("cities.csv", groundstation.LoadOptions{
//	    Targets: []string{"Beijing", "Chicago"},
//	}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	strat, _ := attachment.ParseStrategy("orbit-closest-lazy")
//	sc, err := scenario.New(cons, gts, strat, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Derive routes; each product is computed once and cached:
//
//	pairRoutes, err := sc.PairRoutes()
//	crossStats, err := sc.CrossStats()
//	global, err := sc.GlobalRoutes()
//
// The attachment table is available as sc.Attachments, the persistent
// ISL edge set as sc.Net.EdgeIDs(), and the per-satellite tracks through
// sc.Cons.Satellites(). These are the inputs the czml and ndnsim
// serialisers consume.
package scenario
