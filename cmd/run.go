package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhongda-xia/leo-demo/internal/czml"
	"github.com/zhongda-xia/leo-demo/internal/ndnsim"
	"github.com/zhongda-xia/leo-demo/internal/storage"
	"github.com/zhongda-xia/leo-demo/pkg/attachment"
	"github.com/zhongda-xia/leo-demo/pkg/constellation"
	"github.com/zhongda-xia/leo-demo/pkg/groundstation"
	"github.com/zhongda-xia/leo-demo/pkg/routing"
	"github.com/zhongda-xia/leo-demo/pkg/scenario"
)

var (
	runCZMLFile     string
	runGlobalRoutes bool
	runSave         bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation and emit CZML and ndnSIM files",
	Long: `Run builds the configured constellation, computes ground-station
attachments under the configured handover strategy, derives routes for
every ordered station pair, and writes the CZML visualisation document
and the ndnSIM CSV file set.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSimulation()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runCZMLFile, "czml-file", "constellation.czml", "CZML output file name")
	runCmd.Flags().BoolVar(&runGlobalRoutes, "global-routes", false, "also compute and draw producer shortest-path trees")
	runCmd.Flags().BoolVar(&runSave, "save", false, "persist computed tables as JSON in the data directory")
}

func runSimulation() {
	gts, err := groundstation.LoadCities(config.CitiesFile, groundstation.LoadOptions{
		Targets:   config.Targets,
		MaxCities: config.MaxCities,
	}, log)
	if err != nil {
		log.Fatalf("Failed to load ground stations: %v", err)
	}

	strat, err := attachment.ParseStrategy(config.Strategy)
	if err != nil {
		log.Fatalf("Invalid strategy: %v", err)
	}

	cons, err := constellation.New(constellation.Config{
		OrbitHeightKm:  config.OrbitHeightKm,
		InclinationDeg: config.InclinationDeg,
		NumOrbits:      config.NumOrbits,
		SatsPerOrbit:   config.SatsPerOrbit,
		ElevationDeg:   config.MinElevationDeg,
		Zigzag:         config.Zigzag,
		Half:           config.Half,
		Runs:           config.Runs,
	}, log)
	if err != nil {
		log.Fatalf("Failed to build constellation: %v", err)
	}

	sc, err := scenario.New(cons, gts, strat, log)
	if err != nil {
		log.Fatalf("Failed to build scenario: %v", err)
	}

	pairRoutes, err := sc.PairRoutes()
	if err != nil {
		log.Fatalf("Failed to compute pair routes: %v", err)
	}

	// CZML document
	log.Info("generating CZML file")
	builder := czml.NewBuilder(cons.Start, cons.SimPeriod)
	builder.AddSatellites(cons.Satellites())
	builder.AddGroundStations(gts)
	builder.AddUserLinks(cons.IDs(), gts, sc.Attachments)
	for _, pair := range gts.Pairs() {
		builder.AddPairRoutes(pairRoutes[pair])
	}
	if runGlobalRoutes {
		global, err := sc.GlobalRoutes()
		if err != nil {
			log.Fatalf("Failed to compute global routes: %v", err)
		}
		for _, gtID := range gts.IDs() {
			builder.AddGlobalRoutes(global[gtID])
		}
	}
	if err := os.MkdirAll(config.CZMLDir, 0755); err != nil {
		log.Fatalf("Failed to create CZML directory: %v", err)
	}
	if err := builder.WriteFile(filepath.Join(config.CZMLDir, runCZMLFile)); err != nil {
		log.Fatalf("Failed to write CZML file: %v", err)
	}

	// ndnSIM file set
	log.Info("generating ndnSIM files")
	exporter, err := ndnsim.NewExporter(config.NdnsimDir)
	if err != nil {
		log.Fatalf("Failed to create ndnSIM exporter: %v", err)
	}
	satIDs := make([]string, 0, cons.Size())
	for _, sat := range cons.Satellites() {
		satIDs = append(satIDs, sat.ID)
	}
	if err := exporter.WriteNodes(satIDs, gts.IDs()); err != nil {
		log.Fatalf("Failed to write nodes: %v", err)
	}
	if err := exporter.WriteISLs(sc.Net.EdgeIDs()); err != nil {
		log.Fatalf("Failed to write ISLs: %v", err)
	}
	if err := exporter.WriteAttachments(sc.Attachments); err != nil {
		log.Fatalf("Failed to write attachments: %v", err)
	}
	if err := exporter.WritePairs(gts.Pairs(), pairRoutes); err != nil {
		log.Fatalf("Failed to write pair routes: %v", err)
	}

	if runSave {
		crossStats, err := sc.CrossStats()
		if err != nil {
			log.Fatalf("Failed to compute cross stats: %v", err)
		}
		store, err := storage.NewStorage(config.DataDir)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		results := &storage.Results{
			GeneratedAt: time.Now().UTC(),
			Strategy:    strat.Name(),
			Attachments: sc.Attachments,
			PairRoutes:  make(map[string]routing.PairRoutes, len(pairRoutes)),
			CrossStats:  make(map[string]routing.PairCross, len(crossStats)),
		}
		for pair, routes := range pairRoutes {
			results.PairRoutes[storage.PairKey(pair[0], pair[1])] = routes
		}
		for pair, stats := range crossStats {
			results.CrossStats[storage.PairKey(pair[0], pair[1])] = stats
		}
		if err := store.Save(results); err != nil {
			log.Fatalf("Failed to save results: %v", err)
		}
	}

	log.Info("done")
}
