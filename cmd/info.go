package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhongda-xia/leo-demo/pkg/constellation"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display derived constellation figures",
	Long: `Display the quantities derived from the configured constellation
geometry (mean motion, orbit period, visibility threshold, satellite and
ISL counts) without propagating orbits or running a simulation.`,
	Run: func(cmd *cobra.Command, args []string) {
		runInfo()
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo() {
	meanMotion := constellation.MeanMotionRevPerDay(config.OrbitHeightKm * 1000)
	orbitPeriod := int(1440 / meanMotion)
	runs := config.Runs
	if runs == 0 {
		runs = constellation.DefaultRuns
	}
	numSats := config.NumOrbits * config.SatsPerOrbit

	fmt.Println("Constellation")
	fmt.Println("=============")
	fmt.Printf("Orbit height:     %.0f km\n", config.OrbitHeightKm)
	fmt.Printf("Inclination:      %.1f°\n", config.InclinationDeg)
	fmt.Printf("Orbits:           %d\n", config.NumOrbits)
	fmt.Printf("Sats per orbit:   %d\n", config.SatsPerOrbit)
	fmt.Printf("Satellites:       %d\n", numSats)
	fmt.Printf("ISLs:             %d\n", 2*numSats)
	fmt.Printf("Mean motion:      %.4f rev/day\n", meanMotion)
	fmt.Printf("Orbit period:     %d min\n", orbitPeriod)
	fmt.Printf("Sim period:       %d min\n", runs*orbitPeriod)
	fmt.Printf("Max slant range:  %.1f km at %.1f° elevation\n",
		constellation.MaxSlantRangeKm(config.OrbitHeightKm, config.MinElevationDeg),
		config.MinElevationDeg)
}
