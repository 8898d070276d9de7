package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	config  *Config
	log     *logrus.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "leo",
	Short: "LEO constellation connectivity and routing simulator",
	Long: `leo simulates a low-Earth-orbit satellite constellation serving
ground stations: SGP4 propagation, per-minute +Grid ISL topology,
ground-station attachment under configurable handover strategies, and
shortest-path routing. Results feed a CZML visualisation front-end and
an ndnSIM scenario.`,
	Run: func(cmd *cobra.Command, args []string) {
		infoCmd.Run(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.leo/config.yaml)")
}

func initConfig() {
	var err error
	config, err = InitConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	log = logrus.New()
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
}
