package cmd

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	OrbitHeightKm   float64  `mapstructure:"orbit_height_km"`
	InclinationDeg  float64  `mapstructure:"inclination_deg"`
	NumOrbits       int      `mapstructure:"num_orbits"`
	SatsPerOrbit    int      `mapstructure:"sats_per_orbit"`
	MinElevationDeg float64  `mapstructure:"min_elevation_deg"`
	Zigzag          bool     `mapstructure:"zigzag"`
	Half            bool     `mapstructure:"half"`
	Runs            int      `mapstructure:"runs"`
	Strategy        string   `mapstructure:"strategy"`
	CitiesFile      string   `mapstructure:"cities_file"`
	Targets         []string `mapstructure:"targets"`
	MaxCities       int      `mapstructure:"max_cities"`
	CZMLDir         string   `mapstructure:"czml_dir"`
	NdnsimDir       string   `mapstructure:"ndnsim_dir"`
	DataDir         string   `mapstructure:"data_dir"`
	LogLevel        string   `mapstructure:"log_level"`
}

// InitConfig initialises the configuration using Viper. Defaults describe
// the Starlink phase-1 shell; a config file created on first run under
// ~/.leo can override any of them.
func InitConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "get home directory")
	}

	configDir := filepath.Join(homeDir, ".leo")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, errors.Wrap(err, "create config directory")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetDefault("orbit_height_km", 550.0)
	viper.SetDefault("inclination_deg", 53.0)
	viper.SetDefault("num_orbits", 24)
	viper.SetDefault("sats_per_orbit", 66)
	viper.SetDefault("min_elevation_deg", 25.0)
	viper.SetDefault("zigzag", false)
	viper.SetDefault("half", false)
	viper.SetDefault("runs", 1)
	viper.SetDefault("strategy", "orbit-closest-lazy")
	viper.SetDefault("cities_file", "cities.csv")
	viper.SetDefault("targets", []string{"Beijing", "Chicago"})
	viper.SetDefault("max_cities", 10)
	viper.SetDefault("czml_dir", "czml_files")
	viper.SetDefault("ndnsim_dir", "ndnsim_files")
	viper.SetDefault("data_dir", configDir)
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			configPath := filepath.Join(configDir, "config.yaml")
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				return nil, errors.Wrap(err, "create config file")
			}
		} else {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	return &cfg, nil
}
