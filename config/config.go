package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uefn-tools/versedb/constants/lipgloss"
)

// Config represents the structure of the configuration file
type Config struct {
	Version        string   `mapstructure:"version"`
	Theme          string   `mapstructure:"theme"`
	DatabaseFile   string   `mapstructure:"database_file"`
	FilePattern    string   `mapstructure:"file_pattern"`
	RetryAttempts  int      `mapstructure:"retry_attempts"`
	RetryDelayMs   int      `mapstructure:"retry_delay_ms"`
	EnableSnapshot bool     `mapstructure:"enable_snapshot"`
	WellKnownPaths []string `mapstructure:"well_known_paths"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:        "1.0.0",
	Theme:          "dracula",
	DatabaseFile:   "verse-code-database.md",
	FilePattern:    "*.verse",
	RetryAttempts:  10,
	RetryDelayMs:   1000,
	EnableSnapshot: true,
	WellKnownPaths: DefaultWellKnownPaths(),
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// DefaultWellKnownPaths returns the conventional UEFN project locations that
// whole-filesystem scans check before touching any volume.
func DefaultWellKnownPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, "Documents", "Fortnite Projects"),
		filepath.Join(home, "OneDrive", "Documents", "Fortnite Projects"),
		filepath.Join(home, "Fortnite Projects"),
	}
}

// LoadConfigs initializes the configuration from file, flags, and environment
// variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	setDefaults()

	viper.AutomaticEnv()
	bindEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		viper.SetConfigName("versedb-config")
		viper.AddConfigPath(cwd)

		// Support both JSON and YAML formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// No configuration file; defaults, env and flags apply.
			}
		}
	}

	bindFlags(rootCmd)

	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// DatabasePath resolves the configured database file against the working
// directory. Carrying the artifact location explicitly keeps the core
// testable against arbitrary temporary directories.
func (c *Config) DatabasePath(cwd string) string {
	if filepath.IsAbs(c.DatabaseFile) {
		return c.DatabaseFile
	}
	return filepath.Join(cwd, c.DatabaseFile)
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("database_file", DefaultConfig.DatabaseFile)
	viper.SetDefault("file_pattern", DefaultConfig.FilePattern)
	viper.SetDefault("retry_attempts", DefaultConfig.RetryAttempts)
	viper.SetDefault("retry_delay_ms", DefaultConfig.RetryDelayMs)
	viper.SetDefault("enable_snapshot", DefaultConfig.EnableSnapshot)
	viper.SetDefault("well_known_paths", DefaultConfig.WellKnownPaths)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "THEME")
	_ = viper.BindEnv("database_file", "DATABASE_FILE")
	_ = viper.BindEnv("file_pattern", "FILE_PATTERN")
	_ = viper.BindEnv("retry_attempts", "RETRY_ATTEMPTS")
	_ = viper.BindEnv("retry_delay_ms", "RETRY_DELAY_MS")
	_ = viper.BindEnv("enable_snapshot", "ENABLE_SNAPSHOT")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("database_file", rootCmd.PersistentFlags().Lookup("database_file"))
	_ = viper.BindPFlag("file_pattern", rootCmd.PersistentFlags().Lookup("file_pattern"))
	_ = viper.BindPFlag("retry_attempts", rootCmd.PersistentFlags().Lookup("retry_attempts"))
	_ = viper.BindPFlag("retry_delay_ms", rootCmd.PersistentFlags().Lookup("retry_delay_ms"))
	_ = viper.BindPFlag("enable_snapshot", rootCmd.PersistentFlags().Lookup("enable_snapshot"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Syntax highlighting theme for the preview command (e.g., 'dracula', 'light', 'dark').")
	rootCmd.PersistentFlags().String("database_file", DefaultConfig.DatabaseFile, "Name or path of the aggregated database file.")
	rootCmd.PersistentFlags().String("file_pattern", DefaultConfig.FilePattern, "Glob matched against file names during discovery.")
	rootCmd.PersistentFlags().Int("retry_attempts", DefaultConfig.RetryAttempts, "Maximum append attempts when the database file is locked by another process.")
	rootCmd.PersistentFlags().Int("retry_delay_ms", DefaultConfig.RetryDelayMs, "Delay in milliseconds between append retries.")
	rootCmd.PersistentFlags().Bool("enable_snapshot", DefaultConfig.EnableSnapshot, "Record a per-file snapshot after each run and report what changed.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}
