package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pokemcp/pokemcp/core/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pokemcp",
	Short: "Pokemon data service over REST and MCP",
	Long: `pokemcp serves PokeAPI data through a read-through cache, exposed both as
a REST API and as an MCP (Model Context Protocol) server for AI agents.`,
}

func init() {
	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolP(
		"debug", "d", false,
		"display debug logs with --debug <true/false> | example: --debug=true",
	)
	_ = viper.BindPFlag("app_debug", rootCmd.PersistentFlags().Lookup("debug"))

	cobra.OnInitialize(initEnv)
}

// initEnv loads .env into the process environment so LoadConfig sees it, and
// primes viper so bound flags fall back to their matching environment keys.
func initEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("[CMD] Could not load .env file: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// loadApp builds the dependency graph every serving command starts from.
func loadApp() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if viper.GetBool("app_debug") {
		cfg.App.Debug = true
	}
	initLogging(cfg)

	return BuildApp(cfg)
}

func initLogging(cfg *config.Config) {
	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if strings.EqualFold(cfg.App.LogFormat, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
