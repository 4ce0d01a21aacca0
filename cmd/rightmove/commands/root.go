// Package commands implements the CLI commands for the rightmove scraper.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "rightmove",
	Short: "Scrape property search results from rightmove.co.uk",
	Long: `Collect structured listing data from a rightmove search.

Point it at the URL of a search you performed on www.rightmove.co.uk and it
walks every results page (up to the site's 42-page cap), extracts the
embedded listing data, and writes it out as JSON.

Examples:
  # Scrape a search into results.json
  rightmove scrape -u "https://www.rightmove.co.uk/property-for-sale/find.html?locationIdentifier=REGION%5E475"

  # Also fetch every listing's detail page, 12 at a time
  rightmove scrape -u "<search url>" --details --details-output details.json

  # Slow down pagination and use a headless browser
  rightmove scrape -u "<search url>" --delay 500ms --fetch-mode dynamic`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.rightmove.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".rightmove")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("RIGHTMOVE")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
