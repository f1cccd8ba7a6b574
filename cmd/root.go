package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/votuchankinh/thuvien/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "thuvien",
	Short: "Bilingual sutra library and chat client",
	Long: `Thư Viện is a bilingual (Vietnamese/English) library of sutras. It browses
and searches the embedded table of contents, serves the library as a web
page or a static site, exposes it to AI agents over MCP, and talks to the
remote chat backend that answers questions about the teachings.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
