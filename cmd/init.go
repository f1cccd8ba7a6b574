package cmd

import (
	"github.com/spf13/cobra"

	"github.com/votuchankinh/thuvien/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize thuvien configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that asks for the chat backend address, language and search defaults, and writes a .thuvien.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
