package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/progress"
	"github.com/votuchankinh/thuvien/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate a static library website",
	Long:  `Generates a self-contained static HTML site of the library in one language, with navigation and client-side search.`,
	Args:  cobra.NoArgs,
	RunE:  runSite,
}

func init() {
	siteCmd.Flags().String("output", "", "output directory (defaults to {dataDir}/site)")
	siteCmd.Flags().String("lang", "", "site language, vi or en (default from config)")
	siteCmd.Flags().Bool("body", false, "include sutra text in the search index (default from config)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = filepath.Join(cfg.DataDir, "site")
	}
	lang := cfg.LanguageOrDefault()
	if s, _ := cmd.Flags().GetString("lang"); s != "" {
		if lang, err = catalog.ParseLanguage(s); err != nil {
			return err
		}
	}

	generator := site.NewGenerator(cat, outputDir, lang)
	generator.IncludeBody = cfg.Search.IncludeBody
	if cmd.Flags().Changed("body") {
		generator.IncludeBody, _ = cmd.Flags().GetBool("body")
	}
	generator.Progress = progress.NewReporter("Writing pages")

	pageCount, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)
	return nil
}
