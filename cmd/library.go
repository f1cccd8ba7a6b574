package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/vectordb"
)

var tocCmd = &cobra.Command{
	Use:   "toc",
	Short: "Print the table of contents",
	Long:  `Prints every group and entry of the library in reading order. Entries marked with * have text.`,
	Args:  cobra.NoArgs,
	RunE:  runToc,
}

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Print the text of one sutra",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search sutra titles and text",
	Long: `Searches entry titles, ignoring case and Vietnamese diacritics. With --body the
sutra text is searched too. With --semantic the query is matched by meaning
against the index built by ` + "`thuvien index`" + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	tocCmd.Flags().String("match", "", "only list entries whose id matches this glob, e.g. section-02-*")
	tocCmd.Flags().Bool("json", false, "output as JSON")

	readCmd.Flags().Bool("json", false, "output as JSON")

	searchCmd.Flags().Bool("body", false, "also search sutra text (default from config)")
	searchCmd.Flags().Int("limit", 0, "maximum number of results (default from config)")
	searchCmd.Flags().String("within", "", "only search entries whose id matches this glob")
	searchCmd.Flags().Bool("semantic", false, "search by meaning using the semantic index")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(tocCmd, readCmd, searchCmd)
}

func runToc(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	pattern, _ := cmd.Flags().GetString("match")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if pattern != "" {
		entries, err := cat.Match(pattern)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(entries)
		}
		for _, e := range entries {
			fmt.Printf("%s%s\t%s\n", bodyMarker(cat, e.ID), e.ID, e.Title)
		}
		return nil
	}

	if jsonOutput {
		return printJSON(cat.Toc())
	}
	for _, g := range cat.Toc() {
		fmt.Printf("%s\n", g.Title)
		for _, e := range g.Items {
			fmt.Printf("  %s%s\t%s\n", bodyMarker(cat, e.ID), e.ID, e.Title)
		}
	}
	return nil
}

func bodyMarker(cat *catalog.Catalog, id string) string {
	if _, ok := cat.Content(id); ok {
		return "* "
	}
	return "  "
}

func runRead(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	id := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	entry, group, ok := cat.Entry(id)
	if !ok {
		return fmt.Errorf("no entry with id %q\nRun `thuvien toc` to list ids", id)
	}
	sutra, ok := cat.Content(id)
	if !ok {
		lang, _ := catalog.ParseLanguage(languageSetting())
		return fmt.Errorf("%s: %s", entry.Title, catalog.Translations(lang).NoContent)
	}
	if jsonOutput {
		return printJSON(sutra)
	}

	fmt.Printf("%s\n%s\n", group.Title, sutra.Title)
	if sutra.Author != "" || sutra.Date != "" {
		fmt.Printf("%s\n", strings.TrimSpace(sutra.Author+"  "+sutra.Date))
	}
	fmt.Printf("\n%s\n", sutra.Content)
	return nil
}

// languageSetting returns the configured language without failing on a
// missing or broken config file.
func languageSetting() string {
	if cfg, err := loadConfig(); err == nil {
		return cfg.Language
	}
	return ""
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	cfg, _, err := setup()
	if err != nil {
		return err
	}
	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	opts := cfg.Search.Options()
	if cmd.Flags().Changed("body") {
		opts.IncludeBody, _ = cmd.Flags().GetBool("body")
	}
	if cmd.Flags().Changed("limit") {
		opts.Limit, _ = cmd.Flags().GetInt("limit")
	}
	opts.Within, _ = cmd.Flags().GetString("within")
	semantic, _ := cmd.Flags().GetBool("semantic")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if semantic {
		store, err := openSemanticStore(ctx, cfg)
		if err != nil {
			return err
		}
		hits, err := vectordb.SearchSutras(ctx, store, query, opts.Limit)
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}
		if jsonOutput {
			return printJSON(hits)
		}
		fmt.Print(vectordb.FormatHits(hits))
		return nil
	}

	matches, err := cat.Search(query, opts)
	if err != nil {
		return err
	}
	if jsonOutput {
		if matches == nil {
			matches = []catalog.Match{}
		}
		return printJSON(matches)
	}
	if len(matches) == 0 {
		lang, _ := catalog.ParseLanguage(cfg.Language)
		fmt.Println(catalog.Translations(lang).NoResults)
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%s\t%s\t(%s)\n", m.Entry.ID, m.Entry.Title, m.GroupTitle)
		if m.Field == catalog.FieldContent {
			fmt.Printf("\t%s\n", m.Snippet)
		}
	}
	return nil
}
