package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibnorm/internal/catalog"
	"github.com/pdiddy/bibnorm/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query records kept by previous formatting runs",
	Long: `Catalog manages the SQLite database of records kept across formatting
runs. Use subcommands to list entries, search by title or author, or export
the full catalog as YAML.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged entries, most recent run first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := store.List(context.Background(), limit)
		if err != nil {
			return err
		}
		printEntries(os.Stdout, entries)
		return nil
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search cataloged entries by title, author, or key",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := store.Search(context.Background(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		printEntries(os.Stdout, entries)
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full catalog as YAML to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		return store.ExportYAML(context.Background(), os.Stdout)
	},
}

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if !cmd.Flags().Changed("db") {
		if cfg := viper.GetString("catalog.path"); cfg != "" {
			path = cfg
		}
	}
	return catalog.NewStore(path)
}

func printEntries(w io.Writer, entries []types.CatalogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	fmt.Fprintf(w, "%-24s  %-10s  %-50s  %-6s  %s\n", "Key", "Type", "Title", "Year", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 104))
	for _, e := range entries {
		title := e.Title
		if r := []rune(title); len(r) > 50 {
			title = string(r[:47]) + "..."
		}
		fmt.Fprintf(w, "%-24s  %-10s  %-50s  %-6s  %s\n", e.DerivedKey, e.EntryType, title, e.Year, e.SourceFile)
	}
	fmt.Fprintf(w, "\n%d entries\n", len(entries))
}

func init() {
	catalogCmd.PersistentFlags().String("db", catalog.DefaultPath, "catalog database file")
	catalogListCmd.Flags().Int("limit", 0, "maximum entries to list (0 = all)")
	catalogSearchCmd.Flags().Int("limit", 0, "maximum entries to return (0 = all)")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
