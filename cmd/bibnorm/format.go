package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibnorm/internal/catalog"
	"github.com/pdiddy/bibnorm/internal/format"
	"github.com/pdiddy/bibnorm/internal/postag"
	"github.com/pdiddy/bibnorm/pkg/types"
)

var formatCmd = &cobra.Command{
	Use:   "format [file.bib]",
	Short: "Rewrite a BibTeX file with derived keys and title dedup",
	Long: `Format parses a BibTeX file, assigns each entry a derived citation key
(surname + year, extended by a title abbreviation when keys collide), drops
entries whose title duplicates an earlier entry, and writes the result to
<file>.reformatted. Non-entry blocks (comments, @string, @preamble) pass
through unchanged.

If the input file already contains duplicate citation keys, format reports
every offender with its line number and exits without writing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

func runFormat(cmd *cobra.Command, args []string) error {
	opts := format.Options{
		InputPath:    args[0],
		OutputSuffix: formatSetting(cmd, "suffix", "format.output_suffix", ".reformatted"),
		Tagger:       postag.New(types.TaggerKind(formatSetting(cmd, "tagger", "format.tagger", string(types.TaggerProse)))),
	}
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")

	res, err := format.Run(opts, os.Stderr)
	if err != nil {
		var dup *format.DuplicateKeyError
		if errors.As(err, &dup) {
			fmt.Fprintln(os.Stderr, "Error: duplicate citation keys found in input file:")
			for _, d := range dup.Duplicates {
				fmt.Fprintf(os.Stderr, "  - key %q is duplicated at line %d\n", d.Key, d.Line+1)
			}
			fmt.Fprintln(os.Stderr, "Make all entry keys unique before formatting.")
		}
		return err
	}

	if reportFile, _ := cmd.Flags().GetString("report-file"); reportFile != "" {
		if err := format.WriteConflictReport(opts.InputPath, res.Conflicts, reportFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Conflict report written to %s\n", reportFile)
	}

	if opts.DryRun {
		fmt.Printf("Dry run: would keep %d unique entries (%d duplicates dropped)\n", res.Kept, res.Dropped)
		return nil
	}

	if useCatalog := catalogEnabled(cmd); useCatalog {
		if err := ingestCatalog(cmd, opts.InputPath, res.Entries); err != nil {
			// Catalog failure does not invalidate the written output.
			fmt.Fprintf(os.Stderr, "warning: catalog ingest failed: %v\n", err)
		}
	}

	fmt.Printf("Output written to %s\n", res.OutputPath)
	fmt.Printf("Kept %d unique entries (%d duplicates dropped)\n", res.Kept, res.Dropped)
	return nil
}

// formatSetting resolves a string setting: an explicit flag wins, then the
// viper config key, then the default baked into the flag.
func formatSetting(cmd *cobra.Command, flag, key, fallback string) string {
	v, _ := cmd.Flags().GetString(flag)
	if !cmd.Flags().Changed(flag) {
		if cfg := viper.GetString(key); cfg != "" {
			return cfg
		}
	}
	if v == "" {
		return fallback
	}
	return v
}

func catalogEnabled(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("catalog") {
		v, _ := cmd.Flags().GetBool("catalog")
		return v
	}
	return viper.GetBool("catalog.enabled")
}

func ingestCatalog(cmd *cobra.Command, sourceFile string, entries []types.CatalogEntry) error {
	path := formatSetting(cmd, "catalog-path", "catalog.path", catalog.DefaultPath)
	store, err := catalog.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Ingest(context.Background(), sourceFile, entries)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Cataloged %d entries in %s\n", n, path)
	return nil
}

func init() {
	formatCmd.Flags().String("suffix", ".reformatted", "suffix appended to the input path for the output file")
	formatCmd.Flags().String("tagger", string(types.TaggerProse), "POS tagger for abbreviation refinement: prose or off")
	formatCmd.Flags().Bool("dry-run", false, "derive keys and report conflicts without writing the output file")
	formatCmd.Flags().String("report-file", "", "write residual key conflicts to this file as YAML")
	formatCmd.Flags().Bool("catalog", false, "record kept entries in the catalog database")
	formatCmd.Flags().String("catalog-path", catalog.DefaultPath, "catalog database file")

	rootCmd.AddCommand(formatCmd)
}
