package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfrename/internal/batch"
	"github.com/pdiddy/pdfrename/internal/extract"
	"github.com/pdiddy/pdfrename/internal/rename"
)

var retitleCmd = &cobra.Command{
	Use:   "retitle",
	Short: "Title-case file names and write them into the PDF title field",
	Long: `Retitle re-cases each file name (dropping brackets and asterisks, keeping
short connectives like "of" and "and" lower-case), renames the file in place
and stores the new title in the document metadata. A directory is walked
recursively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")

		engine := rename.New(cfg.Rename, logger, rename.WithTitleWriter(extract.NewPDFExtractor()))
		results, err := engine.RetitleAll(cmd.Context(), input)
		printResults(os.Stdout, results)
		return err
	},
}

// printResults writes one line per result and a summary line.
func printResults(w io.Writer, results []rename.Result) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "%s %s: %v\n", r.Outcome, r.Source, r.Err)
		case r.Target != "" && r.Target != r.Source:
			fmt.Fprintf(w, "%s %s -> %s\n", r.Outcome, r.Source, r.Target)
		default:
			fmt.Fprintf(w, "%s %s\n", r.Outcome, r.Source)
		}
	}
	fmt.Fprintf(w, "\n%s\n", batch.Summarize(results))
}

func init() {
	retitleCmd.Flags().String("input", "", "PDF file or directory")
	retitleCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(retitleCmd)
}
