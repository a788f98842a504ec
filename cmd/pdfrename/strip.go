package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfrename/internal/rename"
)

var stripCmd = &cobra.Command{
	Use:   "strip KEYWORD",
	Short: "Remove a keyword from file names under a directory",
	Long: `Strip removes every occurrence of KEYWORD from the names of files under
--input, recursively. Files never move to another directory and existing
names are never overwritten.`,
	Example: `  pdfrename strip --input ~/papers " (1)"
  pdfrename strip --input ~/papers --dry-run _draft`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")

		engine := rename.New(cfg.Rename, logger)
		results, err := engine.StripKeyword(cmd.Context(), input, args[0])
		printResults(os.Stdout, results)
		return err
	},
}

func init() {
	stripCmd.Flags().String("input", "", "directory to walk")
	stripCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(stripCmd)
}
