package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfrename/internal/batch"
	"github.com/pdiddy/pdfrename/internal/extract"
	"github.com/pdiddy/pdfrename/internal/inference"
	"github.com/pdiddy/pdfrename/internal/rename"
	"github.com/pdiddy/pdfrename/internal/resolve"
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename PDFs after their metadata or generated titles",
	Long: `Rename resolves a title for each PDF and renames the file after it.

The metadata title is used when it is usable. Otherwise, or with --force-llm,
the first page is sent to the inference server and the generated title is
used. Unreadable files are prefixed with broken_, zero-byte files are
deleted. A directory requires --auto or --dry-run; a single file prompts
for confirmation unless --auto is given.`,
	Example: `  pdfrename rename --input ~/papers --auto
  pdfrename rename --input scan.pdf
  pdfrename rename --input ~/papers --dry-run --recursive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")

		client := inference.New(cfg.Inference, logger)
		resolver := resolve.New(extract.NewPDFExtractor(), client, cfg.Batch.ForceLLM, logger)
		engine := rename.New(cfg.Rename, logger,
			rename.WithConfirmer(rename.NewPromptConfirmer(os.Stdin, os.Stdout)))
		runner := batch.New(resolver, engine, cfg.Batch, os.Stdout, logger)

		if _, err := runner.Run(cmd.Context(), input); err != nil {
			if errors.Is(err, batch.ErrSetup) {
				logger.Error("cannot start run", "input", input, "error", err)
			}
			return fmt.Errorf("rename: %w", err)
		}
		return nil
	},
}

func init() {
	f := renameCmd.Flags()
	f.String("input", "", "PDF file or directory to process")
	f.Bool("auto", false, "rename without asking for confirmation")
	f.Bool("force-llm", false, "ignore metadata titles and always ask the model")
	f.String("output-dir", "", "directory renamed files go to (default: next to the source)")
	f.Bool("backup", false, "copy each original into backup/ before renaming")
	f.Bool("in-place", false, "rename next to the source instead of into processed/")
	f.Bool("recursive", false, "descend into subdirectories")
	f.Int("workers", 0, "number of files processed concurrently (default: number of CPUs)")
	renameCmd.MarkFlagRequired("input")

	bindFlags(f, map[string]string{
		"batch.auto":        "auto",
		"batch.force_llm":   "force-llm",
		"batch.workers":     "workers",
		"batch.recursive":   "recursive",
		"rename.output_dir": "output-dir",
		"rename.backup":     "backup",
		"rename.in_place":   "in-place",
	})

	rootCmd.AddCommand(renameCmd)
}
