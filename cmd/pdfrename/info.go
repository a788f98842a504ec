package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfrename/internal/extract"
	"github.com/pdiddy/pdfrename/internal/title"
	"github.com/pdiddy/pdfrename/pkg/types"
)

const previewRunes = 400

// infoReport is the YAML document printed by the info command.
type infoReport struct {
	types.Document `yaml:",inline"`

	// TitleUsable reports whether rename would trust the metadata title.
	TitleUsable bool `yaml:"metadata_title_usable"`

	// ProposedName is the file name rename would use for the metadata title.
	ProposedName string `yaml:"proposed_name,omitempty"`
}

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Show a PDF's metadata and first-page text",
	Long: `Info prints the document information dictionary and a preview of the
first-page text as YAML, along with whether the metadata title would be used
by rename. No inference call is made and nothing is modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ex := extract.NewPDFExtractor()

		text, err := ex.Text(path)
		if err != nil {
			return err
		}
		meta, err := ex.Metadata(path)
		if err != nil {
			logger.Warn("reading metadata failed", "file", path, "error", err)
		}

		report := infoReport{
			Document: types.Document{
				Path:     path,
				Text:     preview(text, previewRunes),
				Metadata: meta,
			},
			TitleUsable: title.IsValid(meta[types.MetaTitle]),
		}
		if report.TitleUsable {
			report.ProposedName = title.Sanitize(meta[types.MetaTitle]) + ".pdf"
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
