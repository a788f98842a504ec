package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfrename/internal/inference"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the inference server is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := inference.New(cfg.Inference, logger)
		v, err := client.Version(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s: version %s, model %s\n", client.Endpoint(), v, client.Model())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
