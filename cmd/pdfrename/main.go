// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfrename CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfrename/internal/logging"
	"github.com/pdiddy/pdfrename/internal/secrets"
	"github.com/pdiddy/pdfrename/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is resolved from flags, environment and config file before any
	// subcommand runs.
	cfg types.Config

	// logger is the logging context handed to every component.
	logger *slog.Logger

	closeLog = func() error { return nil }

	// loadedSecrets holds keys loaded from .secrets/ at startup.
	loadedSecrets map[string]string
)

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

// rootCmd is the base command for the pdfrename CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfrename",
	Short: "Rename PDFs after their titles",
	Long: `pdfrename renames PDF documents after their titles. The title comes from
the document's embedded metadata when it is usable, otherwise from a locally
hosted language model (Ollama protocol) that reads the first page.

Renamed files go to a processed/ directory next to the originals unless
--in-place is given. Existing files are never overwritten.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = loadConfig()

		l, closer, err := logging.Setup(cfg.Log)
		if err != nil {
			return err
		}
		logger, closeLog = l, closer

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		cfg.Inference.APIKey = secretDefault(secrets.InferenceAPIKey, cfg.Inference.APIKey)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdfrename.yaml or ~/.config/pdfrename/pdfrename.yaml)")
	pf.String("endpoint", types.DefaultEndpoint, "inference server base URL")
	pf.String("model", types.DefaultModel, "model used for title generation")
	pf.Duration("timeout", types.DefaultTimeout, "bound on one inference call, retries included")
	pf.Bool("dry-run", false, "show what would change without touching any file")
	pf.Bool("silent", false, "only print warnings and errors to the console")
	pf.Bool("verbose", false, "print debug output")
	pf.String("log-file", types.DefaultLogFile, "append error-level log lines to this file")

	bindFlags(pf, map[string]string{
		"inference.endpoint": "endpoint",
		"inference.model":    "model",
		"inference.timeout":  "timeout",
		"rename.dry_run":     "dry-run",
		"log.silent":         "silent",
		"log.verbose":        "verbose",
		"log.file":           "log-file",
	})

	viper.SetDefault("inference.max_retries", 3)
	viper.SetDefault("inference.max_text_chars", types.DefaultMaxTextChars)
	viper.SetDefault("log.level", "info")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfrename")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfrename"))
		}
	}

	viper.SetEnvPrefix("PDFRENAME")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A second interrupt falls through to the default handler and kills
	// the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
