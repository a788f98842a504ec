package main

import (
	"log/slog"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfrename/internal/logging"
	"github.com/pdiddy/pdfrename/pkg/types"
)

// bindFlags binds each viper key to the named flag in fs.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// loadConfig reads the merged flag, environment and file settings.
func loadConfig() types.Config {
	c := types.Config{
		Inference: types.InferenceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("inference.timeout"),
				UserAgent: "pdfrename/" + version,
			},
			Endpoint:     viper.GetString("inference.endpoint"),
			Model:        viper.GetString("inference.model"),
			APIKey:       viper.GetString("inference.api_key"),
			MaxRetries:   viper.GetInt("inference.max_retries"),
			MaxTextChars: viper.GetInt("inference.max_text_chars"),
		},
		Rename: types.RenameConfig{
			OutputDir: viper.GetString("rename.output_dir"),
			InPlace:   viper.GetBool("rename.in_place"),
			Backup:    viper.GetBool("rename.backup"),
			DryRun:    viper.GetBool("rename.dry_run"),
		},
		Batch: types.BatchConfig{
			Auto:      viper.GetBool("batch.auto"),
			ForceLLM:  viper.GetBool("batch.force_llm"),
			Workers:   viper.GetInt("batch.workers"),
			Recursive: viper.GetBool("batch.recursive"),
			Quiet:     viper.GetBool("log.silent"),
		},
		Log: types.LogConfig{
			File:   viper.GetString("log.file"),
			Level:  logging.ParseLevel(viper.GetString("log.level")),
			Silent: viper.GetBool("log.silent"),
		},
	}
	if viper.GetBool("log.verbose") {
		c.Log.Level = slog.LevelDebug
	}
	return c
}
