package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/banshee-data/skeletontrail/internal/config"
)

func newConfigCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective pipeline configuration as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			resolved, err := cfg.Resolved()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resolved)
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "pipeline configuration JSON file")
	return cmd
}

// loadConfig reads path, or returns the built-in defaults when path is empty.
func loadConfig(path string) (*config.PipelineConfig, error) {
	if path == "" {
		return config.EmptyPipelineConfig(), nil
	}
	return config.LoadPipelineConfig(path)
}
