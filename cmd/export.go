package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every leaf ring as a GeoJSON FeatureCollection",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "Output file, - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	tree, _, err := loadTree()
	if err != nil {
		return err
	}

	fc := tree.FeatureCollection()
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}
	data = append(data, '\n')

	if exportOutput == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	log.Info().Str("file", exportOutput).Int("features", len(fc.Features)).Msg("GeoJSON exported")
	return nil
}
