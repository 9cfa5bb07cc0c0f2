package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/crystacean/lattice/cull"
	"github.com/crystacean/lattice/decode"
)

var (
	cullDir    string
	cullCellX  float64
	cullCellY  float64
	cullMargin float64
	cullDelete bool
)

var cullCmd = &cobra.Command{
	Use:   "cull",
	Short: "Remove exact periodic duplicates from a directory of solution JSON files",
	RunE:  runCull,
}

func init() {
	cullCmd.Flags().StringVar(&cullDir, "dir", ".", "directory of solution_*.json files to cull")
	cullCmd.Flags().Float64Var(&cullCellX, "cell-x", 0, "periodic cell x dimension")
	cullCmd.Flags().Float64Var(&cullCellY, "cell-y", 0, "periodic cell y dimension")
	cullCmd.Flags().Float64Var(&cullMargin, "margin", 0.0001, "distance margin below which two solutions are duplicates")
	cullCmd.Flags().BoolVar(&cullDelete, "delete", false, "delete duplicate files instead of only reporting them")
}

func runCull(cmd *cobra.Command, args []string) error {
	matches, err := filepath.Glob(filepath.Join(cullDir, "solution_*.json"))
	if err != nil {
		return fmt.Errorf("latticegen cull: %w", err)
	}
	if len(matches) == 0 {
		log.Warn().Str("dir", cullDir).Msg("no solution files found")
		return nil
	}

	envs := make([]decode.Envelope, 0, len(matches))
	for _, path := range matches {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("latticegen cull: %w", err)
		}
		var env decode.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("latticegen cull: %s: %w", path, err)
		}
		envs = append(envs, env)
	}

	kept, err := cull.DedupeIndices(envs, cullCellX, cullCellY, cullMargin)
	if err != nil {
		return fmt.Errorf("latticegen cull: %w", err)
	}

	keptSet := make(map[int]bool, len(kept))
	for _, i := range kept {
		keptSet[i] = true
	}
	for i, path := range matches {
		if keptSet[i] {
			continue
		}
		if cullDelete {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("latticegen cull: %w", err)
			}
			log.Info().Str("file", path).Msg("duplicate deleted")
		} else {
			log.Info().Str("file", path).Msg("duplicate (re-run with --delete to remove)")
		}
	}
	log.Info().Int("input", len(envs)).Int("kept", len(kept)).
		Int("duplicates", len(envs)-len(kept)).Msg("culling complete")
	return nil
}
