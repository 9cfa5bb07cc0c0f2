package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crystacean/lattice/bitlattice"
	"github.com/crystacean/lattice/builder"
	"github.com/crystacean/lattice/decode"
	"github.com/crystacean/lattice/filter"
	"github.com/crystacean/lattice/lattice"
	"github.com/crystacean/lattice/neighbor"
	"github.com/crystacean/lattice/site"
	"github.com/crystacean/lattice/solver"
)

var (
	genSize       int
	genSpacing    float64
	genOutDir     string
	genFirstLayer bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a periodic triangular cell, solve it, and export solutions as JSON",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&genSize, "size", 1, "cell size (size x size parallelogram of unit triangles)")
	generateCmd.Flags().Float64Var(&genSpacing, "spacing", 0, "override the default Si-Si spacing (0 keeps the builder default)")
	generateCmd.Flags().StringVar(&genOutDir, "out", ".", "directory to write per-solution JSON files into")
	generateCmd.Flags().BoolVar(&genFirstLayer, "first-layer", false, "first-layer run: disable the no-rings filter regardless of --use_rings_filter")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cellMargin := viper.GetFloat64(keyCreationDistanceMargin)
	maxSinglets := viper.GetInt(keyMaxSinglets)
	diffDistance := viper.GetFloat64(keyDifferenceDistance)
	useSimilarity := viper.GetBool(keyUseSimilarityFilter)
	useRings := viper.GetBool(keyUseRingsFilter) && !genFirstLayer
	findAll := viper.GetBool(keyFindAll)

	var cellOpts []builder.CellOption
	if genSpacing > 0 {
		cellOpts = append(cellOpts, builder.WithSpacing(genSpacing))
	}
	raw, basis, err := builder.TriangularCell(genSize, cellOpts...)
	if err != nil {
		return fmt.Errorf("latticegen generate: %w", err)
	}

	set, err := lattice.Build(raw)
	if err != nil {
		return fmt.Errorf("latticegen generate: %w", err)
	}
	log.Info().Int("size", genSize).Int("canonical_points", set.NumCanonical()).Msg("built triangular cell")

	pts := make([]neighbor.Point, len(set.Points()))
	for i, p := range set.Points() {
		pts[i] = neighbor.Point{X: p.X, Y: p.Y}
	}
	nn, err := neighbor.NearestNeighborDistance(pts)
	if err != nil {
		return fmt.Errorf("latticegen generate: %w", err)
	}
	cutoffMultiplier := cellMargin / nn
	rel, err := neighbor.BuildRadius(pts, cutoffMultiplier)
	if err != nil {
		return fmt.Errorf("latticegen generate: %w", err)
	}
	log.Info().Float64("cutoff_distance", rel.CutoffDistance).Msg("resolved neighbor relation")

	singles, mids, tris, err := site.Generate(set, rel)
	if err != nil {
		return fmt.Errorf("latticegen generate: %w", err)
	}
	log.Info().Int("singles", len(singles)).Int("mids", len(mids)).Int("tris", len(tris)).
		Msg("generated candidate sites")

	if useSimilarity {
		mids, err = filter.DeduplicateSimilar(mids, diffDistance)
		if err != nil {
			return fmt.Errorf("latticegen generate: %w", err)
		}
		tris, err = filter.DeduplicateSimilar(tris, diffDistance)
		if err != nil {
			return fmt.Errorf("latticegen generate: %w", err)
		}
		log.Info().Int("mids_kept", len(mids)).Int("tris_kept", len(tris)).
			Msg("similarity filter applied")
	}

	bl, err := bitlattice.Build(singles, mids, tris, set.NumCanonical(), bitlattice.WithMaxSinglets(maxSinglets))
	if err != nil {
		return fmt.Errorf("latticegen generate: %w", err)
	}

	var forbidden []bitlattice.Mask
	if useRings {
		forbidden, err = filter.ForbiddenRingMasks(set, rel, bl)
		if err != nil {
			return fmt.Errorf("latticegen generate: %w", err)
		}
		log.Info().Int("forbidden_cliques", len(forbidden)).Msg("no-rings filter applied")
	}

	res, err := solver.Solve(bl, solver.Options{FindAll: findAll, ForbiddenMasks: forbidden})
	if err != nil {
		return fmt.Errorf("latticegen generate: %w", err)
	}
	log.Info().Int("solutions", len(res.Solutions)).Bool("cancelled", res.Cancelled).
		Msg("solver finished")

	if err := os.MkdirAll(genOutDir, 0o755); err != nil {
		return fmt.Errorf("latticegen generate: %w", err)
	}
	for i, sol := range res.Solutions {
		d, err := decode.Solution(bl, sol)
		if err != nil {
			return fmt.Errorf("latticegen generate: %w", err)
		}
		env := decode.ToEnvelope(set, d)
		raw, err := decode.MarshalJSON(env)
		if err != nil {
			return fmt.Errorf("latticegen generate: %w", err)
		}
		path := filepath.Join(genOutDir, fmt.Sprintf("solution_%04d.json", i))
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return fmt.Errorf("latticegen generate: %w", err)
		}

		if i == 0 {
			chem := decode.ToChemistry(set, d, basis)
			if err := writeChemistryTuple(genOutDir, chem); err != nil {
				return fmt.Errorf("latticegen generate: %w", err)
			}
		}
	}
	log.Info().Str("dir", genOutDir).Int("files_written", len(res.Solutions)).Msg("export complete")
	return nil
}

// chemistryTupleJSON is a plain serialization of decode.Chemistry so the
// --out directory carries a ready-to-inspect sample of the chemistry-facing
// tuple (spec.md §6) alongside the JSON solution envelopes, without
// committing the core decode package itself to any one file layout.
type chemistryTupleJSON struct {
	BasisVectors  [3][3]float64 `json:"basis_vectors"`
	Positions     [][3]float64  `json:"positions"`
	AtomicNumbers []uint8       `json:"atomic_numbers"`
}

func writeChemistryTuple(dir string, chem decode.Chemistry) error {
	raw, err := json.MarshalIndent(chemistryTupleJSON{
		BasisVectors:  chem.BasisVectors,
		Positions:     chem.Positions,
		AtomicNumbers: chem.AtomicNumbers,
	}, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "chemistry.json"), raw, 0o644)
}
