package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config keys, bound identically as cobra flags and viper config-file
// entries (spec.md §6's configuration parameters).
const (
	keyCreationDistanceMargin = "creation_distance_margin"
	keyMaxSinglets            = "max_singlets"
	keyDifferenceDistance     = "difference_distance"
	keyUseSimilarityFilter    = "use_similarity_filter"
	keyUseRingsFilter         = "use_rings_filter"
	keyFindAll                = "find_all"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "latticegen",
	Short: "Enumerate oxygen-site configurations on a periodic triangular lattice",
	Long: `latticegen drives the lattice/site/bitlattice/filter/solver/decode/cull
pipeline end to end: it builds a periodic triangular-lattice cell, derives
candidate oxygen sites, compiles the bitset solver input, applies the
no-rings and similarity filters, enumerates complete assignments, and
exports results as JSON.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	cobra.OnInitialize(func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: none)")
	rootCmd.PersistentFlags().Float64(keyCreationDistanceMargin, 3.5, "neighbor cutoff distance in Angstroms")
	rootCmd.PersistentFlags().Int(keyMaxSinglets, 2, "upper bound on Single sites in any solution")
	rootCmd.PersistentFlags().Float64(keyDifferenceDistance, 0.05, "similarity-filter distance tolerance")
	rootCmd.PersistentFlags().Bool(keyUseSimilarityFilter, false, "prune geometrically-equivalent candidate sites before solving")
	rootCmd.PersistentFlags().Bool(keyUseRingsFilter, true, "forbid closed 4/5/6 Mid/Tri rings (layers beyond the first)")
	rootCmd.PersistentFlags().Bool(keyFindAll, true, "enumerate every solution instead of stopping at the first")

	for _, key := range []string{
		keyCreationDistanceMargin, keyMaxSinglets, keyDifferenceDistance,
		keyUseSimilarityFilter, keyUseRingsFilter, keyFindAll,
	} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(cullCmd)
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
		log.Info().Str("file", viper.ConfigFileUsed()).Msg("loaded config file")
	}
	return nil
}
