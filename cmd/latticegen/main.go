// Command latticegen is the thin CLI demonstration consumer of the
// lattice/site/bitlattice/filter/solver/decode/cull packages, the
// out-of-core surface spec.md §1(c) describes ("the command-line surface
// and plotting") — here minus plotting (spec.md Non-goal: no 3D geometry).
//
// It exposes two subcommands, generate (which builds, solves, and exports)
// and cull, on top of github.com/spf13/cobra, with github.com/spf13/viper
// binding the same flags to an optional config file, and
// github.com/rs/zerolog for structured progress/statistics logging.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
