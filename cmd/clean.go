package cmd

import (
	"os"

	"github.com/agentuity/go-common/env"
	"github.com/freshext/freshext/internal/errsystem"
	"github.com/freshext/freshext/internal/tui"
	"github.com/freshext/freshext/internal/util"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the scratch clone cache",
	Long: `Remove the scratch clone cache.

Every install keeps a git clone in a per-package cache directory so later
upgrades only need a fetch. This removes the whole cache; the next install
simply clones again.

Examples:
  freshext clean`,
	Aliases: []string{"clear"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger := env.NewLogger(cmd)
		resolveExtensionsDir(logger)
		cacheDir := resolveCacheDir(logger)
		if !util.Exists(cacheDir) {
			tui.ShowWarning("%s does not exist, nothing to clean", cacheDir)
			return
		}
		if !tui.Ask(logger, "Remove "+cacheDir+"?", true) {
			tui.ShowWarning("cancelled")
			return
		}
		if err := os.RemoveAll(cacheDir); err != nil {
			errsystem.New(errsystem.ErrCleanCache, err).ShowErrorAndExit()
		}
		tui.ShowSuccess("cache cleaned")
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
