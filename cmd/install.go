package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentuity/go-common/env"
	"github.com/agentuity/go-common/logger"
	"github.com/agentuity/go-common/tui"
	"github.com/freshext/freshext/internal/catalog"
	"github.com/freshext/freshext/internal/errsystem"
	"github.com/freshext/freshext/internal/installer"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [package|all]",
	Short: "Install an extension from the catalog",
	Long: `Install an extension from the catalog.

Fetches the extension source with git, checks out the published version and
copies it into the current directory. Use all to install every extension not
yet installed.

Examples:
  freshext install xExtension-YouTube
  freshext install all`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		logger := env.NewLogger(cmd)
		root := resolveExtensionsDir(logger)
		cat := loadCatalog(root)
		inst := newInstaller(logger, root)

		if args[0] == "all" {
			// a failure on one package aborts the rest of the batch
			for _, entry := range cat.Entries {
				if entry.Installed {
					continue
				}
				runInstall(ctx, logger, inst, entry, installer.Options{})
			}
			tui.ShowSuccess("All extensions installed")
			return
		}

		entry, err := cat.Find(args[0])
		if err != nil {
			errsystem.New(errsystem.ErrExtensionNotFound, err,
				errsystem.WithUserMessage("No extension named %q in the catalog. Check freshext list for the available packages.", args[0])).ShowErrorAndExit()
		}
		runInstall(ctx, logger, inst, entry, installer.Options{})
	},
}

// runInstall performs one install and renders the outcome, exiting the
// process on failure.
func runInstall(ctx context.Context, logger logger.Logger, inst *installer.Installer, entry *catalog.Entry, opts installer.Options) {
	logger.Info("installing %s %s", entry.Name, entry.Version)
	md, err := inst.Install(ctx, entry, opts)
	if err != nil {
		errsystem.New(*installErrorCode(err), err,
			errsystem.WithAttributes(map[string]any{"package": entry.PackageID})).ShowErrorAndExit()
	}
	tui.ShowSuccess("Installed %s %s", md.Name, md.Version)
}

func init() {
	rootCmd.AddCommand(installCmd)
}
