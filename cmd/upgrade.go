package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentuity/go-common/env"
	"github.com/agentuity/go-common/tui"
	"github.com/freshext/freshext/internal/catalog"
	"github.com/freshext/freshext/internal/errsystem"
	"github.com/freshext/freshext/internal/installer"
	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [package]",
	Short: "Upgrade installed extensions",
	Long: `Upgrade installed extensions.

With no argument, upgrades every installed extension whose installed version
differs from the catalog version. With a package argument, reinstalls that
extension at the catalog version even if it looks current.

Examples:
  freshext upgrade
  freshext upgrade xExtension-YouTube`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		logger := env.NewLogger(cmd)
		root := resolveExtensionsDir(logger)
		cat := loadCatalog(root)
		inst := newInstaller(logger, root)

		if len(args) == 0 {
			var upgraded int
			for _, entry := range cat.Entries {
				if !entry.Installed || entry.InstalledVersion == entry.Version {
					continue
				}
				logger.Info("upgrading %s, %s -> %s", entry.PackageID, entry.InstalledVersion, entry.Version)
				runInstall(ctx, logger, inst, entry, installer.Options{AllowExisting: true})
				upgraded++
			}
			if upgraded == 0 {
				tui.ShowSuccess("Everything is up to date")
			}
			return
		}

		pkg := args[0]
		if !catalog.IsInstalled(root, pkg) {
			errsystem.New(errsystem.ErrExtensionNotFound, fmt.Errorf("%s is not installed", pkg),
				errsystem.WithUserMessage("%s is not installed. Use %s to install it.", pkg, "freshext install "+pkg)).ShowErrorAndExit()
		}
		entry, err := cat.Find(pkg)
		if err != nil {
			errsystem.New(errsystem.ErrExtensionNotFound, err).ShowErrorAndExit()
		}
		runInstall(ctx, logger, inst, entry, installer.Options{AllowExisting: true})
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}
