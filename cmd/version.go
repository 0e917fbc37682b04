package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Masterminds/semver"
	"github.com/agentuity/go-common/tui"
	"github.com/freshext/freshext/internal/errsystem"
	"github.com/freshext/freshext/internal/util"
	"github.com/spf13/cobra"
)

var (
	Version string
	Commit  string
	Date    string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of freshext",
	Long: `Print the version of freshext.

Flags:
  --long    Print the long version including commit hash and build date

Examples:
  freshext version
  freshext version --long`,
	Run: func(cmd *cobra.Command, args []string) {
		long, _ := cmd.Flags().GetBool("long")
		if long {
			fmt.Println("Version: " + Version)
			fmt.Println("Commit: " + Commit)
			fmt.Println("Date: " + Date)
		} else {
			fmt.Println(Version)
		}
	},
}

var versionCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check for a newer release of freshext",
	Long: `Check for a newer release of freshext.

Examples:
  freshext version check`,
	Run: func(cmd *cobra.Command, args []string) {
		if Version == "dev" {
			tui.ShowWarning("You are using the development version of freshext.")
			return
		}
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		release, err := util.GetLatestRelease(ctx)
		if err != nil {
			errsystem.New(errsystem.ErrVersionCheck, err).ShowErrorAndExit()
		}
		latestVersion := semver.MustParse(release)
		currentVersion := semver.MustParse(Version)
		if latestVersion.GreaterThan(currentVersion) {
			tui.ShowWarning("A new version (%s) of freshext is available.", release)
		} else {
			tui.ShowSuccess("You are using the latest version (%s) of freshext.", release)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.AddCommand(versionCheckCmd)
	versionCmd.Flags().Bool("long", false, "Print the long version")
}
