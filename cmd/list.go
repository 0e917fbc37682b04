package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/agentuity/go-common/env"
	"github.com/agentuity/go-common/tui"
	"github.com/freshext/freshext/internal/catalog"
	"github.com/freshext/freshext/internal/errsystem"
	"github.com/freshext/freshext/internal/extension"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List extensions and their installation state",
	Long: `List extensions and their installation state.

Shows every extension known to the catalog, whether it comes from the
official registry or a community repository, which ones are installed and
which installed extensions have a newer version available.

Examples:
  freshext list
  freshext list -v
  freshext list --format json`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger := env.NewLogger(cmd)
		root := resolveExtensionsDir(logger)
		cat := loadCatalog(root)
		installed, err := extension.Scan(logger, root)
		if err != nil {
			errsystem.New(errsystem.ErrScanExtensions, err).ShowErrorAndExit()
		}
		report := catalog.Reconcile(cat.Entries, installed)

		format, _ := cmd.Flags().GetString("format")
		if format == "json" {
			json.NewEncoder(os.Stdout).Encode(cat.Entries)
			return
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			for _, entry := range cat.Entries {
				showEntry(entry)
				fmt.Println()
			}
		} else {
			headers := []string{tui.Title("Package"), tui.Title("Version"), tui.Title("Source"), tui.Title("Installed")}
			rows := [][]string{}
			for _, entry := range cat.Entries {
				source := "community"
				if entry.Official() {
					source = "official"
				}
				installedCol := ""
				if entry.Installed {
					installedCol = entry.InstalledVersion
				}
				rows = append(rows, []string{
					tui.Bold(entry.PackageID),
					tui.Text(entry.Version),
					tui.Muted(source),
					tui.Text(installedCol),
				})
			}
			tui.Table(headers, rows)
		}

		fmt.Println()
		fmt.Printf("%d updates available:\n", len(report.Upgradable))
		for _, entry := range report.Upgradable {
			fmt.Printf("\t%s %s -> %s\n", tui.Bold(entry.PackageID), tui.Muted(entry.InstalledVersion), tui.Text(entry.Version))
		}
		fmt.Printf("%d installed extensions.\n", len(installed))
		fmt.Printf("%d local only extensions:\n", len(report.LocalOnly))
		for _, md := range report.LocalOnly {
			fmt.Printf("\t%s\n", md.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolP("verbose", "v", false, "Print the full catalog record for each extension")
	listCmd.Flags().String("format", "", "Output format, one of: json")
}
