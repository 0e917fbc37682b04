package cmd

import (
	"fmt"

	"github.com/agentuity/go-common/env"
	"github.com/agentuity/go-common/tui"
	"github.com/freshext/freshext/internal/catalog"
	"github.com/freshext/freshext/internal/errsystem"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [package]",
	Short: "Show the catalog record for one extension",
	Long: `Show the catalog record for one extension.

Examples:
  freshext show xExtension-YouTube`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := env.NewLogger(cmd)
		root := resolveExtensionsDir(logger)
		cat := loadCatalog(root)
		entry, err := cat.Find(args[0])
		if err != nil {
			errsystem.New(errsystem.ErrExtensionNotFound, err,
				errsystem.WithUserMessage("No extension named %q in the catalog. Check freshext list for the available packages.", args[0])).ShowErrorAndExit()
		}
		showEntry(entry)
	},
}

func showEntry(entry *catalog.Entry) {
	source := "community"
	if entry.Official() {
		source = "official"
	}
	fmt.Println(tui.Bold(entry.PackageID))
	fmt.Println(tui.Muted(tui.PadRight("Name:", 12, " ")) + tui.Text(entry.Name))
	fmt.Println(tui.Muted(tui.PadRight("Version:", 12, " ")) + tui.Text(entry.Version))
	fmt.Println(tui.Muted(tui.PadRight("Author:", 12, " ")) + tui.Text(entry.Author))
	fmt.Println(tui.Muted(tui.PadRight("Type:", 12, " ")) + tui.Text(entry.Type))
	fmt.Println(tui.Muted(tui.PadRight("Entrypoint:", 12, " ")) + tui.Text(entry.Entrypoint))
	fmt.Println(tui.Muted(tui.PadRight("Source:", 12, " ")) + tui.Text(entry.URL) + " " + tui.Muted("("+source+")"))
	if entry.Directory != "" {
		fmt.Println(tui.Muted(tui.PadRight("Directory:", 12, " ")) + tui.Text(entry.Directory))
	}
	if entry.Installed {
		fmt.Println(tui.Muted(tui.PadRight("Installed:", 12, " ")) + tui.Text(entry.InstalledVersion))
	}
	if entry.Description != "" {
		fmt.Println(tui.Text(tui.MaxWidth(entry.Description, 78)))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
