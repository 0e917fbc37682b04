package cmd

import (
	"os"
	"path/filepath"

	"github.com/agentuity/go-common/env"
	"github.com/agentuity/go-common/tui"
	"github.com/freshext/freshext/internal/catalog"
	"github.com/freshext/freshext/internal/errsystem"
	"github.com/freshext/freshext/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the extension catalog from the registry",
	Long: `Refresh the extension catalog from the registry.

Downloads the latest extensions.json from the FreshRSS extension registry
into the current directory. The downloaded catalog is validated before the
existing one is replaced.

Examples:
  freshext update`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger := env.NewLogger(cmd)
		root := resolveExtensionsDir(logger)
		url := viper.GetString("overrides.catalog_url")
		tmp := filepath.Join(root, catalog.File+".tmp")

		var err error
		action := func() {
			err = util.DownloadFile(url, tmp)
		}
		tui.ShowSpinner("fetching catalog ...", action)
		if err != nil {
			os.Remove(tmp)
			errsystem.New(errsystem.ErrCatalogFetch, err,
				errsystem.WithUserMessage("Failed to download the extension catalog from %s.", url)).ShowErrorAndExit()
		}

		// validate before replacing the previous catalog
		data, err := os.ReadFile(tmp)
		if err == nil {
			_, err = catalog.Parse(data, root)
		}
		if err != nil {
			os.Remove(tmp)
			errsystem.New(errsystem.ErrCatalogFetch, err,
				errsystem.WithUserMessage("The registry returned a catalog this tool cannot use.")).ShowErrorAndExit()
		}

		if err := os.Rename(tmp, filepath.Join(root, catalog.File)); err != nil {
			os.Remove(tmp)
			errsystem.New(errsystem.ErrCatalogFetch, err).ShowErrorAndExit()
		}
		tui.ShowSuccess("%s updated", catalog.File)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
