package cmd

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/agentuity/go-common/logger"
	"github.com/freshext/freshext/internal/catalog"
	"github.com/freshext/freshext/internal/errsystem"
	"github.com/freshext/freshext/internal/extension"
	"github.com/freshext/freshext/internal/installer"
	"github.com/freshext/freshext/internal/perms"
	"github.com/freshext/freshext/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// debugMarkerFile bypasses the working directory name check, so the tool can
// be exercised from a scratch directory during development.
const debugMarkerFile = "DEBUG"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "freshext",
	Short: "FreshRSS extension manager",
	Long: `Manage FreshRSS extensions from the community registry.

Run freshext from your FreshRSS extensions directory. Start with
freshext update to fetch the extension catalog, then freshext list
to see what is available.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/freshext/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "The log level to use")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		dir := filepath.Join(home, ".config", "freshext")
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0700); err != nil {
				log.Fatalf("failed to create config directory (%s): %s", dir, err)
			}
		}
		cfgFile = filepath.Join(dir, "config.yaml")
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.ReadInConfig()

	viper.SetDefault("overrides.catalog_url", catalog.DefaultURL)
	viper.SetDefault("overrides.cache_dir", "")
}

// resolveExtensionsDir returns the working directory after checking it really
// is a FreshRSS extensions directory (or carries the debug marker).
func resolveExtensionsDir(logger logger.Logger) string {
	cwd, err := os.Getwd()
	if err != nil {
		logger.Fatal("failed to get current directory: %s", err)
	}
	if filepath.Base(cwd) != "extensions" && !util.Exists(filepath.Join(cwd, debugMarkerFile)) {
		errsystem.New(errsystem.ErrWorkingDirectory, errors.New("current directory is not named extensions"),
			errsystem.WithUserMessage("Please run freshext from your FreshRSS extensions directory.")).ShowErrorAndExit()
	}
	return cwd
}

func resolveCacheDir(logger logger.Logger) string {
	if dir := viper.GetString("overrides.cache_dir"); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		logger.Fatal("failed to resolve the user cache directory: %s", err)
	}
	return filepath.Join(base, "freshext")
}

func loadCatalog(root string) *catalog.Catalog {
	cat, err := catalog.Load(root)
	if err != nil {
		var schemaErr *catalog.SchemaVersionError
		switch {
		case errors.As(err, &schemaErr):
			errsystem.New(errsystem.ErrCatalogSchema, err,
				errsystem.WithUserMessage("The local catalog uses schema version %s but this tool only understands %s. A newer freshext may be required.", schemaErr.Version, catalog.SupportedSchemaVersion)).ShowErrorAndExit()
		case errors.Is(err, os.ErrNotExist):
			errsystem.New(errsystem.ErrCatalogRead, err,
				errsystem.WithUserMessage("No %s found. Run %s first to fetch the extension catalog.", catalog.File, "freshext update")).ShowErrorAndExit()
		default:
			errsystem.New(errsystem.ErrCatalogRead, err).ShowErrorAndExit()
		}
	}
	return cat
}

func newInstaller(logger logger.Logger, root string) *installer.Installer {
	return installer.New(logger, root, resolveCacheDir(logger), installer.GitSourceControl{}, perms.New(logger))
}

// installErrorCode picks the error taxonomy code for a failed install.
func installErrorCode(err error) *errsystem.ErrorType {
	var (
		alreadyInstalled *installer.AlreadyInstalledError
		unsupported      *installer.UnsupportedMethodError
		noVersion        *installer.VersionResolutionError
		notFound         *catalog.NotFoundError
		validation       *extension.ValidationError
	)
	switch {
	case errors.As(err, &alreadyInstalled):
		return &errsystem.ErrAlreadyInstalled
	case errors.As(err, &unsupported):
		return &errsystem.ErrUnsupportedMethod
	case errors.As(err, &noVersion):
		return &errsystem.ErrVersionResolution
	case errors.As(err, &notFound):
		return &errsystem.ErrExtensionNotFound
	case errors.As(err, &validation):
		return &errsystem.ErrInvalidMetadata
	default:
		return &errsystem.ErrInstallExtension
	}
}
