package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"confreplace/internal/config"
	"confreplace/internal/credentials"
	"confreplace/internal/replacer"
	"confreplace/pkg/logger"
	"confreplace/pkg/version"
)

var (
	settingsFile    string
	baseURL         string
	credentialsFile string
	keyFile         string
	plaintext       bool
	verbose         bool
)

// rootCmd performs the replacement; there are no subcommands.
var rootCmd = &cobra.Command{
	Use:   "confreplace",
	Short: "Replace text in a Confluence page",
	Long: `confreplace fetches one Confluence page, replaces every occurrence of a
search string in its storage-format body, and saves the result as the next
page version.

The page ID, search string and replacement come from a settings file:

  {"page_id": "123456", "before": "FooCo", "after": "BarCo",
   "base_url": "https://example.atlassian.net/wiki"}

You are prompted for your username and password. Credentials are saved
before contacting Confluence; the password is encrypted with a key kept next
to the credentials file unless --plaintext is given. Deleting the key file
makes the saved password unrecoverable.`,
	Example: `  confreplace                                   # Use ./settings.json
  confreplace --settings rename.json -v         # Verbose, custom settings
  confreplace --base-url https://wiki.example.com`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReplace,
}

// Execute runs the root command and exits non-zero on any error.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runReplace(cmd *cobra.Command, args []string) error {
	log := logger.NewWithWriter(cmd.ErrOrStderr(), verbose)

	store, err := openStore(log)
	if err != nil {
		return err
	}

	_, err = replacer.Run(replacer.Options{
		SettingsPath: settingsFile,
		BaseURL:      baseURL,
		Store:        store,
		Prompter:     newPrompter(),
		NewClient:    newConfluenceClient,
		Logger:       log,
		Out:          cmd.OutOrStdout(),
	})
	return err
}

func openStore(log *logger.Logger) (*credentials.Store, error) {
	if plaintext {
		log.Warn("Password will be stored unencrypted in %s", credentialsFile)
		return credentials.NewStore(credentialsFile, nil), nil
	}

	store, err := credentials.NewEncryptedStore(credentialsFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	log.Debug("Using credentials %s with key %s", credentialsFile, keyFile)
	return store, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func init() {
	defaults := config.DefaultPaths(homeDir())

	info := version.Get()
	rootCmd.Version = info.Version
	rootCmd.SetVersionTemplate(info.String() + "\n")

	flags := rootCmd.Flags()
	flags.StringVar(&settingsFile, "settings", defaults.Settings, "path to settings file (JSON, or YAML by extension)")
	flags.StringVar(&baseURL, "base-url", "", "Confluence base URL (overrides settings)")
	flags.StringVar(&credentialsFile, "credentials", defaults.Credentials, "path to stored credentials")
	flags.StringVar(&keyFile, "key-file", defaults.KeyFile, "path to the password encryption key")
	flags.BoolVar(&plaintext, "plaintext", false, "store the password without encryption")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
