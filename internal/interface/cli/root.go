package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	storePathFlag string
	langFlag      string
	versionInfo   string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "biodish",
	Short: "Medical nutrition chat assistant",
	Long: `biodish - chat with a medically-aware nutrition assistant from your terminal

Streams assistant replies as they are generated, keeps every conversation in
local storage, attaches lab reports (PDF/image) to questions, and translates
whole conversations between the five supported interface languages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to the chat TUI if no subcommand specified
		return chatCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storePathFlag, "store", "", "Session store path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Display language code (en, tr, es, de, fr)")
}
