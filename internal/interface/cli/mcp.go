package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neilberkman/biodish/cmd/biodish/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server exposing chat history",
	Long: `Start an MCP (Model Context Protocol) server that lets MCP clients list,
read, and search your biodish chat history.

Configure in your client's MCP settings, e.g.:
  {
    "mcpServers": {
      "biodish": {
        "command": "biodish",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg, displayLanguage(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := mcp.StartServer(st); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
