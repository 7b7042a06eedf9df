package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the notiondo application
var rootCmd = &cobra.Command{
	Use:   "notiondo",
	Short: "MCP server for a Notion task database",
	Long: `notiondo exposes a Notion database and its pages as MCP
(Model Context Protocol) tools for AI assistants: listing pages, reading and
appending page content, updating status, and adding comments.

Configuration is read from the environment (or a .env file):
  NOTION_API_KEY      Notion integration token (required)
  NOTION_DATABASE_ID  Database all queries target (required)
  NOTION_BASE_URL     API base endpoint (optional)
  NOTION_VERSION      Notion-Version header value (optional)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "notiondo version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
