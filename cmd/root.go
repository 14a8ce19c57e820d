package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mapshare",
	Short: "collaborative map document tool",
	Example: `mapshare create -n <name>
mapshare list
mapshare get -d <doc-id>
mapshare place add -d <doc-id> -n <name> --lat <lat> --lon <lon>
mapshare share create -d <doc-id>
mapshare share ingest -u <share-url>
mapshare react -p <place-id> -t thumbsUp`,
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
	rootCmd.AddCommand(dbCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
