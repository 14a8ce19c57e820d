package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "mapshare"
)

var Author string

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
	contextCommand.AddCommand(resetContextCommand())
	rootCmd.AddCommand(contextCommand)
}

// Context is the acting author identity the CLI signs annotations with.
type Context struct {
	Author string `json:"author"`
}

// saves the context info to the config file in ./.tmp
func setContextCommand() *cobra.Command {
	var author string
	command := &cobra.Command{
		Use:   "set",
		Short: "set context",
		Run: func(cmd *cobra.Command, args []string) {
			if author == "" {
				color.Red(`missing: --author`)
				return
			}

			writeContext(Context{Author: author})
			fmt.Println("context saved")
		},
	}

	command.Flags().StringVarP(&author, "author", "a", "", "author name")

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := readContext()
			if cfg.Author == "" {
				color.Yellow("no author set, use: mapshare context set -a <name>")
				return
			}
			fmt.Println(cfg.Author)
		},
	}

	return command
}

func resetContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset",
		Short: "reset context",
		Run: func(cmd *cobra.Command, args []string) {
			writeContext(Context{})
		},
	}

	return command
}

func writeContext(context Context) {
	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")
	viper.Set("context", context)

	if err := viper.WriteConfig(); err != nil {
		fmt.Println("error writing config file: ", err)
	}
}

func bindContextFlags(command *cobra.Command) {
	command.Flags().StringVarP(&Author, "author", "a", "", "author name")
}

func contextAuthor() string {
	if Author != "" {
		return Author
	}

	cfg := readContext()
	return cfg.Author
}

func readContext() Context {
	var ctx Context

	// create file if it doesn't exist
	if _, err := os.Stat("./.tmp/" + configFileName + ".yml"); os.IsNotExist(err) {
		if err := os.MkdirAll("./.tmp", os.ModePerm); err != nil {
			fmt.Println("error creating config dir: ", err)
		}
		file, err := os.Create("./.tmp/" + configFileName + ".yml")
		if err != nil {
			fmt.Println("error creating config file: ", err)
		}
		err = file.Close()
		if err != nil {
			panic(err)
		}
	}

	viper.SetConfigName(configFileName)
	viper.AddConfigPath("./.tmp")
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("error reading config file: ", err)
	}

	if err := viper.UnmarshalKey("context", &ctx); err != nil {
		fmt.Println("error unmarshalling config file: ", err)
	}

	return ctx
}
