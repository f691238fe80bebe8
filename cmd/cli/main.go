package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sleuthling/sleuthling/cmd/cli/casegen"
	"github.com/sleuthling/sleuthling/cmd/cli/img"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(casegen.Group)
	rootCmd.AddCommand(casegen.Generate)
	rootCmd.AddGroup(img.Group)
	rootCmd.AddCommand(img.Generate)
}

var rootCmd = &cobra.Command{
	Use:  "sleuthling-cli",
	Long: `Command line utilities for Sleuthling, the detective mini-game for kids`,
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
