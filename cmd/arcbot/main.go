package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcbothq/arcbot/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:           "arcbot",
		Short:         "ARC Raiders lookup bot for QQ groups, channels and direct messages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newConsoleCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the arcbot version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.GetInfo())
		},
	}
}
