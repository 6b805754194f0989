package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("talentsift version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
