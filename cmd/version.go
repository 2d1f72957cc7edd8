package cmd

import (
	"fmt"
	"ipv6-rotator/internal/pkg/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and git info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(version.Get().String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
