package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ipv6-rotator",
	Short: "ipv6-rotator rotates the IPv6 source address pool of an HAProxy configuration",
	// Execute prints the error once through cobra.CheckErr
	SilenceErrors: true,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
