package cmd

import (
	"fmt"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get the current version or build hash",
	Long:  `Get the current version or build hash`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tracks (git:%s) (date:%s)\n", consts.BuildVersion, consts.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
