// Package cmd implements the command line interface
package cmd

import (
	"fmt"
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/consts"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os"
)

var (
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "tracks",
	Short:   "Track catalogue API server and client",
	Long:    `Track catalogue API server and client`,
	Version: fmt.Sprintf("tracks (git:%s) (date:%s)", consts.BuildVersion, consts.BuildTime),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		if err := config.Read(cfgFile); err != nil {
			log.Fatalf("Could not load config: %s", err)
		}
	})
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tracks.yaml)")
}
