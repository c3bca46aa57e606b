package cmd

import (
	"github.com/leighmacdonald/tracks/seed"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os"
)

var (
	seedOutput string
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed file tools",
	Long:  `Seed file tools`,
}

var seedCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a seed file",
	Long:  `Validate a seed file and print the tracks it contains`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tracks, err := seed.Load(args[0])
		if err != nil {
			log.Fatalf("Invalid seed file: %s", err)
		}
		printTracks(os.Stdout, tracks)
		log.Infof("%s is valid (%d tracks)", args[0], len(tracks))
	},
}

var seedScanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Generate a seed file from a directory of audio files",
	Long:  `Generate a seed file from a directory of audio files`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tracks, err := seed.Scan(args[0])
		if err != nil {
			log.Fatalf("Failed to scan: %s", err)
		}
		if err := seed.Write(seedOutput, tracks); err != nil {
			log.Fatalf("Failed to write seed file: %s", err)
		}
		log.Infof("Wrote %d tracks to %s", len(tracks), seedOutput)
	},
}

func init() {
	seedScanCmd.Flags().StringVarP(&seedOutput, "output", "o", "tracks.json", "Output file (.json|.yaml)")
	seedCheckCmd.Flags().BoolVarP(&outputJSON, "json", "j", false, "Output JSON")
	seedCmd.AddCommand(seedCheckCmd)
	seedCmd.AddCommand(seedScanCmd)
	rootCmd.AddCommand(seedCmd)
}
