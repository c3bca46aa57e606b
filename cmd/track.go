package cmd

import (
	"encoding/json"
	"fmt"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leighmacdonald/tracks/client"
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/model"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"io"
	"os"
	"strconv"
	"time"
)

var (
	outputJSON bool
	trackAdd   model.Track
	lastPlay   string
)

func printTracks(w io.Writer, tracks []model.Track) {
	if outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tracks); err != nil {
			log.Fatalf("Failed to encode tracks: %s", err)
		}
		return
	}
	t := defaultTable(w)
	t.AppendHeader(table.Row{"id", "artist", "title", "duration", "last play"})
	for _, tr := range tracks {
		t.AppendRow(table.Row{tr.ID, tr.Artist, tr.Title, fmt.Sprintf("%.1f", tr.Duration), tr.LastPlay.String()})
	}
	t.AppendFooter(table.Row{"", "", "total", len(tracks), ""})
	t.Render()
}

func defaultTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func newClient() *client.Client {
	return client.New(config.GetString(config.ClientURL))
}

// trackCmd represents the track command
var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Query and create tracks on a running server",
	Long:  `Query and create tracks on a running server`,
}

var trackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracks",
	Long:  `List all tracks`,
	Run: func(cmd *cobra.Command, args []string) {
		tracks, err := newClient().Tracks()
		if err != nil {
			log.Fatalf("Failed to fetch tracks: %s", err)
		}
		printTracks(os.Stdout, tracks)
	},
}

var trackGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single track",
	Long:  `Show a single track`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		trackID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatalf("Invalid track id: %s", args[0])
		}
		t, err := newClient().Track(trackID)
		if err != nil {
			log.Fatalf("Failed to fetch track: %s", err)
		}
		printTracks(os.Stdout, []model.Track{t})
	},
}

var trackAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new track",
	Long:  `Create a new track. The last play time defaults to now.`,
	Run: func(cmd *cobra.Command, args []string) {
		trackAdd.LastPlay = model.NewTimestamp(time.Now())
		if lastPlay != "" {
			ts, err := model.ParseTimestamp(lastPlay)
			if err != nil {
				log.Fatalf("Invalid last play time: %s", err)
			}
			trackAdd.LastPlay = ts
		}
		t, err := newClient().TrackAdd(trackAdd)
		if err != nil {
			log.Fatalf("Failed to create track: %s", err)
		}
		printTracks(os.Stdout, []model.Track{t})
	},
}

func init() {
	trackCmd.PersistentFlags().BoolVarP(&outputJSON, "json", "j", false, "Output JSON")
	trackAddCmd.Flags().StringVarP(&trackAdd.Title, "title", "t", "", "Track title")
	trackAddCmd.Flags().StringVarP(&trackAdd.Artist, "artist", "a", "", "Track artist")
	trackAddCmd.Flags().Float64VarP(&trackAdd.Duration, "duration", "d", 0, "Duration in seconds")
	trackAddCmd.Flags().StringVarP(&lastPlay, "last_play", "l", "", "Last play time, eg: 2018-05-17T16:56:21")
	_ = trackAddCmd.MarkFlagRequired("title")
	_ = trackAddCmd.MarkFlagRequired("artist")
	trackCmd.AddCommand(trackListCmd)
	trackCmd.AddCommand(trackGetCmd)
	trackCmd.AddCommand(trackAddCmd)
	rootCmd.AddCommand(trackCmd)
}
