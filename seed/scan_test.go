package seed

import (
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScan(t *testing.T) {
	dir, err := ioutil.TempDir("", "scan")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(dir) }()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "album"), 0755))
	modTime := time.Date(2019, 3, 4, 5, 6, 7, 0, time.UTC)
	for _, name := range []string{
		"Radiohead - Karma Police.mp3",
		"album/Massive Attack - Teardrop - Live.flac",
		"untitled.ogg",
		"cover.jpg",
	} {
		p := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(p, []byte("not really audio"), 0644))
		require.NoError(t, os.Chtimes(p, modTime, modTime))
	}
	tracks, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, tracks, 3)

	require.Equal(t, int64(1), tracks[0].ID)
	require.Equal(t, "Radiohead", tracks[0].Artist)
	require.Equal(t, "Karma Police", tracks[0].Title)
	require.Equal(t, "2019-03-04T05:06:07", tracks[0].LastPlay.String())

	require.Equal(t, int64(2), tracks[1].ID)
	require.Equal(t, "Massive Attack", tracks[1].Artist)
	require.Equal(t, "Teardrop - Live", tracks[1].Title)

	require.Equal(t, unknownArtist, tracks[2].Artist)
	require.Equal(t, "untitled", tracks[2].Title)

	for _, tr := range tracks {
		require.NoError(t, Validate(tr))
	}
}

func TestScanMissingDir(t *testing.T) {
	_, err := Scan("testdata/does_not_exist")
	require.Error(t, err)
}

func TestFromFileName(t *testing.T) {
	artist, title := fromFileName("/music/Miles Davis - Blue in Green.mp3")
	require.Equal(t, "Miles Davis", artist)
	require.Equal(t, "Blue in Green", title)
	artist, title = fromFileName(" - Blue.mp3")
	require.Equal(t, unknownArtist, artist)
	require.Equal(t, "- Blue", title)
}
