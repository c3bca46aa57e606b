package seed

import (
	"github.com/dhowden/tag"
	"github.com/leighmacdonald/tracks/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const unknownArtist = "Unknown Artist"

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".mp4":  true,
	".dsf":  true,
}

// Scan walks dir and builds a track for every audio file found.
// Titles and artists come from the embedded tags, falling back to a "Artist - Title"
// file name. The file modification time is used as the last play time. Tracks are
// numbered sequentially from 1 in path order.
func Scan(dir string) ([]model.Track, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to scan directory %s", dir)
	}
	sort.Strings(paths)
	tracks := []model.Track{}
	for _, path := range paths {
		t, err := readTrack(path)
		if err != nil {
			log.Warnf("Skipping %s: %s", path, err)
			continue
		}
		t.ID = int64(len(tracks) + 1)
		tracks = append(tracks, t)
	}
	return tracks, nil
}

func readTrack(path string) (model.Track, error) {
	var t model.Track
	info, err := os.Stat(path)
	if err != nil {
		return t, err
	}
	t.LastPlay = model.NewTimestamp(info.ModTime())
	f, err := os.Open(path)
	if err != nil {
		return t, err
	}
	defer func() { _ = f.Close() }()
	artist, title := fromFileName(path)
	m, err := tag.ReadFrom(f)
	if err != nil {
		log.Debugf("No tags found for %s: %s", path, err)
	} else {
		if strings.TrimSpace(m.Artist()) != "" {
			artist = strings.TrimSpace(m.Artist())
		}
		if strings.TrimSpace(m.Title()) != "" {
			title = strings.TrimSpace(m.Title())
		}
	}
	t.Artist = artist
	t.Title = title
	return t, nil
}

// fromFileName parses names in the form "Artist - Title.ext"
func fromFileName(path string) (string, string) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.SplitN(name, " - ", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) != "" && strings.TrimSpace(parts[1]) != "" {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return unknownArtist, strings.TrimSpace(name)
}
