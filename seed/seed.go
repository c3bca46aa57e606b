// Package seed reads and writes the track files used to populate a store at startup
package seed

import (
	"bytes"
	"encoding/json"
	"github.com/gin-gonic/gin/binding"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"path/filepath"
	"strings"
)

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, errors.Wrapf(consts.ErrUnsupportedFormat, "Unknown seed file extension: %s", path)
	}
}

// Load reads the seed file at path and validates every track in it.
// Any invalid element fails the whole load, the tracks are returned in file order.
// Tracks without an id are numbered after the largest id in the file.
func Load(path string) ([]model.Track, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read seed file")
	}
	var tracks []model.Track
	switch f {
	case formatJSON:
		tracks, err = decodeJSON(b)
	case formatYAML:
		tracks, err = decodeYAML(b)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to decode seed file %s", path)
	}
	seen := make(map[int64]bool, len(tracks))
	maxID := int64(0)
	for i, t := range tracks {
		if err := Validate(t); err != nil {
			return nil, errors.Wrapf(err, "Invalid track at index %d", i)
		}
		if t.ID == 0 {
			continue
		}
		if seen[t.ID] {
			return nil, errors.Wrapf(consts.ErrDuplicate, "Duplicate track id %d at index %d", t.ID, i)
		}
		seen[t.ID] = true
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	for i := range tracks {
		if tracks[i].ID != 0 {
			continue
		}
		next, err := model.FollowingID(maxID)
		if err != nil {
			return nil, errors.Wrapf(err, "No id available for track at index %d", i)
		}
		tracks[i].ID = next
		maxID = next
	}
	return tracks, nil
}

func decodeJSON(b []byte) ([]model.Track, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(b), []byte("[")) {
		return nil, errors.New("seed file must contain a JSON array")
	}
	tracks := []model.Track{}
	if err := json.Unmarshal(b, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

func decodeYAML(b []byte) ([]model.Track, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, errors.New("seed file must contain a YAML sequence")
	}
	tracks := []model.Track{}
	if err := doc.Content[0].Decode(&tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// Validate applies the same rules used when accepting tracks over the API
func Validate(t model.Track) error {
	if err := binding.Validator.ValidateStruct(&t); err != nil {
		return errors.Wrap(consts.ErrInvalidTrack, err.Error())
	}
	return t.Validate()
}

// Write encodes tracks to path, the format is chosen by the file extension
func Write(path string, tracks []model.Track) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	if tracks == nil {
		tracks = []model.Track{}
	}
	var b []byte
	switch f {
	case formatJSON:
		b, err = json.MarshalIndent(tracks, "", "  ")
	case formatYAML:
		b, err = yaml.Marshal(tracks)
	}
	if err != nil {
		return errors.Wrap(err, "Failed to encode tracks")
	}
	if err := ioutil.WriteFile(path, b, 0644); err != nil {
		return errors.Wrapf(err, "Failed to write seed file")
	}
	return nil
}
