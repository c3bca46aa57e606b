package seed

import (
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadJSON(t *testing.T) {
	tracks, err := Load("testdata/tracks.json")
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	require.Equal(t, int64(1), tracks[0].ID)
	require.Equal(t, "Miles Davis", tracks[0].Artist)
	require.Equal(t, "Teardrop", tracks[2].Title)
	require.Equal(t, 329.1, tracks[2].Duration)
	require.Equal(t, "2018-05-17T16:56:21", tracks[0].LastPlay.String())
	require.Equal(t, "2018-05-19T21:30:45", tracks[2].LastPlay.String())
}

func TestLoadYAML(t *testing.T) {
	tracks, err := Load("testdata/tracks.yaml")
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	require.Equal(t, int64(2), tracks[1].ID, "missing ids follow the largest id in the file")
	require.Equal(t, "Radiohead", tracks[1].Artist)
	require.Equal(t, "2018-05-18T09:12:00", tracks[1].LastPlay.String())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("testdata/missing.json")
	require.Error(t, err)

	_, err = Load("testdata/malformed.json")
	require.Error(t, err)

	_, err = Load("testdata/invalid.json")
	require.Equal(t, consts.ErrInvalidTrack, errors.Cause(err))

	_, err = Load("testdata/duplicate.json")
	require.Equal(t, consts.ErrDuplicate, errors.Cause(err))

	_, err = Load("testdata/tracks.csv")
	require.Equal(t, consts.ErrUnsupportedFormat, errors.Cause(err))

	_, err = Load("testdata/exhausted.json")
	require.Equal(t, consts.ErrIDExhausted, errors.Cause(err))
}

func TestLoadNotAList(t *testing.T) {
	for _, p := range []string{
		"testdata/null.json",
		"testdata/object.json",
		"testdata/null.yaml",
		"testdata/empty.yaml",
		"testdata/mapping.yaml",
	} {
		tracks, err := Load(p)
		require.Error(t, err, p)
		require.Nil(t, tracks, p)
	}
}

func TestLoadMixedIDs(t *testing.T) {
	tracks, err := Load("testdata/mixed.json")
	require.NoError(t, err)
	require.Len(t, tracks, 4)
	var ids []int64
	for _, tr := range tracks {
		ids = append(ids, tr.ID)
	}
	require.Equal(t, []int64{8, 1, 9, 7}, ids)
	require.Equal(t, "Karma Police", tracks[0].Title)
}

func TestLoadEmpty(t *testing.T) {
	dir, err := ioutil.TempDir("", "seed")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(dir) }()
	p := filepath.Join(dir, "empty.json")
	require.NoError(t, ioutil.WriteFile(p, []byte("[]"), 0644))
	tracks, err := Load(p)
	require.NoError(t, err)
	require.NotNil(t, tracks)
	require.Empty(t, tracks)
}

func TestValidate(t *testing.T) {
	valid := model.Track{
		Title:    "Teardrop",
		Artist:   "Massive Attack",
		Duration: 329,
		LastPlay: model.NewTimestamp(time.Now()),
	}
	require.NoError(t, Validate(valid))

	noArtist := valid
	noArtist.Artist = ""
	require.Equal(t, consts.ErrInvalidTrack, errors.Cause(Validate(noArtist)))

	negative := valid
	negative.Duration = -1
	require.Equal(t, consts.ErrInvalidTrack, errors.Cause(Validate(negative)))

	noPlay := valid
	noPlay.LastPlay = model.Timestamp{}
	require.Equal(t, consts.ErrInvalidTrack, errors.Cause(Validate(noPlay)))
}

func TestWrite(t *testing.T) {
	tracks, err := Load("testdata/tracks.json")
	require.NoError(t, err)
	dir, err := ioutil.TempDir("", "seed")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(dir) }()
	for _, name := range []string{"out.json", "out.yaml", "out.yml"} {
		p := filepath.Join(dir, name)
		require.NoError(t, Write(p, tracks))
		loaded, err := Load(p)
		require.NoError(t, err)
		require.Equal(t, tracks, loaded, name)
	}
	require.Equal(t, consts.ErrUnsupportedFormat, errors.Cause(Write(filepath.Join(dir, "out.txt"), tracks)))
}
