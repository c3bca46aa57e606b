package library

import (
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/leighmacdonald/tracks/store"
	"github.com/leighmacdonald/tracks/store/memory"
	"github.com/leighmacdonald/tracks/store/sqlite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func TestNewSeeded(t *testing.T) {
	l, err := New(Opts{Tracks: memory.NewTrackStore(), SeedEnabled: true, SeedPath: "../seed/testdata/tracks.json"})
	require.NoError(t, err)
	tracks, err := l.List()
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	require.Equal(t, []int64{1, 2, 3}, []int64{tracks[0].ID, tracks[1].ID, tracks[2].ID})

	created, err := l.Create(store.GenerateTestTrack())
	require.NoError(t, err)
	require.Equal(t, int64(4), created.ID)
	require.NoError(t, l.Close())
}

func TestNewSeedErrors(t *testing.T) {
	_, err := New(Opts{})
	require.Error(t, err)
	for _, p := range []string{"missing.json", "../seed/testdata/invalid.json", "../seed/testdata/duplicate.json",
		"../seed/testdata/null.json", "../seed/testdata/exhausted.json"} {
		s := memory.NewTrackStore()
		_, err := New(Opts{Tracks: s, SeedEnabled: true, SeedPath: p})
		require.Error(t, err, p)
		all, _ := s.All()
		require.Empty(t, all, "nothing is inserted from a failed seed: %s", p)
	}
}

func TestNewSeedMixedIDs(t *testing.T) {
	s, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	l, err := New(Opts{Tracks: s, SeedEnabled: true, SeedPath: "../seed/testdata/mixed.json"})
	require.NoError(t, err)
	defer func() { _ = l.Close() }()
	tracks, err := l.List()
	require.NoError(t, err)
	require.Len(t, tracks, 4)
	require.Equal(t, "Karma Police", tracks[0].Title)
	require.Equal(t, int64(8), tracks[0].ID)
	created, err := l.Create(store.GenerateTestTrack())
	require.NoError(t, err)
	require.Equal(t, int64(10), created.ID)
}

func TestLoadSeedExistingTracks(t *testing.T) {
	s, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	l, err := New(Opts{Tracks: s})
	require.NoError(t, err)
	defer func() { _ = l.Close() }()
	stored := store.GenerateTestTrack()
	stored.ID = 2
	require.NoError(t, s.Add(&stored))

	a := store.GenerateTestTrack()
	a.ID = 1
	b := store.GenerateTestTrack()
	b.ID = 2
	require.Equal(t, consts.ErrDuplicate, errors.Cause(l.LoadSeed([]model.Track{a, b})))
	all, err := l.List()
	require.NoError(t, err)
	require.Equal(t, []model.Track{stored}, all, "nothing is inserted from a failed seed")
}

func TestCreateIDExhausted(t *testing.T) {
	l, err := New(Opts{Tracks: memory.NewTrackStore()})
	require.NoError(t, err)
	last := store.GenerateTestTrack()
	last.ID = math.MaxInt64
	require.NoError(t, l.LoadSeed([]model.Track{last}))
	for i := 0; i < 2; i++ {
		_, err := l.Create(store.GenerateTestTrack())
		require.Equal(t, consts.ErrIDExhausted, errors.Cause(err))
	}
	all, err := l.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestLibrary(t *testing.T) {
	l, err := New(Opts{Tracks: memory.NewTrackStore()})
	require.NoError(t, err)
	require.Equal(t, "memory", l.StoreName())
	empty, err := l.List()
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	in := store.GenerateTestTrack()
	in.ID = 99
	created, err := l.Create(in)
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	fetched, err := l.Get(1)
	require.NoError(t, err)
	require.Equal(t, created, fetched)

	_, err = l.Get(2)
	require.Equal(t, consts.ErrTrackNotFound, errors.Cause(err))

	bad := store.GenerateTestTrack()
	bad.Title = ""
	_, err = l.Create(bad)
	require.Equal(t, consts.ErrInvalidTrack, errors.Cause(err))

	noPlay := store.GenerateTestTrack()
	noPlay.LastPlay = model.Timestamp{}
	_, err = l.Create(noPlay)
	require.Equal(t, consts.ErrInvalidTrack, errors.Cause(err))
}

func TestLoadSeedDuplicate(t *testing.T) {
	l, err := New(Opts{Tracks: memory.NewTrackStore()})
	require.NoError(t, err)
	a := store.GenerateTestTrack()
	a.ID = 5
	require.NoError(t, l.LoadSeed([]model.Track{a}))
	require.Equal(t, consts.ErrDuplicate, errors.Cause(l.LoadSeed([]model.Track{a})))
}
