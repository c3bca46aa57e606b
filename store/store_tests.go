package store

import (
	"fmt"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"math"
	"math/rand"
	"testing"
	"time"
)

// GenerateTestTrack creates a track using fake data. Used for testing.
func GenerateTestTrack() model.Track {
	return model.Track{
		Title:    fmt.Sprintf("Song Number %d", rand.Intn(1000000)),
		Artist:   fmt.Sprintf("Artist %d", rand.Intn(1000)),
		Duration: float64(rand.Intn(60000)) / 100,
		LastPlay: model.NewTimestamp(time.Now().Add(-time.Duration(rand.Intn(100000)) * time.Minute)),
	}
}

// TestStore tests the interface implementation. The store is expected to be empty.
func TestStore(t *testing.T, s Store) {
	empty, err := s.All()
	require.NoError(t, err, "[%s] Failed to fetch tracks", s.Name())
	require.Empty(t, empty)

	var missing model.Track
	require.Equal(t, consts.ErrTrackNotFound, errors.Cause(s.Get(&missing, 1)))

	first := GenerateTestTrack()
	require.NoError(t, s.Create(&first), "[%s] Failed to create track", s.Name())
	require.Equal(t, int64(1), first.ID, "first id of an empty store must be 1")

	seeded := []model.Track{GenerateTestTrack(), GenerateTestTrack(), GenerateTestTrack()}
	seeded[0].ID = 10
	seeded[1].ID = 4
	seeded[2].ID = 0
	for i := range seeded {
		require.NoError(t, s.Add(&seeded[i]), "[%s] Failed to add track", s.Name())
	}
	require.Equal(t, int64(11), seeded[2].ID, "zero id must be replaced with max+1")

	dupe := GenerateTestTrack()
	dupe.ID = 4
	require.Equal(t, consts.ErrDuplicate, errors.Cause(s.Add(&dupe)))

	var fetched model.Track
	require.NoError(t, s.Get(&fetched, 10))
	require.Equal(t, seeded[0], fetched)

	next := GenerateTestTrack()
	next.ID = 2
	require.NoError(t, s.Create(&next))
	require.Equal(t, int64(12), next.ID, "create must ignore the provided id")
	last := GenerateTestTrack()
	require.NoError(t, s.Create(&last))
	require.Equal(t, int64(13), last.ID)

	all, err := s.All()
	require.NoError(t, err)
	expected := []model.Track{first, seeded[0], seeded[1], seeded[2], next, last}
	require.Equal(t, expected, all, "[%s] tracks must be returned in insertion order", s.Name())

	largest := GenerateTestTrack()
	largest.ID = math.MaxInt64
	require.NoError(t, s.Add(&largest), "[%s] Failed to add track", s.Name())
	for i := 0; i < 2; i++ {
		overflow := GenerateTestTrack()
		require.Equal(t, consts.ErrIDExhausted, errors.Cause(s.Create(&overflow)),
			"[%s] ids must not wrap around", s.Name())
	}
	all, err = s.All()
	require.NoError(t, err)
	require.Len(t, all, len(expected)+1)
}

func init() {
	rand.Seed(time.Now().UnixNano())
}
