package http

import (
	"github.com/gin-gonic/gin"
	"github.com/leighmacdonald/tracks/api"
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/library"
	"github.com/leighmacdonald/tracks/model"
	"github.com/leighmacdonald/tracks/store"
	"github.com/leighmacdonald/tracks/store/memory"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
)

func newUpstream(t *testing.T) *httptest.Server {
	gin.SetMode(gin.TestMode)
	lib, err := library.New(library.Opts{Tracks: memory.NewTrackStore()})
	require.NoError(t, err)
	return httptest.NewServer(api.NewAPIHandler(lib))
}

func TestHTTPStore(t *testing.T) {
	srv := newUpstream(t)
	defer srv.Close()
	s := NewTrackStore(srv.URL)

	empty, err := s.All()
	require.NoError(t, err)
	require.Empty(t, empty)

	var missing model.Track
	require.Equal(t, consts.ErrTrackNotFound, errors.Cause(s.Get(&missing, 1)))

	first := store.GenerateTestTrack()
	first.ID = 5
	require.NoError(t, s.Create(&first))
	require.Equal(t, int64(1), first.ID)

	second := store.GenerateTestTrack()
	require.NoError(t, s.Add(&second))
	require.Equal(t, int64(2), second.ID)

	dupe := store.GenerateTestTrack()
	dupe.ID = 1
	require.Equal(t, consts.ErrDuplicate, errors.Cause(s.Add(&dupe)))
	explicit := store.GenerateTestTrack()
	explicit.ID = 10
	require.Equal(t, consts.ErrNotSupported, errors.Cause(s.Add(&explicit)))

	var fetched model.Track
	require.NoError(t, s.Get(&fetched, 2))
	require.Equal(t, second, fetched)

	all, err := s.All()
	require.NoError(t, err)
	require.Equal(t, []model.Track{first, second}, all)

	invalid := store.GenerateTestTrack()
	invalid.Title = ""
	require.Equal(t, consts.ErrInvalidTrack, errors.Cause(s.Create(&invalid)))
	require.NoError(t, s.Close())
}

func TestHTTPStoreDriver(t *testing.T) {
	srv := newUpstream(t)
	defer srv.Close()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	s, err := store.NewStore(&config.StoreConfig{Type: driverName, Host: u.Hostname(), Port: port})
	require.NoError(t, err)
	require.Equal(t, driverName, s.Name())

	srv.Close()
	_, err = store.NewStore(&config.StoreConfig{Type: driverName, Host: u.Hostname(), Port: port})
	require.Error(t, err, "unreachable upstream must fail")
}
