// Package http defines a storage backend over the HTTP API of another track server.
//
// This allows running a frontend instance in front of a primary instance which owns the data.
// Tracks can only be created through the upstream API so explicit identifiers are not supported,
// seeding should be disabled when using this driver.
package http

import (
	"fmt"
	"github.com/leighmacdonald/tracks/client"
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/leighmacdonald/tracks/store"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/url"
)

const (
	driverName = "http"
)

// TrackStore is the HTTP API backed store.Store implementation
type TrackStore struct {
	client *client.Client
}

// Name returns the driver name
func (s *TrackStore) Name() string {
	return driverName
}

// Add supports tracks without an id only, they are created upstream
func (s *TrackStore) Add(track *model.Track) error {
	if track.ID != 0 {
		var existing model.Track
		if err := s.Get(&existing, track.ID); err == nil {
			return consts.ErrDuplicate
		}
		return errors.Wrap(consts.ErrNotSupported, "Cannot add tracks with explicit ids over http")
	}
	return s.Create(track)
}

// Create sends the track to the upstream API which assigns the id
func (s *TrackStore) Create(track *model.Track) error {
	created, err := s.client.TrackAdd(*track)
	if err != nil {
		return errors.Wrap(err, "Failed to create track upstream")
	}
	*track = created
	return nil
}

// Get fetches a track from the upstream API
func (s *TrackStore) Get(track *model.Track, trackID int64) error {
	t, err := s.client.Track(trackID)
	if err != nil {
		return err
	}
	*track = t
	return nil
}

// All fetches every track from the upstream API
func (s *TrackStore) All() ([]model.Track, error) {
	return s.client.Tracks()
}

// Close is a no-op, connections are managed by the http.Client
func (s *TrackStore) Close() error {
	return nil
}

// NewTrackStore creates a store forwarding to the API at baseURL
func NewTrackStore(baseURL string) *TrackStore {
	return &TrackStore{client: client.New(baseURL)}
}

type initializer struct{}

// New creates a store for the upstream at cfg.Host:cfg.Port. Setting the property tls=true
// switches to https.
func (i initializer) New(cfg *config.StoreConfig) (store.Store, error) {
	scheme := "http"
	props, err := url.ParseQuery(cfg.Properties)
	if err != nil {
		return nil, errors.Wrapf(consts.ErrInvalidConfig, "Invalid store properties: %s", cfg.Properties)
	}
	if props.Get("tls") == "true" {
		scheme = "https"
	}
	s := NewTrackStore(fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port))
	if err := s.client.Ping(); err != nil {
		return nil, errors.Wrap(err, "Failed to reach upstream track API")
	}
	log.Debugf("Using upstream track API: %s://%s:%d", scheme, cfg.Host, cfg.Port)
	return s, nil
}

func init() {
	store.AddDriver(driverName, initializer{})
}
