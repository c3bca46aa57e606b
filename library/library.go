// Package library owns the track store used by the API and applies the rules shared
// by every request handler
package library

import (
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/leighmacdonald/tracks/seed"
	"github.com/leighmacdonald/tracks/store"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Opts configures a new Library
type Opts struct {
	// Tracks is the backing store, the library takes ownership and closes it
	Tracks store.Store
	// SeedEnabled loads SeedPath into the store when the library is created
	SeedEnabled bool
	SeedPath    string
}

// Library is the single owned track collection
type Library struct {
	tracks store.Store
}

// New creates a library around opts.Tracks and seeds it when enabled.
// A seed file which fails to load is returned as an error and nothing is inserted.
func New(opts Opts) (*Library, error) {
	if opts.Tracks == nil {
		return nil, errors.New("No track store provided")
	}
	l := &Library{tracks: opts.Tracks}
	if opts.SeedEnabled {
		tracks, err := seed.Load(opts.SeedPath)
		if err != nil {
			return nil, err
		}
		if err := l.LoadSeed(tracks); err != nil {
			return nil, err
		}
		log.Infof("Loaded %d tracks from %s", len(tracks), opts.SeedPath)
	}
	return l, nil
}

// LoadSeed inserts the tracks in order keeping their ids. Every id is checked against
// the store and the rest of tracks before the first insert.
func (l *Library) LoadSeed(tracks []model.Track) error {
	seen := make(map[int64]bool, len(tracks))
	for _, t := range tracks {
		if t.ID == 0 {
			continue
		}
		if seen[t.ID] {
			return errors.Wrapf(consts.ErrDuplicate, "Duplicate seed track %s", t.String())
		}
		seen[t.ID] = true
		var existing model.Track
		err := l.tracks.Get(&existing, t.ID)
		if err == nil {
			return errors.Wrapf(consts.ErrDuplicate, "Seed track already stored %s", t.String())
		}
		if errors.Cause(err) != consts.ErrTrackNotFound {
			return errors.Wrapf(err, "Failed to check seed track %s", t.String())
		}
	}
	for i := range tracks {
		t := tracks[i]
		if err := l.tracks.Add(&t); err != nil {
			return errors.Wrapf(err, "Failed to insert seed track %s", t.String())
		}
	}
	return nil
}

// List returns every track in insertion order, never nil
func (l *Library) List() ([]model.Track, error) {
	tracks, err := l.tracks.All()
	if err != nil {
		return nil, err
	}
	if tracks == nil {
		tracks = []model.Track{}
	}
	return tracks, nil
}

// Get returns the track with the matching id or consts.ErrTrackNotFound
func (l *Library) Get(trackID int64) (model.Track, error) {
	var t model.Track
	err := l.tracks.Get(&t, trackID)
	return t, err
}

// Create validates and stores a new track. Any id provided is replaced.
func (l *Library) Create(t model.Track) (model.Track, error) {
	t.ID = 0
	if err := seed.Validate(t); err != nil {
		return t, err
	}
	if err := l.tracks.Create(&t); err != nil {
		return t, err
	}
	log.Debugf("Created track: %s", t.String())
	return t, nil
}

// StoreName returns the name of the backing store driver
func (l *Library) StoreName() string {
	return l.tracks.Name()
}

// Close closes the backing store
func (l *Library) Close() error {
	return l.tracks.Close()
}
