// Package memory provides the default in process track store
package memory

import (
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/leighmacdonald/tracks/store"
	"sync"
)

const (
	driverName = "memory"
)

// TrackStore is the memory backed store.Store implementation.
// Tracks are kept in a slice in insertion order and looked up with a linear scan.
type TrackStore struct {
	tracks   []model.Track
	tracksMu *sync.RWMutex
}

// NewTrackStore instantiates a new, empty, in-memory track store
func NewTrackStore() *TrackStore {
	return &TrackStore{
		tracks:   []model.Track{},
		tracksMu: &sync.RWMutex{},
	}
}

// Name returns the driver name
func (ts *TrackStore) Name() string {
	return driverName
}

// find returns the index of the track matching trackID or -1. The caller must hold the lock.
func (ts *TrackStore) find(trackID int64) int {
	for i, t := range ts.tracks {
		if t.ID == trackID {
			return i
		}
	}
	return -1
}

// Add inserts a track keeping its current id
func (ts *TrackStore) Add(track *model.Track) error {
	ts.tracksMu.Lock()
	defer ts.tracksMu.Unlock()
	if track.ID == 0 {
		id, err := model.NextID(ts.tracks)
		if err != nil {
			return err
		}
		track.ID = id
	} else if ts.find(track.ID) >= 0 {
		return consts.ErrDuplicate
	}
	ts.tracks = append(ts.tracks, *track)
	return nil
}

// Create assigns the next id to the track and appends it to the collection
func (ts *TrackStore) Create(track *model.Track) error {
	ts.tracksMu.Lock()
	defer ts.tracksMu.Unlock()
	id, err := model.NextID(ts.tracks)
	if err != nil {
		return err
	}
	track.ID = id
	ts.tracks = append(ts.tracks, *track)
	return nil
}

// Get returns the first track matching the id
func (ts *TrackStore) Get(track *model.Track, trackID int64) error {
	ts.tracksMu.RLock()
	defer ts.tracksMu.RUnlock()
	idx := ts.find(trackID)
	if idx < 0 {
		return consts.ErrTrackNotFound
	}
	*track = ts.tracks[idx]
	return nil
}

// All returns a copy of the full collection
func (ts *TrackStore) All() ([]model.Track, error) {
	ts.tracksMu.RLock()
	tracks := make([]model.Track, len(ts.tracks))
	copy(tracks, ts.tracks)
	ts.tracksMu.RUnlock()
	return tracks, nil
}

// Close will delete/free the underlying memory store
func (ts *TrackStore) Close() error {
	ts.tracksMu.Lock()
	ts.tracks = []model.Track{}
	ts.tracksMu.Unlock()
	return nil
}

type initializer struct{}

// New creates a new memory backed track store.
func (d initializer) New(_ *config.StoreConfig) (store.Store, error) {
	return NewTrackStore(), nil
}

func init() {
	store.AddDriver(driverName, initializer{})
}
