// Package sqlite provides a single file, embedded, persistent track store
package sqlite

import (
	"database/sql"
	"github.com/jmoiron/sqlx"
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/leighmacdonald/tracks/store"
	// imported for side-effects
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	driverName = "sqlite"
	sqlDriver  = "sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS track
(
    seq       INTEGER PRIMARY KEY AUTOINCREMENT,
    track_id  INTEGER   NOT NULL UNIQUE,
    title     TEXT      NOT NULL,
    artist    TEXT      NOT NULL,
    duration  REAL      NOT NULL DEFAULT 0,
    last_play TIMESTAMP NOT NULL
);`

// TrackStore is the sqlite backed store.Store implementation
type TrackStore struct {
	db *sqlx.DB
}

// Name returns the driver name
func (s *TrackStore) Name() string {
	return driverName
}

func (s *TrackStore) insertTx(track *model.Track, assignID bool) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "Failed to start transaction")
	}
	if assignID || track.ID == 0 {
		var maxID int64
		if err := tx.Get(&maxID, `SELECT COALESCE(MAX(track_id), 0) FROM track`); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "Failed to fetch next track_id")
		}
		id, err := model.FollowingID(maxID)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		track.ID = id
	} else {
		var exists bool
		if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM track WHERE track_id = ?)`, track.ID); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "Failed to check for existing track")
		}
		if exists {
			_ = tx.Rollback()
			return consts.ErrDuplicate
		}
	}
	const q = `INSERT INTO track (track_id, title, artist, duration, last_play) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.Exec(q, track.ID, track.Title, track.Artist, track.Duration, track.LastPlay.UTC()); err != nil {
		_ = tx.Rollback()
		return errors.Wrapf(err, "Failed to insert track: %d", track.ID)
	}
	return tx.Commit()
}

// Add inserts a track keeping its current id
func (s *TrackStore) Add(track *model.Track) error {
	return s.insertTx(track, false)
}

// Create assigns the next id to the track and inserts it
func (s *TrackStore) Create(track *model.Track) error {
	return s.insertTx(track, true)
}

// Get returns the track matching the id
func (s *TrackStore) Get(track *model.Track, trackID int64) error {
	const q = `SELECT track_id, title, artist, duration, last_play FROM track WHERE track_id = ?`
	if err := s.db.Get(track, q, trackID); err != nil {
		if err == sql.ErrNoRows {
			return consts.ErrTrackNotFound
		}
		return errors.Wrapf(err, "Failed to fetch track: %d", trackID)
	}
	return nil
}

// All returns every track in insertion order
func (s *TrackStore) All() ([]model.Track, error) {
	const q = `SELECT track_id, title, artist, duration, last_play FROM track ORDER BY seq`
	tracks := []model.Track{}
	if err := s.db.Select(&tracks, q); err != nil {
		return nil, errors.Wrap(err, "Failed to fetch tracks")
	}
	return tracks, nil
}

// Close the underlying database
func (s *TrackStore) Close() error {
	return s.db.Close()
}

// Open creates a store using the database file at path. ":memory:" creates a
// throwaway in memory database.
func Open(path string) (*TrackStore, error) {
	db, err := sqlx.Connect(sqlDriver, path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open sqlite database: %s", path)
	}
	// sqlite only supports a single writer, this also keeps :memory: databases
	// on the same connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "Failed to create schema")
	}
	log.Debugf("Opened sqlite track store: %s", path)
	return &TrackStore{db: db}, nil
}

type initializer struct{}

// New opens the sqlite database at cfg.Database
func (i initializer) New(cfg *config.StoreConfig) (store.Store, error) {
	return Open(cfg.Database)
}

func init() {
	store.AddDriver(driverName, initializer{})
}
