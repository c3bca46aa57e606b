// Package mysql provides mysql/mariadb backed persistent storage
package mysql

import (
	"database/sql"
	// imported for side-effects
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/leighmacdonald/tracks/store"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	driverName = "mysql"
)

// TrackStore is the MariaDB/MySQL backed store.Store implementation
type TrackStore struct {
	db *sqlx.DB
}

// Name returns the driver name
func (s *TrackStore) Name() string {
	return driverName
}

// nextID locks the id range and returns the next available id.
// Must be called inside a transaction.
func nextID(tx *sqlx.Tx) (int64, error) {
	const q = `SELECT COALESCE(MAX(track_id), 0) FROM track FOR UPDATE`
	var maxID int64
	if err := tx.Get(&maxID, q); err != nil {
		return 0, errors.Wrap(err, "Failed to fetch next track_id")
	}
	return model.FollowingID(maxID)
}

func insert(tx *sqlx.Tx, track *model.Track) error {
	const q = `
		INSERT INTO track 
		    (track_id, title, artist, duration, last_play) 
		VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.Exec(q, track.ID, track.Title, track.Artist, track.Duration, track.LastPlay.UTC()); err != nil {
		return errors.Wrapf(err, "Failed to insert track: %d", track.ID)
	}
	return nil
}

func (s *TrackStore) insertTx(track *model.Track, assignID bool) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "Failed to start transaction")
	}
	if assignID || track.ID == 0 {
		id, err := nextID(tx)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		track.ID = id
	} else {
		const q = `SELECT EXISTS(SELECT 1 FROM track WHERE track_id = ?)`
		var exists bool
		if err := tx.Get(&exists, q, track.ID); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "Failed to check for existing track")
		}
		if exists {
			_ = tx.Rollback()
			return consts.ErrDuplicate
		}
	}
	if err := insert(tx, track); err != nil {
		_ = tx.Rollback()
		return err
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

// Close the underlying database connection
func (s *TrackStore) Close() error {
	return s.db.Close()
}

type initializer struct{}

// New connects to the database described by cfg and ensures the schema exists
func (i initializer) New(cfg *config.StoreConfig) (store.Store, error) {
	db, err := sqlx.Connect(driverName, cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to mysql")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "Failed to create schema")
	}
	log.Debugf("Connected to mysql track store: %s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
	return &TrackStore{db: db}, nil
}

func init() {
	store.AddDriver(driverName, initializer{})
}
