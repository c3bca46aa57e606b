// Package postgres provides the backing store for postgresql
package postgres

import (
	"context"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/leighmacdonald/tracks/store"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"time"
)

const (
	driverName   = "postgres"
	queryTimeout = 5 * time.Second
)

// TrackStore is the postgres backed store.Store implementation
type TrackStore struct {
	db  *pgxpool.Pool
	ctx context.Context
}

// Name returns the driver name
func (s *TrackStore) Name() string {
	return driverName
}

func (s *TrackStore) insertTx(track *model.Track, assignID bool) error {
	c, cancel := context.WithTimeout(s.ctx, queryTimeout)
	defer cancel()
	tx, err := s.db.Begin(c)
	if err != nil {
		return errors.Wrap(err, "Failed to start transaction")
	}
	// Serialise writers so max(track_id)+1 cannot be handed out twice
	if _, err := tx.Exec(c, `LOCK TABLE track IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		_ = tx.Rollback(c)
		return errors.Wrap(err, "Failed to lock track table")
	}
	if assignID || track.ID == 0 {
		var maxID int64
		if err := tx.QueryRow(c, `SELECT COALESCE(MAX(track_id), 0) FROM track`).Scan(&maxID); err != nil {
			_ = tx.Rollback(c)
			return errors.Wrap(err, "Failed to fetch next track_id")
		}
		id, err := model.FollowingID(maxID)
		if err != nil {
			_ = tx.Rollback(c)
			return err
		}
		track.ID = id
	} else {
		var exists bool
		const q = `SELECT EXISTS(SELECT 1 FROM track WHERE track_id = $1)`
		if err := tx.QueryRow(c, q, track.ID).Scan(&exists); err != nil {
			_ = tx.Rollback(c)
			return errors.Wrap(err, "Failed to check for existing track")
		}
		if exists {
			_ = tx.Rollback(c)
			return consts.ErrDuplicate
		}
	}
	const q = `
		INSERT INTO track (track_id, title, artist, duration, last_play) 
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(c, q, track.ID, track.Title, track.Artist, track.Duration, track.LastPlay.UTC()); err != nil {
		_ = tx.Rollback(c)
		return errors.Wrapf(err, "Failed to insert track: %d", track.ID)
	}
	return tx.Commit(c)
}

// Add inserts a track keeping its current id
func (s *TrackStore) Add(track *model.Track) error {
	return s.insertTx(track, false)
}

// Create assigns the next id to the track and inserts it
func (s *TrackStore) Create(track *model.Track) error {
	return s.insertTx(track, true)
}

func scanTrack(row pgx.Row, track *model.Track) error {
	var lastPlay time.Time
	if err := row.Scan(&track.ID, &track.Title, &track.Artist, &track.Duration, &lastPlay); err != nil {
		return err
	}
	track.LastPlay = model.NewTimestamp(lastPlay)
	return nil
}

// Get returns the track matching the id
func (s *TrackStore) Get(track *model.Track, trackID int64) error {
	const q = `SELECT track_id, title, artist, duration, last_play FROM track WHERE track_id = $1`
	c, cancel := context.WithTimeout(s.ctx, queryTimeout)
	defer cancel()
	if err := scanTrack(s.db.QueryRow(c, q, trackID), track); err != nil {
		if err == pgx.ErrNoRows {
			return consts.ErrTrackNotFound
		}
		return errors.Wrapf(err, "Failed to fetch track: %d", trackID)
	}
	return nil
}

// All returns every track in insertion order
func (s *TrackStore) All() ([]model.Track, error) {
	const q = `SELECT track_id, title, artist, duration, last_play FROM track ORDER BY seq`
	c, cancel := context.WithTimeout(s.ctx, queryTimeout)
	defer cancel()
	rows, err := s.db.Query(c, q)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to fetch tracks")
	}
	defer rows.Close()
	tracks := []model.Track{}
	for rows.Next() {
		var t model.Track
		if err := scanTrack(rows, &t); err != nil {
			return nil, errors.Wrap(err, "Failed to scan track")
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// Close the underlying connection pool
func (s *TrackStore) Close() error {
	s.db.Close()
	return nil
}

type initializer struct{}

// New connects to postgres and ensures the schema exists
func (i initializer) New(cfg *config.StoreConfig) (store.Store, error) {
	ctx := context.Background()
	c, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	db, err := pgxpool.Connect(c, cfg.URL(driverName))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to postgres")
	}
	if _, err := db.Exec(c, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Failed to create schema")
	}
	log.Debugf("Connected to postgres track store: %s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
	return &TrackStore{db: db, ctx: ctx}, nil
}

func init() {
	store.AddDriver(driverName, initializer{})
}
