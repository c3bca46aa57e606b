// Package redis provides a redis backed track store.
//
// Layout:
//
//	t:tracks   hash, track_id -> JSON encoded track
//	t:order    list of track_id in insertion order
//	t:next_id  counter holding the largest known track_id
package redis

import (
	"encoding/json"
	"fmt"
	"github.com/go-redis/redis/v7"
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/leighmacdonald/tracks/store"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"math"
	"strconv"
)

const (
	driverName = "redis"

	keyTracks = "t:tracks"
	keyOrder  = "t:order"
	keyNextID = "t:next_id"
)

// addScript inserts a track if its id is unused, appends it to the ordering list and
// raises the id counter when required. Returns 0 when the id already exists.
var addScript = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 0 then
	return 0
end
redis.call('RPUSH', KEYS[2], ARGV[1])
local current = tonumber(redis.call('GET', KEYS[3]) or '0')
if tonumber(ARGV[1]) > current then
	redis.call('SET', KEYS[3], ARGV[1])
end
return 1
`)

// TrackStore is the redis backed store.Store implementation
type TrackStore struct {
	client *redis.Client
}

// Name returns the driver name
func (s *TrackStore) Name() string {
	return driverName
}

func (s *TrackStore) insert(track *model.Track) error {
	b, err := json.Marshal(track)
	if err != nil {
		return errors.Wrap(err, "Failed to encode track")
	}
	added, err := addScript.Run(s.client, []string{keyTracks, keyOrder, keyNextID},
		track.ID, string(b)).Int()
	if err != nil {
		return errors.Wrapf(err, "Failed to insert track: %d", track.ID)
	}
	if added == 0 {
		return consts.ErrDuplicate
	}
	return nil
}

// Add inserts a track keeping its current id
func (s *TrackStore) Add(track *model.Track) error {
	if track.ID == 0 {
		return s.Create(track)
	}
	return s.insert(track)
}

// Create assigns the next id to the track and inserts it
func (s *TrackStore) Create(track *model.Track) error {
	id, err := s.client.Incr(keyNextID).Result()
	if err != nil {
		// INCR fails without modifying a counter already at the maximum
		if current, errGet := s.client.Get(keyNextID).Int64(); errGet == nil && current == math.MaxInt64 {
			return consts.ErrIDExhausted
		}
		return errors.Wrap(err, "Failed to fetch next track_id")
	}
	track.ID = id
	return s.insert(track)
}

// Get returns the track matching the id
func (s *TrackStore) Get(track *model.Track, trackID int64) error {
	v, err := s.client.HGet(keyTracks, strconv.FormatInt(trackID, 10)).Result()
	if err != nil {
		if err == redis.Nil {
			return consts.ErrTrackNotFound
		}
		return errors.Wrapf(err, "Failed to fetch track: %d", trackID)
	}
	if err := json.Unmarshal([]byte(v), track); err != nil {
		return errors.Wrapf(err, "Failed to decode track: %d", trackID)
	}
	return nil
}

// All returns every track in insertion order
func (s *TrackStore) All() ([]model.Track, error) {
	ids, err := s.client.LRange(keyOrder, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to fetch track order")
	}
	tracks := []model.Track{}
	if len(ids) == 0 {
		return tracks, nil
	}
	values, err := s.client.HMGet(keyTracks, ids...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to fetch tracks")
	}
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			log.Warnf("Missing track data for track_id: %s", ids[i])
			continue
		}
		var t model.Track
		if err := json.Unmarshal([]byte(str), &t); err != nil {
			return nil, errors.Wrapf(err, "Failed to decode track: %s", ids[i])
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// Close the underlying redis client
func (s *TrackStore) Close() error {
	return s.client.Close()
}

// NewTrackStore creates a store using an existing redis client
func NewTrackStore(client *redis.Client) *TrackStore {
	return &TrackStore{client: client}
}

type initializer struct{}

// New connects to the redis server described by cfg. Database must be numeric.
func (i initializer) New(cfg *config.StoreConfig) (store.Store, error) {
	db := 0
	if cfg.Database != "" {
		v, err := strconv.Atoi(cfg.Database)
		if err != nil {
			return nil, errors.Wrapf(consts.ErrInvalidConfig, "Invalid redis database: %s", cfg.Database)
		}
		db = v
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       db,
	})
	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "Failed to connect to redis")
	}
	return NewTrackStore(client), nil
}

func init() {
	store.AddDriver(driverName, initializer{})
}
