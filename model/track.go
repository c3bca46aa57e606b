// Package model defines the track record served by the API and stored by the store drivers
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"math"
	"strings"
	"time"
)

// TimestampFormat is the layout used when writing timestamps. It carries no zone
// and is always rendered in UTC.
const TimestampFormat = "2006-01-02T15:04:05"

var timestampLayouts = []string{
	time.RFC3339Nano,
	TimestampFormat,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
}

// Timestamp is a time.Time which accepts both zoned and naive date times.
// Naive values are interpreted as UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to second precision and converts it to UTC
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

// ParseTimestamp parses any of the accepted timestamp layouts
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, errors.Errorf("invalid timestamp: %q", s)
}

// String implements fmt.Stringer
func (ts Timestamp) String() string {
	return ts.UTC().Format(TimestampFormat)
}

// MarshalJSON implements json.Marshaler
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "timestamp must be a string")
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (ts Timestamp) MarshalYAML() (interface{}, error) {
	return ts.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (ts *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseTimestamp(node.Value)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Value implements the driver.Valuer interface
func (ts Timestamp) Value() (driver.Value, error) {
	return ts.UTC(), nil
}

// Scan implements the sql.Scanner interface for conversion to our custom type
func (ts *Timestamp) Scan(v interface{}) error {
	switch vt := v.(type) {
	case time.Time:
		*ts = NewTimestamp(vt)
		return nil
	case []byte:
		return ts.scanString(string(vt))
	case string:
		return ts.scanString(vt)
	default:
		return fmt.Errorf("failed to convert value to timestamp: %T", v)
	}
}

func (ts *Timestamp) scanString(s string) error {
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Track is a single song known to the catalogue
type Track struct {
	// ID is assigned by the store, any value sent with a create request is discarded
	ID       int64     `json:"id" yaml:"id" db:"track_id"`
	Title    string    `json:"title" yaml:"title" db:"title" binding:"required"`
	Artist   string    `json:"artist" yaml:"artist" db:"artist" binding:"required"`
	Duration float64   `json:"duration" yaml:"duration" db:"duration" binding:"gte=0"`
	LastPlay Timestamp `json:"last_play" yaml:"last_play" db:"last_play"`
}

// Validate checks the fields which cannot be expressed with binding tags
func (t Track) Validate() error {
	if t.ID < 0 {
		return errors.Wrapf(consts.ErrInvalidTrack, "id must be positive: %d", t.ID)
	}
	if t.LastPlay.IsZero() {
		return errors.Wrap(consts.ErrInvalidTrack, "last_play is required")
	}
	return nil
}

// String implements fmt.Stringer
func (t Track) String() string {
	return fmt.Sprintf("%d: %s - %s", t.ID, t.Artist, t.Title)
}

// NextID returns the identifier following the largest one in tracks.
// An empty collection starts at 1. consts.ErrIDExhausted is returned once
// math.MaxInt64 is in use.
func NextID(tracks []Track) (int64, error) {
	maxID := int64(0)
	for _, t := range tracks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return FollowingID(maxID)
}

// FollowingID returns maxID + 1 or consts.ErrIDExhausted when it would overflow
func FollowingID(maxID int64) (int64, error) {
	if maxID == math.MaxInt64 {
		return 0, consts.ErrIDExhausted
	}
	return maxID + 1, nil
}
