// Package client provides a HTTP client for the track API
package client

import (
	"fmt"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

// Client talks to a running track API
type Client struct {
	baseURL string
	client  *http.Client
}

// New returns a client for the API located at baseURL, eg: http://localhost:8000
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  NewHTTPClient(),
	}
}

// PingResponse is returned by the API on a successful ping
type PingResponse struct {
	Pong string `json:"pong"`
}

// Ping checks that the API is up and responding
func (c *Client) Ping() error {
	t0 := time.Now()
	var pong PingResponse
	if _, err := c.Exec(Opts{Method: http.MethodGet, Path: "/ping", Recv: &pong}); err != nil {
		return err
	}
	if pong.Pong != "ok" {
		return errors.New("invalid response to ping")
	}
	log.Debugf("Ping successful: %s", time.Since(t0).String())
	return nil
}

// Tracks fetches every track known to the API
func (c *Client) Tracks() ([]model.Track, error) {
	tracks := []model.Track{}
	if _, err := c.Exec(Opts{Method: http.MethodGet, Path: "/tracks/", Recv: &tracks}); err != nil {
		return nil, err
	}
	return tracks, nil
}

// Track fetches a single track, consts.ErrTrackNotFound is returned for unknown ids
func (c *Client) Track(trackID int64) (model.Track, error) {
	var t model.Track
	resp, err := c.Exec(Opts{Method: http.MethodGet, Path: fmt.Sprintf("/tracks/%d/", trackID), Recv: &t})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return t, consts.ErrTrackNotFound
		}
		return t, err
	}
	return t, nil
}

// TrackAdd creates a new track, the returned track holds the id assigned by the server
func (c *Client) TrackAdd(t model.Track) (model.Track, error) {
	var created model.Track
	resp, err := c.Exec(Opts{Method: http.MethodPost, Path: "/tracks/", JSON: t, Recv: &created})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			return created, errors.Wrap(consts.ErrInvalidTrack, "Track rejected by server")
		}
		return created, err
	}
	return created, nil
}
