package api

import (
	"github.com/gin-gonic/gin"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/library"
	"github.com/leighmacdonald/tracks/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strconv"
)

// ErrorResponse is returned for rejected requests
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// PingResponse is returned by the ping endpoint
type PingResponse struct {
	Pong string `json:"pong"`
}

// TrackAPI implements the track endpoints over a library.Library
type TrackAPI struct {
	lib *library.Library
}

func (a *TrackAPI) ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Pong: "ok"})
}

func (a *TrackAPI) trackList(c *gin.Context) {
	tracks, err := a.lib.List()
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tracks)
}

func (a *TrackAPI) trackGet(c *gin.Context) {
	trackID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: "id must be an integer"})
		return
	}
	t, err := a.lib.Get(trackID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (a *TrackAPI) trackCreate(c *gin.Context) {
	var t model.Track
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: err.Error()})
		return
	}
	created, err := a.lib.Create(t)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// fail maps library errors onto response codes
func (a *TrackAPI) fail(c *gin.Context, err error) {
	switch errors.Cause(err) {
	case consts.ErrTrackNotFound:
		c.JSON(http.StatusNotFound, consts.ErrTrackNotFound.Error())
	case consts.ErrInvalidTrack:
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: err.Error()})
	default:
		log.Errorf("Request %s failed: %s", c.GetString(RequestIDHeader), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Internal server error"})
	}
}
