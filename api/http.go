// Package api exposes the track library over HTTP
package api

import (
	"crypto/tls"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leighmacdonald/tracks/library"
	log "github.com/sirupsen/logrus"
	"github.com/toorop/gin-logrus"
	"net/http"
	"time"
)

// RequestIDHeader is echoed back to the client, a new id is generated when missing
const RequestIDHeader = "X-Request-ID"

// newRouter creates and returns a newly configured router instance using
// the default middleware handlers.
func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(requestID, ginlogrus.Logger(log.StandardLogger()), gin.Recovery())
	return router
}

func requestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Set(RequestIDHeader, id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

func noRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, "Not found")
}

// NewAPIHandler configures a router to handle track API requests
func NewAPIHandler(lib *library.Library) *gin.Engine {
	r := newRouter()
	h := TrackAPI{
		lib: lib,
	}
	r.GET("/ping", h.ping)
	r.GET("/tracks/", h.trackList)
	r.GET("/tracks/:id/", h.trackGet)
	r.POST("/tracks/", h.trackCreate)
	r.NoRoute(noRoute)
	return r
}

// HTTPOpts is used to configure a http.Server instance
type HTTPOpts struct {
	ListenAddr     string
	UseTLS         bool
	CertFile       string
	KeyFile        string
	Handler        http.Handler
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxHeaderBytes int
	TLSConfig      *tls.Config
}

// DefaultHTTPOpts returns a default set of options for http.Server instances
func DefaultHTTPOpts() *HTTPOpts {
	return &HTTPOpts{
		ListenAddr:     ":8000",
		UseTLS:         false,
		Handler:        nil,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
		TLSConfig:      nil,
	}
}

// NewHTTPServer will configure and return a *http.Server suitable for serving requests.
// This should be used over the default ListenAndServe options as they do not set certain
// parameters, notably timeouts.
func NewHTTPServer(opts *HTTPOpts) *http.Server {
	tlsCfg := opts.TLSConfig
	if opts.UseTLS && tlsCfg == nil {
		tlsCfg = &tls.Config{
			MinVersion:       tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
		}
	}
	return &http.Server{
		Addr:           opts.ListenAddr,
		Handler:        opts.Handler,
		TLSConfig:      tlsCfg,
		ReadTimeout:    opts.ReadTimeout,
		WriteTimeout:   opts.WriteTimeout,
		MaxHeaderBytes: opts.MaxHeaderBytes,
	}
}

// ListenAndServe starts srv using TLS when enabled in opts
func ListenAndServe(srv *http.Server, opts *HTTPOpts) error {
	if opts.UseTLS {
		return srv.ListenAndServeTLS(opts.CertFile, opts.KeyFile)
	}
	return srv.ListenAndServe()
}
