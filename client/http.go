package client

import (
	"bytes"
	"encoding/json"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io/ioutil"
	"net"
	"net/http"
	"strings"
	"time"
)

// NewHTTPClient returns a http.Client with reasonable default configuration values, notably
// actual timeout values.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: time.Second * 5,
			}).DialContext,
			TLSHandshakeTimeout: time.Second * 5,
		},
		CheckRedirect: nil,
		Jar:           nil,
		Timeout:       time.Second * 5,
	}
}

// Opts defines the request and response parameters of a HTTP operation
type Opts struct {
	Method  string
	Path    string
	JSON    interface{}
	Data    []byte
	Headers map[string]string
	Recv    interface{}
}

// Exec handles http requests & response initialization and (un)marshalling of JSON payloads.
// If JSON is not nil, it will be JSON encoded before sending to the host, otherwise Data will
// be sent instead.
// If Recv is not nil the response will be unmarshalled into its address
// If a response gets a non-2xx response code, it will exit early and not read the body. The http.Response
// will however get returned in that case.
func (c *Client) Exec(opts Opts) (*http.Response, error) {
	var err error
	var payload []byte
	if opts.JSON != nil {
		payload, err = json.Marshal(opts.JSON)
		if err != nil {
			return nil, errors.Wrap(err, "Could not encode request body")
		}
	} else {
		payload = opts.Data
	}
	req, err2 := http.NewRequest(opts.Method, c.u(opts.Path), bytes.NewReader(payload))
	if err2 != nil {
		return nil, err2
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	resp, err3 := c.client.Do(req)
	if err3 != nil {
		return nil, err3
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warnf("Failed to close response body: %s", err.Error())
		}
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Let the caller handle this condition
		return resp, consts.ErrInvalidResponseCode
	}
	if opts.Recv != nil {
		recvPayload, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return resp, errors.Wrapf(err, "Could not read response body")
		}
		if err := json.Unmarshal(recvPayload, opts.Recv); err != nil {
			return resp, errors.Wrapf(err, "Could not decode response body")
		}
	}
	return resp, nil
}

func (c *Client) u(path string) string {
	return strings.TrimRight(c.baseURL, "/") + path
}
