// Package freefire provides client for Free Fire like, player lookup and outfit image APIs
package freefire

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/eientei/likebot/util/httputil/middleware"

	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout = 10 * time.Second
	identityTTL    = 10 * time.Minute
	maxBodySize    = 1 << 20
	maxImageSize   = 8 << 20
	userAgent      = "likebot/1.0 golang free fire api client"
	headerAPIKey   = "x-rapidapi-key"
	headerAPIHost  = "x-rapidapi-host"
)

var (
	// ErrNotFound is returned when identifier could not be resolved to an account
	ErrNotFound = errors.New("player not found")
	// ErrProfileUnavailable is returned when player data is missing or malformed
	ErrProfileUnavailable = errors.New("player data unavailable")
	// ErrNotConfigured is returned when endpoint for requested operation is not set
	ErrNotConfigured = errors.New("endpoint not configured")
)

// Config provides configuration for free fire api client
type Config struct {
	HTTPClient *http.Client
	Log        logrus.FieldLogger
	LikeURI    string
	ResolveURI string
	ProfileURI string
	ImageURI   string
	APIKey     string
	APIHost    string
	Timeout    time.Duration
	Rate       float64
	Burst      int
}

// Client implements free fire API client
type Client struct {
	identities *cache.Cache
	Config
}

// New creates new API client. Unless HTTPClient is provided, requests go through
// logging, throttling and static header middlewares, the latter carrying API key if configured.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.HTTPClient == nil {
		headers := map[string]string{
			"user-agent": userAgent,
		}

		if cfg.APIKey != "" {
			headers[headerAPIKey] = cfg.APIKey
			headers[headerAPIHost] = cfg.APIHost
		}

		cfg.HTTPClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &middleware.Transport{
				Middlewares: []middleware.Client{
					&middleware.ClientLogger{Log: cfg.Log},
					middleware.NewClientRateLimit(cfg.Rate, cfg.Burst),
					&middleware.ClientStaticHeaders{Set: headers},
				},
				Transport: http.DefaultTransport,
			},
		}
	}

	return &Client{
		Config:     *cfg,
		identities: cache.New(identityTTL, 2*identityTTL),
	}
}

// Close releases idle connections held by client
func (client *Client) Close() {
	client.HTTPClient.CloseIdleConnections()
	client.identities.Flush()
}

func endpoint(base, path string, query url.Values) (string, error) {
	if base == "" {
		return "", ErrNotConfigured
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(err, "parsing endpoint")
	}

	if path != "" {
		u.Path = singleJoin(u.Path, path)
	}

	q := u.Query()

	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	u.RawQuery = q.Encode()

	return u.String(), nil
}

func singleJoin(a, b string) string {
	for len(a) > 0 && a[len(a)-1] == '/' {
		a = a[:len(a)-1]
	}

	for len(b) > 0 && b[0] == '/' {
		b = b[1:]
	}

	return a + "/" + b
}

// get performs GET request returning status code and at most limit bytes of body
func (client *Client) get(ctx context.Context, uri string, limit int64) (status int, body []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := client.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}

	defer func() {
		if e := resp.Body.Close(); err == nil {
			err = e
		}
	}()

	body, err = ioutil.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, body, nil
}
