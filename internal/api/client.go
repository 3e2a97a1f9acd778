// Package api is the REST client for the publishing backend. It owns
// transport, bearer auth, and error normalization; callers see typed
// results and the error taxonomy in errors.go, never raw responses.
package api

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
)

// TokenFunc supplies the bearer credential per request, so a login during
// the process's lifetime takes effect without rebuilding the client.
type TokenFunc func() string

type Client struct {
	rc  *resty.Client
	log *log.Logger
}

type Option func(*Client)

// WithDebug enables request/response dumps.
func WithDebug() Option {
	return func(c *Client) {
		c.rc.SetDebug(true)
		c.log.SetLevel(log.DebugLevel)
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.rc.SetTimeout(d) }
}

func New(baseURL string, token TokenFunc, opts ...Option) *Client {
	c := &Client{
		log: log.NewWithOptions(os.Stderr, log.Options{Prefix: "api", Level: log.WarnLevel}),
	}
	c.rc = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry transport failures and transient server statuses only;
			// 4xx are final.
			if err != nil {
				return true
			}
			if r == nil {
				return false
			}
			code := r.StatusCode()
			return code >= 500 || code == 429
		})

	c.rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if t := token(); t != "" {
			req.SetHeader("Authorization", "Bearer "+t)
		}
		return nil
	})
	c.rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.log.Debug("request",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"took", resp.Time())
		return nil
	})

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// listEnvelope is the backend's paged list wrapper.
type listEnvelope[T any] struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Data       []T `json:"data"`
}
