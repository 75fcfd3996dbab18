// Package fetch talks to the third-party identity API: the streaming search
// endpoint and the bio endpoint.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonathan/people-finder/internal/logger"
)

const (
	// DefaultSearchURL is the streaming entity search endpoint.
	DefaultSearchURL = "https://torre.ai/api/entities/_searchStream"
	// DefaultBioURL is the base of the per-username bio endpoint.
	DefaultBioURL = "https://torre.ai/api/genome/bios"
	// DefaultTimeout bounds a whole request, including reading a streamed body.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "Mozilla/5.0 (compatible; PeopleFinder/1.0)"
)

// Options configures the client.
type Options struct {
	SearchURL string
	BioURL    string
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns the public API endpoints with sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		SearchURL: DefaultSearchURL,
		BioURL:    DefaultBioURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client issues requests to the identity API. It never retries.
type Client struct {
	http *resty.Client
	opts Options
}

// NewClient builds a client. Zero-valued options fall back to defaults.
func NewClient(opts *Options) *Client {
	o := *DefaultOptions()
	if opts != nil {
		if opts.SearchURL != "" {
			o.SearchURL = opts.SearchURL
		}
		if opts.BioURL != "" {
			o.BioURL = opts.BioURL
		}
		if opts.Timeout > 0 {
			o.Timeout = opts.Timeout
		}
		if opts.UserAgent != "" {
			o.UserAgent = opts.UserAgent
		}
		o.Headers = opts.Headers
	}

	httpClient := resty.New().
		SetTimeout(o.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", o.UserAgent).
		SetLogger(restyLogger{l: logger.Named("fetch")})
	for key, value := range o.Headers {
		httpClient.SetHeader(key, value)
	}

	return &Client{http: httpClient, opts: o}
}

// Options returns the effective options.
func (c *Client) Options() Options {
	return c.opts
}

// SearchStream posts body to the search endpoint and hands back the response
// body unread. The caller owns the returned reader and must close it.
func (c *Client) SearchStream(ctx context.Context, body any) (io.ReadCloser, error) {
	const op = "search"

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetDoNotParseResponse(true).
		Post(c.opts.SearchURL)
	if err != nil {
		if resp != nil && resp.RawBody() != nil {
			_ = resp.RawBody().Close()
		}
		return nil, networkError(op, c.opts.SearchURL, err)
	}

	raw := resp.RawBody()
	if !resp.IsSuccess() {
		if raw != nil {
			_, _ = io.Copy(io.Discard, io.LimitReader(raw, 4096))
			_ = raw.Close()
		}
		return nil, statusError(op, c.opts.SearchURL, resp.StatusCode(), SearchStatus)
	}
	if raw == nil {
		return nil, &Error{
			Op:      op,
			URL:     c.opts.SearchURL,
			Status:  resp.StatusCode(),
			Code:    CodeServerError,
			Message: "Unable to read response stream",
		}
	}
	return raw, nil
}

// Bio fetches the raw bio document for username.
func (c *Client) Bio(ctx context.Context, username string) ([]byte, error) {
	const op = "bio"
	target := c.BioURL(username)

	resp, err := c.http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return nil, networkError(op, target, err)
	}
	if !resp.IsSuccess() {
		return nil, statusError(op, target, resp.StatusCode(), BioStatus)
	}
	return resp.Body(), nil
}

// BioURL returns the bio endpoint for username.
func (c *Client) BioURL(username string) string {
	return strings.TrimRight(c.opts.BioURL, "/") + "/" + url.PathEscape(username)
}

func statusError(op, target string, status int, mapper StatusMapper) *Error {
	code, message := mapper(status)
	return &Error{
		Op:      op,
		URL:     target,
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// restyLogger routes resty's internal messages through zerolog.
type restyLogger struct {
	l *logger.Logger
}

func (r restyLogger) Errorf(format string, v ...any) {
	r.l.Error().Msg(fmt.Sprintf(format, v...))
}

func (r restyLogger) Warnf(format string, v ...any) {
	r.l.Warn().Msg(fmt.Sprintf(format, v...))
}

func (r restyLogger) Debugf(format string, v ...any) {
	r.l.Debug().Msg(fmt.Sprintf(format, v...))
}
