// Package remote is the engine's only view of the upstream video API: typed
// fetches returning an envelope or a typed failure, no retries.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Source abstracts the upstream API so the sync services can be tested
// against a fake.
type Source interface {
	FetchFeed(ctx context.Context, num int, nextURL string) (*FeedResponse, error)
	FetchCategories(ctx context.Context) (*CategoryListResponse, error)
	FetchByCategory(ctx context.Context, categoryID string) (*FeedResponse, error)
	FetchDetail(ctx context.Context, videoID string) (*VideoDTO, error)
	FetchSearch(ctx context.Context, query string, start, num int) (*SearchResponse, error)
	FetchRelated(ctx context.Context, videoID string) (*FeedResponse, error)
}

const (
	defaultTimeout  = 15 * time.Second
	defaultPageSize = 10

	clientVC     = 6040000
	clientVN     = "6.4.0"
	clientSystem = "Android"
)

// Options configure the HTTP client. Zero values fall back to defaults;
// UDID is generated when empty, matching the upstream device registration.
type Options struct {
	BaseURL string
	Timeout time.Duration
	UDID    string
}

type Client struct {
	base string
	udid string
	http *http.Client
}

var _ Source = (*Client)(nil)

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	udid := opts.UDID
	if udid == "" {
		udid = uuid.NewString()
	}
	return &Client{
		base: opts.BaseURL,
		udid: udid,
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchFeed(ctx context.Context, num int, nextURL string) (*FeedResponse, error) {
	if nextURL != "" {
		// Opaque continuation token from a previous page, used as-is.
		var resp FeedResponse
		if err := c.getURL(ctx, nextURL, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}
	if num <= 0 {
		num = defaultPageSize
	}
	q := c.deviceParams()
	q.Set("num", strconv.Itoa(num))
	q.Set("first", "true")
	var resp FeedResponse
	if err := c.get(ctx, "/api/v2/feed", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) FetchCategories(ctx context.Context) (*CategoryListResponse, error) {
	var resp CategoryListResponse
	if err := c.get(ctx, "/api/v4/categories", url.Values{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) FetchByCategory(ctx context.Context, categoryID string) (*FeedResponse, error) {
	q := c.deviceParams()
	q.Set("id", categoryID)
	var resp FeedResponse
	if err := c.get(ctx, "/api/v4/categories/videoList", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) FetchDetail(ctx context.Context, videoID string) (*VideoDTO, error) {
	var dto VideoDTO
	if err := c.get(ctx, "/api/v2/video/"+url.PathEscape(videoID), url.Values{}, &dto); err != nil {
		return nil, err
	}
	if dto.ID == "" {
		// 2xx with an empty object; the upstream does this for unknown ids.
		return nil, ErrMalformedBody
	}
	return &dto, nil
}

func (c *Client) FetchSearch(ctx context.Context, query string, start, num int) (*SearchResponse, error) {
	if num <= 0 {
		num = 20
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("start", strconv.Itoa(start))
	q.Set("num", strconv.Itoa(num))
	var resp SearchResponse
	if err := c.get(ctx, "/api/v1/search", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) FetchRelated(ctx context.Context, videoID string) (*FeedResponse, error) {
	q := url.Values{}
	q.Set("id", videoID)
	var resp FeedResponse
	if err := c.get(ctx, "/api/v4/video/related", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) deviceParams() url.Values {
	q := url.Values{}
	q.Set("udid", c.udid)
	q.Set("vc", strconv.Itoa(clientVC))
	q.Set("vn", clientVN)
	q.Set("deviceModel", clientSystem)
	q.Set("system", clientSystem)
	return q
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return c.getURL(ctx, u, out)
}

func (c *Client) getURL(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue) && ue.Timeout()
}
