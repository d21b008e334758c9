// Package client is the Go counterpart of the web UI's feed plumbing:
// it fetches pages from the feed API, keeps them in a feedcache.Store,
// and applies like/create results to every open feed locally.
//
// The client assumes the host serializes calls the way a UI event loop
// does; it carries no internal locking. Methods that mutate the cache
// do so only after the server confirmed the mutation, and leave the
// cache untouched on any failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"chirp/internal/feed"
	"chirp/internal/feedcache"
	"chirp/internal/identity"
	"chirp/internal/posts"
)

var (
	// ErrUnauthorized is returned when a protected call lacks identity
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited is returned when the write path throttled the call
	ErrRateLimited = errors.New("rate limited")
	// ErrNotFound is returned when the target post does not exist
	ErrNotFound = errors.New("not found")
)

// Client talks to the feed API and maintains the local feed cache
type Client struct {
	baseURL    string
	httpClient *http.Client
	viewer     identity.Viewer

	store     *feedcache.Store
	cursors   map[feed.Filter]feed.Cursor
	hasCursor map[feed.Filter]bool
	exhausted map[feed.Filter]bool
}

// New creates a client for the given API base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		store:      feedcache.New(),
		cursors:    make(map[feed.Filter]feed.Cursor),
		hasCursor:  make(map[feed.Filter]bool),
		exhausted:  make(map[feed.Filter]bool),
	}
}

// SetViewer switches the acting identity and drops all cached feeds:
// liked_by_me and the following filter are viewer-relative, so pages
// fetched for one viewer are meaningless for another.
func (c *Client) SetViewer(viewer identity.Viewer) {
	c.viewer = viewer
	c.store = feedcache.New()
	c.cursors = make(map[feed.Filter]feed.Cursor)
	c.hasCursor = make(map[feed.Filter]bool)
	c.exhausted = make(map[feed.Filter]bool)
}

// Posts returns the flattened cached view of a feed
func (c *Client) Posts(filter feed.Filter) []feed.Post {
	return c.store.Posts(filter)
}

// HasMore reports whether the feed has pages left to fetch
func (c *Client) HasMore(filter feed.Filter) bool {
	return !c.exhausted[filter]
}

// FetchNextPage fetches the next page for the filter and appends it to
// that filter's partition. The response targets the partition of the
// filter the request was issued for, so a response arriving after the
// viewer switched feeds cannot corrupt the now-active partition.
func (c *Client) FetchNextPage(ctx context.Context, filter feed.Filter) error {
	if c.exhausted[filter] {
		return nil
	}

	query := url.Values{}
	switch filter.Kind {
	case feed.FilterFollowing:
		query.Set("only_following", "true")
	case feed.FilterByAuthor:
		query.Set("user_id", filter.AuthorID.String())
	}
	if c.hasCursor[filter] {
		query.Set("cursor", c.cursors[filter].Encode())
	}
	query.Set("limit", strconv.Itoa(feed.DefaultLimit))

	var page feed.Page
	if err := c.do(ctx, http.MethodGet, "/api/feed?"+query.Encode(), nil, &page); err != nil {
		return err
	}

	c.store.AppendPage(filter, page)
	if page.NextCursor != nil {
		c.cursors[filter] = *page.NextCursor
		c.hasCursor[filter] = true
	} else {
		c.exhausted[filter] = true
	}
	return nil
}

// ToggleLike flips the viewer's like on a post, then patches every
// occurrence of the post across all cached partitions with the
// confirmed direction of change.
func (c *Client) ToggleLike(ctx context.Context, postID uuid.UUID) (bool, error) {
	var resp struct {
		AddedLike bool `json:"added_like"`
	}
	err := c.do(ctx, http.MethodPost, "/api/posts/"+postID.String()+"/like", nil, &resp)
	if err != nil {
		return false, err
	}

	countModifier := int64(-1)
	if resp.AddedLike {
		countModifier = 1
	}
	c.store.PatchPost(postID, func(p feed.Post) feed.Post {
		p.LikeCount += countModifier
		p.LikedByMe = resp.AddedLike
		return p
	})

	return resp.AddedLike, nil
}

// CreatePost creates a post and prepends a synthesized record to the
// head of the default feed. Filtered partitions are left alone; their
// next fetch picks the post up under their own filter semantics.
func (c *Client) CreatePost(ctx context.Context, content string) (feed.Post, error) {
	body, err := json.Marshal(posts.CreateRequest{Content: content})
	if err != nil {
		return feed.Post{}, err
	}

	var created posts.Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", body, &created); err != nil {
		return feed.Post{}, err
	}

	synthesized := feed.Post{
		ID:        created.ID,
		Content:   created.Content,
		CreatedAt: created.CreatedAt,
		LikeCount: 0,
		LikedByMe: false,
		User: feed.User{
			ID:    c.viewer.UserID,
			Name:  c.viewer.Name,
			Image: c.viewer.Image,
		},
	}
	c.store.PrependToDefault(synthesized)

	return synthesized, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !c.viewer.Anonymous() {
		req.Header.Set("X-User-ID", c.viewer.UserID.String())
		if c.viewer.Name != "" {
			req.Header.Set("X-User-Name", c.viewer.Name)
		}
		if c.viewer.Image != "" {
			req.Header.Set("X-User-Image", c.viewer.Image)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func statusError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusNotFound:
		return ErrNotFound
	}
	if payload.Error != "" {
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("api error (%d)", resp.StatusCode)
}
