// Package bsky provides a client for posting to and reading from Bluesky.
package bsky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bluetrivia/bluetrivia/internal/logger"
	"github.com/bluetrivia/bluetrivia/internal/models"
)

// PostRef identifies a post on the network. URI is the AT-URI, CID the
// content hash needed for replies and likes.
type PostRef struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// Rkey extracts the record key from the AT-URI, the last path segment.
// Needed to delete a record.
func (p PostRef) Rkey() string {
	idx := strings.LastIndex(p.URI, "/")
	if idx < 0 {
		return ""
	}
	return p.URI[idx+1:]
}

// Reply is one reply harvested from a post's thread
type Reply struct {
	Handle      string
	DisplayName string
	Text        string
	Ref         PostRef
	CreatedAt   time.Time
}

// Client defines the interface for Bluesky operations
type Client interface {
	// Login authenticates and establishes a session
	Login(ctx context.Context) error
	// Publish creates a standalone post with optional attached images
	Publish(ctx context.Context, text string, media []models.MediaItem) (PostRef, error)
	// PublishReply creates a post in reply to parent, threading under root
	PublishReply(ctx context.Context, text string, root, parent PostRef, media []models.MediaItem) (PostRef, error)
	// FetchReplies returns the direct replies to a post, oldest first
	FetchReplies(ctx context.Context, post PostRef) ([]Reply, error)
	// Like records a like on a post
	Like(ctx context.Context, post PostRef) error
	// Retract deletes a post previously created by this account
	Retract(ctx context.Context, post PostRef) error
	// Handle returns the authenticated account handle
	Handle() string
}

// HTTPClient talks XRPC over HTTP to a Bluesky PDS
type HTTPClient struct {
	host       string
	handle     string
	password   string
	httpClient *http.Client
	log        logger.Logger

	accessJwt string
	did       string
}

// NewHTTPClient creates a Bluesky client. Host is the PDS base URL,
// e.g. https://bsky.social.
func NewHTTPClient(host, handle, password string, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		host:     strings.TrimRight(host, "/"),
		handle:   handle,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// NewHTTPClientWithHTTPClient creates a Bluesky client with a custom http.Client
func NewHTTPClientWithHTTPClient(host, handle, password string, httpClient *http.Client, log logger.Logger) *HTTPClient {
	c := NewHTTPClient(host, handle, password, log)
	c.httpClient = httpClient
	return c
}

// Handle returns the authenticated account handle
func (c *HTTPClient) Handle() string {
	return c.handle
}

type sessionResponse struct {
	AccessJwt string `json:"accessJwt"`
	Did       string `json:"did"`
	Handle    string `json:"handle"`
}

type xrpcError struct {
	ErrorCode string `json:"error"`
	Message   string `json:"message"`
}

// Login authenticates with the PDS and stores the session token
func (c *HTTPClient) Login(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"identifier": c.handle,
		"password":   c.password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.host+"/xrpc/com.atproto.server.createSession", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to Bluesky: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Bluesky login returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var session sessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return fmt.Errorf("failed to parse session response: %w", err)
	}

	c.accessJwt = session.AccessJwt
	c.did = session.Did

	c.log.Info("Bluesky login successful", "handle", c.handle, "did", c.did)
	return nil
}

// doProcedure executes an authenticated XRPC procedure call, logging
// in first when no session exists and retrying once on an expired token
func (c *HTTPClient) doProcedure(ctx context.Context, nsid string, payload, response any) error {
	if c.accessJwt == "" {
		if err := c.Login(ctx); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	c.log.Debug("Bluesky request", "method", "POST", "nsid", nsid)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.host+"/xrpc/"+nsid, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessJwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to Bluesky: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("Bluesky response", "nsid", nsid, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		var xerr xrpcError
		if json.Unmarshal(respBody, &xerr) == nil && xerr.ErrorCode == "ExpiredToken" {
			c.log.Debug("Session expired, re-authenticating")
			c.accessJwt = ""
			if err := c.Login(ctx); err != nil {
				return fmt.Errorf("failed to re-authenticate: %w", err)
			}
			return c.doProcedure(ctx, nsid, payload, response)
		}
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Bluesky %s returned status %d: %s", nsid, resp.StatusCode, string(respBody))
	}

	if response != nil {
		if err := json.Unmarshal(respBody, response); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

type blobRef struct {
	Type     string `json:"$type"`
	Ref      any    `json:"ref"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

type uploadBlobResponse struct {
	Blob json.RawMessage `json:"blob"`
}

// uploadBlob pushes raw image bytes to the PDS and returns the opaque
// blob reference to embed in a post record
func (c *HTTPClient) uploadBlob(ctx context.Context, media models.MediaItem) (json.RawMessage, error) {
	if c.accessJwt == "" {
		if err := c.Login(ctx); err != nil {
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.host+"/xrpc/com.atproto.repo.uploadBlob", bytes.NewReader(media.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", media.MimeType)
	req.Header.Set("Authorization", "Bearer "+c.accessJwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Bluesky: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Bluesky uploadBlob returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var upload uploadBlobResponse
	if err := json.Unmarshal(respBody, &upload); err != nil {
		return nil, fmt.Errorf("failed to parse upload response: %w", err)
	}
	return upload.Blob, nil
}

type createRecordResponse struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// buildPostRecord assembles an app.bsky.feed.post record
func (c *HTTPClient) buildPostRecord(ctx context.Context, text string, root, parent *PostRef, media []models.MediaItem) (map[string]any, error) {
	record := map[string]any{
		"$type":     "app.bsky.feed.post",
		"text":      text,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}

	if parent != nil {
		record["reply"] = map[string]any{
			"root":   map[string]string{"uri": root.URI, "cid": root.CID},
			"parent": map[string]string{"uri": parent.URI, "cid": parent.CID},
		}
	}

	if len(media) > 0 {
		images := make([]map[string]any, 0, len(media))
		for _, item := range media {
			blob, err := c.uploadBlob(ctx, item)
			if err != nil {
				return nil, err
			}
			images = append(images, map[string]any{
				"image": blob,
				"alt":   item.AltText,
			})
		}
		record["embed"] = map[string]any{
			"$type":  "app.bsky.embed.images",
			"images": images,
		}
	}

	return record, nil
}

// Publish creates a standalone post with optional attached images
func (c *HTTPClient) Publish(ctx context.Context, text string, media []models.MediaItem) (PostRef, error) {
	record, err := c.buildPostRecord(ctx, text, nil, nil, media)
	if err != nil {
		return PostRef{}, err
	}
	return c.createPost(ctx, record)
}

// PublishReply creates a post in reply to parent, threading under root
func (c *HTTPClient) PublishReply(ctx context.Context, text string, root, parent PostRef, media []models.MediaItem) (PostRef, error) {
	record, err := c.buildPostRecord(ctx, text, &root, &parent, media)
	if err != nil {
		return PostRef{}, err
	}
	return c.createPost(ctx, record)
}

func (c *HTTPClient) createPost(ctx context.Context, record map[string]any) (PostRef, error) {
	var created createRecordResponse
	err := c.doProcedure(ctx, "com.atproto.repo.createRecord", map[string]any{
		"repo":       c.did,
		"collection": "app.bsky.feed.post",
		"record":     record,
	}, &created)
	if err != nil {
		return PostRef{}, err
	}
	return PostRef{URI: created.URI, CID: created.CID}, nil
}

type threadResponse struct {
	Thread struct {
		Replies []struct {
			Post struct {
				URI    string `json:"uri"`
				CID    string `json:"cid"`
				Author struct {
					Handle      string `json:"handle"`
					DisplayName string `json:"displayName"`
				} `json:"author"`
				Record struct {
					Text      string    `json:"text"`
					CreatedAt time.Time `json:"createdAt"`
				} `json:"record"`
			} `json:"post"`
		} `json:"replies"`
	} `json:"thread"`
}

// FetchReplies returns the direct replies to a post, oldest first
func (c *HTTPClient) FetchReplies(ctx context.Context, post PostRef) ([]Reply, error) {
	if c.accessJwt == "" {
		if err := c.Login(ctx); err != nil {
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	params := url.Values{}
	params.Set("uri", post.URI)
	params.Set("depth", "1")

	reqURL := c.host + "/xrpc/app.bsky.feed.getPostThread?" + params.Encode()

	c.log.Debug("Bluesky request", "method", "GET", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessJwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Bluesky: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Bluesky getPostThread returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var thread threadResponse
	if err := json.Unmarshal(respBody, &thread); err != nil {
		return nil, fmt.Errorf("failed to parse thread response: %w", err)
	}

	replies := make([]Reply, 0, len(thread.Thread.Replies))
	for _, node := range thread.Thread.Replies {
		replies = append(replies, Reply{
			Handle:      node.Post.Author.Handle,
			DisplayName: node.Post.Author.DisplayName,
			Text:        node.Post.Record.Text,
			Ref:         PostRef{URI: node.Post.URI, CID: node.Post.CID},
			CreatedAt:   node.Post.Record.CreatedAt,
		})
	}

	// The API returns replies newest first; arrival order matters here.
	for i, j := 0, len(replies)-1; i < j; i, j = i+1, j-1 {
		replies[i], replies[j] = replies[j], replies[i]
	}

	return replies, nil
}

// Like records a like on a post
func (c *HTTPClient) Like(ctx context.Context, post PostRef) error {
	return c.doProcedure(ctx, "com.atproto.repo.createRecord", map[string]any{
		"repo":       c.did,
		"collection": "app.bsky.feed.like",
		"record": map[string]any{
			"$type":     "app.bsky.feed.like",
			"subject":   map[string]string{"uri": post.URI, "cid": post.CID},
			"createdAt": time.Now().UTC().Format(time.RFC3339),
		},
	}, nil)
}

// Retract deletes a post previously created by this account
func (c *HTTPClient) Retract(ctx context.Context, post PostRef) error {
	rkey := post.Rkey()
	if rkey == "" {
		return fmt.Errorf("cannot retract post with malformed URI %q", post.URI)
	}
	return c.doProcedure(ctx, "com.atproto.repo.deleteRecord", map[string]any{
		"repo":       c.did,
		"collection": "app.bsky.feed.post",
		"rkey":       rkey,
	}, nil)
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
