// Package stream consumes the camera server's MJPEG feed.
//
// The feed is a multipart/x-mixed-replace resource; the client keeps only
// the most recent JPEG so consumers (the dashboard, snapshot previews)
// always read current pixels and never queue behind the wire.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/picamlabs/go-camdeck/internal/httpc"
	"github.com/picamlabs/go-camdeck/internal/log"
)

// ErrNoFrame is returned when no frame has arrived yet.
var ErrNoFrame = errors.New("stream: no frame available")

// Client reads the MJPEG feed and buffers the latest frame.
type Client struct {
	url  string
	http *http.Client

	mu     sync.RWMutex
	latest []byte

	frames atomic.Int64

	// OnFrame is called with every decoded frame part. The slice is only
	// valid for the duration of the call. Optional.
	OnFrame func([]byte)
}

// NewClient creates a client for the feed at url (already cache-busted by
// the camera service's StreamURL).
func NewClient(url string) *Client {
	return &Client{
		url: url,
		// The shared client's total-request timeout would kill a
		// long-lived stream; reuse its transport without it.
		http: &http.Client{Transport: httpc.Client.Transport},
	}
}

// Run reads the feed until the context is cancelled or the server closes
// the stream. Callers that want reconnection loop over Run.
func (c *Client) Run(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("stream: connect failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream: unexpected status %d", resp.StatusCode)
	}

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/x-mixed-replace" || params["boundary"] == "" {
		return fmt.Errorf("stream: not an MJPEG feed (content-type %q)",
			resp.Header.Get("Content-Type"))
	}

	log.Debug("stream connected", "url", c.url)

	reader := multipart.NewReader(resp.Body, params["boundary"])
	for {
		part, err := reader.NextPart()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("stream: read failed: %w", err)
		}

		frame, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			continue
		}
		if len(frame) == 0 {
			continue
		}

		c.mu.Lock()
		c.latest = frame
		c.mu.Unlock()
		c.frames.Add(1)

		if c.OnFrame != nil {
			c.OnFrame(frame)
		}
	}
}

// Frame returns a copy of the latest JPEG frame.
func (c *Client) Frame() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return nil, ErrNoFrame
	}
	frame := make([]byte, len(c.latest))
	copy(frame, c.latest)
	return frame, nil
}

// WaitFrame waits until a frame is available or the timeout elapses.
func (c *Client) WaitFrame(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if frame, err := c.Frame(); err == nil {
			return frame, nil
		}
		time.Sleep(20 * time.Millisecond)
	}
	return nil, ErrNoFrame
}

// FrameCount returns how many frames have been received.
func (c *Client) FrameCount() int64 {
	return c.frames.Load()
}
