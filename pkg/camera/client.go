package camera

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/picamlabs/go-camdeck/internal/httpc"
)

// requestTimeout bounds every camera API call so a dead server never
// blocks the console.
const requestTimeout = 5 * time.Second

// HTTPService implements Service against the camera server's REST API.
// This is the primary client used by camdeck.
type HTTPService struct {
	BaseURL string

	http *http.Client
}

// NewHTTPService creates a client for the camera server at baseURL,
// e.g. "http://192.168.1.42:8080".
func NewHTTPService(baseURL string) *HTTPService {
	return &HTTPService{
		BaseURL: baseURL,
		http:    httpc.NewClient(requestTimeout),
	}
}

// StreamURL returns the MJPEG feed URL, cache-busted with a one-time
// timestamp so a reconnecting viewer never receives a stale cached body.
func (s *HTTPService) StreamURL() string {
	return fmt.Sprintf("%s/stream.mjpg?t=%d", s.BaseURL, time.Now().UnixMilli())
}

// MediaURL returns the direct URL for a captured file.
func (s *HTTPService) MediaURL(name string) string {
	return s.BaseURL + "/api/gallery/" + name
}

// Controls returns the camera's current settings.
func (s *HTTPService) Controls() (Controls, error) {
	var c Controls
	err := s.getJSON("/api/controls", &c)
	return c, err
}

// ApplyControls applies one or more settings via POST /api/controls.
func (s *HTTPService) ApplyControls(values map[string]any) error {
	return s.postJSON("/api/controls", values, nil)
}

// StartRecording begins video capture on the server.
func (s *HTTPService) StartRecording() (CaptureResult, error) {
	var res CaptureResult
	err := s.postJSON("/api/recording/start", nil, &res)
	return res, err
}

// StopRecording ends video capture on the server.
func (s *HTTPService) StopRecording() (CaptureResult, error) {
	var res CaptureResult
	err := s.postJSON("/api/recording/stop", nil, &res)
	return res, err
}

// Snapshot captures a still image on the server.
func (s *HTTPService) Snapshot() (CaptureResult, error) {
	var res CaptureResult
	err := s.postJSON("/api/snapshot", nil, &res)
	return res, err
}

// Stats returns server runtime statistics.
func (s *HTTPService) Stats() (Stats, error) {
	var st Stats
	err := s.getJSON("/api/stats", &st)
	return st, err
}

// Gallery returns the full media listing, newest first.
func (s *HTTPService) Gallery() ([]GalleryEntry, error) {
	var entries []GalleryEntry
	err := s.getJSON("/api/gallery", &entries)
	return entries, err
}

// Media returns the raw bytes of a captured file.
func (s *HTTPService) Media(name string) ([]byte, error) {
	resp, err := s.http.Get(s.MediaURL(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewAPIError(resp.StatusCode, "")
	}
	return io.ReadAll(resp.Body)
}

// DeleteMedia removes a captured file from the server.
func (s *HTTPService) DeleteMedia(name string) error {
	req, err := http.NewRequest(http.MethodDelete, s.MediaURL(name), nil)
	if err != nil {
		return err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewAPIError(resp.StatusCode, "")
	}

	var res struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if !res.Success {
		if res.Error != "" {
			return fmt.Errorf("%w: %s", ErrRejected, res.Error)
		}
		return ErrRejected
	}
	return nil
}

// getJSON performs a GET and decodes the JSON body into out.
func (s *HTTPService) getJSON(path string, out any) error {
	resp, err := s.http.Get(s.BaseURL + path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewAPIError(resp.StatusCode, "")
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

// postJSON performs a POST with a JSON body and optionally decodes the
// response into out.
func (s *HTTPService) postJSON(path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	} else {
		payload = []byte("{}")
	}

	resp, err := s.http.Post(s.BaseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewAPIError(resp.StatusCode, "")
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}
