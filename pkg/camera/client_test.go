package camera

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (*httptest.Server, *HTTPService) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/controls", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"brightness":   -0.5,
			"contrast":     1.2,
			"saturation":   1.0,
			"sharpness":    1.0,
			"zoom":         1.0,
			"resolution":   "1280x720",
			"awb_mode":     "auto",
			"awb_modes":    []string{"auto", "daylight"},
			"resolutions":  []string{"640x480", "1280x720"},
			"is_recording": true,
		})
	})
	mux.HandleFunc("POST /api/controls", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("controls POST body did not decode: %v", err)
		}
		json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("POST /api/recording/start", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(CaptureResult{Success: true, Filename: "recording_1.h264"})
	})
	mux.HandleFunc("POST /api/recording/stop", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(CaptureResult{Success: false, Error: "Not recording"})
	})
	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"frame_count": 1234,
			"uptime":      "00:02:05",
			"viewers":     2,
		})
	})
	mux.HandleFunc("GET /api/gallery", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]GalleryEntry{
			{Name: "snapshot_1.jpg", Type: MediaImage},
			{Name: "recording_1.h264", Type: MediaVideo},
		})
	})
	mux.HandleFunc("GET /api/gallery/snapshot_1.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpegbytes"))
	})
	mux.HandleFunc("DELETE /api/gallery/snapshot_1.jpg", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})
	mux.HandleFunc("DELETE /api/gallery/ghost.jpg", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "File not found"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, NewHTTPService(srv.URL)
}

func TestHTTPService_Controls(t *testing.T) {
	_, svc := newTestServer(t)

	c, err := svc.Controls()
	if err != nil {
		t.Fatalf("Controls failed: %v", err)
	}
	if c.Brightness != -0.5 {
		t.Errorf("expected brightness -0.5, got %v", c.Brightness)
	}
	if !c.IsRecording {
		t.Error("expected is_recording true")
	}
	if len(c.AWBModes) != 2 {
		t.Errorf("expected 2 awb modes, got %d", len(c.AWBModes))
	}
}

func TestHTTPService_ControlsPartialResponse(t *testing.T) {
	// A server that omits fields must not break decoding.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"brightness": 0.25}`))
	}))
	defer srv.Close()

	c, err := NewHTTPService(srv.URL).Controls()
	if err != nil {
		t.Fatalf("Controls failed on partial response: %v", err)
	}
	if c.Brightness != 0.25 {
		t.Errorf("expected brightness 0.25, got %v", c.Brightness)
	}
	if c.Resolution != "" || c.IsRecording {
		t.Error("missing fields should decode to zero values")
	}
}

func TestHTTPService_Recording(t *testing.T) {
	_, svc := newTestServer(t)

	res, err := svc.StartRecording()
	if err != nil {
		t.Fatalf("StartRecording failed: %v", err)
	}
	if !res.Success || res.Filename != "recording_1.h264" {
		t.Errorf("unexpected start result: %+v", res)
	}

	res, err = svc.StopRecording()
	if err != nil {
		t.Fatalf("StopRecording failed: %v", err)
	}
	if res.Success {
		t.Error("expected stop to report failure")
	}
	if res.Error != "Not recording" {
		t.Errorf("expected server error message, got %q", res.Error)
	}
}

func TestHTTPService_GalleryAndMedia(t *testing.T) {
	_, svc := newTestServer(t)

	entries, err := svc.Gallery()
	if err != nil {
		t.Fatalf("Gallery failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !entries[0].IsImage() || entries[1].IsImage() {
		t.Error("media types misclassified")
	}

	data, err := svc.Media("snapshot_1.jpg")
	if err != nil {
		t.Fatalf("Media failed: %v", err)
	}
	if string(data) != "jpegbytes" {
		t.Errorf("unexpected media bytes: %q", data)
	}

	if _, err := svc.Media("missing.jpg"); !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestHTTPService_DeleteMedia(t *testing.T) {
	_, svc := newTestServer(t)

	if err := svc.DeleteMedia("snapshot_1.jpg"); err != nil {
		t.Fatalf("DeleteMedia failed: %v", err)
	}

	err := svc.DeleteMedia("ghost.jpg")
	if err == nil {
		t.Fatal("expected delete of missing file to fail")
	}
	if !strings.Contains(err.Error(), "File not found") {
		t.Errorf("expected server error message, got %v", err)
	}
}

func TestHTTPService_Unreachable(t *testing.T) {
	svc := NewHTTPService("http://127.0.0.1:1")

	if _, err := svc.Controls(); !IsRetryable(err) {
		t.Errorf("expected retryable unreachable error, got %v", err)
	}
}

func TestHTTPService_StreamURLCacheBust(t *testing.T) {
	svc := NewHTTPService("http://cam:8080")

	url := svc.StreamURL()
	if !strings.HasPrefix(url, "http://cam:8080/stream.mjpg?t=") {
		t.Errorf("unexpected stream URL: %s", url)
	}
}
