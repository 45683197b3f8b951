// Package console is the composition root for a camdeck session.
//
// One Console instance owns all session state: the settings synchronizer,
// recording controller, gallery navigator, stats poller, and notification
// center. Rendering surfaces (the web dashboard, tests) subscribe to its
// callbacks; nothing here touches a rendering technology.
package console

import (
	"context"
	"sync"
	"time"

	"github.com/picamlabs/go-camdeck/internal/log"
	"github.com/picamlabs/go-camdeck/pkg/camera"
	"github.com/picamlabs/go-camdeck/pkg/controls"
	"github.com/picamlabs/go-camdeck/pkg/gallery"
	"github.com/picamlabs/go-camdeck/pkg/notify"
	"github.com/picamlabs/go-camdeck/pkg/recording"
	"github.com/picamlabs/go-camdeck/pkg/stats"
)

// Config holds the tunables for a console session.
type Config struct {
	// DebounceWindow is the settings push debounce quiet window.
	DebounceWindow time.Duration

	// StatsInterval is the stats polling interval.
	StatsInterval time.Duration

	// NotifyTTL is how long notifications stay visible.
	NotifyTTL time.Duration

	// ConfirmDelete is asked before any gallery delete. Defaults to
	// declining everything; surfaces install a real prompt.
	ConfirmDelete gallery.Confirmer
}

// DefaultConfig returns the recommended session configuration.
func DefaultConfig() Config {
	return Config{
		DebounceWindow: controls.DefaultDebounceWindow,
		StatsInterval:  stats.DefaultInterval,
		NotifyTTL:      notify.DefaultTTL,
	}
}

// State is a renderable snapshot of the session.
type State struct {
	Recording   string `json:"recording"`
	Elapsed     string `json:"elapsed"`
	Fullscreen  bool   `json:"fullscreen"`
	GalleryOpen bool   `json:"gallery_open"`
	ViewerOpen  bool   `json:"viewer_open"`
	ViewerIndex int    `json:"viewer_index"`
	ImageCount  int    `json:"image_count"`
	FPS         int    `json:"fps"`
	HasFPS      bool   `json:"has_fps"`
	Frames      string `json:"frames"`
	Uptime      string `json:"uptime"`
	Viewers     int    `json:"viewers"`
}

// Console coordinates one control session against a camera server.
type Console struct {
	svc camera.Service

	Sync     *controls.Synchronizer
	Recorder *recording.Recorder
	Gallery  *gallery.Navigator
	Stats    *stats.Poller
	Notify   *notify.Center

	mu          sync.Mutex
	fullscreen  bool
	galleryOpen bool

	// OnState is called with a fresh snapshot after every state change.
	// Optional.
	OnState func(State)
}

// New wires a console over the given camera service.
func New(svc camera.Service, cfg Config) *Console {
	c := &Console{
		svc:    svc,
		Notify: notify.NewCenterWith(cfg.NotifyTTL),
	}

	c.Sync = controls.NewSynchronizerWith(svc, controls.DefaultRegistry(), cfg.DebounceWindow)
	c.Sync.OnError = func(name string, err error) {
		c.Notify.Errorf("Failed to update " + name)
	}

	c.Recorder = recording.NewRecorder(svc)
	c.Recorder.OnState = func(recording.State) { c.publish() }
	c.Recorder.OnElapsed = func(string) { c.publish() }

	c.Gallery = gallery.NewNavigator(svc, cfg.ConfirmDelete)
	c.Gallery.OnView = func(camera.GalleryEntry, int, int) { c.publish() }

	c.Stats = stats.NewPollerWith(svc, cfg.StatsInterval)
	c.Stats.OnSample = func(stats.Sample) { c.publish() }

	return c
}

// Load fetches the initial settings and gallery listing. Either failure
// is reported and non-fatal: the session starts with whatever loaded.
func (c *Console) Load() {
	if err := c.Sync.Load(); err != nil {
		log.Warn("settings load failed", "error", err)
		c.Notify.Errorf("Failed to load camera settings")
	}
	if err := c.Gallery.Refresh(); err != nil {
		log.Warn("gallery load failed", "error", err)
		c.Notify.Warningf("Failed to load gallery")
	}
	c.publish()
}

// Run polls stats until the context is cancelled, then tears the
// session's timers down.
func (c *Console) Run(ctx context.Context) error {
	defer c.Close()
	return c.Stats.Run(ctx)
}

// Close cancels all pending timers.
func (c *Console) Close() {
	c.Sync.Close()
	c.Recorder.Close()
	c.Notify.Close()
}

// Snapshot captures a still image, reporting the outcome as a
// notification. The gallery refreshes when it is open so the new capture
// appears immediately.
func (c *Console) Snapshot() {
	res, err := c.svc.Snapshot()
	if err != nil || !res.Success {
		log.Warn("snapshot failed", "error", err, "server_error", res.Error)
		c.Notify.Errorf("Snapshot failed")
		return
	}
	c.Notify.Successf("Snapshot saved: " + res.Filename)

	if c.GalleryOpen() {
		if err := c.Gallery.Refresh(); err != nil {
			log.Warn("gallery refresh failed", "error", err)
		}
	}
	c.publish()
}

// ToggleRecording starts or stops recording. A failure produces exactly
// one error notification and leaves the state where it was.
func (c *Console) ToggleRecording() {
	wasRecording := c.Recorder.State() == recording.Recording

	res, err := c.Recorder.Toggle()
	if err != nil {
		if err == recording.ErrBusy {
			return
		}
		c.Notify.Errorf(err.Error())
		return
	}
	if wasRecording {
		c.Notify.Successf("Saved: " + res.Filename)
	} else {
		c.Notify.Successf("Recording started")
	}
}

// ResetControls restores the default camera settings.
func (c *Console) ResetControls() {
	c.Sync.Reset()
	c.Notify.Infof("Settings reset to defaults")
}

// OpenGallery refreshes and shows the gallery.
func (c *Console) OpenGallery() {
	if err := c.Gallery.Refresh(); err != nil {
		c.Notify.Errorf("Failed to load gallery")
		return
	}
	c.mu.Lock()
	c.galleryOpen = true
	c.mu.Unlock()
	c.publish()
}

// CloseGallery hides the gallery and its viewer.
func (c *Console) CloseGallery() {
	c.Gallery.CloseViewer()
	c.mu.Lock()
	c.galleryOpen = false
	c.mu.Unlock()
	c.publish()
}

// GalleryOpen reports whether the gallery is shown.
func (c *Console) GalleryOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.galleryOpen
}

// ToggleFullscreen flips the fullscreen flag.
func (c *Console) ToggleFullscreen() {
	c.mu.Lock()
	c.fullscreen = !c.fullscreen
	c.mu.Unlock()
	c.publish()
}

// Fullscreen reports the fullscreen flag.
func (c *Console) Fullscreen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fullscreen
}

// DeleteCurrentImage deletes the viewed image after confirmation.
func (c *Console) DeleteCurrentImage() {
	err := c.Gallery.DeleteCurrent()
	switch {
	case err == nil:
		c.Notify.Successf("File deleted")
		c.publish()
	case err == gallery.ErrNotConfirmed:
		// Declined; nothing to report.
	default:
		c.Notify.Errorf("Delete failed")
	}
}

// State assembles a renderable snapshot of the session.
func (c *Console) State() State {
	st := State{
		Recording:   c.Recorder.State().String(),
		Elapsed:     c.Recorder.Elapsed(),
		Fullscreen:  c.Fullscreen(),
		GalleryOpen: c.GalleryOpen(),
		ViewerOpen:  c.Gallery.ViewerOpen(),
		ViewerIndex: c.Gallery.Index(),
		ImageCount:  c.Gallery.ImageCount(),
	}
	if sample, ok := c.Stats.Last(); ok {
		st.FPS = sample.FPS
		st.HasFPS = sample.HasFPS
		st.Frames = stats.Abbreviate(sample.Stats.FrameCount)
		st.Uptime = sample.Stats.Uptime
		st.Viewers = sample.Stats.Viewers
	}
	return st
}

func (c *Console) publish() {
	if c.OnState != nil {
		c.OnState(c.State())
	}
}
