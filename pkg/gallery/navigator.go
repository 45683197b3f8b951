// Package gallery navigates the camera server's media listing.
//
// The listing is always re-fetched from the server after any mutation, so
// the navigator never shows a stale local projection. The image viewer
// tracks an index into the image-only view of the listing and wraps
// circularly in both directions.
package gallery

import (
	"errors"
	"sync"

	"github.com/picamlabs/go-camdeck/internal/log"
	"github.com/picamlabs/go-camdeck/pkg/camera"
)

// ErrNotConfirmed is returned when a delete is declined by the confirmer.
var ErrNotConfirmed = errors.New("gallery: delete not confirmed")

// Service is the slice of the camera API the navigator needs.
type Service interface {
	Gallery() ([]camera.GalleryEntry, error)
	DeleteMedia(name string) error
}

// Confirmer asks the user to confirm deleting the named file. Deletes
// never proceed without an explicit yes.
type Confirmer func(name string) bool

// Navigator holds the fetched media listing and the image viewer state.
type Navigator struct {
	svc     Service
	confirm Confirmer

	mu      sync.Mutex
	entries []camera.GalleryEntry
	images  []camera.GalleryEntry
	index   int
	open    bool

	// OnChange is called after every refresh. Optional.
	OnChange func(entries []camera.GalleryEntry)

	// OnView is called when the viewer opens or moves to another image.
	// Optional.
	OnView func(entry camera.GalleryEntry, index, count int)
}

// NewNavigator creates a navigator over the given service. confirm may be
// nil, in which case every delete is declined.
func NewNavigator(svc Service, confirm Confirmer) *Navigator {
	return &Navigator{svc: svc, confirm: confirm}
}

// Refresh re-fetches the media listing from the server. While the viewer
// is open the index is re-clamped against the new image count, and the
// viewer closes when no images remain.
func (n *Navigator) Refresh() error {
	entries, err := n.svc.Gallery()
	if err != nil {
		return err
	}

	n.mu.Lock()
	n.entries = entries
	n.images = n.images[:0]
	for _, e := range entries {
		if e.IsImage() {
			n.images = append(n.images, e)
		}
	}
	if n.open {
		if len(n.images) == 0 {
			n.open = false
		} else if n.index >= len(n.images) {
			n.index = len(n.images) - 1
		}
	}
	changed := n.OnChange
	snapshot := make([]camera.GalleryEntry, len(entries))
	copy(snapshot, entries)
	n.mu.Unlock()

	if changed != nil {
		changed(snapshot)
	}
	return nil
}

// Entries returns the last fetched listing.
func (n *Navigator) Entries() []camera.GalleryEntry {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]camera.GalleryEntry, len(n.entries))
	copy(out, n.entries)
	return out
}

// ImageCount returns the number of viewable images.
func (n *Navigator) ImageCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.images)
}

// Open opens the viewer at the i-th image of the filtered view. Opening
// with no images or an out-of-range index is a no-op returning false.
func (n *Navigator) Open(i int) bool {
	n.mu.Lock()
	if i < 0 || i >= len(n.images) {
		n.mu.Unlock()
		return false
	}
	n.index = i
	n.open = true
	entry, index, count := n.images[i], i, len(n.images)
	n.mu.Unlock()

	n.emitView(entry, index, count)
	return true
}

// OpenName opens the viewer at the named image. Returns false when the
// name is not in the image view.
func (n *Navigator) OpenName(name string) bool {
	n.mu.Lock()
	for i, e := range n.images {
		if e.Name == name {
			n.mu.Unlock()
			return n.Open(i)
		}
	}
	n.mu.Unlock()
	return false
}

// CloseViewer closes the image viewer.
func (n *Navigator) CloseViewer() {
	n.mu.Lock()
	n.open = false
	n.mu.Unlock()
}

// ViewerOpen reports whether the image viewer is open.
func (n *Navigator) ViewerOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.open
}

// Current returns the image under the viewer.
func (n *Navigator) Current() (camera.GalleryEntry, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.open || len(n.images) == 0 {
		return camera.GalleryEntry{}, false
	}
	return n.images[n.index], true
}

// Index returns the viewer index.
func (n *Navigator) Index() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.index
}

// Next advances the viewer to the next image, wrapping past the last
// image to the first. A no-op when the viewer is closed or empty.
func (n *Navigator) Next() {
	n.step(1)
}

// Prev moves the viewer to the previous image, wrapping before the first
// image to the last. A no-op when the viewer is closed or empty.
func (n *Navigator) Prev() {
	n.step(-1)
}

func (n *Navigator) step(delta int) {
	n.mu.Lock()
	if !n.open || len(n.images) == 0 {
		n.mu.Unlock()
		return
	}
	count := len(n.images)
	n.index = (n.index + delta + count) % count
	entry, index := n.images[n.index], n.index
	n.mu.Unlock()

	n.emitView(entry, index, count)
}

// DeleteCurrent deletes the image under the viewer after confirmation,
// then refreshes the listing from the server. The displayed list is
// always the server's current truth, never a local splice.
func (n *Navigator) DeleteCurrent() error {
	entry, ok := n.Current()
	if !ok {
		return errors.New("gallery: no image selected")
	}
	if n.confirm == nil || !n.confirm(entry.Name) {
		return ErrNotConfirmed
	}
	if err := n.svc.DeleteMedia(entry.Name); err != nil {
		return err
	}
	log.Info("media deleted", "name", entry.Name)
	return n.Refresh()
}

func (n *Navigator) emitView(entry camera.GalleryEntry, index, count int) {
	if n.OnView != nil {
		n.OnView(entry, index, count)
	}
}
