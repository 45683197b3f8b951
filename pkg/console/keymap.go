package console

// Key names follow the browser KeyboardEvent key values the dashboard
// forwards.
const (
	KeySpace      = " "
	KeyRecord     = "r"
	KeyFullscreen = "f"
	KeyGallery    = "g"
	KeyEscape     = "Escape"
	KeyLeft       = "ArrowLeft"
	KeyRight      = "ArrowRight"
)

// HandleKey dispatches a keyboard shortcut. typing suppresses every
// binding while focus is in a text input or select. Returns whether the
// key was handled.
func (c *Console) HandleKey(key string, typing bool) bool {
	if typing {
		return false
	}

	switch key {
	case KeySpace:
		c.Snapshot()
	case KeyRecord:
		c.ToggleRecording()
	case KeyFullscreen:
		c.ToggleFullscreen()
	case KeyGallery:
		c.OpenGallery()
	case KeyEscape:
		return c.handleEscape()
	case KeyLeft:
		if !c.Gallery.ViewerOpen() {
			return false
		}
		c.Gallery.Prev()
	case KeyRight:
		if !c.Gallery.ViewerOpen() {
			return false
		}
		c.Gallery.Next()
	default:
		return false
	}
	return true
}

// handleEscape closes the innermost open surface: viewer, then gallery,
// then fullscreen.
func (c *Console) handleEscape() bool {
	switch {
	case c.Gallery.ViewerOpen():
		c.Gallery.CloseViewer()
		c.publish()
	case c.GalleryOpen():
		c.CloseGallery()
	case c.Fullscreen():
		c.ToggleFullscreen()
	default:
		return false
	}
	return true
}
