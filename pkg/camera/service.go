package camera

// Service is the camera server surface the console depends on. The
// composite interface exists for wiring; consumers that need less (the
// settings synchronizer, the gallery navigator) declare their own narrow
// view of it.
type Service interface {
	// Controls returns the camera's current settings.
	Controls() (Controls, error)

	// ApplyControls applies one or more settings. The server applies what
	// it recognizes and ignores the rest.
	ApplyControls(values map[string]any) error

	// StartRecording begins video capture on the server.
	StartRecording() (CaptureResult, error)

	// StopRecording ends video capture on the server.
	StopRecording() (CaptureResult, error)

	// Snapshot captures a still image on the server.
	Snapshot() (CaptureResult, error)

	// Stats returns server runtime statistics.
	Stats() (Stats, error)

	// Gallery returns the full media listing, newest first.
	Gallery() ([]GalleryEntry, error)

	// Media returns the raw bytes of a captured file.
	Media(name string) ([]byte, error)

	// DeleteMedia removes a captured file from the server.
	DeleteMedia(name string) error
}

// Ensure implementations satisfy Service.
var (
	_ Service = (*HTTPService)(nil)
	_ Service = (*Mock)(nil)
)
