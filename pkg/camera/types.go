// Package camera provides a typed client for the camera server's REST API.
//
// The camera server owns the hardware and all persistence; this package only
// speaks its HTTP surface. Responses with missing fields decode to zero
// values and are guarded by callers before use.
package camera

// MediaType distinguishes gallery entries.
type MediaType string

const (
	// MediaImage is a still capture (jpg/jpeg/png).
	MediaImage MediaType = "image"
	// MediaVideo is a recording (h264/mp4).
	MediaVideo MediaType = "video"
)

// Controls is the camera's current settings as reported by /api/controls.
type Controls struct {
	Brightness float64 `json:"brightness"` // -1.0 to 1.0
	Contrast   float64 `json:"contrast"`   // 0.0 to 2.0
	Saturation float64 `json:"saturation"` // 0.0 to 2.0
	Sharpness  float64 `json:"sharpness"`  // 0.0 to 2.0
	Zoom       float64 `json:"zoom"`       // 1.0 to 4.0
	Resolution string  `json:"resolution"`
	AWBMode    string  `json:"awb_mode"`

	// Valid choices for the selection controls, as the server reports them.
	AWBModes    []string `json:"awb_modes"`
	Resolutions []string `json:"resolutions"`

	IsRecording bool `json:"is_recording"`
}

// CaptureResult is the server's response to snapshot and recording calls.
type CaptureResult struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// Stats is the server's runtime statistics from /api/stats.
type Stats struct {
	FrameCount      int    `json:"frame_count"`
	Uptime          string `json:"uptime"`
	UptimeSeconds   int    `json:"uptime_seconds"`
	Viewers         int    `json:"viewers"`
	IsRecording     bool   `json:"is_recording"`
	CapturesCount   int    `json:"captures_count"`
	CameraAvailable bool   `json:"camera_available"`
}

// GalleryEntry is one captured file in the server's gallery listing.
type GalleryEntry struct {
	Name    string    `json:"name"`
	Type    MediaType `json:"type"`
	Size    int64     `json:"size"`
	Created string    `json:"created"`
}

// IsImage reports whether the entry is viewable as a still image.
func (e GalleryEntry) IsImage() bool {
	return e.Type == MediaImage
}
