package camera

import (
	"sync"
)

// Mock is an in-memory camera service for testing console components
// without a camera server. It records applied settings and serves a
// configurable gallery.
type Mock struct {
	mu sync.Mutex

	// ControlsValue is returned by Controls.
	ControlsValue Controls

	// StatsValue is returned by Stats.
	StatsValue Stats

	// Entries is returned by Gallery.
	Entries []GalleryEntry

	// Files maps media names to bytes for Media.
	Files map[string][]byte

	// Recording mirrors the server-side recording flag.
	Recording bool

	// Applied collects every ApplyControls payload in order.
	Applied []map[string]any

	// Deleted collects every DeleteMedia name in order.
	Deleted []string

	// Fail, when set, is returned by every call. FailResult, when set
	// alongside a nil Fail, makes capture calls report a server-side
	// failure without a transport error.
	Fail       error
	FailResult *CaptureResult
}

// NewMock creates a mock with sensible camera defaults.
func NewMock() *Mock {
	return &Mock{
		ControlsValue: Controls{
			Brightness: 0,
			Contrast:   1.0,
			Saturation: 1.0,
			Sharpness:  1.0,
			Zoom:       1.0,
			Resolution: "1280x720",
			AWBMode:    "auto",
			AWBModes: []string{"auto", "incandescent", "tungsten",
				"fluorescent", "indoor", "daylight", "cloudy"},
			Resolutions: []string{"640x480", "1280x720", "1920x1080"},
		},
		Files: make(map[string][]byte),
	}
}

// Controls returns the configured controls.
func (m *Mock) Controls() (Controls, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return Controls{}, m.Fail
	}
	c := m.ControlsValue
	c.IsRecording = m.Recording
	return c, nil
}

// ApplyControls records the payload.
func (m *Mock) ApplyControls(values map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	cp := make(map[string]any, len(values))
	for k, v := range values {
		cp[k] = v
	}
	m.Applied = append(m.Applied, cp)
	return nil
}

// StartRecording flips the recording flag on success.
func (m *Mock) StartRecording() (CaptureResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return CaptureResult{}, m.Fail
	}
	if m.FailResult != nil {
		return *m.FailResult, nil
	}
	if m.Recording {
		return CaptureResult{Success: false, Error: "Already recording"}, nil
	}
	m.Recording = true
	return CaptureResult{Success: true, Filename: "recording_test.h264"}, nil
}

// StopRecording clears the recording flag on success.
func (m *Mock) StopRecording() (CaptureResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return CaptureResult{}, m.Fail
	}
	if m.FailResult != nil {
		return *m.FailResult, nil
	}
	if !m.Recording {
		return CaptureResult{Success: false, Error: "Not recording"}, nil
	}
	m.Recording = false
	return CaptureResult{Success: true, Filename: "recording_test.h264"}, nil
}

// Snapshot reports a successful capture.
func (m *Mock) Snapshot() (CaptureResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return CaptureResult{}, m.Fail
	}
	if m.FailResult != nil {
		return *m.FailResult, nil
	}
	return CaptureResult{Success: true, Filename: "snapshot_test.jpg"}, nil
}

// Stats returns the configured stats.
func (m *Mock) Stats() (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return Stats{}, m.Fail
	}
	return m.StatsValue, nil
}

// Gallery returns the configured entries.
func (m *Mock) Gallery() ([]GalleryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	out := make([]GalleryEntry, len(m.Entries))
	copy(out, m.Entries)
	return out, nil
}

// Media returns bytes from Files.
func (m *Mock) Media(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	data, ok := m.Files[name]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

// DeleteMedia removes the entry and records the name.
func (m *Mock) DeleteMedia(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.Deleted = append(m.Deleted, name)
	delete(m.Files, name)
	for i, e := range m.Entries {
		if e.Name == name {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			break
		}
	}
	return nil
}

// LastApplied returns the most recent ApplyControls payload, or nil.
func (m *Mock) LastApplied() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Applied) == 0 {
		return nil
	}
	return m.Applied[len(m.Applied)-1]
}

// ApplyCount returns how many ApplyControls calls were made.
func (m *Mock) ApplyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Applied)
}
