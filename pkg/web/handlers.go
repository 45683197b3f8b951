package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/picamlabs/go-camdeck/pkg/hub"
)

// ControlView is one control as the dashboard renders it.
type ControlView struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"` // slider or select
	Min     float64  `json:"min,omitempty"`
	Max     float64  `json:"max,omitempty"`
	Value   float64  `json:"value,omitempty"`
	Readout string   `json:"readout,omitempty"`
	Options []string `json:"options,omitempty"`
	Chosen  string   `json:"chosen,omitempty"`
}

// handleState returns the current session snapshot.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.console.State())
}

// handleControls returns every control with its current display value.
func (s *Server) handleControls(c *fiber.Ctx) error {
	reg := s.console.Sync.Registry()
	var views []ControlView

	for _, sl := range reg.Sliders() {
		v := ControlView{
			Name: sl.Name,
			Kind: "slider",
			Min:  sl.Display.Min,
			Max:  sl.Display.Max,
		}
		if display, ok := s.console.Sync.Display(sl.Name); ok {
			v.Value = display
			v.Readout = sl.Readout(display)
		}
		views = append(views, v)
	}
	for _, sel := range reg.Selects() {
		v := ControlView{
			Name:    sel.Name,
			Kind:    "select",
			Options: sel.Options,
		}
		if chosen, ok := s.console.Sync.Chosen(sel.Name); ok {
			v.Chosen = chosen
		}
		views = append(views, v)
	}
	return c.JSON(views)
}

// SetControlRequest is the body for POST /api/controls/:name.
type SetControlRequest struct {
	Value  float64 `json:"value"`
	Option string  `json:"option"`
}

// handleSetControl applies a slider or select input.
func (s *Server) handleSetControl(c *fiber.Ctx) error {
	name := c.Params("name")

	var req SetControlRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid body",
		})
	}

	reg := s.console.Sync.Registry()
	if _, ok := reg.Slider(name); ok {
		s.console.Sync.SetSlider(name, req.Value)
		return c.JSON(fiber.Map{"ok": true})
	}
	if _, ok := reg.Select(name); ok {
		s.console.Sync.SetSelect(name, req.Option)
		return c.JSON(fiber.Map{"ok": true})
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "unknown control",
	})
}

// handleReset restores default settings.
func (s *Server) handleReset(c *fiber.Ctx) error {
	s.console.ResetControls()
	return c.JSON(fiber.Map{"ok": true})
}

// handleSnapshot captures a still image.
func (s *Server) handleSnapshot(c *fiber.Ctx) error {
	s.console.Snapshot()
	return c.JSON(fiber.Map{"ok": true})
}

// handleToggleRecording starts or stops recording.
func (s *Server) handleToggleRecording(c *fiber.Ctx) error {
	s.console.ToggleRecording()
	return c.JSON(s.console.State())
}

// handleGallery returns the fetched listing.
func (s *Server) handleGallery(c *fiber.Ctx) error {
	return c.JSON(s.console.Gallery.Entries())
}

// GalleryOpenRequest is the body for POST /api/gallery/open.
type GalleryOpenRequest struct {
	Name string `json:"name"`
}

// handleGalleryOpen opens the gallery, and the viewer when a name is given.
func (s *Server) handleGalleryOpen(c *fiber.Ctx) error {
	s.console.OpenGallery()

	var req GalleryOpenRequest
	if err := c.BodyParser(&req); err == nil && req.Name != "" {
		if !s.console.Gallery.OpenName(req.Name) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "not a viewable image",
			})
		}
	}
	return c.JSON(s.console.State())
}

// handleGalleryClose closes the viewer and gallery.
func (s *Server) handleGalleryClose(c *fiber.Ctx) error {
	s.console.CloseGallery()
	return c.JSON(s.console.State())
}

// handleGalleryNext advances the viewer.
func (s *Server) handleGalleryNext(c *fiber.Ctx) error {
	s.console.Gallery.Next()
	return c.JSON(s.console.State())
}

// handleGalleryPrev moves the viewer back.
func (s *Server) handleGalleryPrev(c *fiber.Ctx) error {
	s.console.Gallery.Prev()
	return c.JSON(s.console.State())
}

// GalleryDeleteRequest is the body for DELETE /api/gallery/current. The
// dashboard prompts the user before sending confirmed=true.
type GalleryDeleteRequest struct {
	Confirmed bool `json:"confirmed"`
}

// handleGalleryDelete deletes the viewed image.
func (s *Server) handleGalleryDelete(c *fiber.Ctx) error {
	var req GalleryDeleteRequest
	if err := c.BodyParser(&req); err != nil || !req.Confirmed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "delete requires confirmation",
		})
	}
	s.console.DeleteCurrentImage()
	return c.JSON(s.console.State())
}

// handleNotifications returns the active notifications.
func (s *Server) handleNotifications(c *fiber.Ctx) error {
	return c.JSON(s.console.Notify.Active())
}

// KeyRequest is the body for POST /api/key.
type KeyRequest struct {
	Key    string `json:"key"`
	Typing bool   `json:"typing"`
}

// handleKey forwards a keyboard shortcut from the dashboard.
func (s *Server) handleKey(c *fiber.Ctx) error {
	var req KeyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid body",
		})
	}
	handled := s.console.HandleKey(req.Key, req.Typing)
	return c.JSON(fiber.Map{"handled": handled})
}

// handleFrame serves the latest camera frame as a JPEG.
func (s *Server) handleFrame(c *fiber.Ctx) error {
	if s.frames == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no stream connected",
		})
	}
	frame, err := s.frames.Frame()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no frame available",
		})
	}
	c.Set("Content-Type", "image/jpeg")
	c.Set("Cache-Control", "no-cache, private")
	return c.Send(frame)
}

// handleStateWS streams session snapshots.
func (s *Server) handleStateWS(conn *websocket.Conn) {
	// Send the current snapshot before joining the broadcast feed.
	conn.WriteJSON(s.console.State())
	hub.NewClient(s.stateHub, conn).Run()
}

// handleNotifyWS streams notification events.
func (s *Server) handleNotifyWS(conn *websocket.Conn) {
	hub.NewClient(s.notifyHub, conn).Run()
}

// handleCameraWS streams camera frames.
func (s *Server) handleCameraWS(conn *websocket.Conn) {
	hub.NewClient(s.cameraHub, conn).Run()
}
