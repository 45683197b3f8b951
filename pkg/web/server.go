// Package web provides the browser dashboard for a camdeck session.
//
// The dashboard renders the console's state over REST and websocket
// feeds; all camera semantics live in pkg/console and below.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/picamlabs/go-camdeck/internal/log"
	"github.com/picamlabs/go-camdeck/pkg/console"
	"github.com/picamlabs/go-camdeck/pkg/hub"
	"github.com/picamlabs/go-camdeck/pkg/notify"
)

// FrameSource supplies the latest camera frame for snapshot previews.
type FrameSource interface {
	Frame() ([]byte, error)
}

// Server is the dashboard web server.
type Server struct {
	app  *fiber.App
	port string

	console *console.Console
	frames  FrameSource

	// Hubs for websocket broadcast.
	stateHub  *hub.Hub
	notifyHub *hub.Hub
	cameraHub *hub.Hub

	cancelNotify func()
}

// NewServer creates a dashboard server for the given console. frames may
// be nil when no stream client is wired.
func NewServer(port string, c *console.Console, frames FrameSource) *Server {
	s := &Server{
		port:      port,
		console:   c,
		frames:    frames,
		stateHub:  hub.New("state"),
		notifyHub: hub.New("notifications"),
		cameraHub: hub.New("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "camdeck dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development.
	app.Use(cors.New())

	// Static files.
	app.Static("/", "./web")

	// API routes.
	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/controls", s.handleControls)
	api.Post("/controls/reset", s.handleReset)
	api.Post("/controls/:name", s.handleSetControl)
	api.Post("/snapshot", s.handleSnapshot)
	api.Post("/recording/toggle", s.handleToggleRecording)
	api.Get("/gallery", s.handleGallery)
	api.Post("/gallery/open", s.handleGalleryOpen)
	api.Post("/gallery/close", s.handleGalleryClose)
	api.Post("/gallery/next", s.handleGalleryNext)
	api.Post("/gallery/prev", s.handleGalleryPrev)
	api.Delete("/gallery/current", s.handleGalleryDelete)
	api.Get("/notifications", s.handleNotifications)
	api.Post("/key", s.handleKey)

	// Latest frame as a plain JPEG.
	app.Get("/frame.jpg", s.handleFrame)

	// WebSocket upgrade middleware.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes.
	app.Get("/ws/state", websocket.New(s.handleStateWS))
	app.Get("/ws/notifications", websocket.New(s.handleNotifyWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))

	// Every console state change fans out to dashboard clients.
	c.OnState = func(st console.State) {
		s.stateHub.BroadcastJSON(st)
	}

	s.app = app
	return s
}

// Start runs the hubs, bridges notifications, and serves. Blocks.
func (s *Server) Start() error {
	log.Info("dashboard listening", "port", s.port)

	go s.stateHub.Run()
	go s.notifyHub.Run()
	go s.cameraHub.Run()
	s.bridgeNotifications()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server failed", "error", err)
		}
	}()
}

// SendFrame broadcasts a camera frame to websocket viewers. Wire this to
// the stream client's OnFrame.
func (s *Server) SendFrame(jpeg []byte) {
	s.cameraHub.BroadcastBinary(jpeg)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	if s.cancelNotify != nil {
		s.cancelNotify()
	}
	return s.app.Shutdown()
}

// bridgeNotifications forwards notification events to the hub.
func (s *Server) bridgeNotifications() {
	events, cancel := s.console.Notify.Subscribe()
	s.cancelNotify = cancel

	go func() {
		for ev := range events {
			kind := "posted"
			if ev.Kind == notify.Expired {
				kind = "expired"
			}
			s.notifyHub.BroadcastJSON(fiber.Map{
				"event":        kind,
				"notification": ev.Notification,
			})
		}
	}()
}
