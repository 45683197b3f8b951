// Camdeck - browser control deck for a networked Pi camera server.
// Serves a dashboard that mirrors the camera's settings, recording
// state, gallery, and live MJPEG feed.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/picamlabs/go-camdeck/internal/config"
	"github.com/picamlabs/go-camdeck/internal/log"
	"github.com/picamlabs/go-camdeck/pkg/camera"
	"github.com/picamlabs/go-camdeck/pkg/console"
	"github.com/picamlabs/go-camdeck/pkg/stream"
	"github.com/picamlabs/go-camdeck/pkg/web"
)

func main() {
	cameraIP, dashPort, noStream := parseFlags()

	baseURL := config.CameraBaseURL(cameraIP)
	svc := camera.NewHTTPService(baseURL)

	cfg := console.DefaultConfig()
	// The dashboard prompts the user before it sends a confirmed delete,
	// so the session-side confirmer always agrees.
	cfg.ConfirmDelete = func(string) bool { return true }

	c := console.New(svc, cfg)

	var frames *stream.Client
	if !noStream {
		frames = stream.NewClient(svc.StreamURL())
	}

	server := web.NewServer(dashPort, c, frames)
	if frames != nil {
		frames.OnFrame = server.SendFrame
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("camdeck starting", "camera", baseURL, "dashboard_port", dashPort)

	c.Load()
	if frames != nil {
		go runStream(ctx, frames)
	}
	go func() {
		if err := c.Run(ctx); err != nil && err != context.Canceled {
			log.Error("console stopped", "error", err)
		}
	}()
	server.StartAsync()

	<-ctx.Done()
	log.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		log.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

// runStream keeps the MJPEG feed connected, reconnecting with a short
// backoff when the camera server drops it.
func runStream(ctx context.Context, c *stream.Client) {
	for {
		err := c.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		log.Warn("stream disconnected, reconnecting", "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

// parseFlags parses command line flags, falling back to environment
// variables for anything not given.
func parseFlags() (cameraIP, dashPort string, noStream bool) {
	ip := flag.String("camera-ip", "", "Camera server IP (overrides CAMERA_IP env var)")
	port := flag.String("port", "", "Dashboard port (overrides DASH_PORT env var)")
	skipStream := flag.Bool("no-stream", false, "Disable the MJPEG feed relay")
	level := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	if *level != "" {
		log.Init(*level)
	} else {
		log.Init(config.LogLevel())
	}

	cameraIP = *ip
	if cameraIP == "" {
		cameraIP = config.CameraIPRequired()
	}
	dashPort = *port
	if dashPort == "" {
		dashPort = config.DashboardPort()
	}
	return cameraIP, dashPort, *skipStream
}
