// Package config provides configuration helpers for camdeck commands.
package config

import (
	"fmt"
	"os"
)

// Default camera server configuration.
const (
	DefaultCameraPort    = "8080"
	DefaultDashboardPort = "3000"
)

// CameraIP returns the camera IP from CAMERA_IP env var.
// Falls back to the provided default if not set.
func CameraIP(defaultIP string) string {
	if ip := os.Getenv("CAMERA_IP"); ip != "" {
		return ip
	}
	return defaultIP
}

// CameraIPRequired returns the camera IP from CAMERA_IP env var.
// Exits with usage if not set.
func CameraIPRequired() string {
	ip := os.Getenv("CAMERA_IP")
	if ip == "" {
		fmt.Fprintln(os.Stderr, "Error: CAMERA_IP environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: CAMERA_IP=192.168.1.42 go run ./cmd/camdeck")
		os.Exit(1)
	}
	return ip
}

// CameraPort returns the camera port from CAMERA_PORT env var or default.
func CameraPort() string {
	if port := os.Getenv("CAMERA_PORT"); port != "" {
		return port
	}
	return DefaultCameraPort
}

// CameraBaseURL returns the camera server HTTP base URL.
func CameraBaseURL(cameraIP string) string {
	return fmt.Sprintf("http://%s:%s", cameraIP, CameraPort())
}

// DashboardPort returns the dashboard port from DASH_PORT env var or default.
func DashboardPort() string {
	if port := os.Getenv("DASH_PORT"); port != "" {
		return port
	}
	return DefaultDashboardPort
}

// LogLevel returns the log level from LOG_LEVEL env var or "info".
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}
