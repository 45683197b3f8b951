package config

import "testing"

func TestCameraIPFallsBackToDefault(t *testing.T) {
	t.Setenv("CAMERA_IP", "")
	if got := CameraIP("10.0.0.5"); got != "10.0.0.5" {
		t.Errorf("CameraIP = %q, want 10.0.0.5", got)
	}

	t.Setenv("CAMERA_IP", "192.168.1.42")
	if got := CameraIP("10.0.0.5"); got != "192.168.1.42" {
		t.Errorf("CameraIP = %q, want 192.168.1.42", got)
	}
}

func TestCameraBaseURL(t *testing.T) {
	t.Setenv("CAMERA_PORT", "")
	if got := CameraBaseURL("192.168.1.42"); got != "http://192.168.1.42:8080" {
		t.Errorf("CameraBaseURL = %q", got)
	}

	t.Setenv("CAMERA_PORT", "9000")
	if got := CameraBaseURL("192.168.1.42"); got != "http://192.168.1.42:9000" {
		t.Errorf("CameraBaseURL = %q", got)
	}
}

func TestDashboardPort(t *testing.T) {
	t.Setenv("DASH_PORT", "")
	if got := DashboardPort(); got != DefaultDashboardPort {
		t.Errorf("DashboardPort = %q, want %q", got, DefaultDashboardPort)
	}

	t.Setenv("DASH_PORT", "8088")
	if got := DashboardPort(); got != "8088" {
		t.Errorf("DashboardPort = %q, want 8088", got)
	}
}

func TestLogLevelDefault(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	if got := LogLevel(); got != "info" {
		t.Errorf("LogLevel = %q, want info", got)
	}
}
