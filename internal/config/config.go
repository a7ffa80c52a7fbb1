// Package config provides environment configuration helpers for go-retina commands.
package config

import (
	"os"
	"strconv"
	"strings"
)

// DefaultDashboardPort is the dashboard listen port when DASHBOARD_PORT is unset.
const DefaultDashboardPort = "8090"

// CameraIDs returns the ordered camera device IDs from the CAMERA_IDS env var
// (comma-separated, e.g. "0,2,1"). List order is failover priority.
// Falls back to the provided default if not set or unparseable.
func CameraIDs(fallback []int) []int {
	raw := os.Getenv("CAMERA_IDS")
	if raw == "" {
		return fallback
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fallback
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return fallback
	}
	return ids
}

// LogLevel returns the log level from LOG_LEVEL env var or "info".
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}

// DashboardPort returns the dashboard port from DASHBOARD_PORT env var or default.
func DashboardPort() string {
	if port := os.Getenv("DASHBOARD_PORT"); port != "" {
		return port
	}
	return DefaultDashboardPort
}

// IntervalSeconds returns the base capture interval from RETINA_INTERVAL env var.
// Falls back to the provided default if not set or not a number.
func IntervalSeconds(fallback float64) float64 {
	raw := os.Getenv("RETINA_INTERVAL")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
