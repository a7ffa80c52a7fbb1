// Optic Nerve - exposes a webcam as an MCP sensory endpoint.
//
// Serves read_eye and configure_eye over MCP stdio for a language-model
// client. The retina samples in the background at a rate it adapts to how
// often it is read, and fails over to alternate cameras on device errors.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/teslashibe/go-retina/internal/config"
	"github.com/teslashibe/go-retina/internal/log"
	"github.com/teslashibe/go-retina/pkg/optic"
	"github.com/teslashibe/go-retina/pkg/retina"
	"github.com/teslashibe/go-retina/pkg/web"
)

const version = "2.0.0"

func main() {
	interval := flag.Float64("interval",
		config.IntervalSeconds(retina.DefaultBaseInterval.Seconds()),
		"base capture interval in seconds (0 = max speed)")
	dashboard := flag.Bool("dashboard", false, "serve the local debug dashboard")
	logLevel := flag.String("log-level", config.LogLevel(), "log level (debug|info|warn|error)")
	flag.Parse()

	log.Init(*logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := retina.DefaultConfig()
	cfg.Devices = retina.DevicesFromIDs(config.CameraIDs([]int{0, 1, 2, 3}))
	cfg.BaseInterval = time.Duration(*interval * float64(time.Second))

	eye, err := retina.New(cfg)
	if err != nil {
		log.Error("retina config", "error", err)
		os.Exit(1)
	}

	// Wire the dashboard before the capture loop starts publishing.
	if *dashboard {
		dash := web.NewServer(config.DashboardPort(), eye)
		eye.OnPublish = dash.PublishFrame
		dash.StartAsync()
		defer dash.Shutdown()
	}

	// No camera at startup is the one fatal condition: fail here rather
	// than serving a permanently blind endpoint.
	if err := eye.Start(); err != nil {
		log.Error("retina startup", "error", err)
		os.Exit(1)
	}
	defer eye.Stop()

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "opticnerve",
		Version: version,
	}, nil)
	optic.New(eye).RegisterMCP(srv)

	log.Info("optic nerve activated", "interval_seconds", *interval)
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Error("mcp server", "error", err)
		os.Exit(1)
	}
	log.Info("optic nerve deactivated")
}
