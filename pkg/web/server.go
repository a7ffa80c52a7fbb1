// Package web provides a local debug dashboard for the retina:
// current frame, qualia, and metabolic state.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-retina/internal/log"
	"github.com/teslashibe/go-retina/pkg/hub"
	"github.com/teslashibe/go-retina/pkg/retina"
)

// Server is the dashboard server. It is a debug aid for a human operator;
// the MCP surface in pkg/optic remains the single-consumer contract.
type Server struct {
	app    *fiber.App
	port   string
	retina *retina.Retina

	frameHub *hub.Hub
}

// NewServer creates a dashboard server for the given retina.
func NewServer(port string, r *retina.Retina) *Server {
	s := &Server{
		port:     port,
		retina:   r,
		frameHub: hub.New("frames"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Retina Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/frame", s.handleFrame)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))

	s.app = app
	return s
}

// Start starts the dashboard server and blocks.
func (s *Server) Start() error {
	go s.frameHub.Run()
	log.Info("dashboard listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the dashboard server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server", "error", err)
		}
	}()
}

// Shutdown gracefully stops the dashboard server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// PublishFrame pushes a freshly captured observation to websocket viewers.
// Wire this as the retina's OnPublish callback. Encoding is skipped when
// nobody is watching.
func (s *Server) PublishFrame(obs *retina.Observation) {
	if s.frameHub.ClientCount() == 0 || obs.Frame.Empty() {
		return
	}
	jpeg, err := s.retina.Encode(obs.Frame)
	if err != nil {
		log.Warn("dashboard frame encode", "error", err)
		return
	}
	s.frameHub.BroadcastBinary(jpeg)
}

// handleStatus returns the retina's current snapshot.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.retina.Stats())
}

// handleFrame returns the current frame as a JPEG, or 404 before first sight.
func (s *Server) handleFrame(c *fiber.Ctx) error {
	obs := s.retina.Read()
	if obs.Frame.Empty() {
		return fiber.NewError(fiber.StatusNotFound, "no frame captured yet")
	}
	jpeg, err := s.retina.Encode(obs.Frame)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	c.Set("Content-Type", "image/jpeg")
	return c.Send(jpeg)
}

// handleFramesWS streams each published frame to the client.
func (s *Server) handleFramesWS(conn *websocket.Conn) {
	client := hub.NewClient(s.frameHub, conn)
	client.Run()
}
