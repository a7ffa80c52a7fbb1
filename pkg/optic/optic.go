// Package optic exposes the retina over the Model Context Protocol.
//
// Two tools make up the surface: read_eye returns the freshest observation
// with its encoded image and qualia, configure_eye adjusts the base sampling
// interval. Transport framing and lifecycle belong to the MCP server; this
// package only registers the tools.
package optic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/teslashibe/go-retina/pkg/retina"
)

// Handler registers the retina's remote operations on an MCP server.
type Handler struct {
	retina *retina.Retina
}

// New creates a handler for the given retina.
func New(r *retina.Retina) *Handler {
	return &Handler{retina: r}
}

// RegisterMCP registers the read_eye and configure_eye tools.
func (h *Handler) RegisterMCP(srv *mcp.Server) {
	h.registerReadEye(srv)
	h.registerConfigureEye(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func textResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		var res mcp.CallToolResult
		res.SetError(fmt.Errorf("marshal: %w", err))
		return &res, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

// --- read_eye ---

type readEyeResponse struct {
	// Image is the base64-encoded JPEG payload. Empty when no frame has
	// been captured yet.
	Image      string  `json:"image,omitempty"`
	Status     string  `json:"status"`
	Brightness float64 `json:"brightness"`
	Motion     float64 `json:"motion"`
	CapturedAt float64 `json:"captured_at"`
	Camera     int     `json:"camera_id"`
	Interval   float64 `json:"interval"`
	Seq        uint64  `json:"seq"`
	CaptureID  string  `json:"capture_id,omitempty"`
}

func (h *Handler) registerReadEye(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name: "read_eye",
		Description: "Read the current visual field: a base64 JPEG of the " +
			"latest frame plus brightness/motion qualia and capture metadata.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	srv.AddTool(tool, func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		obs := h.retina.Read()

		resp := readEyeResponse{
			Status:     string(obs.Status),
			Brightness: obs.Qualia.Brightness,
			Motion:     obs.Qualia.Motion,
			CapturedAt: float64(obs.CapturedAt.UnixNano()) / 1e9,
			Camera:     obs.Camera,
			Interval:   h.retina.Interval().Seconds(),
			Seq:        obs.Seq,
		}
		if !obs.Frame.Empty() {
			jpeg, err := h.retina.Encode(obs.Frame)
			if err != nil {
				var res mcp.CallToolResult
				res.SetError(fmt.Errorf("encode frame: %w", err))
				return &res, nil
			}
			resp.Image = base64.StdEncoding.EncodeToString(jpeg)
			resp.CaptureID = obs.CaptureID.String()
		}
		return textResult(resp)
	})
}

// --- configure_eye ---

type configureEyeRequest struct {
	// Interval is seconds between captures while accessed.
	// 0.0 means the fastest supported rate.
	Interval float64 `json:"interval"`
}

type configureEyeResponse struct {
	OK           bool    `json:"ok"`
	BaseInterval float64 `json:"base_interval"`
}

func (h *Handler) registerConfigureEye(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name: "configure_eye",
		Description: "Adjust the capture interval in seconds. 0.0 = max speed, " +
			"300.0 = one frame every 5 minutes. The retina still slows itself " +
			"down when nobody reads it.",
		InputSchema: inputSchema(map[string]any{
			"interval": map[string]any{
				"type":        "number",
				"description": "Seconds between captures (>= 0)",
			},
		}, []string{"interval"}),
	}

	srv.AddTool(tool, func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r configureEyeRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("invalid arguments: %w", err))
			return &res, nil
		}

		if err := h.retina.Configure(r.Interval); err != nil {
			var res mcp.CallToolResult
			res.SetError(errors.New(err.Error()))
			return &res, nil
		}
		return textResult(configureEyeResponse{
			OK:           true,
			BaseInterval: h.retina.Base().Seconds(),
		})
	})
}
